package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "claims"
)

// Authoriz rejects requests without a valid bearer token and stores its claims in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ScopedTo rejects requests whose token claim does not match the named path parameter.
// It must run after Authoriz.
func ScopedTo(claim, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextClaims)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, ok := raw.(map[string]interface{})
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if scope, _ := claims[claim].(string); scope == "" || scope != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token is not valid for this resource"})
			return
		}
		c.Next()
	}
}
