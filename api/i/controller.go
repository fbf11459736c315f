package i

import "github.com/gin-gonic/gin"

// Controller contributes routes to the public and protected groups of the router.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
