package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	RedisAddr        string // host:port of the Redis snapshot store
	RedisPassword    string // Password for Redis, empty when not required
	RedisDB          int    // Redis logical database
	RedisPrefix      string // Key prefix for episode snapshots and locks
	EpisodeTTLSecond int    // Lifetime of an idle episode snapshot
	BoardTTLSecond   int    // Lifetime of a leaderboard, zero keeps it forever
	MongoURI         string // Connection URI for MongoDB
	DBName           string // Name of the results database
	ResultCollection string // Collection holding episode results
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret        string // Secret key for JWT signing
	JWTIssuer        string // Issuer claim for JWTs
	MinMazeSize      int    // Smallest side length of generated mazes
	MaxMazeSize      int    // Largest side length of generated mazes
	DefaultVariant   string // Variant used when a request names none
}

// Envs holds the server configuration once Load has run.
// Packages that only need the log colors can import config without a server environment.
var Envs Config

// Load reads the server configuration from the environment into Envs.
// A .env file is loaded first if available. Every missing or malformed variable is reported.
func Load() error {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg, err := initConfig()
	if err != nil {
		return err
	}
	Envs = cfg
	return nil
}

// initConfig builds the configuration from the current environment.
func initConfig() (Config, error) {
	r := &envReader{}
	cfg := Config{
		HostIP:           r.getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         r.getEnvAsIntWithDefault("REST_PORT", 8080),
		RedisAddr:        r.mustGetEnv("REDIS_ADDR"),
		RedisPassword:    r.getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:          r.getEnvAsIntWithDefault("REDIS_DB", 0),
		RedisPrefix:      r.getEnvWithDefault("REDIS_PREFIX", "rotating-maze"),
		EpisodeTTLSecond: r.getEnvAsIntWithDefault("EPISODE_TTL_SECONDS", 3600),
		BoardTTLSecond:   r.getEnvAsIntWithDefault("LEADERBOARD_TTL_SECONDS", 0),
		MongoURI:         r.mustGetEnv("MONGO_URI"),
		DBName:           r.getEnvWithDefault("DB_NAME", "rotating_maze"),
		ResultCollection: r.getEnvWithDefault("RESULT_COLLECTION", "results"),
		GinMode:          r.getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:        r.mustGetEnv("JWT_SECRET"),
		JWTIssuer:        r.getEnvWithDefault("JWT_ISSUER", "rotating-maze"),
		MinMazeSize:      r.getEnvAsIntWithDefault("MIN_MAZE_SIZE", 12),
		MaxMazeSize:      r.getEnvAsIntWithDefault("MAX_MAZE_SIZE", 18),
		DefaultVariant:   r.getEnvWithDefault("DEFAULT_VARIANT", "stationary"),
	}
	return cfg, r.err
}

// envReader reads environment variables and collects every problem it meets.
type envReader struct {
	err error
}

// mustGetEnv retrieves the value of an environment variable and records an error if it is not set.
func (r *envReader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		r.err = errors.Join(r.err, fmt.Errorf("environment variable %s is not set", key))
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func (r *envReader) getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue
// when unset. A set but unparsable value is recorded as an error.
func (r *envReader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("environment variable %s must be an integer: %w", key, err))
		return defaultValue
	}
	return value
}
