package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/rotating-maze/api"
	episodeapi "github.com/beka-birhanu/rotating-maze/api/episode"
	api_i "github.com/beka-birhanu/rotating-maze/api/i"
	"github.com/beka-birhanu/rotating-maze/api/identity"
	"github.com/beka-birhanu/rotating-maze/config"
	"github.com/beka-birhanu/rotating-maze/game/maze"
	pb "github.com/beka-birhanu/rotating-maze/game/pb_encoder"
	"github.com/beka-birhanu/rotating-maze/infrastruture/leaderboard"
	"github.com/beka-birhanu/rotating-maze/infrastruture/repo"
	"github.com/beka-birhanu/rotating-maze/infrastruture/runstore"
	"github.com/beka-birhanu/rotating-maze/infrastruture/token"
	"github.com/beka-birhanu/rotating-maze/logger"
	"github.com/beka-birhanu/rotating-maze/service"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	redisClient       *redis.Client
	mongoClient       *mongo.Client
	runStore          i.RunStore
	rankBoard         i.Leaderboard
	resultRepo        i.ResultRepo
	jwtTokenizer      i.Tokenizer
	episodeService    i.EpisodeService
	episodeController api_i.Controller
	router            *api.Router
	appLogger         i.Logger
)

func fatal(msg string, err error) {
	appLogger.Error(fmt.Sprintf("%s: %v", msg, err))
	os.Exit(1)
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed", err)
	}
	appLogger.Info("Connected to Redis")
}

func initRunStore() {
	var err error
	runStore, err = runstore.NewRedisRunStore(redisClient, config.Envs.RedisPrefix, config.Envs.EpisodeTTLSecond)
	if err != nil {
		fatal("Creating run store", err)
	}
	appLogger.Info("Run store initialized")
}

func initLeaderboard() {
	var err error
	rankBoard, err = leaderboard.NewRedisLeaderboard(redisClient, config.Envs.RedisPrefix, config.Envs.BoardTTLSecond)
	if err != nil {
		fatal("Creating leaderboard", err)
	}
	appLogger.Info("Leaderboard initialized")
}

func initMongo(ctx context.Context) {
	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.MongoURI))
	if err != nil {
		fatal("Failed to connect to MongoDB", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initResultRepo(client *mongo.Client) {
	resultRepo = repo.NewResultRepo(client, config.Envs.DBName, config.Envs.ResultCollection)
	appLogger.Info("Result repository initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initEpisodeService() {
	episodeLogger, err := logger.New("EPISODE", config.ColorCyan, os.Stdout)
	if err != nil {
		fatal("Creating episode logger", err)
	}

	variant, err := maze.ParseVariant(config.Envs.DefaultVariant)
	if err != nil {
		fatal("Reading default variant", err)
	}

	episodeService, err = service.NewEpisodeService(runStore, resultRepo, &pb.Protobuf{}, jwtTokenizer, episodeLogger, &service.EpisodeOptions{
		SizeRange:      maze.SizeRange{Min: config.Envs.MinMazeSize, Max: config.Envs.MaxMazeSize},
		DefaultVariant: variant,
		TokenTTL:       time.Duration(config.Envs.EpisodeTTLSecond) * time.Second,
		Leaderboard:    rankBoard,
	})
	if err != nil {
		fatal("Creating episode service", err)
	}
	appLogger.Info("Episode service initialized")
}

func initEpisodeController() {
	var err error
	episodeController, err = episodeapi.NewEpisodeController(episodeService)
	if err != nil {
		fatal("Creating episode controller", err)
	}
	appLogger.Info("Episode controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{episodeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}

	if err := config.Load(); err != nil {
		fatal("Loading configuration", err)
	}

	initRedis(ctx)
	defer redisClient.Close()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRunStore()
	initLeaderboard()
	initResultRepo(mongoClient)
	initJWTTokenizer()
	initEpisodeService()
	initEpisodeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		fatal("Starting server", err)
	}
}
