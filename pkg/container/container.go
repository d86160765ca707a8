package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/config"
	infraCache "dashboard-backend/internal/infrastructure/cache"
	"dashboard-backend/internal/infrastructure/database"
	"dashboard-backend/pkg/cache"
	"dashboard-backend/pkg/jwt"
	"dashboard-backend/pkg/logger"

	postHandler "dashboard-backend/internal/domains/post/handler"
	postRepo "dashboard-backend/internal/domains/post/repository"
	postService "dashboard-backend/internal/domains/post/service"
	"dashboard-backend/internal/domains/user"
	userHandler "dashboard-backend/internal/domains/user/handler"
	userRepo "dashboard-backend/internal/domains/user/repository"
	userService "dashboard-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency. Built once at startup,
// shared by the API and the worker.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	UserRepo        user.Repository
	CredentialStore user.CredentialStore
	PostRepo        postRepo.PostRepository

	// Services
	UserService user.Service
	PostService postService.ServiceInterface

	// Handlers
	UserHandler *userHandler.UserHandler
	PostHandler *postHandler.PostHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("env", cfg.App.Environment).Msg("Initializing DI container")

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", map[string]interface{}{
		"db_host":   cfg.Database.Host,
		"redis":     cfg.Redis.Addr,
		"slug_wait": cfg.Editor.SlugQuietPeriod.String(),
	})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	db := database.NewPostgresDB(cfg.Database.PostgresConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// cache-aside degrades to direct DB reads
		logger.Warn("Redis connection failed (non-critical)", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.CredentialStore = userRepo.NewCredentialStore(pool, c.Config.JWT.BcryptCost)
	c.PostRepo = postRepo.NewPostgresPostRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.CredentialStore, c.AsynqClient)
	c.PostService = postService.NewPostService(c.PostRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, c.UserService, c.Config.Editor.SlugQuietPeriod)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases connections; safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	log.Info().Msg("Container cleanup completed")
}
