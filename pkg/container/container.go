package container

import (
	"context"
	"fmt"
	"time"

	"bookstore-api/internal/config"
	infraCache "bookstore-api/internal/infrastructure/cache"
	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/shared/repository"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/jwt"
	"bookstore-api/pkg/logger"

	authorHandler "bookstore-api/internal/domains/author/handler"
	authorModel "bookstore-api/internal/domains/author/model"
	authorRepo "bookstore-api/internal/domains/author/repository"
	bookHandler "bookstore-api/internal/domains/book/handler"
	bookModel "bookstore-api/internal/domains/book/model"
	bookRepo "bookstore-api/internal/domains/book/repository"
	homeHandler "bookstore-api/internal/domains/home/handler"
	userHandler "bookstore-api/internal/domains/user/handler"
	userRepo "bookstore-api/internal/domains/user/repository"
	userService "bookstore-api/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Lifecycle: Singleton, built once in NewContainer.
type Container struct {
	// INFRASTRUCTURE LAYER
	Config     *config.Config
	Log        *logger.Logger
	DB         *database.PostgresDB // nil when built by Wire
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// REPOSITORY LAYER
	AuthorRepo repository.Repository[authorModel.Author]
	BookRepo   repository.Repository[bookModel.Book]
	UserRepo   userRepo.UserRepository

	// SERVICE LAYER
	UserService userService.Service

	// HANDLER LAYER
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UserHandler   *userHandler.UserHandler
	HomeHandler   *homeHandler.HomeHandler

	redis *infraCache.RedisCache
}

// Repositories are the data access dependencies Wire builds on.
type Repositories struct {
	Authors repository.Repository[authorModel.Author]
	Books   repository.Repository[bookModel.Book]
	Users   userRepo.UserRepository
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph:
// config → logger → database → cache → repositories → services → handlers.
func NewContainer() (*Container, error) {
	// STEP 1: LOAD CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.App.Environment)
	log.Info("initializing container", map[string]interface{}{"environment": cfg.App.Environment})

	// STEP 2: INITIALIZE DATABASE
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig, log)

	// Connect owns its retry schedule; the deadline only has to outlast it.
	connectCtx, connectCancel := context.WithTimeout(context.Background(), dbConfig.ConnectBudget()+5*time.Second)
	defer connectCancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	log.Info("database connected", nil)

	// STEP 3: INITIALIZE CACHE
	var (
		c     cache.Cache = cache.Noop{}
		redis *infraCache.RedisCache
	)
	if cfg.Redis.Enabled {
		redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redis.Connect(ctx); err != nil {
			// Cache is optional: reads fall through to the database.
			log.Warn("redis unavailable, caching disabled", map[string]interface{}{"error": err.Error()})
			_ = redis.Close()
			redis = nil
		} else {
			c = redis
			log.Info("redis connected", map[string]interface{}{"host": cfg.Redis.Host})
		}
	}

	// STEP 4: REPOSITORIES
	repos := Repositories{
		Authors: authorRepo.NewPostgresRepository(db.Pool, c, log),
		Books:   bookRepo.NewPostgresRepository(db.Pool, c, log),
		Users:   userRepo.NewPostgresRepository(db.Pool),
	}

	// STEP 5: SERVICES + HANDLERS
	container := Wire(cfg, log, repos)
	container.DB = db
	container.Cache = c
	container.redis = redis

	log.Info("container initialized", nil)
	return container, nil
}

// Wire builds the service and handler layers on top of repos.
func Wire(cfg *config.Config, log *logger.Logger, repos Repositories) *Container {
	c := &Container{
		Config:     cfg,
		Log:        log,
		Cache:      cache.Noop{},
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer),
		AuthorRepo: repos.Authors,
		BookRepo:   repos.Books,
		UserRepo:   repos.Users,
	}

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, cfg.App.BcryptCost, log)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorRepo, log)
	c.BookHandler = bookHandler.NewBookHandler(c.BookRepo, c.AuthorRepo, log)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, log)
	c.HomeHandler = homeHandler.NewHomeHandler(log)

	return c
}

// ========================================
// CLEANUP
// ========================================

// Cleanup đóng tất cả connections. Gọi khi shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Log.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
