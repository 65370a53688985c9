package container

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/config"
	authorhandler "library-catalog/internal/domains/author/handler"
	authorrepo "library-catalog/internal/domains/author/repository"
	authorservice "library-catalog/internal/domains/author/service"
	bookhandler "library-catalog/internal/domains/book/handler"
	bookrepo "library-catalog/internal/domains/book/repository"
	bookservice "library-catalog/internal/domains/book/service"
	categoryhandler "library-catalog/internal/domains/category/handler"
	categoryrepo "library-catalog/internal/domains/category/repository"
	categoryservice "library-catalog/internal/domains/category/service"
	infracache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/logger"
)

// Container wires every dependency once at startup: config, store handle,
// cache, repositories, services and handlers. The store lifecycle is
// explicit: opened here, closed in Cleanup.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infracache.RedisClient
	Cache  cache.Cache

	BookHandler     *bookhandler.BookHandler
	AuthorHandler   *authorhandler.AuthorHandler
	CategoryHandler *categoryhandler.CategoryHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to postgres", map[string]interface{}{
		"host":     cfg.Database.Host,
		"database": cfg.Database.Database,
	})

	redisClient := infracache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("connected to redis", map[string]interface{}{"host": cfg.Redis.Host})

	redisCache := cache.NewRedisCache(redisClient.Client)

	bookRepository := bookrepo.NewPostgresRepository(db.Pool, redisCache)
	authorRepository := authorrepo.NewPostgresRepository(db.Pool, redisCache)
	categoryRepository := categoryrepo.NewPostgresRepository(db.Pool, redisCache)

	return &Container{
		Config:          cfg,
		DB:              db,
		Redis:           redisClient,
		Cache:           redisCache,
		BookHandler:     bookhandler.NewBookHandler(bookservice.NewBookService(bookRepository)),
		AuthorHandler:   authorhandler.NewAuthorHandler(authorservice.NewAuthorService(authorRepository)),
		CategoryHandler: categoryhandler.NewCategoryHandler(categoryservice.NewCategoryService(categoryRepository)),
	}, nil
}

// Cleanup releases external resources on shutdown.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
