// Package container wires the application dependencies in one place so both
// binaries construct the same graph.
package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/config"
	authorrepo "quotebook-backend/internal/domains/author/repository"
	authorservice "quotebook-backend/internal/domains/author/service"
	bookhandler "quotebook-backend/internal/domains/book/handler"
	bookrepo "quotebook-backend/internal/domains/book/repository"
	bookservice "quotebook-backend/internal/domains/book/service"
	quotehandler "quotebook-backend/internal/domains/quote/handler"
	quoterepo "quotebook-backend/internal/domains/quote/repository"
	quoteservice "quotebook-backend/internal/domains/quote/service"
	infracache "quotebook-backend/internal/infrastructure/cache"
	infradb "quotebook-backend/internal/infrastructure/database"
	"quotebook-backend/internal/openlibrary"
	"quotebook-backend/pkg/jwt"
)

type Container struct {
	Config *config.Config

	DB    *infradb.PostgresDB
	Cache *infracache.RedisCache

	JWTManager *jwt.Manager
	Catalog    *openlibrary.Client

	AuthorService authorservice.ServiceInterface
	BookService   bookservice.ServiceInterface
	QuoteService  quoteservice.ServiceInterface

	BookHandler  *bookhandler.BookHandler
	QuoteHandler *quotehandler.QuoteHandler
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := infradb.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	c.DB = db

	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Catalog = openlibrary.NewClient(cfg.OpenLibrary)

	authorRepo := authorrepo.NewPostgresRepository()
	c.AuthorService = authorservice.NewService(authorRepo, c.Catalog)

	bookRepo := bookrepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookService = bookservice.NewService(
		bookRepo,
		c.AuthorService,
		c.Catalog,
		c.Cache,
		cfg.OpenLibrary.SearchLimit,
	)

	quoteRepo := quoterepo.NewPostgresRepository(db.Pool)
	c.QuoteService = quoteservice.NewService(quoteRepo, c.BookService, db.Pool)

	c.BookHandler = bookhandler.NewBookHandler(c.BookService)
	c.QuoteHandler = quotehandler.NewQuoteHandler(c.QuoteService)

	return c, nil
}

// Cleanup releases infrastructure connections.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleaned up")
}
