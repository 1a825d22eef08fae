package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/shared/middleware"
	"quotebook-backend/internal/shared/response"
	"quotebook-backend/pkg/container"
)

type Server struct {
	container *container.Container
	http      *http.Server
}

func NewServer(c *container.Container) *Server {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	s := &Server{
		container: c,
		http: &http.Server{
			Addr:         ":" + c.Config.App.Port,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.setupRoutes(engine)

	return s
}

func (s *Server) setupRoutes(engine *gin.Engine) {
	engine.GET("/health", s.healthCheck)

	api := engine.Group("/api/v1")

	books := api.Group("/books")
	books.GET("/search", s.container.BookHandler.SearchBooks)

	quotes := api.Group("/quotes")
	quotes.Use(middleware.Auth(s.container.JWTManager))
	quotes.POST("", s.container.QuoteHandler.CreateQuotes)
	quotes.GET("", s.container.QuoteHandler.GetQuotes)
	quotes.GET("/count", s.container.QuoteHandler.GetQuotesCount)
	quotes.GET("/favorites", s.container.QuoteHandler.GetFavoriteQuotes)
	quotes.GET("/search", s.container.QuoteHandler.SearchQuotes)
	quotes.PATCH("/:quoteId", s.container.QuoteHandler.UpdateQuote)
	quotes.DELETE("", s.container.QuoteHandler.DeleteQuotes)
}

func (s *Server) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	status := gin.H{
		"status":  "ok",
		"version": s.container.Config.App.Version,
	}

	if err := s.container.DB.HealthCheck(ctx); err != nil {
		log.Error().Err(err).Msg("database health check failed")
		status["status"] = "degraded"
		status["database"] = "down"
		response.Success(c, http.StatusServiceUnavailable, status)
		return
	}
	if err := s.container.Cache.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("redis health check failed")
		status["status"] = "degraded"
		status["cache"] = "down"
		response.Success(c, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(c, http.StatusOK, status)
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("starting http server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
