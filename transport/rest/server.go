package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-escrow/pkg/handlers"
)

type authService interface {
	GenerateToken(accountID string) (string, error)
	ParseToken(token string) (string, error)
}

// NewRouter registers every REST route on a fresh gin engine.
func NewRouter(logger *slog.Logger, games usecase.GameUseCase, auth authService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	handler := newHandler(logger, games, auth)

	router.GET("/ping", handlers.PingHandler)
	router.POST("/accounts", handler.createAccount)

	authorized := router.Group("/", authMiddleware(logger, auth))
	authorized.GET("/accounts/me", handler.me)
	authorized.POST("/games", handler.createGame)
	authorized.GET("/games/:id", handler.getGame)
	authorized.POST("/games/:id/join", handler.join)
	authorized.POST("/games/:id/place", handler.place)
	authorized.GET("/games/:id/settlements", handler.settlements)

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "rest")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
