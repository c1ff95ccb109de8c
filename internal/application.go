package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/config"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/repository"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/service"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-escrow/transport/rest"
	"github.com/rocketscienceinc/tictactoe-escrow/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrSecretNotFound = errors.New("jwt secret key is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if conf.JWTSecretKey == "" {
		return ErrSecretNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	journal, err := initJournal(ctx, logger, conf)
	if err != nil {
		return err
	}

	settings := usecase.Settings{
		MinStake:        entity.Amount(conf.Stake.Min),
		MaxStake:        entity.Amount(conf.Stake.Max),
		StartingBalance: entity.Amount(conf.StartingBalance),
	}

	gameUseCase := usecase.NewGameManager(
		logger,
		settings,
		repository.NewAccountRepository(redisStorage),
		repository.NewGameRepository(redisStorage),
		repository.NewStore(redisStorage),
		journal,
	)
	authService := service.NewAuthService(conf.JWTSecretKey, conf.TokenTTL)

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, gameUseCase, authService)
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, authService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initJournal connects the settlement journal, or returns nil when postgres is not configured.
func initJournal(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.JournalRepository, error) {
	if !conf.Postgres.Enabled() {
		logger.Info("postgres host is empty, settlement journal disabled")
		return nil, nil //nolint:nilnil // a nil journal disables recording
	}

	db, err := storage.NewPostgresStorage(ctx, logger, conf.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("could not connect to postgres storage: %w", err)
	}

	journal, err := repository.NewJournalRepository(db)
	if err != nil {
		return nil, fmt.Errorf("could not init settlement journal: %w", err)
	}

	return journal, nil
}
