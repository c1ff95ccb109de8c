package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/usecase"
)

type authService interface {
	ParseToken(token string) (string, error)
}

type Server struct {
	logger *slog.Logger
	games  usecase.GameUseCase
	auth   authService
	hub    *hub

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, games usecase.GameUseCase, auth authService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		auth:   auth,
		hub:    newHub(logger),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[actionJoin] = server.handleJoin
	server.handlers[actionPlace] = server.handlePlace
	server.handlers[actionState] = server.handleState

	return server
}

// Handler - the /ws endpoint; the caller authenticates with ?token=.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
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

// upgradeToWebSocket - authenticates the caller and upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	accountID, err := that.auth.ParseToken(req.URL.Query().Get("token"))
	if err != nil {
		log.Debug("rejected websocket token", "error", err)
		http.Error(writer, apperror.ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	c := &client{accountID: accountID, conn: conn}
	that.hub.register(c)
	defer that.hub.unregister(c)

	log.Info("WebSocket connection established", "account_id", accountID)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Debug("connection closed", "account_id", accountID, "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "account_id", c.accountID)

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				log.Warn("message too large, closing connection", "limit", maxMessageSize)
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
				log.Error("error reading message", "error", err)
			}
			return err
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			that.sendError(c, actionError, fmt.Errorf("%w: %w", apperror.ErrDecode, err))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(c, message.Action, fmt.Errorf("%w: unknown action %q", apperror.ErrDecode, message.Action))
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			that.sendError(c, message.Action, err)
		}
	}
}

func (that *Server) sendError(c *client, action string, err error) {
	kind := apperror.Kind(err)

	text := err.Error()
	if kind == apperror.KindInternal {
		that.logger.Error("error processing message", "action", action, "error", err)
		text = http.StatusText(http.StatusInternalServerError)
	}

	if sendErr := c.send(action, ResponsePayload{Error: text, Kind: kind}); sendErr != nil {
		that.logger.Warn("failed to send error", "error", sendErr)
	}
}
