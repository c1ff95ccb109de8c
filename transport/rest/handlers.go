package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/usecase"
)

type handler struct {
	logger *slog.Logger
	games  usecase.GameUseCase
	auth   authService
}

func newHandler(logger *slog.Logger, games usecase.GameUseCase, auth authService) *handler {
	return &handler{
		logger: logger.With("component", "rest"),
		games:  games,
		auth:   auth,
	}
}

type createAccountRequest struct {
	Kind string `json:"kind"`
}

type accountResponse struct {
	Account *entity.Account `json:"account"`
	Wallet  entity.Amount   `json:"wallet"`
	Token   string          `json:"token,omitempty"`
}

type createGameRequest struct {
	Stake *uint64 `json:"stake"`
}

type joinRequest struct {
	Amount *uint64 `json:"amount"`
}

type placeRequest struct {
	Cell *uint8 `json:"cell"`
}

// decode binds the JSON body into req; any failure is a decode error.
func decode(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrDecode, err)
	}
	return nil
}

func (that *handler) createAccount(c *gin.Context) {
	req := createAccountRequest{Kind: entity.KindIndividual}
	if c.Request.ContentLength != 0 {
		if err := decode(c, &req); err != nil {
			abortWithError(c, err)
			return
		}
	}

	ctx := c.Request.Context()

	account, err := that.games.CreateAccount(ctx, req.Kind)
	if err != nil {
		that.fail(c, "createAccount", err)
		return
	}

	token, err := that.auth.GenerateToken(account.ID)
	if err != nil {
		that.fail(c, "createAccount", err)
		return
	}

	wallet, err := that.games.Wallet(ctx, account.ID)
	if err != nil {
		that.fail(c, "createAccount", err)
		return
	}

	c.JSON(http.StatusCreated, accountResponse{Account: account, Wallet: wallet, Token: token})
}

func (that *handler) me(c *gin.Context) {
	ctx := c.Request.Context()

	account, err := that.games.GetAccount(ctx, callerID(c))
	if err != nil {
		that.fail(c, "me", err)
		return
	}

	wallet, err := that.games.Wallet(ctx, account.ID)
	if err != nil {
		that.fail(c, "me", err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{Account: account, Wallet: wallet})
}

func (that *handler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := decode(c, &req); err != nil {
		abortWithError(c, err)
		return
	}
	if req.Stake == nil {
		abortWithError(c, fmt.Errorf("%w: stake is required", apperror.ErrDecode))
		return
	}

	game, err := that.games.CreateGame(c.Request.Context(), entity.Amount(*req.Stake))
	if err != nil {
		that.fail(c, "createGame", err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

func (that *handler) getGame(c *gin.Context) {
	view, err := that.games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "getGame", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) join(c *gin.Context) {
	var req joinRequest
	if err := decode(c, &req); err != nil {
		abortWithError(c, err)
		return
	}
	if req.Amount == nil {
		abortWithError(c, fmt.Errorf("%w: amount is required", apperror.ErrDecode))
		return
	}

	view, err := that.games.Join(c.Request.Context(), c.Param("id"), callerID(c), entity.Amount(*req.Amount))
	if err != nil {
		that.fail(c, "join", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *handler) place(c *gin.Context) {
	var req placeRequest
	if err := decode(c, &req); err != nil {
		abortWithError(c, err)
		return
	}
	if req.Cell == nil {
		abortWithError(c, fmt.Errorf("%w: cell is required", apperror.ErrDecode))
		return
	}

	result, err := that.games.Place(c.Request.Context(), c.Param("id"), callerID(c), int(*req.Cell))
	if err != nil {
		that.fail(c, "place", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (that *handler) settlements(c *gin.Context) {
	rows, err := that.games.Settlements(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "settlements", err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (that *handler) fail(c *gin.Context, method string, err error) {
	if apperror.Kind(err) == apperror.KindInternal {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	abortWithError(c, err)
}
