package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/repository"
)

// GameUseCase is what the transports drive.
type GameUseCase interface {
	CreateAccount(ctx context.Context, kind string) (*entity.Account, error)
	GetAccount(ctx context.Context, id string) (*entity.Account, error)
	Wallet(ctx context.Context, id string) (entity.Amount, error)

	CreateGame(ctx context.Context, stake entity.Amount) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*GameView, error)

	Join(ctx context.Context, gameID, accountID string, amount entity.Amount) (*GameView, error)
	Place(ctx context.Context, gameID, accountID string, cell int) (*PlaceResult, error)

	Settlements(ctx context.Context, gameID string) ([]repository.Settlement, error)
}

// GameView is a game as observed after a call, with the funds held for it.
type GameView struct {
	Game    *entity.Game   `json:"game"`
	Held    entity.Amount  `json:"held"`
	Outcome entity.Outcome `json:"outcome"`
	Status  string         `json:"status"`
}

// PlaceResult carries the board and outcome of a placement and any payouts it released.
type PlaceResult struct {
	GameView
	Payouts []entity.Payout `json:"payouts,omitempty"`
}

// Settings bound what callers may ask of the manager.
type Settings struct {
	MinStake        entity.Amount
	MaxStake        entity.Amount
	StartingBalance entity.Amount
}

func (that Settings) allowsStake(stake entity.Amount) bool {
	return stake > 0 && stake >= that.MinStake && stake <= that.MaxStake
}
