package tictactoe

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// Host is the ledger a single game runs against.
//
// Balance reports the funds held for the game, including deposits staged by the
// current call. Transfer releases held funds to an account and fails with
// apperror.ErrTransferFailed when it cannot. Implementations stage transfers
// until the surrounding call commits, so a failed call releases nothing.
type Host interface {
	Balance(ctx context.Context) (entity.Amount, error)
	Transfer(ctx context.Context, to string, amount entity.Amount) error
}
