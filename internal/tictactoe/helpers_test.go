package tictactoe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// fakeHost keeps the held balance in memory and records released payouts.
type fakeHost struct {
	held       entity.Amount
	paid       []entity.Payout
	failOnPay  int
	balanceErr error
}

func (that *fakeHost) deposit(amount entity.Amount) {
	that.held += amount
}

func (that *fakeHost) Balance(_ context.Context) (entity.Amount, error) {
	if that.balanceErr != nil {
		return 0, that.balanceErr
	}
	return that.held, nil
}

func (that *fakeHost) Transfer(_ context.Context, to string, amount entity.Amount) error {
	if that.failOnPay > 0 && len(that.paid)+1 == that.failOnPay {
		return fmt.Errorf("%w: host refused payout", apperror.ErrTransferFailed)
	}
	if to == "" || amount > that.held {
		return apperror.ErrTransferFailed
	}

	that.held -= amount
	that.paid = append(that.paid, entity.Payout{To: to, Amount: amount})
	return nil
}

var errHostDown = errors.New("host down")

func individual(id string) entity.Caller {
	return entity.Caller{ID: id, Kind: entity.KindIndividual}
}

// activeGame returns a game seated with alice as X and bob as O, with both
// stakes held by host.
func activeGame(stake entity.Amount) (*entity.Game, *fakeHost) {
	game := entity.NewGame("game-1", stake)
	host := &fakeHost{}

	for _, id := range []string{"alice", "bob"} {
		host.deposit(stake)
		if err := joinGame(game, id, stake, host); err != nil {
			panic(err)
		}
	}

	return game, host
}
