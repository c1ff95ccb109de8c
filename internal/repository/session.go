package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// Session is the view of one game inside Store.Atomically. Deposits, transfers
// and the saved game are staged and written together when the callback returns
// nil; any error discards all of them.
type Session interface {
	Game() *entity.Game
	Balance(ctx context.Context) (entity.Amount, error)
	Deposit(ctx context.Context, from string, amount entity.Amount) error
	Transfer(ctx context.Context, to string, amount entity.Amount) error
	Transfers() []entity.Payout
	Save(game *entity.Game)
}

type redisSession struct {
	tx   *redis.Tx
	game *entity.Game
	held entity.Amount

	deposits  []deposit
	transfers []entity.Payout
	saved     *entity.Game
}

type deposit struct {
	from   string
	amount entity.Amount
}

func (that *redisSession) Game() *entity.Game {
	return that.game
}

// Balance - held funds including everything staged by this session.
func (that *redisSession) Balance(_ context.Context) (entity.Amount, error) {
	return that.balance(), nil
}

func (that *redisSession) balance() entity.Amount {
	held := that.held
	for _, staged := range that.deposits {
		held += staged.amount
	}
	for _, transfer := range that.transfers {
		held -= transfer.Amount
	}
	return held
}

// Deposit - moves amount from the wallet of from into the game.
func (that *redisSession) Deposit(ctx context.Context, from string, amount entity.Amount) error {
	wallet, err := readWallet(ctx, that.tx, from)
	if err != nil {
		return err
	}

	for _, staged := range that.deposits {
		if staged.from == from {
			wallet -= staged.amount
		}
	}

	if wallet < amount {
		return fmt.Errorf("%w: wallet %s holds %d, needs %d", apperror.ErrInsufficientFunds, from, wallet, amount)
	}

	that.deposits = append(that.deposits, deposit{from: from, amount: amount})

	return nil
}

func (that *redisSession) Transfer(ctx context.Context, to string, amount entity.Amount) error {
	if to == "" {
		return fmt.Errorf("%w: empty recipient", apperror.ErrTransferFailed)
	}

	if held := that.balance(); amount > held {
		return fmt.Errorf("%w: %d requested, %d held", apperror.ErrTransferFailed, amount, held)
	}

	exists, err := that.tx.Exists(ctx, walletKey(to)).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrTransferFailed, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: no wallet for %s", apperror.ErrTransferFailed, to)
	}

	that.transfers = append(that.transfers, entity.Payout{To: to, Amount: amount})

	return nil
}

func (that *redisSession) Transfers() []entity.Payout {
	return append([]entity.Payout(nil), that.transfers...)
}

func (that *redisSession) Save(game *entity.Game) {
	that.saved = game
}

func (that *redisSession) commit(ctx context.Context) error {
	var gameJSON []byte
	if that.saved != nil {
		var err error
		if gameJSON, err = json.Marshal(that.saved); err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}
	}

	if gameJSON == nil && len(that.deposits) == 0 && len(that.transfers) == 0 {
		return nil
	}

	escrow := escrowKey(that.game.ID)

	_, err := that.tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if gameJSON != nil {
			pipe.Set(ctx, gameKey(that.game.ID), gameJSON, 0)
		}

		for _, staged := range that.deposits {
			pipe.DecrBy(ctx, walletKey(staged.from), int64(staged.amount))
			pipe.IncrBy(ctx, escrow, int64(staged.amount))
		}

		for _, transfer := range that.transfers {
			pipe.DecrBy(ctx, escrow, int64(transfer.Amount))
			pipe.IncrBy(ctx, walletKey(transfer.To), int64(transfer.Amount))
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return err
		}
		return fmt.Errorf("failed to commit game %s: %w", that.game.ID, err)
	}

	return nil
}
