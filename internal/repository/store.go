package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
)

type Store interface {
	Atomically(ctx context.Context, gameID string, accountIDs []string, fn func(ctx context.Context, session Session) error) error
}

type redisStore struct {
	client *redis.Client
}

func NewStore(client *redis.Client) Store {
	return &redisStore{
		client: client,
	}
}

// Atomically runs fn against the current state of the game and commits what it
// staged in one MULTI/EXEC. The game, its escrow and the wallets of accountIDs
// are watched; a concurrent write to any of them fails the call with
// apperror.ErrConcurrentUpdate and nothing is applied.
func (that *redisStore) Atomically(
	ctx context.Context,
	gameID string,
	accountIDs []string,
	fn func(ctx context.Context, session Session) error,
) error {
	keys := []string{gameKey(gameID), escrowKey(gameID)}
	for _, id := range accountIDs {
		if id != "" {
			keys = append(keys, walletKey(id))
		}
	}

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		game, err := readGame(ctx, tx, gameID)
		if err != nil {
			return err
		}

		held, err := readAmount(ctx, tx, escrowKey(gameID))
		if err != nil {
			return err
		}

		session := &redisSession{tx: tx, game: game, held: held}
		if err = fn(ctx, session); err != nil {
			return err
		}

		return session.commit(ctx)
	}, keys...)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %s", apperror.ErrConcurrentUpdate, gameID)
	}

	return err
}
