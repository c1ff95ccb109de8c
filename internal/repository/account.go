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

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account, balance entity.Amount) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	Wallet(ctx context.Context, id string) (entity.Amount, error)
}

type dbAccount struct {
	client *redis.Client
}

func NewAccountRepository(client *redis.Client) AccountRepository {
	return &dbAccount{
		client: client,
	}
}

// Create stores the account together with its opening wallet balance.
func (that *dbAccount) Create(ctx context.Context, account *entity.Account, balance entity.Amount) error {
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accountKey(account.ID), accountJSON, 0)
		pipe.Set(ctx, walletKey(account.ID), uint64(balance), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set account: %w", err)
	}

	return nil
}

func (that *dbAccount) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	response, err := that.client.Get(ctx, accountKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Account{}, fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, id)
	}

	if err != nil {
		return &entity.Account{}, fmt.Errorf("failed to get account by ID: %w", err)
	}

	var existingAccount entity.Account
	if err = json.Unmarshal([]byte(response), &existingAccount); err != nil {
		return &entity.Account{}, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &existingAccount, nil
}

func (that *dbAccount) Wallet(ctx context.Context, id string) (entity.Amount, error) {
	return readWallet(ctx, that.client, id)
}

func readWallet(ctx context.Context, cmd redis.Cmdable, accountID string) (entity.Amount, error) {
	amount, err := cmd.Get(ctx, walletKey(accountID)).Uint64()

	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %s", apperror.ErrAccountNotFound, accountID)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read wallet: %w", err)
	}

	return entity.Amount(amount), nil
}
