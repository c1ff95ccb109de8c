package usecase

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/repository"
)

type mockAccountRepo struct {
	mock.Mock
}

func (that *mockAccountRepo) Create(ctx context.Context, account *entity.Account, balance entity.Amount) error {
	args := that.Called(ctx, account, balance)
	return args.Error(0)
}

func (that *mockAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	args := that.Called(ctx, id)
	account, _ := args.Get(0).(*entity.Account)
	return account, args.Error(1)
}

func (that *mockAccountRepo) Wallet(ctx context.Context, id string) (entity.Amount, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(entity.Amount), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) HeldBalance(ctx context.Context, id string) (entity.Amount, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(entity.Amount), args.Error(1)
}

type mockJournal struct {
	mock.Mock
}

func (that *mockJournal) Record(ctx context.Context, gameID string, outcome entity.Outcome, payouts []entity.Payout) error {
	args := that.Called(ctx, gameID, outcome, payouts)
	return args.Error(0)
}

func (that *mockJournal) ListByGame(ctx context.Context, gameID string) ([]repository.Settlement, error) {
	args := that.Called(ctx, gameID)
	rows, _ := args.Get(0).([]repository.Settlement)
	return rows, args.Error(1)
}

// memoryStore keeps games, escrow and wallets in maps and applies a session
// only when its callback succeeds.
type memoryStore struct {
	games   map[string]entity.Game
	escrow  map[string]entity.Amount
	wallets map[string]entity.Amount
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		games:   map[string]entity.Game{},
		escrow:  map[string]entity.Amount{},
		wallets: map[string]entity.Amount{},
	}
}

func (that *memoryStore) Atomically(
	ctx context.Context,
	gameID string,
	_ []string,
	fn func(ctx context.Context, session repository.Session) error,
) error {
	game, ok := that.games[gameID]
	if !ok {
		return apperror.ErrGameNotFound
	}

	session := &memorySession{store: that, game: game, held: that.escrow[gameID]}
	if err := fn(ctx, session); err != nil {
		return err
	}

	if session.saved != nil {
		that.games[gameID] = *session.saved
	}
	for _, deposit := range session.deposits {
		that.wallets[deposit.To] -= deposit.Amount
		that.escrow[gameID] += deposit.Amount
	}
	for _, transfer := range session.transfers {
		that.escrow[gameID] -= transfer.Amount
		that.wallets[transfer.To] += transfer.Amount
	}

	return nil
}

type memorySession struct {
	store *memoryStore
	game  entity.Game
	held  entity.Amount

	deposits  []entity.Payout
	transfers []entity.Payout
	saved     *entity.Game
}

func (that *memorySession) Game() *entity.Game {
	return &that.game
}

func (that *memorySession) Balance(_ context.Context) (entity.Amount, error) {
	held := that.held
	for _, deposit := range that.deposits {
		held += deposit.Amount
	}
	for _, transfer := range that.transfers {
		held -= transfer.Amount
	}
	return held, nil
}

func (that *memorySession) Deposit(_ context.Context, from string, amount entity.Amount) error {
	wallet, ok := that.store.wallets[from]
	if !ok {
		return apperror.ErrAccountNotFound
	}
	if wallet < amount {
		return apperror.ErrInsufficientFunds
	}
	that.deposits = append(that.deposits, entity.Payout{To: from, Amount: amount})
	return nil
}

func (that *memorySession) Transfer(ctx context.Context, to string, amount entity.Amount) error {
	held, _ := that.Balance(ctx)
	if _, ok := that.store.wallets[to]; !ok || amount > held {
		return fmt.Errorf("%w: to %q", apperror.ErrTransferFailed, to)
	}
	that.transfers = append(that.transfers, entity.Payout{To: to, Amount: amount})
	return nil
}

func (that *memorySession) Transfers() []entity.Payout {
	return that.transfers
}

func (that *memorySession) Save(game *entity.Game) {
	that.saved = game
}
