package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/repository"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/tictactoe"
)

type accountRepo interface {
	Create(ctx context.Context, account *entity.Account, balance entity.Amount) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	Wallet(ctx context.Context, id string) (entity.Amount, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	HeldBalance(ctx context.Context, id string) (entity.Amount, error)
}

type gameStore interface {
	Atomically(ctx context.Context, gameID string, accountIDs []string, fn func(ctx context.Context, session repository.Session) error) error
}

type settlementJournal interface {
	Record(ctx context.Context, gameID string, outcome entity.Outcome, payouts []entity.Payout) error
	ListByGame(ctx context.Context, gameID string) ([]repository.Settlement, error)
}

type GameManager struct {
	logger   *slog.Logger
	settings Settings

	accountRepo accountRepo
	gameRepo    gameRepo
	store       gameStore
	journal     settlementJournal
}

// NewGameManager wires the manager. A nil journal disables settlement records.
func NewGameManager(
	logger *slog.Logger,
	settings Settings,
	accountRepo accountRepo,
	gameRepo gameRepo,
	store gameStore,
	journal settlementJournal,
) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		settings: settings,

		accountRepo: accountRepo,
		gameRepo:    gameRepo,
		store:       store,
		journal:     journal,
	}
}

func (that *GameManager) CreateAccount(ctx context.Context, kind string) (*entity.Account, error) {
	if kind != entity.KindIndividual && kind != entity.KindContract {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownAccountKind, kind)
	}

	account := &entity.Account{
		ID:        pkg.GenerateAccountID(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	var balance entity.Amount
	if account.IsIndividual() {
		balance = that.settings.StartingBalance
	}

	if err := that.accountRepo.Create(ctx, account, balance); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	that.logger.Info("account created", "account_id", account.ID, "kind", kind)

	return account, nil
}

func (that *GameManager) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	account, err := that.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

func (that *GameManager) Wallet(ctx context.Context, id string) (entity.Amount, error) {
	amount, err := that.accountRepo.Wallet(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to get wallet: %w", err)
	}

	return amount, nil
}

// CreateGame initializes a game with a fixed stake and both seats empty.
func (that *GameManager) CreateGame(ctx context.Context, stake entity.Amount) (*entity.Game, error) {
	if !that.settings.allowsStake(stake) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			apperror.ErrInvalidStake, stake, that.settings.MinStake, that.settings.MaxStake)
	}

	game := entity.NewGame(pkg.GenerateGameID(), stake)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "stake", stake)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*GameView, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	held, err := that.gameRepo.HeldBalance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get held balance: %w", err)
	}

	return newGameView(game, held)
}

// Join moves the stake from the caller's wallet into the game and seats them.
func (that *GameManager) Join(ctx context.Context, gameID, accountID string, amount entity.Amount) (*GameView, error) {
	log := that.logger.With("method", "Join", "game_id", gameID, "account_id", accountID)

	account, err := that.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	caller := account.AsCaller()

	var view *GameView
	err = that.store.Atomically(ctx, gameID, []string{accountID}, func(ctx context.Context, session repository.Session) error {
		game := *session.Game()

		if err := tictactoe.ValidateJoin(&game, caller, amount); err != nil {
			return err
		}

		if err := session.Deposit(ctx, caller.ID, amount); err != nil {
			return err
		}

		if err := tictactoe.Join(ctx, &game, caller, amount, session); err != nil {
			return err
		}
		session.Save(&game)

		held, err := session.Balance(ctx)
		if err != nil {
			return err
		}

		view, err = newGameView(&game, held)
		return err
	})
	if err != nil {
		log.Debug("join rejected", "error", err)
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	log.Info("seat taken", "seat_x", view.Game.SeatX, "seat_o", view.Game.SeatO, "active", view.Game.Active)

	return view, nil
}

// Place applies a placement and, on a terminal outcome, settles and journals the pot.
func (that *GameManager) Place(ctx context.Context, gameID, accountID string, cell int) (*PlaceResult, error) {
	log := that.logger.With("method", "Place", "game_id", gameID, "account_id", accountID)

	account, err := that.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	caller := account.AsCaller()

	var result *PlaceResult
	err = that.store.Atomically(ctx, gameID, nil, func(ctx context.Context, session repository.Session) error {
		game := *session.Game()

		_, outcome, err := tictactoe.Place(ctx, &game, caller, cell, session)
		if err != nil {
			return err
		}
		session.Save(&game)

		held, err := session.Balance(ctx)
		if err != nil {
			return err
		}

		result = &PlaceResult{
			GameView: GameView{Game: &game, Held: held, Outcome: outcome, Status: game.Status()},
			Payouts:  session.Transfers(),
		}
		return nil
	})
	if err != nil {
		log.Debug("placement rejected", "cell", cell, "error", err)
		return nil, fmt.Errorf("failed to place mark: %w", err)
	}

	if result.Outcome.IsTerminal() {
		log.Info("game settled", "outcome", result.Outcome.String(), "payouts", result.Payouts)
		that.record(ctx, log, gameID, result.Outcome, result.Payouts)
	}

	return result, nil
}

func (that *GameManager) Settlements(ctx context.Context, gameID string) ([]repository.Settlement, error) {
	if that.journal == nil {
		return nil, apperror.ErrJournalDisabled
	}

	rows, err := that.journal.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return rows, nil
}

// record journals a committed settlement. The payouts are already final, so a
// journal failure is only logged.
func (that *GameManager) record(ctx context.Context, log *slog.Logger, gameID string, outcome entity.Outcome, payouts []entity.Payout) {
	if that.journal == nil {
		return
	}

	if err := that.journal.Record(ctx, gameID, outcome, payouts); err != nil {
		log.Error("failed to journal settlement", "error", err)
	}
}

func newGameView(game *entity.Game, held entity.Amount) (*GameView, error) {
	outcome, err := tictactoe.DetermineOutcome(game.Board)
	if err != nil {
		return nil, err
	}

	return &GameView{
		Game:    game,
		Held:    held,
		Outcome: outcome,
		Status:  game.Status(),
	}, nil
}
