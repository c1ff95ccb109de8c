package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// Settlement is one payout recorded after a game reached a terminal outcome.
type Settlement struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	GameID    string    `gorm:"index;not null" json:"game_id"`
	AccountID string    `gorm:"index;not null" json:"account_id"`
	Amount    uint64    `gorm:"not null" json:"amount"`
	Outcome   string    `gorm:"not null" json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

type JournalRepository interface {
	Record(ctx context.Context, gameID string, outcome entity.Outcome, payouts []entity.Payout) error
	ListByGame(ctx context.Context, gameID string) ([]Settlement, error)
}

type dbJournal struct {
	db *gorm.DB
}

// NewJournalRepository migrates the settlement table and returns the journal.
func NewJournalRepository(db *gorm.DB) (JournalRepository, error) {
	if err := db.AutoMigrate(&Settlement{}); err != nil {
		return nil, fmt.Errorf("failed to migrate settlements: %w", err)
	}

	return &dbJournal{
		db: db,
	}, nil
}

func (that *dbJournal) Record(ctx context.Context, gameID string, outcome entity.Outcome, payouts []entity.Payout) error {
	if len(payouts) == 0 {
		return nil
	}

	rows := make([]Settlement, 0, len(payouts))
	for _, payout := range payouts {
		rows = append(rows, Settlement{
			GameID:    gameID,
			AccountID: payout.To,
			Amount:    uint64(payout.Amount),
			Outcome:   outcome.String(),
		})
	}

	if err := that.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to record settlement: %w", err)
	}

	return nil
}

func (that *dbJournal) ListByGame(ctx context.Context, gameID string) ([]Settlement, error) {
	var rows []Settlement

	err := that.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return rows, nil
}
