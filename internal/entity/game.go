package entity

import "time"

// Amount is a quantity of funds in the smallest indivisible unit.
type Amount uint64

// Game is the single root entity every join and placement reads and mutates.
type Game struct {
	ID     string `json:"id"`
	SeatX  string `json:"seat_x,omitempty"`
	SeatO  string `json:"seat_o,omitempty"`
	Board  Board  `json:"board"`
	Stake  Amount `json:"stake"`
	Active bool   `json:"active"`
	Turn   Mark   `json:"turn"`

	CreatedAt time.Time `json:"created_at"`
}

// NewGame builds the initial state: both seats empty, inactive, X to move.
func NewGame(id string, stake Amount) *Game {
	return &Game{
		ID:        id,
		Board:     Board{},
		Stake:     stake,
		Active:    false,
		Turn:      MarkX,
		CreatedAt: time.Now().UTC(),
	}
}

// SeatOf returns the account holding the seat that plays mark.
func (that *Game) SeatOf(mark Mark) string {
	if mark == MarkX {
		return that.SeatX
	}
	return that.SeatO
}

// SeatsFilled counts assigned seats.
func (that *Game) SeatsFilled() int {
	filled := 0
	if that.SeatX != "" {
		filled++
	}
	if that.SeatO != "" {
		filled++
	}
	return filled
}

// HasSeat reports whether accountID already holds either seat.
func (that *Game) HasSeat(accountID string) bool {
	return accountID != "" && (that.SeatX == accountID || that.SeatO == accountID)
}

// IsFinished reports a game that was played to a settled outcome.
func (that *Game) IsFinished() bool {
	return !that.Active && that.SeatsFilled() == 2
}

// IsWaiting reports a game that still has an empty seat.
func (that *Game) IsWaiting() bool {
	return !that.Active && that.SeatsFilled() < 2
}

// Status is a display label derived from the seat and active flags.
func (that *Game) Status() string {
	switch {
	case that.Active:
		return StatusOngoing
	case that.IsWaiting():
		return StatusWaiting
	default:
		return StatusFinished
	}
}

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)
