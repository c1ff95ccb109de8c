package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// WinCombos lists every winning triple: rows, columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// DetermineOutcome classifies board. Boards where both marks own a winning
// triple cannot be reached by alternating placements and yield
// apperror.ErrInvariantViolation.
func DetermineOutcome(board entity.Board) (entity.Outcome, error) {
	winner := entity.NoMark

	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == entity.NoMark || a != b || b != c {
			continue
		}

		if winner != entity.NoMark && winner != a {
			return entity.Outcome{}, fmt.Errorf("%w: both marks complete a line on %s", apperror.ErrInvariantViolation, board)
		}
		winner = a
	}

	if winner != entity.NoMark {
		return entity.Win(winner), nil
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return entity.Running(), nil
	}

	return entity.Draw(), nil
}
