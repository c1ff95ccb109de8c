package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
)

const BoardSize = 9

// Board is a 3x3 grid in row-major order. Cells holding NoMark are empty.
type Board [BoardSize]Mark

// CellAt returns the mark at index, NoMark if the cell is empty.
func (that Board) CellAt(index int) (Mark, error) {
	if index < 0 || index >= BoardSize {
		return NoMark, fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	return that[index], nil
}

// Place returns a copy of the board with mark written to index.
// The receiver is never modified.
func (that Board) Place(index int, mark Mark) (Board, error) {
	cell, err := that.CellAt(index)
	if err != nil {
		return that, err
	}

	if cell != NoMark {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	if !mark.IsValid() {
		return that, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvariantViolation, mark)
	}

	that[index] = mark

	return that, nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == NoMark {
			return false
		}
	}

	return true
}

// String renders the board as three rows, "." for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == NoMark {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
