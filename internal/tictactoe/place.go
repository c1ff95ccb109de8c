package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// Place puts the mark of the seat to move at index, flips the turn and settles
// the held balance when the placement ends the game.
//
// Transfers are the last step. If one fails, game is restored to its pre-call
// value and the error wraps apperror.ErrTransferFailed.
func Place(ctx context.Context, game *entity.Game, caller entity.Caller, index int, host Host) (entity.Board, entity.Outcome, error) {
	if err := validateMove(game, caller, index); err != nil {
		return game.Board, entity.Outcome{}, err
	}

	next := *game

	board, err := next.Board.Place(index, next.Turn)
	if err != nil {
		return game.Board, entity.Outcome{}, fmt.Errorf("invalid turn: %w", err)
	}
	next.Board = board
	next.Turn = next.Turn.Other()

	outcome, err := DetermineOutcome(next.Board)
	if err != nil {
		return game.Board, entity.Outcome{}, err
	}

	if !outcome.IsTerminal() {
		*game = next
		return next.Board, outcome, nil
	}

	held, err := host.Balance(ctx)
	if err != nil {
		return game.Board, entity.Outcome{}, fmt.Errorf("failed to read held balance: %w", err)
	}

	payouts := Settle(&next, outcome, held)

	next.Active = false
	next.Turn = entity.MarkX

	previous := *game
	*game = next

	for _, payout := range payouts {
		if err = host.Transfer(ctx, payout.To, payout.Amount); err != nil {
			*game = previous
			return previous.Board, entity.Outcome{}, fmt.Errorf("settle %s to %s: %w", outcome, payout.To, err)
		}
	}

	return next.Board, outcome, nil
}

// validateMove - checks the move preconditions in order.
func validateMove(game *entity.Game, caller entity.Caller, index int) error {
	if !game.Active {
		return apperror.ErrGameNotActive
	}

	if game.SeatX == "" || game.SeatO == "" {
		return fmt.Errorf("%w: active game %s has an empty seat", apperror.ErrInvariantViolation, game.ID)
	}

	if caller.ID == "" || caller.ID != game.SeatOf(game.Turn) {
		return apperror.ErrNotYourTurn
	}

	if _, err := game.Board.CellAt(index); err != nil {
		return err
	}

	if game.Board[index] != entity.NoMark {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	return nil
}

// Settle splits held between the seats for a terminal outcome. A win pays the
// whole balance to the winner. A draw pays half to each seat and the odd unit,
// if any, to seat O, so the payouts always sum to held.
func Settle(game *entity.Game, outcome entity.Outcome, held entity.Amount) []entity.Payout {
	switch outcome.Kind {
	case entity.OutcomeWin:
		return []entity.Payout{{To: game.SeatOf(outcome.Winner), Amount: held}}
	case entity.OutcomeDraw:
		half := held / 2
		return []entity.Payout{
			{To: game.SeatX, Amount: half},
			{To: game.SeatO, Amount: held - half},
		}
	default:
		return nil
	}
}
