package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
)

// Join seats caller, who deposited the given amount with this call. The first
// depositor takes X, the second takes O and activates the game.
//
// Every precondition is checked before game is touched, so a failed call
// leaves it unchanged.
func Join(ctx context.Context, game *entity.Game, caller entity.Caller, deposited entity.Amount, host Host) error {
	if err := ValidateJoin(game, caller, deposited); err != nil {
		return err
	}

	next := *game
	if next.SeatX == "" {
		next.SeatX = caller.ID
	} else {
		next.SeatO = caller.ID
		next.Active = true
	}

	held, err := host.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to read held balance: %w", err)
	}

	// funds held must equal one stake per filled seat
	expected := game.Stake * entity.Amount(next.SeatsFilled())
	if held != expected {
		return fmt.Errorf("%w: held %d after join, expected %d", apperror.ErrInvariantViolation, held, expected)
	}

	*game = next

	return nil
}

// ValidateJoin - checks if caller may take a seat without touching any funds.
func ValidateJoin(game *entity.Game, caller entity.Caller, deposited entity.Amount) error {
	if game.Active {
		return apperror.ErrGameAlreadyActive
	}

	if deposited != game.Stake {
		return fmt.Errorf("%w: deposited %d, stake is %d", apperror.ErrWrongStake, deposited, game.Stake)
	}

	if !caller.IsIndividual() || caller.ID == "" {
		return fmt.Errorf("%w: %q is a %s account", apperror.ErrInvalidParticipant, caller.ID, caller.Kind)
	}

	if game.SeatX != "" && game.SeatO != "" {
		return apperror.ErrGameFull
	}

	if game.HasSeat(caller.ID) {
		return apperror.ErrAlreadySeated
	}

	return nil
}
