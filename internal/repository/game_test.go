package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a fresh game
	game := entity.NewGame("123", 10)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game with a seat and a mark
		game := entity.NewGame("123", 10)
		game.SeatX = "alice"
		game.Board[4] = entity.MarkX

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.SeatX, retrievedGame.SeatX)
		assert.Equal(t, game.Board, retrievedGame.Board)
		assert.Equal(t, game.Stake, retrievedGame.Stake)
		assert.Equal(t, entity.MarkX, retrievedGame.Turn)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		_, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_HeldBalance(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game nobody deposited into
	held, err := gameRepo.HeldBalance(ctx, "123")

	// Then: the held balance is zero
	require.NoError(t, err)
	assert.Equal(t, entity.Amount(0), held)

	// When: funds are held
	require.NoError(t, st.Storage.Set(ctx, escrowKey("123"), 30, 0).Err())

	held, err = gameRepo.HeldBalance(ctx, "123")

	// Then: they are reported
	require.NoError(t, err)
	assert.Equal(t, entity.Amount(30), held)
}
