package tictactoe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/entity"
	"github.com/rocketscienceinc/tictactoe-escrow/internal/tictactoe"
)

type move struct {
	by    string
	index int
}

// drawMoves fills the board as XOX/XOO/OXX without completing a line.
var drawMoves = []move{
	{"alice", 0}, {"bob", 1}, {"alice", 2}, {"bob", 4}, {"alice", 7},
	{"bob", 5}, {"alice", 3}, {"bob", 6}, {"alice", 8},
}

func play(t *testing.T, game *entity.Game, host *fakeHost, moves []move) entity.Outcome {
	t.Helper()

	var outcome entity.Outcome
	for _, m := range moves {
		var err error
		_, outcome, err = tictactoe.Place(context.Background(), game, individual(m.by), m.index, host)
		require.NoError(t, err, "move %v", m)
	}
	return outcome
}

func TestPlace_WinPaysWinner(t *testing.T) {
	// Given: alice and bob each staked 10
	game, host := activeGame(10)
	require.Equal(t, entity.Amount(20), host.held)

	// When: alice completes the top row
	outcome := play(t, game, host, []move{
		{"alice", 0}, {"bob", 3}, {"alice", 1}, {"bob", 4}, {"alice", 2},
	})

	// Then: alice receives the whole pot and the game closes
	assert.Equal(t, entity.Win(entity.MarkX), outcome)
	assert.Equal(t, []entity.Payout{{To: "alice", Amount: 20}}, host.paid)
	assert.Equal(t, entity.Amount(0), host.held)
	assert.False(t, game.Active)
	assert.Equal(t, entity.MarkX, game.Turn)
	assert.Equal(t, entity.Board{
		entity.MarkX, entity.MarkX, entity.MarkX,
		entity.MarkO, entity.MarkO, entity.NoMark,
		entity.NoMark, entity.NoMark, entity.NoMark,
	}, game.Board)
}

func TestPlace_WinForO(t *testing.T) {
	// Given: an active game
	game, host := activeGame(7)

	// When: bob completes the middle column
	outcome := play(t, game, host, []move{
		{"alice", 0}, {"bob", 1}, {"alice", 2}, {"bob", 4}, {"alice", 3}, {"bob", 7},
	})

	// Then: bob is paid the pot
	assert.Equal(t, entity.Win(entity.MarkO), outcome)
	assert.Equal(t, []entity.Payout{{To: "bob", Amount: 14}}, host.paid)
	assert.False(t, game.Active)
}

func TestPlace_DrawSplitsPot(t *testing.T) {
	t.Run("even pot", func(t *testing.T) {
		game, host := activeGame(10)

		outcome := play(t, game, host, drawMoves)

		assert.Equal(t, entity.Draw(), outcome)
		assert.Equal(t, []entity.Payout{{To: "alice", Amount: 10}, {To: "bob", Amount: 10}}, host.paid)
		assert.Equal(t, entity.Amount(0), host.held)
		assert.False(t, game.Active)
		assert.Equal(t, entity.MarkX, game.Turn)
	})

	t.Run("odd unit goes to O", func(t *testing.T) {
		game, host := activeGame(10)
		host.held = 21

		play(t, game, host, drawMoves)

		assert.Equal(t, []entity.Payout{{To: "alice", Amount: 10}, {To: "bob", Amount: 11}}, host.paid)
		assert.Equal(t, entity.Amount(0), host.held)
	})
}

func TestPlace_TurnAlternation(t *testing.T) {
	game, host := activeGame(10)
	ctx := context.Background()

	for i, m := range drawMoves[:len(drawMoves)-1] {
		before := game.Turn
		wantBy := game.SeatOf(before)
		require.Equal(t, wantBy, m.by, "move %d", i)

		_, outcome, err := tictactoe.Place(ctx, game, individual(m.by), m.index, host)

		require.NoError(t, err)
		assert.Equal(t, entity.Running(), outcome)
		assert.NotEqual(t, before, game.Turn)
		assert.Equal(t, before, game.Board[m.index])
	}
}

func TestPlace_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		prepare func(game *entity.Game)
		caller  string
		index   int
		wantErr error
	}{
		{
			name:    "game not active",
			prepare: func(game *entity.Game) { game.Active = false },
			caller:  "alice",
			index:   0,
			wantErr: apperror.ErrGameNotActive,
		},
		{
			name:    "out of turn",
			caller:  "bob",
			index:   0,
			wantErr: apperror.ErrNotYourTurn,
		},
		{
			name:    "stranger",
			caller:  "carol",
			index:   0,
			wantErr: apperror.ErrNotYourTurn,
		},
		{
			name:    "index past the board",
			caller:  "alice",
			index:   9,
			wantErr: apperror.ErrIndexOutOfRange,
		},
		{
			name:    "negative index",
			caller:  "alice",
			index:   -1,
			wantErr: apperror.ErrIndexOutOfRange,
		},
		{
			name:    "occupied cell",
			prepare: func(game *entity.Game) { game.Board[4] = entity.MarkO },
			caller:  "alice",
			index:   4,
			wantErr: apperror.ErrCellOccupied,
		},
		{
			name:    "active without seat O",
			prepare: func(game *entity.Game) { game.SeatO = "" },
			caller:  "alice",
			index:   0,
			wantErr: apperror.ErrInvariantViolation,
		},
		{
			name:    "unreachable board",
			prepare: func(game *entity.Game) { copy(game.Board[:], []entity.Mark{x, x, e, o, o, o}) },
			caller:  "alice",
			index:   2,
			wantErr: apperror.ErrInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: an active game, optionally tampered with
			game, host := activeGame(10)
			if tt.prepare != nil {
				tt.prepare(game)
			}
			before := *game

			// When: the placement is attempted
			_, _, err := tictactoe.Place(ctx, game, individual(tt.caller), tt.index, host)

			// Then: it fails and nothing moves
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, *game)
			assert.Empty(t, host.paid)
			assert.Equal(t, entity.Amount(20), host.held)
		})
	}
}

func TestPlace_AfterSettlement(t *testing.T) {
	// Given: a game already won by alice
	game, host := activeGame(10)
	play(t, game, host, []move{{"alice", 0}, {"bob", 3}, {"alice", 1}, {"bob", 4}, {"alice", 2}})

	// When: bob tries to keep playing
	_, _, err := tictactoe.Place(context.Background(), game, individual("bob"), 5, host)

	// Then: the game refuses
	require.ErrorIs(t, err, apperror.ErrGameNotActive)
	assert.Len(t, host.paid, 1)
}

func TestPlace_TransferFailureRollsBack(t *testing.T) {
	t.Run("win payout refused", func(t *testing.T) {
		// Given: alice is one move from winning and the host will refuse to pay
		game, host := activeGame(10)
		play(t, game, host, []move{{"alice", 0}, {"bob", 3}, {"alice", 1}, {"bob", 4}})
		host.failOnPay = 1
		before := *game

		// When: alice plays the winning move
		board, _, err := tictactoe.Place(context.Background(), game, individual("alice"), 2, host)

		// Then: the whole call is undone
		require.ErrorIs(t, err, apperror.ErrTransferFailed)
		assert.Equal(t, before, *game)
		assert.Equal(t, before.Board, board)
		assert.True(t, game.Active)
		assert.Equal(t, entity.Amount(20), host.held)
	})

	t.Run("second draw payout refused", func(t *testing.T) {
		game, host := activeGame(10)
		play(t, game, host, drawMoves[:len(drawMoves)-1])
		host.failOnPay = 2
		before := *game

		last := drawMoves[len(drawMoves)-1]
		_, _, err := tictactoe.Place(context.Background(), game, individual(last.by), last.index, host)

		require.ErrorIs(t, err, apperror.ErrTransferFailed)
		assert.Equal(t, before, *game)
		assert.Equal(t, entity.NoMark, game.Board[last.index])
	})

	t.Run("balance unavailable at settlement", func(t *testing.T) {
		game, host := activeGame(10)
		play(t, game, host, []move{{"alice", 0}, {"bob", 3}, {"alice", 1}, {"bob", 4}})
		host.balanceErr = errHostDown
		before := *game

		_, _, err := tictactoe.Place(context.Background(), game, individual("alice"), 2, host)

		require.ErrorIs(t, err, errHostDown)
		assert.Equal(t, before, *game)
	})
}

func TestSettle(t *testing.T) {
	game := &entity.Game{SeatX: "alice", SeatO: "bob"}

	assert.Nil(t, tictactoe.Settle(game, entity.Running(), 20))
	assert.Equal(t, []entity.Payout{{To: "alice", Amount: 3}}, tictactoe.Settle(game, entity.Win(entity.MarkX), 3))
	assert.Equal(t, []entity.Payout{{To: "alice", Amount: 0}, {To: "bob", Amount: 1}}, tictactoe.Settle(game, entity.Draw(), 1))
}
