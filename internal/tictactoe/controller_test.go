package tictactoe

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedMoves struct {
	moves   []entity.Coordinates
	players []entity.Tile
}

func (that *scriptedMoves) NextMove(_ context.Context, player entity.Tile) (entity.Coordinates, error) {
	if len(that.moves) == 0 {
		return entity.Coordinates{}, apperror.ErrInputClosed
	}

	that.players = append(that.players, player)
	move := that.moves[0]
	that.moves = that.moves[1:]

	return move, nil
}

type recordingObserver struct {
	boards   int
	rejected []error
	finished *Session
}

func (that *recordingObserver) BoardChanged(_ *game.Board) {
	that.boards++
}

func (that *recordingObserver) MoveRejected(_ entity.Tile, _ entity.Coordinates, err error) {
	that.rejected = append(that.rejected, err)
}

func (that *recordingObserver) GameOver(session *Session) {
	that.finished = session
}

func newTestController(moves MoveProvider, observer Observer, opts Options) *GameController {
	return NewGameController(slog.New(slog.NewJSONHandler(io.Discard, nil)), moves, observer, opts)
}

func TestGameController_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays until a player wins", func(t *testing.T) {
		// Given: scripted moves with one occupied and one out of range retry
		moves := &scriptedMoves{moves: []entity.Coordinates{
			at(0, 0), at(0, 0), at(1, 0), at(1, 1), at(5, 5), at(2, 0), at(2, 2),
		}}
		observer := &recordingObserver{}
		controller := newTestController(moves, observer, Options{})

		// When: running the game
		session, err := controller.Run(ctx, classic)

		// Then: X wins after five accepted moves and the retries were reported
		require.NoError(t, err)
		assert.Equal(t, StateWon, session.State())
		assert.Equal(t, entity.PlayerX, session.Winner())
		assert.Equal(t, 5, session.Log().Len())

		require.Len(t, observer.rejected, 2)
		assert.ErrorIs(t, observer.rejected[0], apperror.ErrCellOccupied)
		assert.ErrorIs(t, observer.rejected[1], apperror.ErrOutOfBounds)
		assert.Equal(t, 6, observer.boards)
		assert.Same(t, session, observer.finished)

		// Then: the same player was asked again after each rejected move
		assert.Equal(t, []entity.Tile{
			entity.PlayerX, entity.PlayerO, entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.PlayerO, entity.PlayerX,
		}, moves.players)
	})

	t.Run("Plays until the board is full", func(t *testing.T) {
		moves := &scriptedMoves{moves: []entity.Coordinates{
			at(0, 0), at(1, 0), at(2, 0),
			at(1, 1), at(0, 1), at(2, 1),
			at(1, 2), at(0, 2), at(2, 2),
		}}
		observer := &recordingObserver{}
		controller := newTestController(moves, observer, Options{IncludeSettingsSnapshot: true})

		session, err := controller.Run(ctx, classic)

		require.NoError(t, err)
		assert.Equal(t, StateDrawn, session.State())
		assert.Empty(t, observer.rejected)

		snapshot, ok := session.Log().Settings()
		require.True(t, ok)
		assert.Equal(t, classic, snapshot)
	})

	t.Run("Stops when the move provider fails", func(t *testing.T) {
		// Given: input that ends after two moves
		moves := &scriptedMoves{moves: []entity.Coordinates{at(0, 0), at(1, 1)}}
		observer := &recordingObserver{}
		controller := newTestController(moves, observer, Options{})

		// When: running the game
		session, err := controller.Run(ctx, classic)

		// Then: the error is returned with the turns played so far
		require.ErrorIs(t, err, apperror.ErrInputClosed)
		require.NotNil(t, session)
		assert.Equal(t, StateAwaitingMove, session.State())
		assert.Equal(t, 2, session.Log().Len())
		assert.Nil(t, observer.finished)
	})
}
