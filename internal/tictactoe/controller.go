package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/game"
)

// MoveProvider asks the player to move for a coordinate. It is the only blocking call of a game.
type MoveProvider interface {
	NextMove(ctx context.Context, player entity.Tile) (entity.Coordinates, error)
}

// Observer is told about every visible change of a session.
type Observer interface {
	BoardChanged(board *game.Board)
	MoveRejected(player entity.Tile, move entity.Coordinates, err error)
	GameOver(session *Session)
}

type GameController struct {
	logger   *slog.Logger
	moves    MoveProvider
	observer Observer
	opts     Options
}

func NewGameController(logger *slog.Logger, moves MoveProvider, observer Observer, opts Options) *GameController {
	return &GameController{
		logger:   logger.With("component", "game_controller"),
		moves:    moves,
		observer: observer,
		opts:     opts,
	}
}

// Run plays a whole game with the given settings and returns the finished session.
// The session is returned even on error so the turns played so far are not lost.
func (that *GameController) Run(ctx context.Context, settings entity.Settings) (*Session, error) {
	log := that.logger.With("method", "Run")

	session := NewSession(settings, that.opts)
	log.Info("game started", "width", settings.Width, "height", settings.Height, "matches", settings.Matches)

	that.observer.BoardChanged(session.Board())

	for !session.State().IsFinished() {
		player := session.PlayerToMove()

		move, err := that.moves.NextMove(ctx, player)
		if err != nil {
			return session, fmt.Errorf("failed to get move for player %s: %w", player, err)
		}

		if err = session.Submit(move); err != nil {
			if !isRetryable(err) {
				return session, fmt.Errorf("failed to submit move: %w", err)
			}

			log.Debug("move rejected", "player", player.String(), "move", move.String(), "error", err)
			that.observer.MoveRejected(player, move, err)

			continue
		}

		that.observer.BoardChanged(session.Board())
	}

	log.Info("game finished", "state", session.State().String(), "winner", session.Winner().String(), "turns", session.Log().Len())
	that.observer.GameOver(session)

	return session, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, apperror.ErrOutOfBounds) || errors.Is(err, apperror.ErrCellOccupied)
}
