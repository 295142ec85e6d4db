package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/game"
)

type State int

const (
	StateAwaitingMove State = iota
	StateWon
	StateDrawn
)

func (that State) String() string {
	switch that {
	case StateAwaitingMove:
		return "awaiting_move"
	case StateWon:
		return "won"
	case StateDrawn:
		return "drawn"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

func (that State) IsFinished() bool {
	return that == StateWon || that == StateDrawn
}

// Options are resolved once when a session is created.
type Options struct {
	// IncludeSettingsSnapshot stores a copy of the settings in the game log.
	IncludeSettingsSnapshot bool
}

// Session drives one game from an empty board to a win or a draw.
type Session struct {
	board  *game.Board
	log    *entity.GameLog
	player entity.Tile
	winner entity.Tile
	state  State
	turn   int
}

func NewSession(settings entity.Settings, opts Options) *Session {
	return &Session{
		board:  game.NewBoard(settings),
		log:    entity.NewGameLog(settings, opts.IncludeSettingsSnapshot),
		player: entity.PlayerX,
		state:  StateAwaitingMove,
		turn:   1,
	}
}

// Submit plays the move for the player to move. A rejected placement leaves the session
// unchanged so the same player can try again.
func (that *Session) Submit(move entity.Coordinates) error {
	if that.state.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.board.Place(that.player, move.X, move.Y); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.log.Append(entity.TurnLog{Turn: that.turn, Player: that.player, Location: move})
	that.turn++

	switch {
	case game.CheckWin(that.board, that.player, move.X, move.Y):
		that.state = StateWon
		that.winner = that.player
	case that.board.IsDraw():
		that.state = StateDrawn
	default:
		that.player = that.player.Next()
	}

	return nil
}

func (that *Session) State() State {
	return that.state
}

// Winner is Empty unless the session is won.
func (that *Session) Winner() entity.Tile {
	return that.winner
}

// PlayerToMove is Empty once the session is finished.
func (that *Session) PlayerToMove() entity.Tile {
	if that.state.IsFinished() {
		return entity.Empty
	}

	return that.player
}

// Turn returns the number the next turn will be logged with.
func (that *Session) Turn() int {
	return that.turn
}

func (that *Session) Board() *game.Board {
	return that.board
}

func (that *Session) Log() *entity.GameLog {
	return that.log
}
