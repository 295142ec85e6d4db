package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

var ErrNotAPlayer = errors.New("tile does not belong to a player")

// Board is an M by N grid of tiles stored row-major.
type Board struct {
	settings entity.Settings
	cells    []entity.Tile
	placed   int
}

// NewBoard allocates an empty board. The settings are expected to be validated.
func NewBoard(settings entity.Settings) *Board {
	return &Board{
		settings: settings,
		cells:    make([]entity.Tile, settings.Cells()),
	}
}

func (that *Board) Settings() entity.Settings {
	return that.settings
}

func (that *Board) Width() int {
	return that.settings.Width
}

func (that *Board) Height() int {
	return that.settings.Height
}

func (that *Board) Matches() int {
	return that.settings.Matches
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && x < that.settings.Width && y >= 0 && y < that.settings.Height
}

// CellAt returns the tile at (x, y), or Empty outside of the board.
func (that *Board) CellAt(x, y int) entity.Tile {
	if !that.InBounds(x, y) {
		return entity.Empty
	}

	return that.cells[that.index(x, y)]
}

// Place puts the player's tile on (x, y). The board is left untouched on error.
func (that *Board) Place(player entity.Tile, x, y int) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrNotAPlayer, player)
	}

	if !that.InBounds(x, y) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrOutOfBounds, x, y)
	}

	idx := that.index(x, y)
	if that.cells[idx] != entity.Empty {
		return fmt.Errorf("%w: %d,%d", apperror.ErrCellOccupied, x, y)
	}

	that.cells[idx] = player
	that.placed++

	return nil
}

// Placed returns the number of tiles on the board.
func (that *Board) Placed() int {
	return that.placed
}

func (that *Board) IsFull() bool {
	return that.placed == len(that.cells)
}

// IsDraw reports a board with no empty cell left. A full board may still hold a winning
// line, so callers check for a win first.
func (that *Board) IsDraw() bool {
	return that.IsFull()
}

// Cells returns a row-major copy of the grid.
func (that *Board) Cells() []entity.Tile {
	return slices.Clone(that.cells)
}

func (that *Board) index(x, y int) int {
	return y*that.settings.Width + x
}
