package game

import (
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	player entity.Tile
	x, y   int
}

func TestCheckWin(t *testing.T) {
	t.Run("Diagonal on 3x3", func(t *testing.T) {
		// Given: X plays the descending diagonal while O plays elsewhere
		board := NewBoard(entity.Settings{Width: 3, Height: 3, Matches: 3})
		moves := []move{
			{entity.PlayerX, 0, 0},
			{entity.PlayerO, 1, 0},
			{entity.PlayerX, 1, 1},
			{entity.PlayerO, 2, 0},
		}
		for _, m := range moves {
			require.NoError(t, board.Place(m.player, m.x, m.y))
			require.False(t, CheckWin(board, m.player, m.x, m.y))
		}

		// When: X places the third diagonal tile
		require.NoError(t, board.Place(entity.PlayerX, 2, 2))

		// Then: X wins along the descending diagonal
		assert.True(t, CheckWin(board, entity.PlayerX, 2, 2))
		assert.Equal(t, 3, CountRun(board, entity.PlayerX, 2, 2, DescendingDiagonal))
	})

	t.Run("Rising diagonal", func(t *testing.T) {
		board := boardFromRows(t, 3,
			"..X",
			".X.",
			"X..",
		)

		assert.True(t, CheckWin(board, entity.PlayerX, 1, 1))
		assert.Equal(t, 3, CountRun(board, entity.PlayerX, 0, 2, RisingDiagonal))
		assert.Equal(t, 1, CountRun(board, entity.PlayerX, 0, 2, DescendingDiagonal))
	})

	t.Run("Full 3x3 board without a line", func(t *testing.T) {
		// Given: a sequence that fills the board without three in a row
		board := NewBoard(entity.Settings{Width: 3, Height: 3, Matches: 3})
		moves := []move{
			{entity.PlayerX, 0, 0},
			{entity.PlayerO, 1, 0},
			{entity.PlayerX, 2, 0},
			{entity.PlayerO, 1, 1},
			{entity.PlayerX, 0, 1},
			{entity.PlayerO, 2, 1},
			{entity.PlayerX, 1, 2},
			{entity.PlayerO, 0, 2},
			{entity.PlayerX, 2, 2},
		}

		// When: every move is played
		for i, m := range moves {
			require.NoError(t, board.Place(m.player, m.x, m.y))

			// Then: nobody wins and the board is a draw only after the last move
			assert.False(t, CheckWin(board, m.player, m.x, m.y), "move %d", i)
			assert.Equal(t, i == len(moves)-1, board.IsDraw(), "move %d", i)
		}
	})

	t.Run("Vertical on a one column board", func(t *testing.T) {
		// Given: a 1x5 board with five in a row required
		board := NewBoard(entity.Settings{Width: 1, Height: 5, Matches: 5})

		// When: the same player fills the column
		for y := range 5 {
			require.NoError(t, board.Place(entity.PlayerX, 0, y))

			// Then: only the fifth tile wins
			assert.Equal(t, y == 4, CheckWin(board, entity.PlayerX, 0, y), "y=%d", y)
		}
		assert.Equal(t, 5, CountRun(board, entity.PlayerX, 0, 2, Vertical))
	})

	t.Run("Horizontal on a one row board", func(t *testing.T) {
		board := boardFromRows(t, 3, "OXXX")

		assert.True(t, CheckWin(board, entity.PlayerX, 1, 0))
		assert.False(t, CheckWin(board, entity.PlayerO, 0, 0))
	})

	t.Run("Single match wins immediately", func(t *testing.T) {
		board := NewBoard(entity.Settings{Width: 4, Height: 4, Matches: 1})
		require.NoError(t, board.Place(entity.PlayerO, 3, 2))

		assert.True(t, CheckWin(board, entity.PlayerO, 3, 2))
	})

	t.Run("Gaps break a run", func(t *testing.T) {
		// Given: two pairs separated by an empty cell
		board := boardFromRows(t, 4, "XX.XX")

		// Then: neither pair wins
		assert.False(t, CheckWin(board, entity.PlayerX, 1, 0))
		assert.False(t, CheckWin(board, entity.PlayerX, 3, 0))

		// When: the gap is filled
		require.NoError(t, board.Place(entity.PlayerX, 2, 0))

		// Then: the joined run of five wins
		assert.True(t, CheckWin(board, entity.PlayerX, 2, 0))
		assert.Equal(t, 5, CountRun(board, entity.PlayerX, 2, 0, Horizontal))
	})

	t.Run("Opponent tiles break a run", func(t *testing.T) {
		board := boardFromRows(t, 3,
			"XOX",
			"...",
			"...",
		)

		assert.Equal(t, 1, CountRun(board, entity.PlayerX, 0, 0, Horizontal))
		assert.False(t, CheckWin(board, entity.PlayerX, 2, 0))
	})

	t.Run("Full board with a line is a win", func(t *testing.T) {
		// Given: a full board where X completes the top row
		board := boardFromRows(t, 3,
			"XXX",
			"OOX",
			"XOO",
		)

		// Then: the board is full but the line still counts
		assert.True(t, board.IsFull())
		assert.True(t, CheckWin(board, entity.PlayerX, 1, 0))
	})
}

func TestCheckWin_RunOrderDoesNotMatter(t *testing.T) {
	// Given: the four cells of row 2, columns 0-3, on a 5x5 board with K=4
	cells := []int{0, 1, 2, 3}

	for _, order := range permutations(cells) {
		board := NewBoard(entity.Settings{Width: 5, Height: 5, Matches: 4})

		// When: O fills them in any order
		for i, x := range order {
			require.NoError(t, board.Place(entity.PlayerO, x, 2))

			// Then: the win is reported exactly on the fourth tile
			assert.Equal(t, i == len(order)-1, CheckWin(board, entity.PlayerO, x, 2), "order %v step %d", order, i)
		}
	}
}

func TestCheckWin_Reflection(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tiles := []entity.Tile{entity.Empty, entity.PlayerX, entity.PlayerO}

	for trial := range 300 {
		// Given: a random board and its left-right and top-bottom mirrors
		width := 1 + rng.IntN(7)
		height := 1 + rng.IntN(7)
		settings := entity.Settings{Width: width, Height: height, Matches: 1 + rng.IntN(min(width, height))}

		board := NewBoard(settings)
		mirrorX := NewBoard(settings)
		mirrorY := NewBoard(settings)
		for y := range height {
			for x := range width {
				tile := tiles[rng.IntN(len(tiles))]
				if tile == entity.Empty {
					continue
				}
				require.NoError(t, board.Place(tile, x, y))
				require.NoError(t, mirrorX.Place(tile, width-1-x, y))
				require.NoError(t, mirrorY.Place(tile, x, height-1-y))
			}
		}

		// Then: every occupied cell gives the same answer on all three boards
		for y := range height {
			for x := range width {
				player := board.CellAt(x, y)
				if player == entity.Empty {
					continue
				}
				want := CheckWin(board, player, x, y)
				assert.Equal(t, want, CheckWin(mirrorX, player, width-1-x, y), "trial %d at %d,%d", trial, x, y)
				assert.Equal(t, want, CheckWin(mirrorY, player, x, height-1-y), "trial %d at %d,%d", trial, x, y)
			}
		}
	}
}

func permutations(items []int) [][]int {
	if len(items) <= 1 {
		return [][]int{append([]int(nil), items...)}
	}

	var out [][]int
	for i := range items {
		rest := make([]int, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{items[i]}, p...))
		}
	}

	return out
}
