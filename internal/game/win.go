package game

import "github.com/rocketscienceinc/mnk-tictactoe/internal/entity"

// Axis is a scan direction. Each axis is walked both ways.
type Axis struct {
	DX int
	DY int
}

var (
	Horizontal         = Axis{DX: 1, DY: 0}
	Vertical           = Axis{DX: 0, DY: 1}
	DescendingDiagonal = Axis{DX: 1, DY: 1}
	RisingDiagonal     = Axis{DX: 1, DY: -1}

	Axes = [...]Axis{Horizontal, Vertical, DescendingDiagonal, RisingDiagonal}
)

// CheckWin reports whether the tile the player just placed on (x, y) completes a line of
// at least Matches tiles. Only lines through (x, y) are examined.
func CheckWin(board *Board, player entity.Tile, x, y int) bool {
	for _, axis := range Axes {
		if CountRun(board, player, x, y, axis) >= board.Matches() {
			return true
		}
	}

	return false
}

// CountRun counts the player's contiguous tiles through (x, y) along the axis.
func CountRun(board *Board, player entity.Tile, x, y int, axis Axis) int {
	forward := scan(board, player, x, y, axis.DX, axis.DY)
	backward := scan(board, player, x-axis.DX, y-axis.DY, -axis.DX, -axis.DY)

	return forward + backward
}

// scan counts from (x, y) inclusive and stops at the board edge or the first foreign tile.
func scan(board *Board, player entity.Tile, x, y, dx, dy int) int {
	count := 0
	for board.InBounds(x, y) && board.CellAt(x, y) == player {
		count++
		x += dx
		y += dy
	}

	return count
}
