package entity

import (
	"errors"
	"fmt"
)

// Tile is the occupancy state of a single board cell.
type Tile uint8

const (
	Empty Tile = iota
	PlayerX
	PlayerO
)

const (
	markX     = "X"
	markO     = "O"
	markEmpty = ""
)

var ErrUnknownTile = errors.New("unknown tile")

// Next returns the player who moves after that. Empty has no successor.
func (that Tile) Next() Tile {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// IsPlayer reports whether the tile belongs to a player.
func (that Tile) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Tile) String() string {
	switch that {
	case PlayerX:
		return markX
	case PlayerO:
		return markO
	default:
		return markEmpty
	}
}

func (that Tile) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Tile) UnmarshalText(text []byte) error {
	switch string(text) {
	case markX:
		*that = PlayerX
	case markO:
		*that = PlayerO
	case markEmpty:
		*that = Empty
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTile, text)
	}

	return nil
}

// Coordinates is a zero-based board position, X is the column and Y is the row.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coordinates) String() string {
	return fmt.Sprintf("%d,%d", that.X, that.Y)
}
