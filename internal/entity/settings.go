package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
)

const (
	MinDimension = 1
	MaxDimension = 99
)

// Settings describes the board: Width (M) by Height (N), Matches (K) tiles in a row to win.
type Settings struct {
	Width   int `json:"width" yaml:"width"`
	Height  int `json:"height" yaml:"height"`
	Matches int `json:"matches" yaml:"matches"`
}

// Validate checks the ranges of every value and that K fits in the smallest dimension.
func (that Settings) Validate() error {
	values := []struct {
		name  string
		value int
	}{
		{"M", that.Width},
		{"N", that.Height},
		{"K", that.Matches},
	}

	for _, v := range values {
		if v.value < MinDimension || v.value > MaxDimension {
			return fmt.Errorf("%w: %s=%d is outside of [%d, %d]",
				apperror.ErrInvalidSettings, v.name, v.value, MinDimension, MaxDimension)
		}
	}

	if that.Matches > min(that.Width, that.Height) {
		return fmt.Errorf("%w: K=%d is larger than the smallest dimension", apperror.ErrInvalidSettings, that.Matches)
	}

	return nil
}

// Cells returns the number of cells on a board with these settings.
func (that Settings) Cells() int {
	return that.Width * that.Height
}
