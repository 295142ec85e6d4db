package apperror

import "errors"

var (
	ErrOutOfBounds     = errors.New("coordinates are outside of the board")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInputClosed     = errors.New("input is closed")
	ErrGameLogNotFound = errors.New("game log not found")
)
