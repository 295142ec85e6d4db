package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

const (
	movePrompt  = "Place a tile (x,y): "
	enterPrompt = "Press [ENTER] "
)

// Prompter reads answers line by line. Lines are read in a separate goroutine so a
// blocked read can be abandoned when the context is cancelled. Close stops the goroutine
// once its pending read returns.
type Prompter struct {
	renderer *Renderer

	lines     chan string
	readErr   error
	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

func NewPrompter(in io.Reader, renderer *Renderer) *Prompter {
	prompter := &Prompter{
		renderer: renderer,
		lines:    make(chan string),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go prompter.readLines(in)

	return prompter
}

// Close releases the reader goroutine. Reads after Close return ErrInputClosed.
func (that *Prompter) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func (that *Prompter) readLines(in io.Reader) {
	defer close(that.stopped)
	defer close(that.lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case that.lines <- scanner.Text():
		case <-that.done:
			return
		}
	}

	that.readErr = scanner.Err()
}

func (that *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-that.done:
		return "", apperror.ErrInputClosed
	default:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-that.done:
		return "", apperror.ErrInputClosed
	case line, ok := <-that.lines:
		if !ok {
			if that.readErr != nil {
				return "", fmt.Errorf("failed to read input: %w", that.readErr)
			}

			return "", apperror.ErrInputClosed
		}

		return line, nil
	}
}

// ReadInt prints the prompt until a whole number is entered.
func (that *Prompter) ReadInt(ctx context.Context, prompt string) (int, error) {
	for {
		that.renderer.Prompt(prompt)

		line, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(strings.Trim(line, " \t\r"))
		if err != nil {
			that.renderer.Error("Please enter a valid number")
			continue
		}

		return value, nil
	}
}

// NextMove asks the player for "x,y". Only the syntax is checked here, the board rejects
// coordinates outside of it.
func (that *Prompter) NextMove(ctx context.Context, player entity.Tile) (entity.Coordinates, error) {
	that.renderer.Message("Player %s's turn", player)

	for {
		that.renderer.Prompt(movePrompt)

		line, err := that.readLine(ctx)
		if err != nil {
			return entity.Coordinates{}, err
		}

		move, ok := ParseCoordinates(line)
		if !ok {
			that.renderer.Error("Please enter valid coordinates")
			continue
		}

		return move, nil
	}
}

func (that *Prompter) WaitForEnter(ctx context.Context) error {
	that.renderer.Prompt(enterPrompt)

	_, err := that.readLine(ctx)

	return err
}

// ParseCoordinates reads two integers separated by a comma. Blanks and tabs are allowed
// around both numbers.
func ParseCoordinates(line string) (entity.Coordinates, bool) {
	rawX, rawY, found := strings.Cut(line, ",")
	if !found {
		return entity.Coordinates{}, false
	}

	x, err := strconv.Atoi(strings.Trim(rawX, " \t"))
	if err != nil {
		return entity.Coordinates{}, false
	}

	y, err := strconv.Atoi(strings.Trim(rawY, " \t\r"))
	if err != nil {
		return entity.Coordinates{}, false
	}

	return entity.Coordinates{X: x, Y: y}, true
}
