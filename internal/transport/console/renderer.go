package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/game"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
)

const (
	colorRed   = "1"
	colorGreen = "2"
)

const welcomeText = "   ~~~~~  Welcome to M-N-K Tic-Tac-Toe!!  ~~~~~\n\n" +
	"The rules of the game are:\n" +
	"- The board is M cells wide and N cells high\n" +
	"- Players take turns placing a tile on an empty space on the board\n" +
	"- The first player to place K tiles in a row wins!\n" +
	"- Tiles can be lined up vertically, horizontally, or diagonally\n\n"

// Renderer draws the game on a terminal. Colours are dropped when the output is not a terminal.
type Renderer struct {
	out         *termenv.Output
	clearScreen bool
}

func NewRenderer(w io.Writer, clearScreen bool, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{
		out:         termenv.NewOutput(w, opts...),
		clearScreen: clearScreen,
	}
}

func (that *Renderer) Write(p []byte) (int, error) {
	return that.out.Write(p)
}

func (that *Renderer) Clear() {
	if that.clearScreen {
		that.out.ClearScreen()
	}
}

func (that *Renderer) Welcome() {
	that.Clear()
	fmt.Fprint(that.out, welcomeText)
}

// Menu prints the title and the numbered items, starting at 1.
func (that *Renderer) Menu(title string, items []string) {
	fmt.Fprintf(that.out, "\n%s:\n", title)
	for i, item := range items {
		fmt.Fprintf(that.out, ">> %d. %s\n", i+1, item)
	}
}

func (that *Renderer) Settings(settings entity.Settings) {
	fmt.Fprintf(that.out, "\nThe game's settings are:\n\n"+
		"  Board size: %dx%d\n"+
		"  Win condition: %d tiles in a row\n\n",
		settings.Width, settings.Height, settings.Matches)
}

func (that *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(that.out, format+"\n", args...)
}

// Prompt prints text without a line break.
func (that *Renderer) Prompt(text string) {
	fmt.Fprint(that.out, text)
}

func (that *Renderer) Error(message string) {
	banner := that.out.String("ERROR:").Foreground(that.out.Color(colorRed)).Bold()
	fmt.Fprintf(that.out, "%s %s\n", banner, message)
}

func (that *Renderer) BoardChanged(board *game.Board) {
	that.Clear()
	fmt.Fprint(that.out, that.drawBoard(board))
}

func (that *Renderer) MoveRejected(_ entity.Tile, _ entity.Coordinates, err error) {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		that.Error("Coordinates outside of valid range")
	case errors.Is(err, apperror.ErrCellOccupied):
		that.Error("These coordinates are already taken!")
	default:
		that.Error(err.Error())
	}
}

func (that *Renderer) GameOver(session *tictactoe.Session) {
	switch session.State() {
	case tictactoe.StateWon:
		that.Message("Player %s has won!", session.Winner())
	case tictactoe.StateDrawn:
		that.Message("All tiles are taken, this is a draw!")
	}
}

func (that *Renderer) drawBoard(board *game.Board) string {
	width, height := board.Width(), board.Height()

	var sb strings.Builder
	sb.WriteString("Current Game Board:\n ")
	for x := range width {
		fmt.Fprintf(&sb, "%4d", x)
	}
	sb.WriteString("\n")

	frame(&sb, width, "┌", "┬", "┐")
	for y := range height {
		fmt.Fprintf(&sb, "%2d│", y)
		for x := range width {
			sb.WriteString(that.tile(board.CellAt(x, y)))
			sb.WriteString("│")
		}
		sb.WriteString("\n")

		if y < height-1 {
			frame(&sb, width, "├", "┼", "┤")
		}
	}
	frame(&sb, width, "└", "┴", "┘")

	return sb.String()
}

func (that *Renderer) tile(tile entity.Tile) string {
	switch tile {
	case entity.PlayerX:
		return that.out.String(" X ").Foreground(that.out.Color(colorRed)).String()
	case entity.PlayerO:
		return that.out.String(" O ").Foreground(that.out.Color(colorGreen)).String()
	default:
		return "   "
	}
}

func frame(sb *strings.Builder, width int, left, middle, right string) {
	sb.WriteString("  ")
	sb.WriteString(left)
	for range width - 1 {
		sb.WriteString("───")
		sb.WriteString(middle)
	}
	sb.WriteString("───")
	sb.WriteString(right)
	sb.WriteString("\n")
}
