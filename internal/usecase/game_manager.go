package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
)

const menuTitle = "MAIN MENU"

type screen interface {
	io.Writer

	Welcome()
	Menu(title string, items []string)
	Settings(settings entity.Settings)
	Message(format string, args ...any)
	Error(message string)
}

type input interface {
	ReadInt(ctx context.Context, prompt string) (int, error)
	WaitForEnter(ctx context.Context) error
}

type gameRunner interface {
	Run(ctx context.Context, settings entity.Settings) (*tictactoe.Session, error)
}

type gameLogService interface {
	Render(w io.Writer, sessionLog *entity.SessionLog, settings entity.Settings) error
	Save(sessionLog *entity.SessionLog, settings entity.Settings) (string, error)
}

type gameLogRepo interface {
	Append(ctx context.Context, sessionID string, gameLog *entity.GameLog) (int, error)
}

// Features switch the optional menu items.
type Features struct {
	Editor bool
	Secret bool
}

type menuItem struct {
	label  string
	action func(ctx context.Context) (exit bool, err error)
}

type GameManager struct {
	logger *slog.Logger

	screen  screen
	input   input
	games   gameRunner
	logs    gameLogService
	logRepo gameLogRepo

	settings   entity.Settings
	sessionLog *entity.SessionLog
	menu       []menuItem
}

// NewGameManager builds the main menu for the given features. logRepo may be nil when
// game logs are not persisted.
func NewGameManager(
	logger *slog.Logger,
	screen screen,
	input input,
	games gameRunner,
	logs gameLogService,
	logRepo gameLogRepo,
	settings entity.Settings,
	features Features,
) *GameManager {
	manager := &GameManager{
		logger:     logger.With("component", "game_manager"),
		screen:     screen,
		input:      input,
		games:      games,
		logs:       logs,
		logRepo:    logRepo,
		settings:   settings,
		sessionLog: entity.NewSessionLog(),
	}

	manager.menu = append(manager.menu,
		menuItem{"New Game", manager.newGame},
		menuItem{"View Settings", manager.viewSettings},
	)

	if features.Editor {
		manager.menu = append(manager.menu, menuItem{"Edit Settings", manager.editSettings})
	}

	manager.menu = append(manager.menu, menuItem{"View Game Log", manager.viewLog})

	if !features.Secret {
		manager.menu = append(manager.menu, menuItem{"Save Game Log", manager.saveLog})
	}

	manager.menu = append(manager.menu, menuItem{"Exit", manager.exit})

	return manager
}

// Run shows the welcome screen and the main menu until Exit is chosen or the input ends.
func (that *GameManager) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")
	log.Info("session started", "session", that.sessionLog.ID())

	err := that.loop(ctx)
	if errors.Is(err, apperror.ErrInputClosed) {
		log.Info("input closed")
		err = nil
	}

	log.Info("session finished", "session", that.sessionLog.ID(), "games", that.sessionLog.Len())

	return err
}

func (that *GameManager) SessionLog() *entity.SessionLog {
	return that.sessionLog
}

func (that *GameManager) Settings() entity.Settings {
	return that.settings
}

func (that *GameManager) loop(ctx context.Context) error {
	that.screen.Welcome()
	if err := that.input.WaitForEnter(ctx); err != nil {
		return err
	}

	labels := make([]string, len(that.menu))
	for i, item := range that.menu {
		labels[i] = item.label
	}

	for {
		that.screen.Menu(menuTitle, labels)

		item, err := that.selectItem(ctx)
		if err != nil {
			return err
		}

		exit, err := item.action(ctx)
		if err != nil {
			return err
		}

		if exit {
			return nil
		}
	}
}

func (that *GameManager) selectItem(ctx context.Context) (menuItem, error) {
	prompt := "Please select an option: "

	for {
		choice, err := that.input.ReadInt(ctx, prompt)
		if err != nil {
			return menuItem{}, err
		}

		if choice >= 1 && choice <= len(that.menu) {
			return that.menu[choice-1], nil
		}

		prompt = "Please enter a valid option: "
	}
}

func (that *GameManager) newGame(ctx context.Context) (bool, error) {
	session, err := that.games.Run(ctx, that.settings)
	if err != nil {
		return false, fmt.Errorf("failed to play game: %w", err)
	}

	that.sessionLog.Append(session.Log())
	that.persist(ctx, session.Log())

	return false, that.input.WaitForEnter(ctx)
}

func (that *GameManager) persist(ctx context.Context, gameLog *entity.GameLog) {
	if that.logRepo == nil {
		return
	}

	log := that.logger.With("method", "persist")

	number, err := that.logRepo.Append(ctx, that.sessionLog.ID(), gameLog)
	if err != nil {
		log.Error("failed to store game log", "session", that.sessionLog.ID(), "error", err)
		return
	}

	log.Debug("game log stored", "session", that.sessionLog.ID(), "game", number)
}

func (that *GameManager) viewSettings(_ context.Context) (bool, error) {
	that.screen.Settings(that.settings)

	return false, nil
}

func (that *GameManager) editSettings(ctx context.Context) (bool, error) {
	that.screen.Settings(that.settings)
	that.screen.Message("!! ALL SETTINGS MUST BE BETWEEN %d AND %d !!", entity.MinDimension, entity.MaxDimension)

	for {
		that.screen.Message("")

		var settings entity.Settings
		fields := []struct {
			name  string
			value *int
		}{
			{"M (width)", &settings.Width},
			{"N (height)", &settings.Height},
			{"K (tiles in a row)", &settings.Matches},
		}

		for _, field := range fields {
			value, err := that.readSetting(ctx, field.name)
			if err != nil {
				return false, err
			}

			*field.value = value
		}

		if err := settings.Validate(); err != nil {
			that.screen.Error("The value of K cannot be larger than M or N")
			continue
		}

		that.settings = settings
		that.logger.Info("settings changed", "width", settings.Width, "height", settings.Height, "matches", settings.Matches)

		return false, nil
	}
}

func (that *GameManager) readSetting(ctx context.Context, name string) (int, error) {
	for {
		value, err := that.input.ReadInt(ctx, fmt.Sprintf("Enter new value of %s: ", name))
		if err != nil {
			return 0, err
		}

		if value >= entity.MinDimension && value <= entity.MaxDimension {
			return value, nil
		}

		that.screen.Error("Setting outside of valid range")
	}
}

func (that *GameManager) viewLog(_ context.Context) (bool, error) {
	that.screen.Message("")

	if err := that.logs.Render(that.screen, that.sessionLog, that.settings); err != nil {
		return false, fmt.Errorf("failed to show game log: %w", err)
	}

	that.screen.Message("")

	return false, nil
}

func (that *GameManager) saveLog(_ context.Context) (bool, error) {
	path, err := that.logs.Save(that.sessionLog, that.settings)
	if err != nil {
		that.logger.Error("failed to save game log", "error", err)
		that.screen.Error("Failed to write the logs to the output file")

		return false, nil
	}

	that.screen.Message("\nGame logs have been saved to %s\n", path)

	return false, nil
}

func (that *GameManager) exit(_ context.Context) (bool, error) {
	that.screen.Message("Goodbye")

	return true, nil
}
