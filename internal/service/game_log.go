package service

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

const (
	settingsFormat = "SETTINGS:\n  M: %d\n  N: %d\n  K: %d\n\n"
	bannerFormat   = "##################\n###   GAME %2d  ###\n##################\n"
	turnFormat     = "  Turn: %d\n  Player: %s\n  Location: %d,%d\n\n"
	fileNameFormat = "MNK_%d-%d-%d_%02d-%02d_%02d-%02d.log"
)

type GameLogService interface {
	// Render writes every game of the session in the log text format.
	Render(w io.Writer, sessionLog *entity.SessionLog, settings entity.Settings) error
	// Save writes the rendered session into a new file and returns its path.
	Save(sessionLog *entity.SessionLog, settings entity.Settings) (string, error)
}

type gameLogService struct {
	logger *slog.Logger

	dir             string
	perGameSettings bool
	now             func() time.Time
}

// NewGameLogService creates a log service writing files into dir. With perGameSettings
// the settings are printed above every game instead of once at the top.
func NewGameLogService(logger *slog.Logger, dir string, perGameSettings bool) GameLogService {
	return &gameLogService{
		logger:          logger.With("component", "game_log_service"),
		dir:             dir,
		perGameSettings: perGameSettings,
		now:             time.Now,
	}
}

func (that *gameLogService) Render(w io.Writer, sessionLog *entity.SessionLog, settings entity.Settings) error {
	var buf bytes.Buffer

	if !that.perGameSettings {
		writeSettings(&buf, settings)
	}

	for i, gameLog := range sessionLog.Games() {
		fmt.Fprintf(&buf, bannerFormat, i+1)

		if snapshot, ok := gameLog.Settings(); ok && that.perGameSettings {
			writeSettings(&buf, snapshot)
		}

		for _, turn := range gameLog.Entries() {
			fmt.Fprintf(&buf, turnFormat, turn.Turn, turn.Player, turn.Location.X, turn.Location.Y)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write game log: %w", err)
	}

	return nil
}

func (that *gameLogService) Save(sessionLog *entity.SessionLog, settings entity.Settings) (string, error) {
	log := that.logger.With("method", "Save")

	path := filepath.Join(that.dir, FileName(settings, that.now()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	defer file.Close()

	if err = that.Render(file, sessionLog, settings); err != nil {
		return "", err
	}

	if err = file.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush log file: %w", err)
	}

	log.Info("game log saved", "path", path, "session", sessionLog.ID(), "games", sessionLog.Len())

	return path, nil
}

// FileName names a log file after the settings and the time it is written.
func FileName(settings entity.Settings, at time.Time) string {
	return fmt.Sprintf(fileNameFormat,
		settings.Width, settings.Height, settings.Matches,
		at.Hour(), at.Minute(), at.Day(), int(at.Month()))
}

func writeSettings(w io.Writer, settings entity.Settings) {
	fmt.Fprintf(w, settingsFormat, settings.Width, settings.Height, settings.Matches)
}
