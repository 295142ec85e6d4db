// Package settings reads board settings from a file of M=, N= and K= lines.
package settings

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

const (
	keyWidth   = "M"
	keyHeight  = "N"
	keyMatches = "K"
)

var (
	linePattern  = regexp.MustCompile(`^([^=]*)=(.*)$`)
	valuePattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// Load opens the settings file at path and parses it.
func Load(path string) (entity.Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("could not open the settings file: %w", err)
	}
	defer file.Close()

	settings, err := Parse(file)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}

	return settings, nil
}

// Parse reads M (width), N (height) and K (tiles in a row). Keys are case-insensitive,
// each must appear exactly once and every value must be in [1, 99]. Every non-blank line
// must be exactly KEY=integer.
func Parse(r io.Reader) (entity.Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("could not read the settings file: %w", err)
	}

	if err = checkLines(data); err != nil {
		return entity.Settings{}, err
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return entity.Settings{}, fmt.Errorf("%w: invalid file format: %w", apperror.ErrInvalidSettings, err)
	}

	var settings entity.Settings
	fields := map[string]*int{
		keyWidth:   &settings.Width,
		keyHeight:  &settings.Height,
		keyMatches: &settings.Matches,
	}
	seen := make(map[string]bool, len(fields))

	for _, key := range slices.Sorted(maps.Keys(values)) {
		name := strings.ToUpper(strings.TrimSpace(key))

		field, ok := fields[name]
		if !ok {
			return entity.Settings{}, fmt.Errorf("%w: unknown setting %q", apperror.ErrInvalidSettings, key)
		}

		if seen[name] {
			return entity.Settings{}, fmt.Errorf("%w: duplicate setting %q", apperror.ErrInvalidSettings, key)
		}
		seen[name] = true

		value, err := strconv.Atoi(strings.TrimSpace(values[key]))
		if err != nil {
			return entity.Settings{}, fmt.Errorf("%w: %s=%q is not a number", apperror.ErrInvalidSettings, key, values[key])
		}

		if value < entity.MinDimension || value > entity.MaxDimension {
			return entity.Settings{}, fmt.Errorf("%w: %s=%d", apperror.ErrInvalidSettings, key, value)
		}

		*field = value
	}

	for _, name := range []string{keyWidth, keyHeight, keyMatches} {
		if !seen[name] {
			return entity.Settings{}, fmt.Errorf("%w: setting %s is missing", apperror.ErrInvalidSettings, name)
		}
	}

	if err = settings.Validate(); err != nil {
		return entity.Settings{}, err
	}

	return settings, nil
}

// checkLines rejects what the key/value parser would silently accept: quoting, comments,
// "export", other separators and a key repeated with the same case.
func checkLines(data []byte) error {
	seen := make(map[string]bool, 3)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			return fmt.Errorf("%w: invalid file format: %q", apperror.ErrInvalidSettings, line)
		}

		key, value := match[1], match[2]
		name := strings.ToUpper(key)
		if name != keyWidth && name != keyHeight && name != keyMatches {
			return fmt.Errorf("%w: unknown setting %q", apperror.ErrInvalidSettings, key)
		}

		if !valuePattern.MatchString(value) {
			return fmt.Errorf("%w: %s=%q is not a number", apperror.ErrInvalidSettings, key, value)
		}

		if seen[name] {
			return fmt.Errorf("%w: duplicate setting %q", apperror.ErrInvalidSettings, key)
		}
		seen[name] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: invalid file format: %w", apperror.ErrInvalidSettings, err)
	}

	return nil
}
