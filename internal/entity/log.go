package entity

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// TurnLog is one recorded move.
type TurnLog struct {
	Turn     int         `json:"turn"`
	Player   Tile        `json:"player"`
	Location Coordinates `json:"location"`
}

// GameLog is the ordered record of every turn of one game.
type GameLog struct {
	settings *Settings
	turns    History[TurnLog]
}

type gameLogJSON struct {
	Settings *Settings `json:"settings,omitempty"`
	Turns    []TurnLog `json:"turns"`
}

// NewGameLog creates an empty log. The settings are kept only when withSnapshot is set.
func NewGameLog(settings Settings, withSnapshot bool) *GameLog {
	log := &GameLog{}
	if withSnapshot {
		log.settings = &settings
	}

	return log
}

func (that *GameLog) Append(turn TurnLog) {
	that.turns.Append(turn)
}

func (that *GameLog) Len() int {
	return that.turns.Len()
}

// Entries returns the turns in chronological order.
func (that *GameLog) Entries() []TurnLog {
	return that.turns.Entries()
}

// Settings returns the settings snapshot, if the log was created with one.
func (that *GameLog) Settings() (Settings, bool) {
	if that.settings == nil {
		return Settings{}, false
	}

	return *that.settings, true
}

func (that *GameLog) MarshalJSON() ([]byte, error) {
	turns := that.turns.Entries()
	if turns == nil {
		turns = []TurnLog{}
	}

	data, err := json.Marshal(gameLogJSON{Settings: that.settings, Turns: turns})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game log: %w", err)
	}

	return data, nil
}

func (that *GameLog) UnmarshalJSON(data []byte) error {
	var raw gameLogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal game log: %w", err)
	}

	that.settings = raw.Settings
	that.turns = History[TurnLog]{}
	for _, turn := range raw.Turns {
		that.turns.Append(turn)
	}

	return nil
}

// SessionLog collects the logs of every game played during one run of the program.
type SessionLog struct {
	id    string
	games History[*GameLog]
}

func NewSessionLog() *SessionLog {
	return &SessionLog{id: uuid.NewString()}
}

func (that *SessionLog) ID() string {
	return that.id
}

func (that *SessionLog) Append(game *GameLog) {
	that.games.Append(game)
}

func (that *SessionLog) Len() int {
	return that.games.Len()
}

// Games returns the game logs in the order they were played.
func (that *SessionLog) Games() []*GameLog {
	return that.games.Entries()
}
