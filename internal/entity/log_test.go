package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("Keeps insertion order", func(t *testing.T) {
		// Given: an empty history
		var history History[int]

		// When: appending three items
		history.Append(3)
		history.Append(1)
		history.Append(2)

		// Then: entries come back in the same order
		assert.Equal(t, 3, history.Len())
		assert.Equal(t, []int{3, 1, 2}, history.Entries())

		var seen []int
		for i, item := range history.All() {
			assert.Equal(t, len(seen), i)
			seen = append(seen, item)
		}
		assert.Equal(t, []int{3, 1, 2}, seen)
	})

	t.Run("Entries can not change the history", func(t *testing.T) {
		// Given: a history with one item
		var history History[int]
		history.Append(7)

		// When: the returned slice is modified
		entries := history.Entries()
		entries[0] = 42

		// Then: the history is untouched
		item, ok := history.At(0)
		require.True(t, ok)
		assert.Equal(t, 7, item)
	})

	t.Run("At is bounds checked", func(t *testing.T) {
		var history History[string]

		_, ok := history.At(0)
		assert.False(t, ok)

		_, ok = history.At(-1)
		assert.False(t, ok)
	})
}

func TestGameLog(t *testing.T) {
	settings := Settings{Width: 4, Height: 3, Matches: 3}

	t.Run("Without settings snapshot", func(t *testing.T) {
		// Given: a log created without a snapshot
		log := NewGameLog(settings, false)

		// When: asking for the settings
		_, ok := log.Settings()

		// Then: there are none
		assert.False(t, ok)
		assert.Equal(t, 0, log.Len())
	})

	t.Run("With settings snapshot", func(t *testing.T) {
		// Given: a log created with a snapshot
		log := NewGameLog(settings, true)

		// When: asking for the settings
		snapshot, ok := log.Settings()

		// Then: they match the ones used to create it
		require.True(t, ok)
		assert.Equal(t, settings, snapshot)
	})

	t.Run("Round trips through JSON", func(t *testing.T) {
		// Given: a log with two turns
		log := NewGameLog(settings, true)
		log.Append(TurnLog{Turn: 1, Player: PlayerX, Location: Coordinates{X: 0, Y: 0}})
		log.Append(TurnLog{Turn: 2, Player: PlayerO, Location: Coordinates{X: 3, Y: 2}})

		// When: encoding and decoding it
		data, err := json.Marshal(log)
		require.NoError(t, err)

		var decoded GameLog
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: turns and snapshot are restored
		assert.Equal(t, log.Entries(), decoded.Entries())
		snapshot, ok := decoded.Settings()
		require.True(t, ok)
		assert.Equal(t, settings, snapshot)
	})

	t.Run("Empty log encodes an empty turn list", func(t *testing.T) {
		log := NewGameLog(settings, false)

		data, err := json.Marshal(log)

		require.NoError(t, err)
		assert.JSONEq(t, `{"turns":[]}`, string(data))
	})
}

func TestSessionLog(t *testing.T) {
	t.Run("Collects games in order", func(t *testing.T) {
		// Given: a new session
		session := NewSessionLog()
		first := NewGameLog(Settings{Width: 3, Height: 3, Matches: 3}, false)
		second := NewGameLog(Settings{Width: 3, Height: 3, Matches: 3}, false)

		// When: two games are appended
		session.Append(first)
		session.Append(second)

		// Then: they are returned in the order they were played
		assert.NotEmpty(t, session.ID())
		assert.Equal(t, 2, session.Len())
		assert.Same(t, first, session.Games()[0])
		assert.Same(t, second, session.Games()[1])
	})

	t.Run("Every session has its own id", func(t *testing.T) {
		assert.NotEqual(t, NewSessionLog().ID(), NewSessionLog().ID())
	})
}
