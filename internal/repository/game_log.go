package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

const sessionsKey = "sessions"

type GameLogRepository interface {
	// Append stores the log as the next game of the session and returns its 1-based number.
	Append(ctx context.Context, sessionID string, gameLog *entity.GameLog) (int, error)
	ListSessions(ctx context.Context) ([]string, error)
	ListBySession(ctx context.Context, sessionID string) ([]*entity.GameLog, error)
	// GetByIndex returns game number n (1-based) of the session.
	GetByIndex(ctx context.Context, sessionID string, n int) (*entity.GameLog, error)
}

type dbGameLog struct {
	client *redis.Client
}

func NewGameLogRepository(client *redis.Client) GameLogRepository {
	return &dbGameLog{
		client: client,
	}
}

func gamesKey(sessionID string) string {
	return "session:" + sessionID + ":games"
}

func (that *dbGameLog) Append(ctx context.Context, sessionID string, gameLog *entity.GameLog) (int, error) {
	gameLogJSON, err := json.Marshal(gameLog)
	if err != nil {
		return 0, fmt.Errorf("could not marshal game log: %w", err)
	}

	var length *redis.IntCmd
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.RPush(ctx, gamesKey(sessionID), gameLogJSON)
		pipe.SAdd(ctx, sessionsKey, sessionID)

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to append game log: %w", err)
	}

	return int(length.Val()), nil
}

func (that *dbGameLog) ListSessions(ctx context.Context) ([]string, error) {
	sessions, err := that.client.SMembers(ctx, sessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	slices.Sort(sessions)

	return sessions, nil
}

func (that *dbGameLog) ListBySession(ctx context.Context, sessionID string) ([]*entity.GameLog, error) {
	known, err := that.client.SIsMember(ctx, sessionsKey, sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}

	if !known {
		return nil, fmt.Errorf("%w: session %s", apperror.ErrGameLogNotFound, sessionID)
	}

	response, err := that.client.LRange(ctx, gamesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list game logs: %w", err)
	}

	gameLogs := make([]*entity.GameLog, 0, len(response))
	for _, raw := range response {
		gameLog, err := decodeGameLog(raw)
		if err != nil {
			return nil, err
		}

		gameLogs = append(gameLogs, gameLog)
	}

	return gameLogs, nil
}

func (that *dbGameLog) GetByIndex(ctx context.Context, sessionID string, n int) (*entity.GameLog, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: game %d", apperror.ErrGameLogNotFound, n)
	}

	response, err := that.client.LIndex(ctx, gamesKey(sessionID), int64(n-1)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: session %s game %d", apperror.ErrGameLogNotFound, sessionID, n)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game log: %w", err)
	}

	return decodeGameLog(response)
}

func decodeGameLog(raw string) (*entity.GameLog, error) {
	var gameLog entity.GameLog
	if err := json.Unmarshal([]byte(raw), &gameLog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game log: %w", err)
	}

	return &gameLog, nil
}
