package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

type gameLogRepo interface {
	ListSessions(ctx context.Context) ([]string, error)
	ListBySession(ctx context.Context, sessionID string) ([]*entity.GameLog, error)
	GetByIndex(ctx context.Context, sessionID string, n int) (*entity.GameLog, error)
}

type handlers struct {
	logger *slog.Logger
	repo   gameLogRepo
}

type sessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type gamesResponse struct {
	Session string            `json:"session"`
	Games   []*entity.GameLog `json:"games"`
}

func (that *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := that.repo.ListSessions(r.Context())
	if err != nil {
		that.fail(w, "listSessions", err)
		return
	}

	if sessions == nil {
		sessions = []string{}
	}

	that.writeJSON(w, sessionsResponse{Sessions: sessions})
}

func (that *handlers) listGames(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	games, err := that.repo.ListBySession(r.Context(), sessionID)
	if err != nil {
		that.fail(w, "listGames", err)
		return
	}

	that.writeJSON(w, gamesResponse{Session: sessionID, Games: games})
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "game number must be an integer", http.StatusBadRequest)
		return
	}

	gameLog, err := that.repo.GetByIndex(r.Context(), sessionID, n)
	if err != nil {
		that.fail(w, "getGame", err)
		return
	}

	that.writeJSON(w, gameLog)
}

func (that *handlers) fail(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrGameLogNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
