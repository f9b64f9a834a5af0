package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	ErrUnauthorized = errors.New("session cookie does not match this game")
	ErrBadSessionId = errors.New("invalid session id")
)

type GameHandler struct {
	logger  *slog.Logger
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		store:   store,
		cookies: cookies,
		ws:      ws,
	}
}

func (g GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.logger, map[string]any{
		"status":   "ok",
		"sessions": g.store.Len(),
	})
}

func (g GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.logger, g.store.Presets())
}

// NewGame opens a session and hands its id to the player in a signed cookie.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParsePresetDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if dto.Preset == "" {
		dto.Preset = g.store.Presets()[0].Name
	}

	s, err := g.store.Create(dto.Preset)
	if errors.Is(err, session.ErrUnknownPreset) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create session", slog.Any("error", err))
		return
	}

	if err := g.cookies.Issue(w, s.ID.String()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to issue session cookie", slog.Any("error", err))
		return
	}

	g.logger.Debug("created session",
		slog.String("id", s.ID.String()), slog.String("preset", dto.Preset))

	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

// session resolves the {id} path segment to a session owned by the caller.
// On failure it has already written the response.
func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, ErrBadSessionId)
		return nil, false
	}

	claims, ok := middleware.SessionClaims(r)
	if !ok || claims.SessionId != id.String() {
		sendError(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
		return nil, false
	}

	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session", slog.Any("error", err))
		return nil, false
	}
	return s, true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

// Restart replaces the session's game. Without a preset the current one is
// dealt again.
func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	dto, err := ParsePresetDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if dto.Preset == "" {
		dto.Preset = s.Snapshot().Preset
	}
	g.play(w, s, command.Command{Kind: command.NewGame, Preset: dto.Preset})
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Open)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Flag)
}

func (g GameHandler) move(w http.ResponseWriter, r *http.Request, kind command.Kind) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	p, err := ParsePoint(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, fmt.Errorf("row and col: %w", err))
		return
	}
	g.play(w, s, command.Command{Kind: kind, Point: p})
}

func (g GameHandler) play(w http.ResponseWriter, s *session.Session, c command.Command) {
	err := command.Execute(s, c)
	if errors.Is(err, command.ErrOutOfBounds) || errors.Is(err, session.ErrUnknownPreset) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to play command",
			slog.String("command", c.String()), slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}
