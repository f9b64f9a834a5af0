package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory. Nothing survives a restart.
type Store struct {
	logger  *slog.Logger
	presets mines.Presets
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewStore(logger *slog.Logger, presets mines.Presets, idleTTL time.Duration) *Store {
	return &Store{
		logger:   logger,
		presets:  presets,
		idleTTL:  idleTTL,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *Store) Presets() mines.Presets {
	return s.presets
}

func (s *Store) Create(preset string) (*Session, error) {
	session, err := New(s.presets, preset)
	if err != nil {
		return nil, err
	}
	s.put(session)
	return session, nil
}

func (s *Store) put(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions idle since before now minus the idle TTL and stops
// their clocks. It returns the number of sessions dropped.
func (s *Store) Evict(now time.Time) int {
	cutoff := now.Add(-s.idleTTL)

	var stale []*Session
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			stale = append(stale, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range stale {
		session.Close()
	}
	if len(stale) > 0 {
		s.logger.Debug("evicted idle sessions", slog.Int("count", len(stale)))
	}
	return len(stale)
}

// Run evicts idle sessions every interval until ctx is done, then closes
// every remaining session.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return nil
		case now := <-ticker.C:
			s.Evict(now)
		}
	}
}

func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
