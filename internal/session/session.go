package session

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Session is one player's seat: the current game, its clock and whoever is
// listening for ticks. Every move goes through the session lock, so the game
// itself only ever sees one move at a time.
type Session struct {
	ID uuid.UUID

	presets mines.Presets
	tick    time.Duration
	rnd     *rand.Rand

	mu       sync.Mutex
	preset   mines.Preset
	game     *mines.GameState
	clock    *Clock
	lastSeen time.Time

	subMu sync.Mutex
	subs  map[chan int]struct{}
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New opens a session and deals a fresh game of the named preset.
func New(presets mines.Presets, preset string) (*Session, error) {
	return newSession(presets, preset, time.Second, createRand())
}

func newSession(
	presets mines.Presets, preset string, tick time.Duration, r *rand.Rand,
) (*Session, error) {
	s := &Session{
		ID:       uuid.New(),
		presets:  presets,
		tick:     tick,
		rnd:      r,
		lastSeen: time.Now(),
		subs:     make(map[chan int]struct{}),
	}
	if err := s.NewGame(preset); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame throws the current game away and deals a new one. The previous
// game's clock is stopped before the new game exists.
func (s *Session) NewGame(preset string) error {
	p, ok := s.presets.Lookup(preset)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownPreset, preset)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clock != nil {
		s.clock.Stop()
	}
	clock := NewClock(s.tick, s.broadcast)
	game, err := mines.NewGame(p.GameParams, s.rnd, clock)
	if err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	s.preset, s.game, s.clock = p, game, clock
	s.lastSeen = time.Now()
	return nil
}

func (s *Session) Reveal(p mines.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Reveal(p)
	s.lastSeen = time.Now()
}

func (s *Session) ToggleFlag(p mines.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.ToggleFlag(p)
	s.lastSeen = time.Now()
}

func (s *Session) InBounds(p mines.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Params().PointInBounds(p)
}

// Close stops the clock of the current game.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Stop()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Snapshot is everything a front end needs to draw the session.
type Snapshot struct {
	ID        uuid.UUID
	Preset    string
	Params    mines.GameParams
	Phase     mines.Phase
	Grid      mines.Grid
	Remaining int
	Elapsed   int
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		Preset:    s.preset.Name,
		Params:    s.game.Params(),
		Phase:     s.game.Phase(),
		Grid:      s.game.Grid(),
		Remaining: s.game.RemainingMines(),
		Elapsed:   s.clock.Elapsed(),
	}
}

// Subscribe returns a channel receiving the elapsed seconds on every tick of
// the current game. Slow readers miss ticks rather than stall the clock.
func (s *Session) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
		})
	}
	return ch, cancel
}

func (s *Session) broadcast(seconds int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- seconds:
		default:
		}
	}
}
