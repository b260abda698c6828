package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/milk9111/doodler/save"
	"gopkg.in/yaml.v3"
)

// DefaultTop is the number of entries shown on the leaderboard.
const DefaultTop = 10

var ErrInvalidEntry = errors.New("leaderboard: invalid entry")

// Entry is one player's best score.
type Entry struct {
	UserID    string    `yaml:"user_id"`
	Name      string    `yaml:"name"`
	Score     int       `yaml:"score"`
	Avatar    string    `yaml:"avatar,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func (e Entry) validate() error {
	if e.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidEntry)
	}
	if e.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidEntry, e.Score)
	}
	return nil
}

// Store keeps the best score per user.
type Store interface {
	// Submit records e unless the user already has an equal or higher score.
	Submit(ctx context.Context, e Entry) error
	// Top returns at most n entries, highest score first.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// upsert applies the strictly-higher rule and reports whether the table
// changed.
func upsert(entries map[string]Entry, e Entry) bool {
	if cur, ok := entries[e.UserID]; ok && cur.Score >= e.Score {
		return false
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	entries[e.UserID] = e
	return true
}

// top sorts by score descending; ties go to whoever got there first.
func top(entries map[string]Entry, n int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if c := a.UpdatedAt.Compare(b.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Submit(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	upsert(s.entries, e)
	return nil
}

func (s *MemoryStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return top(s.entries, n), nil
}

const (
	leaderboardObject = "leaderboard"
	entriesProp       = "entries"
)

// GdataStore persists the table as a yaml list in the game's data directory.
type GdataStore struct {
	mu      sync.Mutex
	storage save.Storage
}

func NewGdataStore(storage save.Storage) *GdataStore {
	return &GdataStore{storage: storage}
}

func (s *GdataStore) load() (map[string]Entry, error) {
	entries := make(map[string]Entry)
	if !s.storage.ObjectPropExists(leaderboardObject, entriesProp) {
		return entries, nil
	}
	data, err := s.storage.LoadObjectProp(leaderboardObject, entriesProp)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}
	var list []Entry
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("leaderboard: decode: %w", err)
	}
	for _, e := range list {
		if e.validate() == nil {
			upsert(entries, e)
		}
	}
	return entries, nil
}

func (s *GdataStore) Submit(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if !upsert(entries, e) {
		return nil
	}
	data, err := yaml.Marshal(top(entries, -1))
	if err != nil {
		return fmt.Errorf("leaderboard: encode: %w", err)
	}
	if err := s.storage.SaveObjectProp(leaderboardObject, entriesProp, data); err != nil {
		return fmt.Errorf("leaderboard: save: %w", err)
	}
	return nil
}

func (s *GdataStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	return top(entries, n), nil
}
