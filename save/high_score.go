package save

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
)

const (
	scoresObject  = "scores"
	highScoreProp = "doodle_high_score"
)

// HighScore is the persisted personal best.
type HighScore struct {
	mu    sync.Mutex
	store Storage
	best  int
}

// LoadHighScore reads the saved best. A missing or unreadable value starts
// from zero.
func LoadHighScore(store Storage) *HighScore {
	if store == nil {
		store = NewMemoryStorage()
	}
	h := &HighScore{store: store}
	if !store.ObjectPropExists(scoresObject, highScoreProp) {
		return h
	}
	data, err := store.LoadObjectProp(scoresObject, highScoreProp)
	if err != nil {
		log.Printf("save: load high score: %v", err)
		return h
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		log.Printf("save: corrupt high score %q", data)
		return h
	}
	h.best = n
	return h
}

func (h *HighScore) Best() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.best
}

// Record stores score if it beats the current best and reports whether it
// did. The in-memory best is updated even when writing fails.
func (h *HighScore) Record(score int) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if score <= h.best {
		return false, nil
	}
	h.best = score
	if err := h.store.SaveObjectProp(scoresObject, highScoreProp, []byte(strconv.Itoa(score))); err != nil {
		return true, fmt.Errorf("save: write high score: %w", err)
	}
	return true, nil
}
