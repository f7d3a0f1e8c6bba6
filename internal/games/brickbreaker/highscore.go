package brickbreaker

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// HighScoreKey is the key the best score is stored under.
const HighScoreKey = "codekriti.brickbreaker.highscore"

var errMissing = errors.New("brickbreaker: no stored value")

// HighScoreStore persists string values by key.
type HighScoreStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ParseHighScore decodes a stored value. Anything that is not a
// non-negative integer counts as no high score.
func ParseHighScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// loadHighScore reads the stored high score, falling back to 0.
func loadHighScore(store HighScoreStore) int {
	if store == nil {
		return 0
	}
	v, err := store.Get(HighScoreKey)
	if err != nil {
		return 0
	}
	return ParseHighScore(v)
}

// saveHighScore overwrites the stored value only if score beats it.
// Failures are ignored; the in-memory high score stays authoritative.
func saveHighScore(store HighScoreStore, score int) {
	if store == nil {
		return
	}
	if score <= loadHighScore(store) {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	store.Set(HighScoreKey, strconv.Itoa(score))
}

// MemoryStore is an in-process HighScoreStore.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key, or an error if it is missing.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", errMissing
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
