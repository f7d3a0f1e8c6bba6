package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("brickbreaker", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bubbles", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("brickbreaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	limited, err := store.TopScores("brickbreaker", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}

	all, err := store.AllScores("bubbles")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 bubbles score, got %d", len(all))
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("brickbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("brickbreaker", 100)
	store.SaveScore("brickbreaker", 300)
	store.SaveScore("brickbreaker", 200)

	high, _ = store.HighScore("brickbreaker")
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	stats, err := store.GameStats("brickbreaker")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.TotalScore != 600 || stats.AvgScore != 200 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("brickbreaker", 100)
	store.SaveScore("bubbles", 300)

	if err := store.ClearScores("brickbreaker"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("brickbreaker", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("bubbles", 10); len(scores) != 1 {
		t.Error("Other games should not be affected by clearing")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, expected ErrNotFound", err)
	}

	if err := store.Set("hs", "120"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("hs", "340"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	got, err := store.Get("hs")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "340" {
		t.Errorf("Get() = %q, expected %q", got, "340")
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)

	store.Set("hs", "120")
	if err := store.Delete("hs"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("hs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, expected ErrNotFound", err)
	}
	if err := store.Delete("hs"); err != nil {
		t.Errorf("Delete() of a missing key failed: %v", err)
	}
}

func TestStoreKeyValuePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := first.Set("hs", "120"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	first.Close()

	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	if got, err := second.Get("hs"); err != nil || got != "120" {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
}
