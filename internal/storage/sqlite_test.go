package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveAll(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, score := range scores {
		if _, err := store.SaveScore(gameID, score); err != nil {
			t.Fatalf("SaveScore(%q, %d) failed: %v", gameID, score, err)
		}
	}
}

func scoreValues(entries []ScoreEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestListings(t *testing.T) {
	store := openStore(t)
	saveAll(t, store, "flappy", 5, 30, 10, 20, 30)
	saveAll(t, store, "other", 500)

	tests := []struct {
		name     string
		query    func(string, int) ([]ScoreEntry, error)
		limit    int
		expected []int
	}{
		{"top all", store.TopScores, 10, []int{30, 30, 20, 10, 5}},
		{"top limited", store.TopScores, 2, []int{30, 30}},
		{"recent all", store.RecentScores, 10, []int{30, 20, 10, 30, 5}},
		{"recent limited", store.RecentScores, 3, []int{30, 20, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := tc.query("flappy", tc.limit)
			if err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if got := scoreValues(entries); !equalInts(got, tc.expected) {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
			for _, e := range entries {
				if e.GameID != "flappy" {
					t.Errorf("Entry %d leaked from game %q", e.ID, e.GameID)
				}
			}
		})
	}
}

func TestTopScoresTiesKeepInsertOrder(t *testing.T) {
	store := openStore(t)
	saveAll(t, store, "flappy", 7, 7)

	entries, err := store.TopScores("flappy", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID > entries[1].ID {
		t.Errorf("Tied scores should list the earlier run first, got %+v", entries)
	}
}

func TestHighScore(t *testing.T) {
	store := openStore(t)

	if high, err := store.HighScore("flappy"); err != nil || high != 0 {
		t.Fatalf("HighScore() on empty history = %d, %v", high, err)
	}

	saveAll(t, store, "flappy", 100, 300, 200)
	if high, _ := store.HighScore("flappy"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestBestScoreNeverLowers(t *testing.T) {
	store := openStore(t)

	if best, err := store.BestScore("flappy"); err != nil || best != 0 {
		t.Fatalf("BestScore() on fresh database = %d, %v", best, err)
	}

	steps := []struct {
		set      int
		expected int
	}{
		{3, 3},
		{7, 7},
		{5, 7},
		{8, 8},
	}
	for _, step := range steps {
		if err := store.SetBestScore("flappy", step.set); err != nil {
			t.Fatalf("SetBestScore(%d) failed: %v", step.set, err)
		}
		best, err := store.BestScore("flappy")
		if err != nil {
			t.Fatalf("BestScore() failed: %v", err)
		}
		if best != step.expected {
			t.Errorf("After SetBestScore(%d) best = %d, expected %d", step.set, best, step.expected)
		}
	}
}

func TestBestScoreFallsBackToHistory(t *testing.T) {
	store := openStore(t)
	saveAll(t, store, "flappy", 12, 4)

	if best, _ := store.BestScore("flappy"); best != 12 {
		t.Errorf("Expected best score from history 12, got %d", best)
	}
}

func TestBestScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetBestScore("flappy", 42); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	if best, _ := reopened.BestScore("flappy"); best != 42 {
		t.Errorf("Best score should survive a restart, got %d", best)
	}
}

func TestClearScores(t *testing.T) {
	store := openStore(t)
	saveAll(t, store, "flappy", 9, 3)
	saveAll(t, store, "other", 300)
	store.SetBestScore("flappy", 9)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if entries, _ := store.TopScores("flappy", 10); len(entries) != 0 {
		t.Errorf("Expected empty history after clear, got %v", scoreValues(entries))
	}
	if best, _ := store.BestScore("flappy"); best != 0 {
		t.Errorf("Expected best score of 0 after clear, got %d", best)
	}
	if entries, _ := store.TopScores("other", 10); len(entries) != 1 {
		t.Error("Clearing one game must not touch another")
	}
}

func TestGameStats(t *testing.T) {
	store := openStore(t)

	empty, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	saveAll(t, store, "flappy", 2, 4, 9)

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 9 || stats.TotalScore != 15 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AvgScore != 5 {
		t.Errorf("Expected average 5, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
