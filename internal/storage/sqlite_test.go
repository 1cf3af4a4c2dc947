package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("gems", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("gems", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("gems", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different mode keeps its own board
	_, err = store.SaveScore("gems_zen", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for the classic mode
	scores, err := store.TopScores("gems", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for zen
	zenScores, err := store.TopScores("gems_zen", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(zenScores) != 1 {
		t.Errorf("Expected 1 zen score, got %d", len(zenScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("gems", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("gems", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("gems")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("gems", 100)
	store.SaveScore("gems", 300)
	store.SaveScore("gems", 200)

	high, err = store.HighScore("gems")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("gems", 100)
	store.SaveScore("gems", 200)
	store.SaveScore("gems_zen", 300)

	// Clear only classic scores
	err = store.ClearScores("gems")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Classic should be empty
	classicScores, _ := store.TopScores("gems", 10)
	if len(classicScores) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classicScores))
	}

	// Zen should still have scores
	zenScores, _ := store.TopScores("gems_zen", 10)
	if len(zenScores) != 1 {
		t.Errorf("Zen scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("gems", i*10)
	}

	scores, err := store.AllScores("gems")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreSaveAndListRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs := []RunEntry{
		{GameID: "gems", Mode: "classic", Score: 4200, Moves: 30, MaxCombo: 3, MaxCascade: 2, DurationSecs: 180},
		{GameID: "gems", Mode: "classic", Score: 1500, Moves: 30, MaxCombo: 1, MaxCascade: 1, DurationSecs: 95},
		{GameID: "gems_zen", Mode: "zen", Score: 9000, Moves: 120, MaxCombo: 5, MaxCascade: 4, DurationSecs: 600},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("gems", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 classic runs, got %d", len(got))
	}

	// Most recent insert comes first
	if got[0].Score != 1500 || got[1].Score != 4200 {
		t.Errorf("Runs not in recency order: %d, %d", got[0].Score, got[1].Score)
	}
	if got[1].MaxCombo != 3 || got[1].MaxCascade != 2 {
		t.Errorf("Run details lost: combo %d cascade %d", got[1].MaxCombo, got[1].MaxCascade)
	}
	if got[0].Mode != "classic" {
		t.Errorf("Expected mode classic, got %q", got[0].Mode)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("Run timestamp was not recorded")
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 8; i++ {
		store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: i * 100, Moves: 30})
	}

	got, err := store.RecentRuns("gems", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 runs with limit, got %d", len(got))
	}
}

func TestStoreTopRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 700, Moves: 30, MaxCombo: 2})
	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 2100, Moves: 28, MaxCombo: 4})
	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 900, Moves: 30, MaxCombo: 1})
	store.SaveRun(RunEntry{GameID: "gems_zen", Mode: "zen", Score: 5000, Moves: 80})

	got, err := store.TopRuns("gems", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 runs with limit, got %d", len(got))
	}

	// Ordered by score, zen runs excluded
	if got[0].Score != 2100 || got[1].Score != 900 {
		t.Errorf("Runs not in score order: %d, %d", got[0].Score, got[1].Score)
	}
	if got[0].Moves != 28 || got[0].MaxCombo != 4 {
		t.Errorf("Run details lost: moves %d combo %d", got[0].Moves, got[0].MaxCombo)
	}
}

func TestStoreBestRun(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestRun("gems")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best run for empty game, got %+v", best)
	}

	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 700, Moves: 30})
	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 2100, Moves: 30, MaxCombo: 4})
	store.SaveRun(RunEntry{GameID: "gems", Mode: "classic", Score: 900, Moves: 30})

	best, err = store.BestRun("gems")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Expected a best run, got nil")
	}
	if best.Score != 2100 {
		t.Errorf("Expected best score 2100, got %d", best.Score)
	}
	if best.MaxCombo != 4 {
		t.Errorf("Expected best run max combo 4, got %d", best.MaxCombo)
	}
}

func TestStoreAchievements(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Nothing unlocked in a fresh database
	unlocked, err := store.LoadAchievements()
	if err != nil {
		t.Fatalf("LoadAchievements() failed: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("Expected no achievements in fresh db, got %d", len(unlocked))
	}

	if err := store.SaveAchievement("first_match"); err != nil {
		t.Fatalf("SaveAchievement() failed: %v", err)
	}
	if err := store.SaveAchievement("combo_5"); err != nil {
		t.Fatalf("SaveAchievement() failed: %v", err)
	}

	// Saving the same achievement again must not error or duplicate
	if err := store.SaveAchievement("first_match"); err != nil {
		t.Fatalf("SaveAchievement() repeat failed: %v", err)
	}

	unlocked, err = store.LoadAchievements()
	if err != nil {
		t.Fatalf("LoadAchievements() failed: %v", err)
	}
	if len(unlocked) != 2 {
		t.Errorf("Expected 2 achievements, got %d", len(unlocked))
	}
	if _, ok := unlocked["first_match"]; !ok {
		t.Error("first_match missing from loaded achievements")
	}
	if ts, ok := unlocked["combo_5"]; !ok {
		t.Error("combo_5 missing from loaded achievements")
	} else if ts.IsZero() {
		t.Error("Unlock timestamp was not recorded")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
