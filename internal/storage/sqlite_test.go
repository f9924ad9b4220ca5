package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func episode(run uuid.UUID, env string, n int, reward float64) EpisodeResult {
	return EpisodeResult{
		RunID:       run,
		EnvID:       env,
		Episode:     n,
		Seed:        int64(n),
		Steps:       n * 10,
		Pieces:      n * 3,
		TotalReward: reward,
		NormalLines: n,
	}
}

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
	store := openTestStore(t)
	run := uuid.New()

	for i, reward := range []float64{100.5, 50, 200.25} {
		if _, err := store.SaveEpisode(episode(run, "tetris", i+1, reward)); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}
	// Different environment
	if _, err := store.SaveEpisode(episode(run, "tetris_classic", 1, 500)); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}

	episodes, err := store.TopEpisodes("tetris", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(episodes))
	}

	// Should be sorted by reward descending
	want := []float64{200.25, 100.5, 50}
	for i, e := range episodes {
		if e.TotalReward != want[i] {
			t.Errorf("episodes[%d].TotalReward = %v, expected %v", i, e.TotalReward, want[i])
		}
	}

	top := episodes[0]
	if top.RunID != run {
		t.Errorf("RunID = %v, expected %v", top.RunID, run)
	}
	if top.Episode != 3 || top.Steps != 30 || top.Pieces != 9 || top.NormalLines != 3 {
		t.Errorf("Episode fields not round-tripped: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	classic, err := store.TopEpisodes("tetris_classic", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic episode, got %d", len(classic))
	}
}

func TestStoreSaveRequiresRunID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveEpisode(EpisodeResult{EnvID: "tetris", Episode: 1}); err == nil {
		t.Error("SaveEpisode() without run id should fail")
	}
}

func TestStoreTopEpisodesLimit(t *testing.T) {
	store := openTestStore(t)
	run := uuid.New()

	for i := 0; i < 5; i++ {
		store.SaveEpisode(episode(run, "tetris", i+1, float64((i+1)*100)))
	}

	// Request only top 3
	episodes, err := store.TopEpisodes("tetris", 3)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("Expected 3 episodes with limit, got %d", len(episodes))
	}

	// Should be 500, 400, 300 (top 3)
	if episodes[0].TotalReward != 500 || episodes[1].TotalReward != 400 || episodes[2].TotalReward != 300 {
		t.Errorf("Episodes not in expected order: %v", episodes)
	}
}

func TestStoreRunEpisodes(t *testing.T) {
	store := openTestStore(t)
	runA := uuid.New()
	runB := uuid.New()

	// Saved out of order on purpose
	store.SaveEpisode(episode(runA, "tetris", 2, 10))
	store.SaveEpisode(episode(runB, "tetris", 1, 99))
	store.SaveEpisode(episode(runA, "tetris", 1, 20))
	store.SaveEpisode(episode(runA, "tetris", 3, 5))

	episodes, err := store.RunEpisodes(runA)
	if err != nil {
		t.Fatalf("RunEpisodes() failed: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("Expected 3 episodes for run A, got %d", len(episodes))
	}
	for i, e := range episodes {
		if e.Episode != i+1 {
			t.Errorf("episodes[%d].Episode = %d, expected %d", i, e.Episode, i+1)
		}
		if e.RunID != runA {
			t.Errorf("episodes[%d].RunID = %v, expected %v", i, e.RunID, runA)
		}
	}

	none, err := store.RunEpisodes(uuid.New())
	if err != nil {
		t.Fatalf("RunEpisodes() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no episodes for unknown run, got %d", len(none))
	}
}

func TestStoreEnvStats(t *testing.T) {
	store := openTestStore(t)

	// No episodes yet
	stats, err := store.GetEnvStats("tetris")
	if err != nil {
		t.Fatalf("GetEnvStats() failed: %v", err)
	}
	if stats.Episodes != 0 || stats.BestReward != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	runA := uuid.New()
	runB := uuid.New()
	store.SaveEpisode(EpisodeResult{RunID: runA, EnvID: "tetris", Episode: 1, Steps: 100, TotalReward: 10, NormalLines: 2, GarbageLines: 1})
	store.SaveEpisode(EpisodeResult{RunID: runA, EnvID: "tetris", Episode: 2, Steps: 300, TotalReward: 30, NormalLines: 4})
	store.SaveEpisode(EpisodeResult{RunID: runB, EnvID: "tetris", Episode: 1, Steps: 200, TotalReward: -4, Truncated: true})

	stats, err = store.GetEnvStats("tetris")
	if err != nil {
		t.Fatalf("GetEnvStats() failed: %v", err)
	}
	if stats.Episodes != 3 {
		t.Errorf("Episodes = %d, expected 3", stats.Episodes)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.BestReward != 30 {
		t.Errorf("BestReward = %v, expected 30", stats.BestReward)
	}
	if stats.AvgReward != 12 {
		t.Errorf("AvgReward = %v, expected 12", stats.AvgReward)
	}
	if stats.AvgSteps != 200 {
		t.Errorf("AvgSteps = %v, expected 200", stats.AvgSteps)
	}
	if stats.MaxLines != 4 {
		t.Errorf("MaxLines = %d, expected 4", stats.MaxLines)
	}
	if stats.TotalLines != 7 {
		t.Errorf("TotalLines = %d, expected 7", stats.TotalLines)
	}
}

func TestStoreTruncatedFlag(t *testing.T) {
	store := openTestStore(t)
	run := uuid.New()

	e := episode(run, "tetris", 1, 1)
	e.Truncated = true
	store.SaveEpisode(e)

	episodes, err := store.RunEpisodes(run)
	if err != nil {
		t.Fatalf("RunEpisodes() failed: %v", err)
	}
	if len(episodes) != 1 || !episodes[0].Truncated {
		t.Errorf("Truncated flag not stored: %+v", episodes)
	}
}

func TestStoreClearEpisodes(t *testing.T) {
	store := openTestStore(t)
	run := uuid.New()

	store.SaveEpisode(episode(run, "tetris", 1, 100))
	store.SaveEpisode(episode(run, "tetris", 2, 200))
	store.SaveEpisode(episode(run, "tetris_garbage", 1, 300))

	// Clear only tetris episodes
	if err := store.ClearEpisodes("tetris"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}

	episodes, _ := store.TopEpisodes("tetris", 10)
	if len(episodes) != 0 {
		t.Errorf("Expected 0 tetris episodes after clear, got %d", len(episodes))
	}

	// Other environments keep their episodes
	garbage, _ := store.TopEpisodes("tetris_garbage", 10)
	if len(garbage) != 1 {
		t.Errorf("tetris_garbage episodes should not be affected by clearing tetris")
	}
}

func TestEpisodeLines(t *testing.T) {
	e := EpisodeResult{NormalLines: 3, GarbageLines: 2}
	if got := e.Lines(); got != 5 {
		t.Errorf("Lines() = %d, expected 5", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
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
