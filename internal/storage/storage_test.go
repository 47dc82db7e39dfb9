package storage

import (
	"testing"

	"github.com/foxzool/reversi/internal/board"
	"github.com/foxzool/reversi/internal/engine"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorageAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	// Fresh database yields defaults.
	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Difficulty != engine.Intermediate {
		t.Errorf("expected default difficulty intermediate, got %s", prefs.Difficulty)
	}
	if prefs.TTSizeMB != 64 {
		t.Errorf("expected default TT size 64MB, got %d", prefs.TTSizeMB)
	}

	prefs.Difficulty = engine.Expert
	prefs.Username = "kwok"
	prefs.UseBook = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Difficulty != engine.Expert || loaded.Username != "kwok" || loaded.UseBook {
		t.Errorf("preferences did not round trip: %+v", loaded)
	}
}

func TestStatsRecording(t *testing.T) {
	s := openTestStorage(t)

	results := []GameResult{
		{Won: true, Difficulty: engine.Beginner},
		{Won: true, Difficulty: engine.Beginner},
		{Draw: true, Difficulty: engine.Advanced},
		{Won: false, Difficulty: engine.Expert},
	}
	for _, r := range results {
		if err := s.RecordGameResult(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 4 || stats.Wins != 2 || stats.Draws != 1 || stats.Losses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LongestWinStrk != 2 {
		t.Errorf("expected longest streak 2, got %d", stats.LongestWinStrk)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("streak should reset after a loss, got %d", stats.CurrentStreak)
	}
	if stats.WinsByDiff["beginner"] != 2 {
		t.Errorf("expected 2 beginner wins, got %d", stats.WinsByDiff["beginner"])
	}
	if rate := stats.GetWinRate(); rate != 50 {
		t.Errorf("expected 50%% win rate, got %.2f%%", rate)
	}
}

func TestTTSnapshotRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	// No snapshot yet.
	entries, err := s.LoadTTSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Errorf("expected no snapshot in fresh database, got %d entries", len(entries))
	}

	tt := engine.NewTranspositionTable(1)
	tt.NewSearch()
	tt.Store(0xABCDEF, 7, -123, engine.TTExact, board.NewMove(board.D3))

	if err := s.SaveTTSnapshot(tt.Snapshot()); err != nil {
		t.Fatal(err)
	}

	entries, err = s.LoadTTSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 snapshot entry, got %d", len(entries))
	}

	restored := engine.NewTranspositionTable(1)
	restored.LoadSnapshot(entries)
	entry, ok := restored.Probe(0xABCDEF)
	if !ok {
		t.Fatal("restored entry not found")
	}
	if entry.Score != -123 || entry.Depth != 7 {
		t.Errorf("restored entry mismatch: %+v", entry)
	}
}
