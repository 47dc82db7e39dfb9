package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/foxzool/reversi/internal/engine"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyTTSnapshot  = "tt_snapshot"
)

// PlayerColor represents which color the human plays.
type PlayerColor int

const (
	ColorBlack PlayerColor = iota
	ColorWhite
)

// UserPreferences stores user settings.
type UserPreferences struct {
	Username    string            `json:"username"`
	Difficulty  engine.Difficulty `json:"difficulty"`
	PlayerColor PlayerColor       `json:"player_color"`
	TTSizeMB    int               `json:"tt_size_mb"`
	UseBook     bool              `json:"use_book"`
	LastPlayed  time.Time         `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:    "Player",
		Difficulty:  engine.Intermediate,
		PlayerColor: ColorBlack,
		TTSizeMB:    64,
		UseBook:     true,
		LastPlayed:  time.Now(),
	}
}

// GameStats stores game statistics.
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByDiff: make(map[string]int),
	}
}

// GetWinRate returns the win rate as a percentage (0-100).
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// GameResult represents the result of a completed game.
type GameResult struct {
	Won        bool
	Draw       bool
	Difficulty engine.Difficulty
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(dbDir)
}

// NewStorageAt opens the database at an explicit directory.
func NewStorageAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// setJSON stores a JSON-encoded value under a key.
func (s *Storage) setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON loads a JSON-encoded value. Returns badger.ErrKeyNotFound
// when the key has never been written.
func (s *Storage) getJSON(key string, v interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences persists the user preferences.
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	return s.setJSON(keyPreferences, prefs)
}

// LoadPreferences loads the user preferences, falling back to defaults
// when none were saved yet.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := &UserPreferences{}
	err := s.getJSON(keyPreferences, prefs)
	if err == badger.ErrKeyNotFound {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// SaveStats persists the game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.setJSON(keyStats, stats)
}

// LoadStats loads the game statistics, starting fresh when none exist.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.getJSON(keyStats, stats)
	if err == badger.ErrKeyNotFound {
		return NewGameStats(), nil
	}
	if err != nil {
		return nil, err
	}
	if stats.WinsByDiff == nil {
		stats.WinsByDiff = make(map[string]int)
	}
	return stats, nil
}

// RecordGameResult updates the statistics with a finished game.
func (s *Storage) RecordGameResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByDiff[result.Difficulty.String()]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// SaveTTSnapshot persists transposition table entries so a later
// session can resume with a warm cache.
func (s *Storage) SaveTTSnapshot(entries []engine.TTEntry) error {
	return s.setJSON(keyTTSnapshot, entries)
}

// LoadTTSnapshot returns the saved table entries, or nil when no
// snapshot exists.
func (s *Storage) LoadTTSnapshot() ([]engine.TTEntry, error) {
	var entries []engine.TTEntry
	err := s.getJSON(keyTTSnapshot, &entries)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}
