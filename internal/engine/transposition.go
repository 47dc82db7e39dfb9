package engine

import (
	"sync"
	"sync/atomic"

	"github.com/foxzool/reversi/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low (alpha never improved)
)

// Number of shards for TT locking (power of 2 for fast modulo)
const ttShardCount = 256
const ttShardMask = ttShardCount - 1

// TTEntry represents an entry in the transposition table. The full
// 64-bit key is kept for verification; a residual collision between two
// positions with identical hashes goes undetected and is tolerated.
type TTEntry struct {
	Key      uint64     `json:"key"`
	BestMove board.Move `json:"move"`
	Score    int32      `json:"score"`
	Depth    int8       `json:"depth"`
	Flag     TTFlag     `json:"flag"`
	Age      uint8      `json:"-"`
}

// TranspositionTable is a direct-mapped hash table of search results.
// Sharded locks let concurrent searches share one table.
type TranspositionTable struct {
	entries []TTEntry
	shards  [ttShardCount]sync.RWMutex
	size    uint64
	mask    uint64
	age     atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1024
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) shardIndex(idx uint64) int {
	return int(idx & ttShardMask)
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise an empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes.Add(1)

	idx := hash & tt.mask
	shard := tt.shardIndex(idx)

	tt.shards[shard].RLock()
	entry := tt.entries[idx]
	tt.shards[shard].RUnlock()

	if entry.Key == hash && entry.Depth > 0 {
		tt.hits.Add(1)
		return entry, true
	}

	return TTEntry{}, false
}

// Store saves a search result. The resident entry is kept only when it
// is deeper, from the current search, and the incoming one is shallower;
// anything from an older search is always replaced.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	idx := hash & tt.mask
	shard := tt.shardIndex(idx)

	tt.shards[shard].Lock()
	entry := &tt.entries[idx]

	currentAge := uint8(tt.age.Load())
	if entry.Age != currentAge || depth >= int(entry.Depth) {
		entry.Key = hash
		entry.BestMove = bestMove
		entry.Score = int32(score)
		entry.Depth = int8(depth)
		entry.Flag = flag
		entry.Age = currentAge
	}
	tt.shards[shard].Unlock()
}

// NewSearch increments the age counter for a new search.
// This helps with replacement decisions.
func (tt *TranspositionTable) NewSearch() {
	tt.age.Add(1)
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for s := range tt.shards {
		tt.shards[s].Lock()
	}
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age.Store(0)
	tt.hits.Store(0)
	tt.probes.Store(0)
	for s := range tt.shards {
		tt.shards[s].Unlock()
	}
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	currentAge := uint8(tt.age.Load())
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 && tt.entries[i].Age == currentAge {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// Snapshot copies out all populated entries for persistence.
func (tt *TranspositionTable) Snapshot() []TTEntry {
	var out []TTEntry
	for s := range tt.shards {
		tt.shards[s].RLock()
	}
	for i := range tt.entries {
		if tt.entries[i].Depth > 0 {
			out = append(out, tt.entries[i])
		}
	}
	for s := range tt.shards {
		tt.shards[s].RUnlock()
	}
	return out
}

// LoadSnapshot restores previously saved entries. Entries land in the
// slots their keys map to; on capacity mismatch the deeper entry wins.
func (tt *TranspositionTable) LoadSnapshot(entries []TTEntry) {
	currentAge := uint8(tt.age.Load())
	for _, e := range entries {
		if e.Depth <= 0 {
			continue
		}
		idx := e.Key & tt.mask
		shard := tt.shardIndex(idx)

		tt.shards[shard].Lock()
		resident := &tt.entries[idx]
		if resident.Depth <= 0 || e.Depth >= resident.Depth {
			*resident = e
			resident.Age = currentAge
		}
		tt.shards[shard].Unlock()
	}
}
