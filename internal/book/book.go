// Package book implements the opening book: known-good early moves
// keyed by position hash, probed before the engine searches.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/foxzool/reversi/internal/board"
)

// BookEntry represents a single book entry.
type BookEntry struct {
	Move   board.Move
	Weight uint16
}

// Book represents an opening book.
type Book struct {
	entries map[uint64][]BookEntry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]BookEntry),
	}
}

// Add records a move for a position hash.
func (b *Book) Add(key uint64, move board.Move, weight uint16) {
	for i, e := range b.entries[key] {
		if e.Move == move {
			if weight > e.Weight {
				b.entries[key][i].Weight = weight
			}
			return
		}
	}
	b.entries[key] = append(b.entries[key], BookEntry{Move: move, Weight: weight})
}

// Load loads a book from a file.
func Load(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadReader(file)
}

// LoadReader loads a book from a reader.
// Entry format, 16 bytes big-endian:
//
//	8 bytes: position hash
//	2 bytes: move (cell index, 64 = pass)
//	2 bytes: weight
//	4 bytes: reserved
func LoadReader(r io.Reader) (*Book, error) {
	book := New()

	var entry [16]byte
	for {
		_, err := io.ReadFull(r, entry[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(entry[0:8])
		moveData := binary.BigEndian.Uint16(entry[8:10])
		weight := binary.BigEndian.Uint16(entry[10:12])

		move := board.Move(moveData)
		if move.IsValid() && !move.IsPass() {
			book.Add(key, move, weight)
		}
	}

	return book, nil
}

// Save writes the book to a file.
func (b *Book) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return b.Write(file)
}

// Write writes the book in the binary entry format.
func (b *Book) Write(w io.Writer) error {
	var entry [16]byte
	for key, entries := range b.entries {
		for _, e := range entries {
			binary.BigEndian.PutUint64(entry[0:8], key)
			binary.BigEndian.PutUint16(entry[8:10], uint16(e.Move))
			binary.BigEndian.PutUint16(entry[10:12], e.Weight)
			clear(entry[12:16])
			if _, err := w.Write(entry[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Probe looks up a position and returns a move using weighted random
// selection. Book moves are verified against the position's legal moves
// so a stale or corrupt book can never inject an illegal move.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	entries, ok := b.entries[pos.Hash]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	legal := pos.LegalMoves(pos.SideToMove)
	candidates := make([]BookEntry, 0, len(entries))
	for _, e := range entries {
		if legal.IsSet(e.Move.Square()) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return board.NoMove, false
	}

	// Sort by weight (highest first) for deterministic ordering
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})

	totalWeight := uint32(0)
	for _, e := range candidates {
		totalWeight += uint32(e.Weight)
	}
	if totalWeight == 0 {
		return candidates[0].Move, true
	}

	r := rand.Uint32() % totalWeight
	cumulative := uint32(0)
	for _, e := range candidates {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}

	return candidates[0].Move, true
}

// ProbeAll returns all book moves for the position, sorted by weight.
func (b *Book) ProbeAll(pos *board.Position) []BookEntry {
	if b == nil {
		return nil
	}

	entries, ok := b.entries[pos.Hash]
	if !ok {
		return nil
	}

	result := make([]BookEntry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})

	return result
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// AddLine replays a move sequence from the start position, recording
// every move along the way. Returns the error of the first illegal or
// unparsable move.
func (b *Book) AddLine(weight uint16, moves ...string) error {
	pos := board.NewPosition()
	for _, s := range moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return err
		}
		b.Add(pos.Hash, m, weight)
		if undo := pos.MakeMove(m); !undo.Valid {
			return board.ErrInvalidMove
		}
	}
	return nil
}

// Builtin returns a small starter book covering the common named
// openings a few moves deep.
func Builtin() *Book {
	b := New()

	lines := []struct {
		weight uint16
		moves  []string
	}{
		// Diagonal opening into Cow
		{120, []string{"f5", "d6", "c3", "d3", "c4"}},
		// Perpendicular opening
		{110, []string{"f5", "f6", "e6", "f4"}},
		// Parallel opening
		{80, []string{"f5", "f4", "e3", "f6"}},
		// Tiger
		{100, []string{"c4", "c3", "d3", "c5"}},
		// Rose
		{90, []string{"d3", "c5", "f6", "f5", "e6", "e3"}},
		// Buffalo
		{70, []string{"e6", "f4", "c3", "c4", "d3"}},
	}

	for _, line := range lines {
		// Builtin lines are replayed from the start; a failure here is
		// a bug in the table itself, so just skip the bad line.
		_ = b.AddLine(line.weight, line.moves...)
	}

	return b
}
