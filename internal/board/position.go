package board

import "fmt"

// Color identifies a side. Black moves first.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns "black" or "white".
func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// ParseColor parses "black"/"b" or "white"/"w".
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Black, fmt.Errorf("invalid color: %q", s)
}

// Starting occupancy: black on d5/e4, white on d4/e5.
const (
	startBlack Bitboard = 0x0000001008000000
	startWhite Bitboard = 0x0000000810000000
)

// Position represents a complete Othello position.
// The two disc sets are disjoint by construction: every mutation goes
// through MakeMove/UnmakeMove or the pass equivalents.
type Position struct {
	// Disc bitboards, indexed by Color.
	Discs [2]Bitboard

	// Side to move.
	SideToMove Color

	// Zobrist hash for the transposition table, maintained incrementally.
	Hash uint64

	// Ply counts half-moves (including passes) played from the start position.
	Ply int
}

// UndoInfo holds what MakeMove needs restored by UnmakeMove.
// Valid is false when the attempted move was illegal and the position
// was left untouched.
type UndoInfo struct {
	Move    Move
	Flipped Bitboard
	Valid   bool
}

// NewPosition creates the starting position with Black to move.
func NewPosition() *Position {
	p := &Position{
		Discs:      [2]Bitboard{startBlack, startWhite},
		SideToMove: Black,
	}
	p.Hash = p.computeHash()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Occupied returns the union of both disc sets.
func (p *Position) Occupied() Bitboard {
	return p.Discs[Black] | p.Discs[White]
}

// Empties returns the set of empty cells.
func (p *Position) Empties() Bitboard {
	return ^p.Occupied()
}

// IsEmpty returns true if the cell is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.Occupied().IsSet(sq)
}

// DiscAt returns the color of the disc on the cell and true, or false if empty.
func (p *Position) DiscAt(sq Square) (Color, bool) {
	bb := SquareBB(sq)
	if p.Discs[Black]&bb != 0 {
		return Black, true
	}
	if p.Discs[White]&bb != 0 {
		return White, true
	}
	return Black, false
}

// CountDiscs returns the number of discs of the given color.
func (p *Position) CountDiscs(c Color) int {
	return p.Discs[c].PopCount()
}

// DiscCount returns the total number of discs on the board.
func (p *Position) DiscCount() int {
	return p.Occupied().PopCount()
}

// MakeMove plays a disc for the side to move, flipping every bounded
// opponent run, and toggles the side to move. The returned UndoInfo has
// Valid=false - and the position is unchanged - if the target cell is
// out of range, occupied, or flips nothing. PassMove is delegated to
// MakePass and is only legal when the side to move has no legal move.
func (p *Position) MakeMove(m Move) UndoInfo {
	if m.IsPass() {
		if p.LegalMoves(p.SideToMove) != 0 {
			return UndoInfo{}
		}
		return p.MakePass()
	}
	if !m.IsValid() {
		return UndoInfo{}
	}

	sq := m.Square()
	if !p.IsEmpty(sq) {
		return UndoInfo{}
	}

	us := p.SideToMove
	flipped := p.FlippedDiscs(sq, us)
	if flipped == 0 {
		return UndoInfo{}
	}

	them := us.Other()
	p.Discs[us] |= SquareBB(sq) | flipped
	p.Discs[them] &^= flipped

	p.Hash ^= zobristDisc[us][sq]
	for bb := flipped; bb != 0; {
		p.Hash ^= zobristFlip(bb.PopLSB())
	}
	p.Hash ^= zobristSideToMove

	p.SideToMove = them
	p.Ply++

	return UndoInfo{Move: m, Flipped: flipped, Valid: true}
}

// UnmakeMove restores the position to its exact state before MakeMove.
func (p *Position) UnmakeMove(undo UndoInfo) {
	if !undo.Valid {
		return
	}
	if undo.Move.IsPass() {
		p.UnmakePass(undo)
		return
	}

	them := p.SideToMove
	us := them.Other()
	sq := undo.Move.Square()

	p.Discs[us] &^= SquareBB(sq) | undo.Flipped
	p.Discs[them] |= undo.Flipped

	p.Hash ^= zobristDisc[us][sq]
	for bb := undo.Flipped; bb != 0; {
		p.Hash ^= zobristFlip(bb.PopLSB())
	}
	p.Hash ^= zobristSideToMove

	p.SideToMove = us
	p.Ply--
}

// MakePass passes the turn without placing a disc. Passing is forced,
// not chosen: callers use it only when the side to move has no legal move.
func (p *Position) MakePass() UndoInfo {
	p.Hash ^= zobristSideToMove
	p.SideToMove = p.SideToMove.Other()
	p.Ply++
	return UndoInfo{Move: PassMove, Valid: true}
}

// UnmakePass restores the position before MakePass.
func (p *Position) UnmakePass(undo UndoInfo) {
	if !undo.Valid {
		return
	}
	p.Hash ^= zobristSideToMove
	p.SideToMove = p.SideToMove.Other()
	p.Ply--
}

// HasLegalMove returns true if the color has at least one legal move.
func (p *Position) HasLegalMove(c Color) bool {
	return p.LegalMoves(c).More()
}

// IsTerminal returns true when neither side has a legal move.
func (p *Position) IsTerminal() bool {
	return p.LegalMoves(Black) == 0 && p.LegalMoves(White) == 0
}

// Score returns the disc differential from Black's perspective.
func (p *Position) Score() int {
	return p.CountDiscs(Black) - p.CountDiscs(White)
}

// Winner returns the winning color of a terminal position, or false for
// a draw. Calling it on a non-terminal position is meaningless; callers
// check IsTerminal first.
func (p *Position) Winner() (Color, bool) {
	diff := p.Score()
	switch {
	case diff > 0:
		return Black, true
	case diff < 0:
		return White, true
	}
	return Black, false
}

// computeHash recalculates the Zobrist hash from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for c := Black; c <= White; c++ {
		for bb := p.Discs[c]; bb != 0; {
			h ^= zobristDisc[c][bb.PopLSB()]
		}
	}
	if p.SideToMove == White {
		h ^= zobristSideToMove
	}
	return h
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if c, ok := p.DiscAt(sq); ok {
				if c == Black {
					s += "X "
				} else {
					s += "O "
				}
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Discs: %d black, %d white\n", p.CountDiscs(Black), p.CountDiscs(White))
	return s
}
