package board

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is returned at API boundaries when a move is not legal
// in the position it was submitted for.
var ErrInvalidMove = errors.New("invalid move")

// Move encodes an Othello move as the target cell index (0-63).
// The discs it flips are implied by the position it is played in.
// Two sentinel values exist: PassMove for a forced pass when a side
// has no legal move, and NoMove for "no move available/selected".
type Move uint8

const (
	// PassMove is the forced turn pass played when a side has no legal move.
	PassMove Move = 64

	// NoMove represents an invalid or absent move.
	NoMove Move = 65
)

// NewMove creates a move targeting the given cell.
func NewMove(sq Square) Move {
	return Move(sq)
}

// Square returns the target cell of the move.
func (m Move) Square() Square {
	return Square(m)
}

// IsPass returns true if the move is a turn pass.
func (m Move) IsPass() bool {
	return m == PassMove
}

// IsValid returns true for a playable cell move or a pass.
func (m Move) IsValid() bool {
	return m <= PassMove
}

// String returns the algebraic notation of the move (e.g., "d3"),
// "pass" for a pass, or "none" for NoMove.
func (m Move) String() string {
	switch {
	case m == NoMove:
		return "none"
	case m == PassMove:
		return "pass"
	default:
		return m.Square().String()
	}
}

// ParseMove parses algebraic notation (e.g., "d3") or "pass" into a Move.
func ParseMove(s string) (Move, error) {
	if s == "pass" {
		return PassMove, nil
	}
	sq, err := ParseSquare(s)
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return NewMove(sq), nil
}
