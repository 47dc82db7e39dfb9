package engine

import (
	"testing"

	"github.com/foxzool/reversi/internal/board"
)

func TestStaticOrderingRanksCells(t *testing.T) {
	best, worst := staticMoveScores[board.A1], staticMoveScores[board.A1]
	for sq := board.B1; sq <= board.H8; sq++ {
		if s := staticMoveScores[sq]; s > best {
			best = s
		} else if s < worst {
			worst = s
		}
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		s := staticMoveScores[sq]
		if sq.IsCorner() != (s == best) {
			t.Errorf("%s: corners and only corners take the best static score (got %d, best %d)", sq, s, best)
		}
		if sq.IsXSquare() != (s == worst) {
			t.Errorf("%s: x-squares and only x-squares take the worst static score (got %d, worst %d)", sq, s, worst)
		}
	}
}

func TestScoreMovePrecedence(t *testing.T) {
	mo := NewMoveOrderer()
	ttMove := board.NewMove(board.D3)
	killer := board.NewMove(board.C4)
	mo.UpdateKiller(killer, 0)

	if got := mo.scoreMove(ttMove, 0, ttMove); got != TTMoveScore {
		t.Errorf("tt move scored %d, want %d", got, TTMoveScore)
	}
	if got := mo.scoreMove(killer, 0, ttMove); got != KillerScore1 {
		t.Errorf("killer scored %d, want %d", got, KillerScore1)
	}
	corner := mo.scoreMove(board.NewMove(board.A1), 0, ttMove)
	xsq := mo.scoreMove(board.NewMove(board.B2), 0, ttMove)
	if corner <= xsq {
		t.Errorf("corner (%d) should outrank the adjacent x-square (%d)", corner, xsq)
	}
}
