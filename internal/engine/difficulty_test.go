package engine

import (
	"math/rand"
	"testing"

	"github.com/foxzool/reversi/internal/board"
)

func TestDifficultySettings(t *testing.T) {
	if DifficultySettings[Expert].MistakeChance != 0 {
		t.Error("expert must never make deliberate mistakes")
	}
	if DifficultySettings[Beginner].UseBook {
		t.Error("beginner should not use the opening book")
	}

	prev := 0
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced, Expert} {
		p := DifficultySettings[d]
		if p.Depth <= prev {
			t.Errorf("%s: depth should increase with difficulty", d)
		}
		prev = p.Depth
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced, Expert} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("round trip failed for %s: %v %v", d, got, err)
		}
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestSelectMoveAlwaysLegal(t *testing.T) {
	e := NewEngine(4)
	p := NewPlayerWithRand(e, Beginner, rand.New(rand.NewSource(1)))

	pos := board.NewPosition()
	for trial := 0; trial < 30; trial++ {
		move, result := p.SelectMove(pos)
		if !pos.LegalMoves(pos.SideToMove).IsSet(move.Square()) {
			t.Fatalf("trial %d: illegal move %s", trial, move)
		}
		if !pos.LegalMoves(pos.SideToMove).IsSet(result.Move.Square()) {
			t.Fatalf("trial %d: search reported illegal move %s", trial, result.Move)
		}
	}
}

func TestMistakePolicyAppliesAfterSearch(t *testing.T) {
	e := NewEngine(4)
	p := NewPlayerWithRand(e, Beginner, rand.New(rand.NewSource(7)))

	pos := board.NewPosition()
	mistakes, agreements := 0, 0
	for trial := 0; trial < 60; trial++ {
		move, result := p.SelectMove(pos)
		if move != result.Move {
			mistakes++
		} else {
			agreements++
		}
	}

	// 30% mistake chance over 60 trials: both outcomes must occur.
	if mistakes == 0 {
		t.Error("beginner never deviated from the search result")
	}
	if agreements == 0 {
		t.Error("beginner never played the search result")
	}
}

func TestExpertNeverDeviates(t *testing.T) {
	e := NewEngine(4)
	p := NewPlayerWithRand(e, Expert, rand.New(rand.NewSource(3)))
	// Shrink the budget so the test stays fast; the mistake policy is
	// what is under test, not the search depth.
	p.params.Depth = 2
	p.params.MoveTime = 0
	p.params.UseBook = false

	pos := board.NewPosition()
	for trial := 0; trial < 10; trial++ {
		move, result := p.SelectMove(pos)
		if move != result.Move {
			t.Fatalf("trial %d: expert deviated from search: %s vs %s", trial, move, result.Move)
		}
	}
}

type fixedBook struct {
	move board.Move
}

func (b fixedBook) Probe(pos *board.Position) (board.Move, bool) {
	return b.move, true
}

func TestBookProbeBeforeSearch(t *testing.T) {
	e := NewEngine(4)
	p := NewPlayerWithRand(e, Advanced, rand.New(rand.NewSource(5)))
	p.Book = fixedBook{move: board.NewMove(board.F5)}

	move, result := p.SelectMove(board.NewPosition())
	if move != board.NewMove(board.F5) {
		t.Errorf("expected book move f5, got %s", move)
	}
	if result.Nodes != 0 {
		t.Error("book hit should skip the search entirely")
	}
}
