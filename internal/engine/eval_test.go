package engine

import (
	"testing"

	"github.com/foxzool/reversi/internal/board"
)

func TestEvaluateAntisymmetric(t *testing.T) {
	positions := []string{
		"--------/--------/--------/---OX---/---XO---/--------/--------/-------- b",
		"--------/--------/---X----/---XX---/---XO---/--------/--------/-------- w",
		"X-------/--------/--------/---OX---/---XO---/--------/-------O/-------- b",
	}
	for _, s := range positions {
		p, err := board.ParseBoard(s)
		if err != nil {
			t.Fatal(err)
		}
		black := Evaluate(p, board.Black)
		white := Evaluate(p, board.White)
		if black != -white {
			t.Errorf("%s: Evaluate not antisymmetric: black=%d white=%d", s, black, white)
		}
	}
}

func TestPhaseBoundaries(t *testing.T) {
	cases := []struct {
		discs int
		want  GamePhase
	}{
		{4, Opening},   // move 0
		{24, Opening},  // move 20
		{25, Midgame},  // move 21
		{49, Midgame},  // move 45
		{50, Endgame},  // move 46
		{64, Endgame},  // move 60
	}
	for _, c := range cases {
		p := &board.Position{}
		// Fill the first c.discs cells; phase only reads the count.
		for i := 0; i < c.discs; i++ {
			p.Discs[board.Black] = p.Discs[board.Black].Set(board.Square(i))
		}
		if got := Phase(p); got != c.want {
			t.Errorf("%d discs: expected %s, got %s", c.discs, c.want, got)
		}
	}
}

func TestCornerOwnershipDominatesEarly(t *testing.T) {
	base := "--------/--------/--------/---OX---/---XO---/--------/--------/-------- b"
	withCorner := "--------/--------/--------/---OX---/---XO---/--------/--------/X------- b"

	p1, err := board.ParseBoard(base)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := board.ParseBoard(withCorner)
	if err != nil {
		t.Fatal(err)
	}

	if Evaluate(p2, board.Black) <= Evaluate(p1, board.Black) {
		t.Error("owning a corner should improve black's evaluation")
	}
}

func TestTerminalScoreOverridesHeuristics(t *testing.T) {
	// Full board: 63 black vs 1 white, no moves for either side.
	p, err := board.ParseBoard("XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXO b")
	if err != nil {
		t.Fatal(err)
	}
	want := 62 * terminalScale
	if got := Evaluate(p, board.Black); got != want {
		t.Errorf("expected terminal score %d, got %d", want, got)
	}
	if got := Evaluate(p, board.White); got != -want {
		t.Errorf("expected terminal score %d for white, got %d", -want, got)
	}
}

func TestStableDiscs(t *testing.T) {
	// No corners owned: nothing is provably stable on a sparse board.
	p, err := board.ParseBoard("--------/--------/--------/---OX---/---XO---/--------/--------/-------- b")
	if err != nil {
		t.Fatal(err)
	}
	if got := StableDiscs(p, board.Black); got != 0 {
		t.Errorf("expected no stable discs at start, got %d", got.PopCount())
	}

	// A corner with its edge run is stable.
	p, err = board.ParseBoard("--------/--------/--------/--------/--------/--------/--------/XXX----- b")
	if err != nil {
		t.Fatal(err)
	}
	stable := StableDiscs(p, board.Black)
	for _, sq := range []board.Square{board.A1, board.B1, board.C1} {
		if !stable.IsSet(sq) {
			t.Errorf("%s should be stable behind the a1 corner", sq)
		}
	}

	// A full board is entirely stable.
	p, err = board.ParseBoard("XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/OOOOOOOO/OOOOOOOO/OOOOOOOO/OOOOOOOO b")
	if err != nil {
		t.Fatal(err)
	}
	if got := StableDiscs(p, board.Black).PopCount(); got != 32 {
		t.Errorf("all 32 black discs should be stable on a full board, got %d", got)
	}
	if got := StableDiscs(p, board.White).PopCount(); got != 32 {
		t.Errorf("all 32 white discs should be stable on a full board, got %d", got)
	}
}

func TestParityFavorsLastMover(t *testing.T) {
	// 63 discs placed, one empty: the side to move places the last disc.
	p, err := board.ParseBoard("OOOOOOX-/OOOOOOOO/XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX/OOOOOOOO/OOOOOOOO w")
	if err != nil {
		t.Fatal(err)
	}
	if got := parityScore(p, board.White); got != parityValue {
		t.Errorf("white moves last, expected +%d, got %d", parityValue, got)
	}
	if got := parityScore(p, board.Black); got != -parityValue {
		t.Errorf("black does not move last, expected -%d, got %d", parityValue, got)
	}
}
