package board

import (
	"math/rand"
	"testing"
)

// referenceLegalMoves computes legal moves by walking each ray cell by
// cell. Slow but obviously correct, used to cross-check the shift-based
// generator.
func referenceLegalMoves(p *Position, c Color) Bitboard {
	dirs := [8][2]int{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	}

	var moves Bitboard
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if !p.IsEmpty(sq) {
				continue
			}
			for _, d := range dirs {
				f, r := file+d[0], rank+d[1]
				seenOpp := false
				for f >= 0 && f < 8 && r >= 0 && r < 8 {
					cur := NewSquare(f, r)
					owner, ok := p.DiscAt(cur)
					if !ok {
						break
					}
					if owner == c {
						if seenOpp {
							moves = moves.Set(sq)
						}
						break
					}
					seenOpp = true
					f += d[0]
					r += d[1]
				}
				if moves.IsSet(sq) {
					break
				}
			}
		}
	}
	return moves
}

func TestLegalMovesMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 10; game++ {
		p := NewPosition()
		for !p.IsTerminal() {
			for _, c := range []Color{Black, White} {
				got := p.LegalMoves(c)
				want := referenceLegalMoves(p, c)
				if got != want {
					t.Fatalf("game %d ply %d color %s:\ngot\n%s\nwant\n%s\nposition%s",
						game, p.Ply, c, got, want, p)
				}
			}

			var m Move
			if moves := p.LegalMoveList(p.SideToMove); len(moves) > 0 {
				m = moves[rng.Intn(len(moves))]
			} else {
				m = PassMove
			}
			if undo := p.MakeMove(m); !undo.Valid {
				t.Fatalf("game %d: move %s rejected", game, m)
			}
		}
	}
}

func TestFlippedDiscsBoundedRuns(t *testing.T) {
	// Long run anchored by an own disc flips end to end.
	p, err := ParseBoard("--------/--------/--------/--------/--------/--------/--------/XOOOOOO- b")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.FlippedDiscs(H1, Black); got == 0 {
		t.Error("h1 should flip the bounded run b1-g1")
	} else if got.PopCount() != 6 {
		t.Errorf("expected 6 flips, got %d", got.PopCount())
	}

	// Shortest multi-disc run: b1 and c1 against the a1 anchor.
	p2, err := ParseBoard("--------/--------/--------/--------/--------/--------/--------/XOO----- b")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p2.FlippedDiscs(D1, Black), SquareBB(B1)|SquareBB(C1); got != want {
		t.Errorf("d1 flips:\ngot\n%s\nwant\n%s", got, want)
	}

	// Opponent run reaching the board edge must not flip.
	p3, err := ParseBoard("--------/--------/--------/--------/--------/--------/--------/OOOOOOO- b")
	if err != nil {
		t.Fatal(err)
	}
	if got := p3.FlippedDiscs(H1, Black); got != 0 {
		t.Errorf("unbounded run should flip nothing, got %d flips", got.PopCount())
	}
}

func TestFlippedDiscsMultiDirection(t *testing.T) {
	// Placing on d3 brackets two runs at once: north (d4, d5 against
	// the black disc on d6) and east (e3, f3 against g3).
	p, err := ParseBoard("--------/--------/---X----/---O----/---O----/----OOX-/--------/-------- b")
	if err != nil {
		t.Fatal(err)
	}
	flipped := p.FlippedDiscs(D3, Black)
	want := SquareBB(D4) | SquareBB(D5) | SquareBB(E3) | SquareBB(F3)
	if flipped != want {
		t.Errorf("d3 flips:\ngot\n%s\nwant\n%s", flipped, want)
	}
}

func TestMobility(t *testing.T) {
	p := NewPosition()
	if got := p.Mobility(Black); got != 4 {
		t.Errorf("expected mobility 4 for black, got %d", got)
	}
	if got := p.Mobility(White); got != 4 {
		t.Errorf("expected mobility 4 for white, got %d", got)
	}
}
