package engine

import (
	"github.com/foxzool/reversi/internal/board"
)

// Evaluation constants
const (
	cornerValue    = 100
	mobilityValue  = 30
	stabilityValue = 50
	parityValue    = 10

	// terminalScale multiplies the final disc differential so that any
	// decided game outranks every heuristic score.
	terminalScale = 10000
)

// GamePhase identifies which weight set applies to a position.
type GamePhase int

const (
	Opening GamePhase = iota
	Midgame
	Endgame
)

// String returns the phase name.
func (gp GamePhase) String() string {
	switch gp {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	default:
		return "endgame"
	}
}

// Evaluation component indices into the phase weight table.
const (
	compCorner = iota
	compStability
	compMobility
	compPositional
	compParity
	numComponents
)

// phaseWeights blends the component scores per game phase. Mobility
// dominates the opening, corners and stability take over later, parity
// matters most when the board is nearly full.
var phaseWeights = [3][numComponents]float64{
	Opening: {0.8, 0.6, 1.0, 0.8, 0.2},
	Midgame: {1.0, 0.8, 0.6, 0.6, 0.4},
	Endgame: {1.0, 1.0, 0.2, 0.4, 0.8},
}

// positionWeights scores each cell by long-term value. Corners are
// gold, X-squares and C-squares next to an unclaimed corner are
// liabilities, edges are mildly good. Symmetric in both axes, so rank
// ordering does not matter.
var positionWeights = [64]int{
	100, -20, 10, 5, 5, 10, -20, 100,
	-20, -50, -2, -2, -2, -2, -50, -20,
	10, -2, -1, -1, -1, -1, -2, 10,
	5, -2, -1, -1, -1, -1, -2, 5,
	5, -2, -1, -1, -1, -1, -2, 5,
	10, -2, -1, -1, -1, -1, -2, 10,
	-20, -50, -2, -2, -2, -2, -50, -20,
	100, -20, 10, 5, 5, 10, -20, 100,
}

// Phase returns the game phase for a position, based on the number of
// moves played (discs on the board beyond the initial four).
func Phase(pos *board.Position) GamePhase {
	moves := pos.DiscCount() - 4
	switch {
	case moves <= 20:
		return Opening
	case moves <= 45:
		return Midgame
	default:
		return Endgame
	}
}

// Evaluate returns a static score for the position from the given
// side's perspective. Terminal positions collapse to the scaled disc
// differential; otherwise five weighted components are blended by phase.
func Evaluate(pos *board.Position, side board.Color) int {
	if pos.IsTerminal() {
		return TerminalScore(pos, side)
	}

	w := &phaseWeights[Phase(pos)]
	score := w[compCorner]*float64(cornerScore(pos, side)) +
		w[compStability]*float64(stabilityScore(pos, side)) +
		w[compMobility]*float64(mobilityScore(pos, side)) +
		w[compPositional]*float64(positionalScore(pos, side)) +
		w[compParity]*float64(parityScore(pos, side))

	return int(score)
}

// TerminalScore returns the scaled disc differential of a finished game
// from the given side's perspective.
func TerminalScore(pos *board.Position, side board.Color) int {
	diff := pos.CountDiscs(side) - pos.CountDiscs(side.Other())
	return diff * terminalScale
}

func cornerScore(pos *board.Position, side board.Color) int {
	own := (pos.Discs[side] & board.CornerMask).PopCount()
	opp := (pos.Discs[side.Other()] & board.CornerMask).PopCount()
	return (own - opp) * cornerValue
}

func mobilityScore(pos *board.Position, side board.Color) int {
	return (pos.Mobility(side) - pos.Mobility(side.Other())) * mobilityValue
}

func positionalScore(pos *board.Position, side board.Color) int {
	score := 0
	for bb := pos.Discs[side]; bb != 0; {
		score += positionWeights[bb.PopLSB()]
	}
	for bb := pos.Discs[side.Other()]; bb != 0; {
		score -= positionWeights[bb.PopLSB()]
	}
	return score
}

func stabilityScore(pos *board.Position, side board.Color) int {
	own := StableDiscs(pos, side).PopCount()
	opp := StableDiscs(pos, side.Other()).PopCount()
	return (own - opp) * stabilityValue
}

// parityScore favors the side expected to place the last disc. With an
// odd number of empty cells that is the side to move, assuming neither
// side runs out of moves first.
func parityScore(pos *board.Position, side board.Color) int {
	lastMover := pos.SideToMove
	if pos.Empties().PopCount()%2 == 0 {
		lastMover = pos.SideToMove.Other()
	}
	if lastMover == side {
		return parityValue
	}
	return -parityValue
}

// stabilityAxes pairs the two directions of each flip axis.
var stabilityAxes = [4][2][2]int{
	{{1, 0}, {-1, 0}},  // horizontal
	{{0, 1}, {0, -1}},  // vertical
	{{1, 1}, {-1, -1}}, // diagonal
	{{1, -1}, {-1, 1}}, // anti-diagonal
}

// StableDiscs returns the discs of the given color that can never be
// flipped again. Computed as a fixpoint seeded by owned corners: a disc
// is stable when, in every axis, it touches the board edge, sits on a
// fully occupied line, or leans on a stable own disc. Conservative: it
// may miss some stable discs but never claims an unstable one.
func StableDiscs(pos *board.Position, c board.Color) board.Bitboard {
	own := pos.Discs[c]
	occ := pos.Occupied()

	stable := own & board.CornerMask
	for changed := true; changed; {
		changed = false
		for bb := own &^ stable; bb != 0; {
			sq := bb.PopLSB()
			if discStable(sq, own, occ, stable) {
				stable = stable.Set(sq)
				changed = true
			}
		}
	}
	return stable
}

func discStable(sq board.Square, own, occ, stable board.Bitboard) bool {
	for _, axis := range stabilityAxes {
		if !axisStable(sq, axis, own, occ, stable) {
			return false
		}
	}
	return true
}

func axisStable(sq board.Square, axis [2][2]int, own, occ, stable board.Bitboard) bool {
	// A flip along this axis needs an empty cell somewhere on the line
	// and room on both sides of the disc.
	for _, d := range axis {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return true
		}
		n := board.NewSquare(f, r)
		if own.IsSet(n) && stable.IsSet(n) {
			return true
		}
	}

	// Fully occupied line: no placement can ever happen on it.
	for _, d := range axis {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			if !occ.IsSet(board.NewSquare(f, r)) {
				return false
			}
			f += d[0]
			r += d[1]
		}
	}
	return true
}
