package engine

import (
	"github.com/foxzool/reversi/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore  = 10000000 // TT move gets highest priority
	KillerScore1 = 900000   // First killer move
	KillerScore2 = 800000   // Second killer move
)

// staticMoveScores ranks cells before any search history exists.
// Corners first, X-squares last. Scaled up so the static ordering
// dominates early history noise but never a killer.
var staticMoveScores = func() [64]int {
	var s [64]int
	for sq := board.A1; sq <= board.H8; sq++ {
		s[sq] = positionWeights[sq] * 100
	}
	return s
}()

// MoveOrderer handles move ordering for the search.
type MoveOrderer struct {
	// Killer moves (moves that caused beta cutoffs at the same ply)
	killers [MaxPly][2]board.Move

	// History heuristic, indexed by target cell
	history [64]int
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.Clear()
	return mo
}

// Clear resets killers and ages the history for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}

	// Age history scores (divide by 2 to prevent overflow)
	for i := range mo.history {
		mo.history[i] /= 2
	}
}

// ScoreMoves assigns ordering scores to the given moves.
func (mo *MoveOrderer) ScoreMoves(moves []board.Move, ply int, ttMove board.Move) []int {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = mo.scoreMove(m, ply, ttMove)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return TTMoveScore
	}
	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}
	sq := m.Square()
	return staticMoveScores[sq] + mo.history[sq]
}

// UpdateKiller records a move that caused a beta cutoff.
func (mo *MoveOrderer) UpdateKiller(m board.Move, ply int) {
	if m != mo.killers[ply][0] {
		mo.killers[ply][1] = mo.killers[ply][0]
		mo.killers[ply][0] = m
	}
}

// UpdateHistory rewards a cutoff move proportionally to depth.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	mo.history[m.Square()] += depth * depth
}

// PickMove selects the best remaining move by a single selection-sort
// step, swapping it into position idx. Cheaper than a full sort when a
// cutoff usually ends the loop after a move or two.
func PickMove(moves []board.Move, scores []int, idx int) board.Move {
	best := idx
	for i := idx + 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	moves[idx], moves[best] = moves[best], moves[idx]
	scores[idx], scores[best] = scores[best], scores[idx]
	return moves[idx]
}
