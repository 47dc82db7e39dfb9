package engine

import (
	"sync/atomic"

	"github.com/foxzool/reversi/internal/board"
)

// Search constants
const (
	// Infinity exceeds any reachable score, including a 64-disc sweep
	// at terminal scale.
	Infinity = 1000000

	MaxPly = 64

	// stopCheckMask throttles stop-flag polls to once every 4096 nodes.
	stopCheckMask = 4095
)

// PVTable stores the principal variation per ply (triangular layout).
type PVTable struct {
	length [MaxPly + 1]int
	moves  [MaxPly + 1][MaxPly + 1]board.Move
}

func (pv *PVTable) clear(ply int) {
	pv.length[ply] = 0
}

func (pv *PVTable) update(ply int, m board.Move) {
	pv.moves[ply][0] = m
	copy(pv.moves[ply][1:], pv.moves[ply+1][:pv.length[ply+1]])
	pv.length[ply] = pv.length[ply+1] + 1
}

// Line returns the principal variation from the root.
func (pv *PVTable) Line() []board.Move {
	line := make([]board.Move, pv.length[0])
	copy(line, pv.moves[0][:pv.length[0]])
	return line
}

// Searcher performs the alpha-beta search on its own position copy.
type Searcher struct {
	pos      *board.Position
	tt       *TranspositionTable
	orderer  *MoveOrderer
	pv       PVTable
	nodes    uint64
	stopFlag atomic.Bool

	// stopped caches a detected stop so the whole tree unwinds without
	// re-reading the atomic at every node.
	stopped bool
}

// NewSearcher creates a new searcher backed by the given table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.stopped = false
	s.nodes = 0
	s.orderer.Clear()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// PV returns the principal variation from the last completed depth.
func (s *Searcher) PV() []board.Move {
	return s.pv.Line()
}

// SearchDepth searches the position to a fixed depth and returns the
// best move with its score from the side to move's perspective. Returns
// NoMove when stopped before the first root move completes; a stopped
// search's results are discarded by the caller either way.
func (s *Searcher) SearchDepth(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()

	moves := s.pos.LegalMoveList(s.pos.SideToMove)
	if len(moves) == 0 {
		return board.NoMove, 0
	}

	var ttMove board.Move = board.NoMove
	if entry, ok := s.tt.Probe(s.pos.Hash); ok {
		ttMove = entry.BestMove
	}
	scores := s.orderer.ScoreMoves(moves, 0, ttMove)

	bestMove := board.NoMove
	bestScore := -Infinity
	alpha, beta := -Infinity, Infinity

	for i := range moves {
		m := PickMove(moves, scores, i)

		undo := s.pos.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		s.pos.UnmakeMove(undo)

		if s.stopFlag.Load() {
			return board.NoMove, 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			s.pv.update(0, m)
		}
		if score > alpha {
			alpha = score
		}
	}

	s.tt.Store(s.pos.Hash, depth, bestScore, TTExact, bestMove)
	return bestMove, bestScore
}

// negamax searches to the given remaining depth with alpha-beta bounds.
// Scores are always from the side to move's perspective.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.stopped {
		return 0
	}
	if s.nodes&stopCheckMask == 0 && s.stopFlag.Load() {
		s.stopped = true
		return 0
	}

	s.pv.clear(ply)
	pos := s.pos
	us := pos.SideToMove

	if ply >= MaxPly {
		return Evaluate(pos, us)
	}

	moves := pos.LegalMoveList(us)
	if len(moves) == 0 {
		// A blocked side passes without consuming depth. Both sides
		// blocked means the game is over.
		if !pos.HasLegalMove(us.Other()) {
			return TerminalScore(pos, us)
		}
		undo := pos.MakePass()
		score := -s.negamax(depth, ply+1, -beta, -alpha)
		pos.UnmakePass(undo)
		return score
	}

	if depth <= 0 {
		return Evaluate(pos, us)
	}

	alphaOrig := alpha
	var ttMove board.Move = board.NoMove
	if entry, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	scores := s.orderer.ScoreMoves(moves, ply, ttMove)

	bestMove := board.NoMove
	bestScore := -Infinity

	for i := range moves {
		m := PickMove(moves, scores, i)

		undo := pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(undo)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			s.pv.update(ply, m)
		}
		if alpha >= beta {
			s.orderer.UpdateKiller(m, ply)
			s.orderer.UpdateHistory(m, depth)
			break
		}
	}

	// Scores computed after a stop are garbage; keep them out of the table.
	if !s.stopped {
		flag := TTExact
		if bestScore <= alphaOrig {
			flag = TTUpperBound
		} else if bestScore >= beta {
			flag = TTLowerBound
		}
		s.tt.Store(pos.Hash, depth, bestScore, flag, bestMove)
	}

	return bestScore
}
