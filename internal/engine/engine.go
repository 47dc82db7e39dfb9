package engine

import (
	"time"

	"github.com/foxzool/reversi/internal/board"
)

// SearchInfo reports progress after each completed depth.
type SearchInfo struct {
	Depth    int           `json:"depth"`
	Score    int           `json:"score"`
	Nodes    uint64        `json:"nodes"`
	Time     time.Duration `json:"time"`
	PV       []board.Move  `json:"pv"`
	HashFull int           `json:"hashFull"` // Permille of hash table used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit)
	MoveTime time.Duration // Time budget for this move (0 = no limit)
}

// SearchResult is the outcome of a completed search.
type SearchResult struct {
	Move     board.Move    `json:"move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"` // Deepest fully completed depth
	Nodes    uint64        `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	TimedOut bool          `json:"timedOut"`
}

// Engine is the Othello AI engine. One search runs at a time; Stop may
// be called from another goroutine and has the same effect as the time
// budget running out.
type Engine struct {
	searcher *Searcher
	tt       *TranspositionTable
	tm       *TimeManager

	// OnInfo, when set, is called after every completed depth.
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine with the given transposition table size in MB.
func NewEngine(ttSizeMB int) *Engine {
	return NewEngineWithTable(NewTranspositionTable(ttSizeMB))
}

// NewEngineWithTable creates an engine sharing an existing table.
// Multiple engines may share one table concurrently.
func NewEngineWithTable(tt *TranspositionTable) *Engine {
	return &Engine{
		searcher: NewSearcher(tt),
		tt:       tt,
		tm:       NewTimeManager(),
	}
}

// Search runs iterative deepening within the given limits and returns
// the best move found at the deepest fully completed depth. Depths
// interrupted by the budget or Stop are discarded. A terminal position
// yields NoMove with the final score; a blocked side yields PassMove.
func (e *Engine) Search(pos *board.Position, limits SearchLimits) SearchResult {
	e.searcher.Reset()
	e.tt.NewSearch()
	e.tm.Start(limits.MoveTime)

	if pos.IsTerminal() {
		return SearchResult{
			Move:    board.NoMove,
			Score:   TerminalScore(pos, pos.SideToMove),
			Elapsed: e.tm.Elapsed(),
		}
	}
	moves := pos.LegalMoveList(pos.SideToMove)
	if len(moves) == 0 {
		return SearchResult{
			Move:    board.PassMove,
			Score:   Evaluate(pos, pos.SideToMove),
			Elapsed: e.tm.Elapsed(),
		}
	}

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	// Hard deadline: flip the stop flag mid-depth so the iteration is
	// abandoned instead of overrunning the budget.
	if limits.MoveTime > 0 {
		timer := time.AfterFunc(limits.MoveTime, e.searcher.Stop)
		defer timer.Stop()
	}

	result := SearchResult{Move: board.NoMove, Score: -Infinity}

	for depth := 1; depth <= maxDepth; depth++ {
		if e.tm.SoftExpired() {
			result.TimedOut = true
			break
		}

		move, score := e.searcher.SearchDepth(pos, depth)
		if e.searcher.IsStopped() {
			result.TimedOut = true
			break
		}

		result.Move = move
		result.Score = score
		result.Depth = depth

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     e.tm.Elapsed(),
				PV:       e.searcher.PV(),
				HashFull: e.tt.HashFull(),
			})
		}

		// A proven final outcome cannot improve with more depth.
		if score >= terminalScale || score <= -terminalScale {
			break
		}
	}

	// Stopped before depth 1 finished: fall back to the first legal
	// move rather than returning nothing.
	if result.Move == board.NoMove {
		result.Move = moves[0]
		result.Score = Evaluate(pos, pos.SideToMove)
		result.Depth = 0
	}

	result.Nodes = e.searcher.Nodes()
	result.Elapsed = e.tm.Elapsed()
	return result
}

// Stop aborts the search in flight, if any. The search returns the
// last fully completed depth, exactly as on budget exhaustion.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear wipes the transposition table and move ordering state.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.searcher.orderer.Clear()
}

// Table exposes the transposition table for snapshotting.
func (e *Engine) Table() *TranspositionTable {
	return e.tt
}

// Evaluate returns the static evaluation from the side to move's perspective.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos, pos.SideToMove)
}
