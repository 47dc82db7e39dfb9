package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/foxzool/reversi/internal/board"
)

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
	Expert
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	case Expert:
		return "expert"
	}
	return "unknown"
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	case "expert":
		return Expert, nil
	}
	return Beginner, fmt.Errorf("invalid difficulty: %q", s)
}

// SearchParams are the per-difficulty playing parameters.
type SearchParams struct {
	Depth         int           // Maximum search depth
	MoveTime      time.Duration // Time budget per move
	MistakeChance float64       // Probability of discarding the best move
	UseBook       bool          // Probe the opening book before searching
}

// DifficultySettings maps each difficulty to its parameters.
var DifficultySettings = map[Difficulty]SearchParams{
	Beginner:     {Depth: 2, MoveTime: 100 * time.Millisecond, MistakeChance: 0.30, UseBook: false},
	Intermediate: {Depth: 4, MoveTime: 500 * time.Millisecond, MistakeChance: 0.15, UseBook: false},
	Advanced:     {Depth: 6, MoveTime: 2 * time.Second, MistakeChance: 0.05, UseBook: true},
	Expert:       {Depth: 12, MoveTime: 5 * time.Second, MistakeChance: 0.0, UseBook: true},
}

// Limits returns the search limits for the difficulty.
func (d Difficulty) Limits() SearchLimits {
	p := DifficultySettings[d]
	return SearchLimits{Depth: p.Depth, MoveTime: p.MoveTime}
}

// BookProber supplies opening moves without searching.
type BookProber interface {
	Probe(pos *board.Position) (board.Move, bool)
}

// Player wraps an engine with a difficulty profile. The mistake policy
// runs strictly after the search: the engine always searches at full
// strength and the weaker tiers occasionally discard its answer, so the
// diagnostics in SearchResult reflect the real search.
type Player struct {
	Engine *Engine
	Book   BookProber

	params SearchParams
	rng    *rand.Rand
}

// NewPlayer creates a player at the given difficulty.
func NewPlayer(e *Engine, d Difficulty) *Player {
	return NewPlayerWithRand(e, d, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPlayerWithRand creates a player with an explicit random source.
func NewPlayerWithRand(e *Engine, d Difficulty, rng *rand.Rand) *Player {
	return &Player{
		Engine: e,
		params: DifficultySettings[d],
		rng:    rng,
	}
}

// SetDifficulty changes the player's difficulty.
func (p *Player) SetDifficulty(d Difficulty) {
	p.params = DifficultySettings[d]
}

// Params returns the active search parameters.
func (p *Player) Params() SearchParams {
	return p.params
}

// SelectMove picks the move to play. The opening book is consulted
// first when enabled; otherwise the engine searches and the mistake
// policy may swap the answer for another legal move. The returned
// SearchResult always describes what the search actually found.
func (p *Player) SelectMove(pos *board.Position) (board.Move, SearchResult) {
	if p.params.UseBook && p.Book != nil {
		if m, ok := p.Book.Probe(pos); ok {
			return m, SearchResult{Move: m}
		}
	}

	result := p.Engine.Search(pos, SearchLimits{
		Depth:    p.params.Depth,
		MoveTime: p.params.MoveTime,
	})

	move := result.Move
	if p.params.MistakeChance > 0 && p.rng.Float64() < p.params.MistakeChance {
		if alt := p.randomOtherMove(pos, move); alt != board.NoMove {
			move = alt
		}
	}
	return move, result
}

// randomOtherMove picks a uniformly random legal move different from
// best, or NoMove when best is the only option.
func (p *Player) randomOtherMove(pos *board.Position, best board.Move) board.Move {
	moves := pos.LegalMoveList(pos.SideToMove)
	others := moves[:0]
	for _, m := range moves {
		if m != best {
			others = append(others, m)
		}
	}
	if len(others) == 0 {
		return board.NoMove
	}
	return others[p.rng.Intn(len(others))]
}
