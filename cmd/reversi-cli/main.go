// Command reversi-cli runs the engine behind a line-based text
// protocol, for scripted play and debugging.
//
// Commands:
//
//	position startpos [moves f5 d6 ...]
//	position board <diagram> <side> [moves ...]
//	go [depth N] [movetime MS] [difficulty NAME]
//	apply <move>      play a move on the current position
//	moves             list legal moves for the side to move
//	d                 print the current position
//	eval              print the static evaluation
//	newgame           reset position and engine caches
//	stop              stop the running search
//	quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foxzool/reversi/internal/board"
	"github.com/foxzool/reversi/internal/book"
	"github.com/foxzool/reversi/internal/engine"
)

type cli struct {
	engine   *engine.Engine
	book     *book.Book
	position *board.Position

	searchDone chan struct{}
}

func newCLI(ttSizeMB int) *cli {
	e := engine.NewEngine(ttSizeMB)
	e.OnInfo = func(info engine.SearchInfo) {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		fmt.Printf("info depth %d score %d nodes %d time %d pv %s\n",
			info.Depth, info.Score, info.Nodes, info.Time.Milliseconds(), strings.Join(pv, " "))
	}

	return &cli{
		engine:   e,
		book:     book.Builtin(),
		position: board.NewPosition(),
	}
}

func (c *cli) run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "position":
			c.handlePosition(args)
		case "go":
			c.handleGo(args)
		case "stop":
			c.engine.Stop()
		case "apply":
			c.handleApply(args)
		case "moves":
			c.handleMoves()
		case "d":
			fmt.Println(c.position.String())
		case "eval":
			fmt.Printf("eval %d phase %s\n",
				c.engine.Evaluate(c.position), engine.Phase(c.position))
		case "newgame":
			c.engine.Clear()
			c.position = board.NewPosition()
		case "quit":
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

// handlePosition sets up a position.
// Formats:
//   - position startpos [moves f5 d6 ...]
//   - position board <diagram> <side> [moves f5 d6 ...]
func (c *cli) handlePosition(args []string) {
	if len(args) == 0 {
		fmt.Println("error: position needs startpos or board")
		return
	}

	var pos *board.Position
	var moveStart int

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		moveStart = 1
	case "board":
		if len(args) < 3 {
			fmt.Println("error: position board needs <diagram> <side>")
			return
		}
		var err error
		pos, err = board.ParseBoard(args[1] + " " + args[2])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		moveStart = 3
	default:
		fmt.Printf("error: unknown position mode %q\n", args[0])
		return
	}

	if moveStart < len(args) && args[moveStart] == "moves" {
		for _, s := range args[moveStart+1:] {
			m, err := board.ParseMove(s)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			if undo := pos.MakeMove(m); !undo.Valid {
				fmt.Printf("error: illegal move %s\n", m)
				return
			}
		}
	}

	c.position = pos
}

// handleGo starts a search. The search runs in its own goroutine so
// that "stop" stays responsive on stdin.
func (c *cli) handleGo(args []string) {
	if c.searchDone != nil {
		select {
		case <-c.searchDone:
		default:
			fmt.Println("error: search already running")
			return
		}
	}

	limits := engine.SearchLimits{Depth: 8}
	useBook := false

	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "depth":
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				limits.Depth = v
			}
		case "movetime":
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				limits.MoveTime = time.Duration(v) * time.Millisecond
			}
		case "difficulty":
			d, err := engine.ParseDifficulty(args[i+1])
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			params := engine.DifficultySettings[d]
			limits = engine.SearchLimits{Depth: params.Depth, MoveTime: params.MoveTime}
			useBook = params.UseBook
		}
	}

	if useBook {
		if m, ok := c.book.Probe(c.position); ok {
			fmt.Printf("bestmove %s book\n", m)
			return
		}
	}

	pos := c.position.Copy()
	done := make(chan struct{})
	c.searchDone = done
	go func() {
		defer close(done)
		result := c.engine.Search(pos, limits)
		fmt.Printf("bestmove %s score %d depth %d nodes %d\n",
			result.Move, result.Score, result.Depth, result.Nodes)
	}()
}

func (c *cli) handleApply(args []string) {
	if len(args) != 1 {
		fmt.Println("error: apply needs one move")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if undo := c.position.MakeMove(m); !undo.Valid {
		fmt.Printf("error: illegal move %s\n", m)
		return
	}
	if c.position.IsTerminal() {
		winner, ok := c.position.Winner()
		switch {
		case !ok:
			fmt.Println("gameover draw")
		default:
			fmt.Printf("gameover winner %s score %d\n", winner, c.position.Score())
		}
	}
}

func (c *cli) handleMoves() {
	moves := c.position.LegalMoveList(c.position.SideToMove)
	if len(moves) == 0 {
		fmt.Println("moves pass")
		return
	}
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	fmt.Printf("moves %s\n", strings.Join(out, " "))
}

func main() {
	ttSize := flag.Int("hash", 64, "transposition table size in MB")
	flag.Parse()

	newCLI(*ttSize).run()
}
