package board

import (
	"fmt"
	"strings"
)

// ParseBoard parses a board diagram into a Position. The format is
// eight ranks from rank 8 down to rank 1 separated by '/', each rank
// eight characters ('X' black, 'O' white, '-' empty), followed by a
// space and the side to move ("b" or "w"). Example start position:
//
//	--------/--------/--------/---OX---/---XO---/--------/--------/-------- b
func ParseBoard(s string) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, fmt.Errorf("invalid board: expected \"<grid> <side>\", got %q", s)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid board: expected 8 ranks, got %d", len(ranks))
	}

	p := &Position{}
	for i, row := range ranks {
		if len(row) != 8 {
			return nil, fmt.Errorf("invalid board: rank %d has %d cells", 8-i, len(row))
		}
		rank := 7 - i
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			switch row[file] {
			case 'X', 'x':
				p.Discs[Black] = p.Discs[Black].Set(sq)
			case 'O', 'o':
				p.Discs[White] = p.Discs[White].Set(sq)
			case '-', '.':
				// empty
			default:
				return nil, fmt.Errorf("invalid board: unknown cell %q at %s", row[file], sq)
			}
		}
	}

	side, err := ParseColor(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}
	p.SideToMove = side
	p.Ply = p.DiscCount() - 4
	if p.Ply < 0 {
		p.Ply = 0
	}
	p.Hash = p.computeHash()
	return p, nil
}

// FormatBoard renders a Position in the format accepted by ParseBoard.
func FormatBoard(p *Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if c, ok := p.DiscAt(sq); ok {
				if c == Black {
					sb.WriteByte('X')
				} else {
					sb.WriteByte('O')
				}
			} else {
				sb.WriteByte('-')
			}
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}
