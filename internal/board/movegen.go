package board

// LegalMoves returns the set of cells where the given color can legally
// place a disc. A cell is legal when it is empty and placing there
// brackets at least one contiguous run of opponent discs against an own
// disc along some ray.
func (p *Position) LegalMoves(c Color) Bitboard {
	own := p.Discs[c]
	opp := p.Discs[c.Other()]
	empty := ^(own | opp)

	var moves Bitboard
	for _, shift := range directionShifts {
		// Flood along the ray through opponent discs, then step once
		// more: landing on an empty cell completes a bracket.
		candidates := shift(own) & opp
		for candidates != 0 {
			moves |= shift(candidates) & empty
			candidates = shift(candidates) & opp
		}
	}
	return moves
}

// FlippedDiscs returns the opponent discs that placing a disc of color c
// on sq would flip, or 0 if the placement is not a legal move. The cell
// itself must be empty; callers check occupancy first.
func (p *Position) FlippedDiscs(sq Square, c Color) Bitboard {
	own := p.Discs[c]
	opp := p.Discs[c.Other()]
	placed := SquareBB(sq)

	var flipped Bitboard
	for _, shift := range directionShifts {
		// Walk the ray one cell at a time; only the frontier advances,
		// so the scan ends at the first non-opponent cell.
		var run Bitboard
		frontier := shift(placed) & opp
		for frontier != 0 {
			run |= frontier
			frontier = shift(frontier) & opp
		}
		// The run flips only if the cell beyond it holds an own disc.
		if shift(run)&own != 0 {
			flipped |= run
		}
	}
	return flipped
}

// LegalMoveList returns the legal moves for the given color as a slice,
// in ascending cell order.
func (p *Position) LegalMoveList(c Color) []Move {
	bb := p.LegalMoves(c)
	moves := make([]Move, 0, bb.PopCount())
	for bb != 0 {
		moves = append(moves, NewMove(bb.PopLSB()))
	}
	return moves
}

// Mobility returns the number of legal moves for the given color.
func (p *Position) Mobility(c Color) int {
	return p.LegalMoves(c).PopCount()
}
