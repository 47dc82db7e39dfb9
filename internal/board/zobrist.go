package board

// Zobrist hash keys for position hashing.
// Uses a PRNG with a fixed seed for reproducibility.
var (
	zobristDisc       [2][64]uint64 // [Color][Square]
	zobristSideToMove uint64        // XOR when white to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x6C077364E1D96A42) // Fixed seed

	for c := Black; c <= White; c++ {
		for sq := A1; sq <= H8; sq++ {
			zobristDisc[c][sq] = rng.next()
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristDisc returns the Zobrist key for a disc of the given color on a square.
func ZobristDisc(c Color, sq Square) uint64 {
	return zobristDisc[c][sq]
}

// ZobristSideToMove returns the Zobrist key toggled when the side to move changes.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// zobristFlip is the key delta for changing a disc's owner on a square.
// Flipping toggles both color keys at once.
func zobristFlip(sq Square) uint64 {
	return zobristDisc[Black][sq] ^ zobristDisc[White][sq]
}
