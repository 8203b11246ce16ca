package board

// Zobrist hash keys, generated once from a fixed-seed PRNG so that hashes
// are reproducible across runs and builds.
var (
	ZobristPieceKey  [2][7][64]uint64 // [Color][PieceType][Square], 7 slots to tolerate NoPieceType lookups
	ZobristEPKey     [8]uint64        // one per file
	ZobristCastleKey [16]uint64       // one per castling-rights bitmask
	ZobristSTM       uint64
)

func init() {
	initZobrist()
}

// xorshiftPRNG is a small, fast, deterministic PRNG (xorshift64*) used only
// to seed Zobrist keys at startup.
type xorshiftPRNG struct{ state uint64 }

func newXorshiftPRNG(seed uint64) *xorshiftPRNG { return &xorshiftPRNG{state: seed} }

func (p *xorshiftPRNG) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newXorshiftPRNG(0x98F107A2BEEF1234)
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				ZobristPieceKey[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		ZobristEPKey[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		ZobristCastleKey[i] = rng.next()
	}
	ZobristSTM = rng.next()
}
