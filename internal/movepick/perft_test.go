package movepick

import (
	"testing"

	"github.com/cetincan0/gochess/internal/position"
)

// TestPerftStartingPosition checks move-generator correctness through the
// depths cheap enough to run on every test invocation; the full depth-6
// count from the starting position is exercised separately in
// TestPerftSuite behind -short.
func TestPerftStartingPosition(t *testing.T) {
	pos := position.NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tc := range tests {
		if got := Perft(pos, tc.depth); got != tc.expected {
			t.Errorf("Perft(start, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipeteShallow exercises castling, en-passant, and promotion
// generation together using the "kiwipete" position; depth 4 is cheap
// enough to run unconditionally.
func TestPerftKiwipeteShallow(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
	}
	for _, tc := range tests {
		if got := Perft(pos, tc.depth); got != tc.expected {
			t.Errorf("Perft(kiwipete, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftSuite reproduces the full node-count table from spec §8. These
// depths are expensive (minutes of single-threaded perft), so they are
// skipped under -short.
func TestPerftSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft suite in -short mode")
	}
	cases := []struct {
		name     string
		fen      string
		depth    int
		expected uint64
	}{
		{"startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 6, 119060324},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 5, 193690690},
		{"rook-endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6, 11030083},
		{"underpromotion", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
		{"discovered-check", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 5, 89941194},
		{"semi-open", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 5, 164075551},
		{"pawn-race", "2K2r2/4P3/8/8/8/8/8/3k4 w - - 0 1", 6, 3821001},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := position.ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := Perft(pos, tc.depth); got != tc.expected {
				t.Errorf("Perft(%s, %d) = %d, want %d", tc.name, tc.depth, got, tc.expected)
			}
		})
	}
}
