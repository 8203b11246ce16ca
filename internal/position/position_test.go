package position

import (
	"testing"

	"github.com/cetincan0/gochess/internal/board"
)

// recomputeHash rebuilds the Zobrist hash from scratch the way computeHash
// does at FEN-load time, used here to check Info.Hash never drifts from the
// incremental XOR updates applied by MakeMove/UnmakeMove.
func recomputeHash(p *Position) uint64 { return p.computeHash() }

func mustMove(t *testing.T, p *Position, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s, p.PieceAt, p.EnPassant())
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

// TestMakeUnmakeRoundTrip walks a short game and checks, after every single
// make/undo pair, that the Position is bitwise identical to before the move
// (spec §8's central invariant).
func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos := NewPosition()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5a4", "g8f6"}

	for _, s := range moves {
		before := *pos
		m := mustMove(t, pos, s)
		pos.MakeMove(m)
		pos.UnmakeMove(m)
		after := *pos

		if before.Pieces != after.Pieces {
			t.Fatalf("%s: Pieces differ after make/undo", s)
		}
		if before.Occupied != after.Occupied || before.AllOccupied != after.AllOccupied {
			t.Fatalf("%s: occupancy differs after make/undo", s)
		}
		if before.KingSquare != after.KingSquare {
			t.Fatalf("%s: KingSquare differs after make/undo", s)
		}
		if before.SideToMove != after.SideToMove {
			t.Fatalf("%s: SideToMove differs after make/undo", s)
		}
		if before.Hash() != after.Hash() {
			t.Fatalf("%s: Hash differs after make/undo", s)
		}
		if before.top != after.top {
			t.Fatalf("%s: stack top differs after make/undo", s)
		}

		// Actually make the move to advance the game for the next iteration.
		pos.MakeMove(m)
	}
}

// TestMakeUnmakeSpecialMoves exercises castling, en-passant, and promotion,
// each of which touches more than one piece/square pair per make-move.
func TestMakeUnmakeSpecialMoves(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
	}{
		{"kingside-castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1"},
		{"queenside-castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1"},
		{"en-passant", "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "d4e3"},
		{"promotion", "8/P6k/8/8/8/8/8/7K w - - 0 1", "a7a8q"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			before := *pos
			m := mustMove(t, pos, tc.move)
			pos.MakeMove(m)
			if pos.Hash() != recomputeHash(pos) {
				t.Errorf("%s: hash drifted from recompute-from-scratch after make", tc.name)
			}
			pos.UnmakeMove(m)
			after := *pos
			if before.Pieces != after.Pieces || before.Hash() != after.Hash() {
				t.Errorf("%s: position not restored by undo", tc.name)
			}
		})
	}
}

// TestEnPassantOnlyRecordedWhenCapturable checks that a double pawn push
// records an en-passant target (and hashes it) only when an enemy pawn
// stands ready to capture; otherwise transpositions differing only by a
// dead ep square would get distinct hashes.
func TestEnPassantOnlyRecordedWhenCapturable(t *testing.T) {
	pos := NewPosition()
	pos.MakeMove(mustMove(t, pos, "e2e4"))
	if ep := pos.EnPassant(); ep != board.NoSquare {
		t.Errorf("EnPassant() = %v after e2e4 with no black pawn adjacent, want none", ep)
	}

	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.MakeMove(mustMove(t, pos, "e2e4"))
	if ep := pos.EnPassant(); ep != board.E3 {
		t.Errorf("EnPassant() = %v after e2e4 with a black pawn on d4, want e3", ep)
	}
	if pos.Hash() != recomputeHash(pos) {
		t.Errorf("hash drifted from recompute after capturable double push")
	}
}

// TestMakeNullMoveRoundTrip checks the null-move fast path used by search's
// null-move pruning: side flips, en-passant clears, hash round-trips.
func TestMakeNullMoveRoundTrip(t *testing.T) {
	pos := NewPosition()
	before := *pos
	pos.MakeNullMove()
	if pos.SideToMove == before.SideToMove {
		t.Errorf("MakeNullMove did not flip side to move")
	}
	pos.UnmakeNullMove()
	if pos.SideToMove != before.SideToMove || pos.Hash() != before.Hash() {
		t.Errorf("UnmakeNullMove did not restore side/hash")
	}
}

// TestHashMatchesRecompute is spec §8's standalone invariant: the
// incrementally-maintained hash always equals a from-scratch recomputation.
func TestHashMatchesRecompute(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if pos.Hash() != recomputeHash(pos) {
			t.Errorf("hash mismatch for %q", fen)
		}
	}
}

// TestOccupancyInvariants checks invariant 1/2 from spec §3: every square is
// in at most one piece bitboard and the aggregates agree with their unions.
func TestOccupancyInvariants(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var union board.Bitboard
	for c := board.White; c <= board.Black; c++ {
		var colorUnion board.Bitboard
		for pt := board.Pawn; pt <= board.King; pt++ {
			colorUnion |= pos.Pieces[c][pt]
		}
		if colorUnion != pos.Occupied[c] {
			t.Errorf("color %v: union of piece boards != Occupied", c)
		}
		union |= pos.Occupied[c]
	}
	if union != pos.AllOccupied {
		t.Errorf("union of color boards != AllOccupied")
	}
	if pos.Occupied[board.White]&pos.Occupied[board.Black] != 0 {
		t.Errorf("White and Black occupancy overlap")
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		bit := board.SquareBB(sq)
		if piece == board.NoPiece {
			if pos.AllOccupied&bit != 0 {
				t.Errorf("square %v empty in mailbox but occupied in bitboards", sq)
			}
			continue
		}
		if pos.Pieces[piece.Color()][piece.Type()]&bit == 0 {
			t.Errorf("square %v has mailbox piece %v but bit missing from its bitboard", sq, piece)
		}
	}
}

// TestKingSquareInvariant checks invariant 3: KingSquare always points at
// the single set bit of that color's king bitboard.
func TestKingSquareInvariant(t *testing.T) {
	pos := NewPosition()
	for _, c := range []board.Color{board.White, board.Black} {
		kingBB := pos.Pieces[c][board.King]
		if kingBB.PopCount() != 1 {
			t.Fatalf("color %v: king bitboard has %d bits", c, kingBB.PopCount())
		}
		if kingBB.LSB() != pos.KingSquare[c] {
			t.Errorf("color %v: KingSquare = %v, want %v", c, pos.KingSquare[c], kingBB.LSB())
		}
	}
}

func TestIsRepetition(t *testing.T) {
	pos := NewPosition()
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for i, s := range moves {
		m := mustMove(t, pos, s)
		pos.MakeMove(m)
		if i == len(moves)-1 {
			if !pos.IsRepetition(false) {
				t.Errorf("expected threefold repetition after knight shuffle back to start")
			}
		}
	}
}

func TestIsDrawFiftyMove(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/4K3/8/8 w - - 99 60")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := mustMove(t, pos, "e3d3")
	pos.MakeMove(m)
	if !pos.IsDraw() {
		t.Errorf("expected 50-move draw once HalfMoveClock reaches 100")
	}
}

// TestCastlingRightsClearedByKingMove checks that moving the king clears
// both of its own castling rights via CastleMask.
func TestCastlingRightsClearedByKingMove(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := mustMove(t, pos, "e1e2")
	pos.MakeMove(m)
	rights := pos.CastlingRights()
	if rights.CanCastle(board.White, true) || rights.CanCastle(board.White, false) {
		t.Errorf("moving the king should clear both white castling rights, got %s", rights)
	}
	if !rights.CanCastle(board.Black, true) || !rights.CanCastle(board.Black, false) {
		t.Errorf("black castling rights should be untouched, got %s", rights)
	}
}

// TestCastlingRightsClearedByRookMove checks that moving a rook off its
// home square clears only that side's right.
func TestCastlingRightsClearedByRookMove(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := mustMove(t, pos, "h1h2")
	pos.MakeMove(m)
	rights := pos.CastlingRights()
	if rights.CanCastle(board.White, true) {
		t.Errorf("moving the kingside rook should clear WhiteKingSide, got %s", rights)
	}
	if !rights.CanCastle(board.White, false) {
		t.Errorf("queenside right should survive a kingside rook move, got %s", rights)
	}
}
