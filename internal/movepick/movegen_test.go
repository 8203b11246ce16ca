package movepick

import (
	"testing"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func TestGenerateLegalStartingPosition(t *testing.T) {
	pos := position.NewPosition()
	moves := GenerateLegal(pos)
	if moves.Len() != 20 {
		t.Errorf("GenerateLegal(start) = %d moves, want 20", moves.Len())
	}
}

// TestGenerateLegalFiltersPinnedPiece checks that a pinned piece cannot make
// a move that would expose its own king, even though pseudo-legal
// generation includes it.
func TestGenerateLegalFiltersPinnedPiece(t *testing.T) {
	// White king e1, white knight e2 pinned by a black rook on e8; the
	// knight has pseudo-legal moves (e.g. e2c3) that abandon the pin ray
	// and must all be filtered out by legality checking.
	pos, err := position.ParseFEN("4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pseudo := GeneratePseudoLegal(pos)
	legal := GenerateLegal(pos)
	if legal.Len() >= pseudo.Len() {
		t.Fatalf("pinned knight should shrink the legal set below pseudo-legal: legal=%d pseudo=%d", legal.Len(), pseudo.Len())
	}
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() == board.E2 && m.To().File() != 4 {
			t.Errorf("legal move %s leaves the pinned knight off the e-file pin ray", m)
		}
	}
}

// TestGenerateLegalInCheckOnlyEvasions checks that every legal move in a
// position where the king is in check leaves the king no longer attacked.
func TestGenerateLegalInCheckOnlyEvasions(t *testing.T) {
	pos, err := position.ParseFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.InCheck() {
		t.Fatalf("expected white king in check from the rook on e2")
	}
	moves := GenerateLegal(pos)
	if moves.Len() == 0 {
		t.Fatalf("expected at least one legal evasion")
	}
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		if pos.IsSquareAttacked(pos.KingSquare[board.White], board.Black) {
			t.Errorf("move %s left the white king in check", m)
		}
		pos.UnmakeMove(m)
	}
}

func TestGenerateLegalCheckmateHasNoMoves(t *testing.T) {
	// Back-rank mate: black king h8 boxed in by its own pawns, white rook a8.
	pos, err := position.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.InCheck() {
		t.Fatalf("expected black in check")
	}
	moves := GenerateLegal(pos)
	if moves.Len() != 0 {
		t.Errorf("expected checkmate (0 legal moves), got %d", moves.Len())
	}
}

func TestGenerateLegalStalemateHasNoMoves(t *testing.T) {
	// Black king a8: a7/b7 are covered by both king and queen, b8 by the
	// queen's diagonal, but a8 itself is attacked by neither, so black is
	// stalemated rather than mated.
	pos, err := position.ParseFEN("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.InCheck() {
		t.Fatalf("expected stalemate position, not check")
	}
	moves := GenerateLegal(pos)
	if moves.Len() != 0 {
		t.Errorf("expected stalemate (0 legal moves), got %d", moves.Len())
	}
}

// TestGenerateQuietChecks checks the quiescence-only generator: every move
// it returns must be a legal non-capture that leaves the opponent in check,
// and known direct/discovered checking moves must be present.
func TestGenerateQuietChecks(t *testing.T) {
	// White knight d5 can check from c7/f6; white bishop e2 can check from
	// b5/h5. None of these are captures.
	pos, err := position.ParseFEN("4k3/8/8/3N4/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	checks := GenerateQuietChecks(pos)
	if checks.Len() == 0 {
		t.Fatalf("expected quiet checking moves for knight d5 / bishop e2")
	}
	for i := 0; i < checks.Len(); i++ {
		m := checks.Get(i)
		if IsCapture(pos, m) {
			t.Errorf("quiet-check generator returned capture %s", m)
		}
		pos.MakeMove(m)
		if !pos.InCheck() {
			t.Errorf("move %s does not give check", m)
		}
		pos.UnmakeMove(m)
	}
	for _, want := range []string{"d5c7", "d5f6", "e2b5"} {
		m, err := board.ParseMove(want, pos.PieceAt, pos.EnPassant())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", want, err)
		}
		if !checks.Contains(m) {
			t.Errorf("quiet-check generator missed %s", want)
		}
	}
}

// TestGenerateQuietChecksDiscovered checks a discovered check: the bishop
// blocking the rook's ray to the enemy king gives check from anywhere off
// the ray.
func TestGenerateQuietChecksDiscovered(t *testing.T) {
	// White rook e1, white bishop e4 on the e-file ray to the black king
	// e8; any off-file bishop move discovers the rook's check.
	pos, err := position.ParseFEN("4k3/8/8/8/4B3/8/8/4RK2 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	checks := GenerateQuietChecks(pos)
	m, err := board.ParseMove("e4d5", pos.PieceAt, pos.EnPassant())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !checks.Contains(m) {
		t.Errorf("expected discovered check e4d5 in quiet-check set")
	}
	for i := 0; i < checks.Len(); i++ {
		mv := checks.Get(i)
		pos.MakeMove(mv)
		if !pos.InCheck() {
			t.Errorf("move %s does not give check", mv)
		}
		pos.UnmakeMove(mv)
	}
}

func TestGenerateCapturesOnlyReturnsCaptures(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	caps := GenerateCaptures(pos)
	if caps.Len() == 0 {
		t.Fatalf("expected at least one capture in the kiwipete position")
	}
	for i := 0; i < caps.Len(); i++ {
		m := caps.Get(i)
		if !IsCapture(pos, m) {
			t.Errorf("GenerateCaptures returned non-capture move %s", m)
		}
	}
}
