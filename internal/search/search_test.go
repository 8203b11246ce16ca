package search

import (
	"testing"

	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
)

// TestSearchDepth1FindsLegalMove is spec §8 end-to-end scenario 1: from the
// starting position, `go depth 1` completes and returns a legal move.
func TestSearchDepth1FindsLegalMove(t *testing.T) {
	eng := NewEngine(4, 1)
	pos := position.NewPosition()
	move, _ := eng.Think(pos, Limits{Depth: 1}, nil)

	legal := movepick.GenerateLegal(pos)
	if !legal.Contains(move) {
		t.Fatalf("depth-1 search returned %v, which is not a legal move from the start position", move)
	}
}

// TestSearchFindsMateInTwo is spec §8 end-to-end scenario 3: a textbook
// queen mate must be reported as a forced mate within a small number of
// plies at a generous depth.
func TestSearchFindsMateInTwo(t *testing.T) {
	pos, err := position.ParseFEN("k7/8/1K6/8/8/8/8/1Q6 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := NewEngine(16, 1)
	_, score := eng.Think(pos, Limits{Depth: 14}, nil)

	// A forced-mate score is far outside any plausible material/positional
	// evaluation (which tops out in the low thousands of centipawns), so a
	// generous threshold well below MateScore still unambiguously detects
	// "this is a mate, not just a big material edge" regardless of the
	// exact mate distance found.
	const matelikeThreshold = 20000
	if score < matelikeThreshold {
		t.Errorf("expected a forced-mate-range score for KQ vs K, got %d (MateScore=%d)", score, MateScore)
	}
}

// TestSearchFindsLargeAdvantage is spec §8 end-to-end scenario 2: a
// decisively winning middlegame position should return a large positive
// score without the search asserting or hanging.
func TestSearchFindsLargeAdvantage(t *testing.T) {
	pos, err := position.ParseFEN("r2r1n2/pp2bk2/2p1p2p/3q4/3PN1QP/2P3R1/P4PP1/5RK1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := NewEngine(16, 1)
	move, score := eng.Think(pos, Limits{Depth: 5}, nil)

	legal := movepick.GenerateLegal(pos)
	if !legal.Contains(move) {
		t.Fatalf("search returned illegal move %v", move)
	}
	if score <= 0 {
		t.Errorf("expected a positive score for white's decisive advantage, got %d", score)
	}
}

// TestSearchStopSetsTimeoutAndReturnsLegalMove checks that a Stop issued
// before Think does not carry over into the next search: Think clears the
// shared StopFlag on entry, so depth 1 still completes with a legal move.
func TestSearchStopSetsTimeoutAndReturnsLegalMove(t *testing.T) {
	eng := NewEngine(4, 1)
	pos := position.NewPosition()
	eng.Stop() // pre-set: search should still complete depth 1 and return.
	move, _ := eng.Think(pos, Limits{Depth: 1}, nil)

	legal := movepick.GenerateLegal(pos)
	if !legal.Contains(move) {
		t.Errorf("search under a pre-set stop flag returned %v, not a legal move", move)
	}
}

// TestSearchMultiThreadAgreesOnLegality checks that lazy-SMP with several
// helper threads still returns a legal root move; helper threads must never
// influence the reported best move beyond what the TT communicates.
func TestSearchMultiThreadAgreesOnLegality(t *testing.T) {
	eng := NewEngine(4, 4)
	pos := position.NewPosition()
	move, _ := eng.Think(pos, Limits{Depth: 3}, nil)

	legal := movepick.GenerateLegal(pos)
	if !legal.Contains(move) {
		t.Fatalf("4-thread search returned %v, not a legal move", move)
	}
}

func TestNewGameClearsTT(t *testing.T) {
	eng := NewEngine(4, 1)
	pos := position.NewPosition()
	eng.Think(pos, Limits{Depth: 4}, nil)
	if eng.Shared.TT.HashFull() == 0 {
		t.Skip("TT happened to stay empty at this depth; nothing to clear")
	}
	eng.NewGame()
	if hf := eng.Shared.TT.HashFull(); hf != 0 {
		t.Errorf("HashFull() after NewGame() = %d, want 0", hf)
	}
}
