package movepick

import (
	"testing"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func TestPickerNormalModeYieldsAllLegalMovesOnce(t *testing.T) {
	pos := position.NewPosition()
	o := NewOrderer()
	pk := NewPicker(pos, ModeNormal, 0, board.NoMove, Continuation{}, o)

	legal := GenerateLegal(pos)
	if pk.Len() != legal.Len() {
		t.Fatalf("Len() = %d, want %d", pk.Len(), legal.Len())
	}

	seen := make(map[board.Move]bool)
	count := 0
	for {
		m, ok := pk.Next()
		if !ok {
			break
		}
		if seen[m] {
			t.Fatalf("picker yielded %s twice", m)
		}
		seen[m] = true
		count++
	}
	if count != legal.Len() {
		t.Errorf("picker yielded %d moves, want %d", count, legal.Len())
	}
	if _, ok := pk.Next(); ok {
		t.Errorf("Next() after exhaustion still returned a move")
	}
}

// TestPickerYieldsTTMoveFirst checks that the move recorded as a transposition
// hit is always the first one the picker hands back, regardless of its
// position in the underlying legal move list.
func TestPickerYieldsTTMoveFirst(t *testing.T) {
	pos := position.NewPosition()
	o := NewOrderer()
	ttMove := board.NewMove(board.G1, board.F3)

	pk := NewPicker(pos, ModeNormal, 0, ttMove, Continuation{}, o)
	first, ok := pk.Next()
	if !ok {
		t.Fatalf("picker returned no moves")
	}
	if first != ttMove {
		t.Errorf("first move = %s, want the TT move %s", first, ttMove)
	}
}

// TestPickerQuiescenceModeOnlyYieldsCaptures mirrors
// TestGenerateCapturesOnlyReturnsCaptures through the picker's public API.
func TestPickerQuiescenceModeOnlyYieldsCaptures(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	o := NewOrderer()
	pk := NewPicker(pos, ModeQuiescence, 0, board.NoMove, Continuation{}, o)
	if pk.Len() == 0 {
		t.Fatalf("expected at least one capture in the kiwipete position")
	}
	for {
		m, ok := pk.Next()
		if !ok {
			break
		}
		if !IsCapture(pos, m) {
			t.Errorf("quiescence picker yielded non-capture move %s", m)
		}
	}
}

// TestPickerBestFirstOrderIsNonIncreasing checks the core lazy-selection-sort
// contract: successive picks never increase in score.
func TestPickerBestFirstOrderIsNonIncreasing(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	o := NewOrderer()
	moves := GenerateLegal(pos)
	scores := o.ScoreMoves(pos, moves, 0, board.NoMove, Continuation{})

	prevBest := 1 << 30
	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		if scores[i] > prevBest {
			t.Fatalf("pick at index %d scored %d, higher than the previous pick's %d", i, scores[i], prevBest)
		}
		prevBest = scores[i]
	}
}
