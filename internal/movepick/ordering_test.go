package movepick

import (
	"testing"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func TestScoreMovesTTMoveIsHighest(t *testing.T) {
	pos := position.NewPosition()
	o := NewOrderer()
	moves := GenerateLegal(pos)
	ttMove := board.NewMove(board.E2, board.E4)

	scores := o.ScoreMoves(pos, moves, 0, ttMove, Continuation{})
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == ttMove {
			continue
		}
		if scores[i] >= ttMoveScore {
			t.Errorf("non-TT move %s scored %d, expected below the TT-move score %d", moves.Get(i), scores[i], ttMoveScore)
		}
	}
}

// TestMVVLVAPrefersCapturingHigherValuePieces checks the classical
// most-valuable-victim/least-valuable-attacker ordering: a pawn capturing a
// queen must outrank a queen capturing a pawn, even though both are the
// "same" move b4c5 on their respective boards.
func TestMVVLVAPrefersCapturingHigherValuePieces(t *testing.T) {
	o := NewOrderer()
	m := board.NewMove(board.B4, board.C5)

	pawnTakesQueen, err := position.ParseFEN("4k3/8/8/2q5/1P6/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	queenTakesPawn, err := position.ParseFEN("4k3/8/8/2p5/1Q6/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	hi := o.score(pawnTakesQueen, m, 0, board.NoMove)
	lo := o.score(queenTakesPawn, m, 0, board.NoMove)
	if hi <= lo {
		t.Errorf("pawn-takes-queen scored %d, queen-takes-pawn scored %d; expected the former strictly higher", hi, lo)
	}
}

func TestUpdateKillersShiftsAndDeduplicates(t *testing.T) {
	o := NewOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	o.UpdateKillers(m1, 3)
	if o.Killer(3, 0) != m1 {
		t.Fatalf("Killer(3,0) = %v, want %v", o.Killer(3, 0), m1)
	}

	o.UpdateKillers(m2, 3)
	if o.Killer(3, 0) != m2 || o.Killer(3, 1) != m1 {
		t.Fatalf("after second killer, slots = (%v, %v), want (%v, %v)", o.Killer(3, 0), o.Killer(3, 1), m2, m1)
	}

	// Recording the same move again must not duplicate or shift it.
	o.UpdateKillers(m2, 3)
	if o.Killer(3, 0) != m2 || o.Killer(3, 1) != m1 {
		t.Errorf("re-recording the current killer perturbed the slots: (%v, %v)", o.Killer(3, 0), o.Killer(3, 1))
	}
}

func TestKillerScoresAbovePlainHistory(t *testing.T) {
	pos := position.NewPosition()
	o := NewOrderer()
	m := board.NewMove(board.G1, board.F3)

	before := o.score(pos, m, 5, board.NoMove)
	o.UpdateKillers(m, 5)
	after := o.score(pos, m, 5, board.NoMove)

	if after <= before {
		t.Errorf("killer-recorded move score %d did not exceed its plain-history score %d", after, before)
	}
	if after != killerScore1 {
		t.Errorf("score = %d, want the first-killer band %d", after, killerScore1)
	}
}

func TestUpdateHistoryAccumulatesAndCapsAtRescale(t *testing.T) {
	o := NewOrderer()
	m := board.NewMove(board.B1, board.C3)

	o.UpdateHistory(m, 10, true) // +100
	if got := o.HistoryScore(board.B1, board.C3); got != 100 {
		t.Fatalf("HistoryScore after one good update = %d, want 100", got)
	}

	// Drive it over the 400_000 rescale threshold; the table should halve
	// rather than let any entry grow without bound.
	for i := 0; i < 200; i++ {
		o.UpdateHistory(m, 50, true) // +2500 each
	}
	if got := o.HistoryScore(board.B1, board.C3); got > 400_000 {
		t.Errorf("HistoryScore = %d, expected the table to have rescaled below 400000", got)
	}
}

func TestUpdateHistoryPenaltyFloors(t *testing.T) {
	o := NewOrderer()
	m := board.NewMove(board.B1, board.C3)
	for i := 0; i < 100; i++ {
		o.UpdateHistory(m, 100, false)
	}
	if got := o.HistoryScore(board.B1, board.C3); got != -400_000 {
		t.Errorf("HistoryScore = %d, want the floor -400000", got)
	}
}

func TestCounterMoveRecordedAndRetrieved(t *testing.T) {
	// The position reflects prevMove (e2e4) already having been played, since
	// counter-move lookup keys off the piece now sitting on the move's "to"
	// square.
	pos, err := position.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	o := NewOrderer()
	prevMove := board.NewMove(board.E2, board.E4)
	counter := board.NewMove(board.G8, board.F6)

	if o.GetCounterMove(pos, prevMove) != board.NoMove {
		t.Fatalf("expected no counter-move recorded yet")
	}
	o.UpdateCounterMove(pos, prevMove, counter)
	if got := o.GetCounterMove(pos, prevMove); got != counter {
		t.Errorf("GetCounterMove = %v, want %v", got, counter)
	}
}

func TestCountermoveAndFollowupHistoryAreIndependentTables(t *testing.T) {
	o := NewOrderer()
	prevMove := board.NewMove(board.E2, board.E4)
	prevMove2 := board.NewMove(board.G1, board.F3)
	m := board.NewMove(board.G8, board.F6)

	if got := o.GetCountermoveHistoryScore(prevMove, board.WhitePawn, board.BlackKnight, board.F6); got != 0 {
		t.Fatalf("GetCountermoveHistoryScore before any update = %d, want 0", got)
	}
	if got := o.GetFollowupHistoryScore(prevMove2, board.WhiteKnight, board.BlackKnight, board.F6); got != 0 {
		t.Fatalf("GetFollowupHistoryScore before any update = %d, want 0", got)
	}

	o.UpdateCountermoveHistory(prevMove, m, board.WhitePawn, board.BlackKnight, 10, true)
	if got := o.GetCountermoveHistoryScore(prevMove, board.WhitePawn, board.BlackKnight, board.F6); got != 100 {
		t.Errorf("GetCountermoveHistoryScore after one good update = %d, want 100", got)
	}
	// The follow-up table is keyed on a different (piece, square) pair and
	// must not have been perturbed by the counter-move-history update above.
	if got := o.GetFollowupHistoryScore(prevMove2, board.WhiteKnight, board.BlackKnight, board.F6); got != 0 {
		t.Errorf("GetFollowupHistoryScore = %d, want 0 (unaffected by counter-move-history update)", got)
	}

	o.UpdateFollowupHistory(prevMove2, m, board.WhiteKnight, board.BlackKnight, 10, true)
	if got := o.GetFollowupHistoryScore(prevMove2, board.WhiteKnight, board.BlackKnight, board.F6); got != 100 {
		t.Errorf("GetFollowupHistoryScore after one good update = %d, want 100", got)
	}
}

func TestClearResetsKillersAndHalvesHistory(t *testing.T) {
	o := NewOrderer()
	m := board.NewMove(board.E2, board.E4)
	o.UpdateKillers(m, 2)
	o.UpdateHistory(m, 20, true) // +400

	o.Clear()

	if o.Killer(2, 0) != board.NoMove {
		t.Errorf("Killer(2,0) after Clear = %v, want NoMove", o.Killer(2, 0))
	}
	if got := o.HistoryScore(board.E2, board.E4); got != 200 {
		t.Errorf("HistoryScore after Clear = %d, want 200 (halved from 400)", got)
	}
}
