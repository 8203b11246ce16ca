package movepick

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// Mode selects which move set a Picker draws from.
type Mode int

const (
	// ModeNormal yields every legal move, for the main search.
	ModeNormal Mode = iota
	// ModeQuiescence yields legal captures (and promotions) only.
	ModeQuiescence
	// ModeEvasion yields every legal move while in check; kept distinct
	// from ModeNormal so callers can apply check-evasion-specific pruning
	// without the picker itself needing to know why it was asked for one.
	ModeEvasion
	// ModeQuiescenceChecks yields legal captures plus quiet checking moves,
	// used at quiescence's first ply only.
	ModeQuiescenceChecks
)

// Picker lazily yields moves in best-first order: it generates and scores
// the whole legal set up front (cheap relative to search itself) and then
// selection-sorts one move at a time via PickMove, so a beta cutoff after
// the first few moves never pays for sorting the rest.
type Picker struct {
	moves  *board.MoveList
	scores []int
	index  int
}

// NewPicker builds a picker for p in the given mode. ttMove is searched
// first when present; cont carries the previous one/two plies' piece-and-move
// context feeding the counter-move/countermove-history/follow-up-history
// bonus for quiet-move ordering.
func NewPicker(p *position.Position, mode Mode, ply int, ttMove board.Move, cont Continuation, o *Orderer) *Picker {
	var moves *board.MoveList
	switch mode {
	case ModeQuiescence:
		moves = GenerateCaptures(p)
	case ModeQuiescenceChecks:
		moves = GenerateCaptures(p)
		checks := GenerateQuietChecks(p)
		for i := 0; i < checks.Len(); i++ {
			if m := checks.Get(i); !moves.Contains(m) {
				moves.Add(m)
			}
		}
	default:
		moves = GenerateLegal(p)
	}
	scores := o.ScoreMoves(p, moves, ply, ttMove, cont)
	return &Picker{moves: moves, scores: scores}
}

// Next returns the next move in best-first order, or (NoMove, false) once
// exhausted.
func (pk *Picker) Next() (board.Move, bool) {
	if pk.index >= pk.moves.Len() {
		return board.NoMove, false
	}
	PickMove(pk.moves, pk.scores, pk.index)
	m := pk.moves.Get(pk.index)
	pk.index++
	return m, true
}

// Len returns the total number of moves the picker holds.
func (pk *Picker) Len() int { return pk.moves.Len() }
