package search

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/eval"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/tt"
)

// quiescence extends search past the nominal horizon along noisy lines
// (captures, and quiet checking moves at the first quiescence ply) to avoid
// the horizon effect: a nominal-depth cutoff that happens to land
// mid-exchange. qdepth counts plies below the horizon, starting at 0 and
// going negative.
func (t *thread) quiescence(ply, qdepth, alpha, beta int, inCheck bool) (int, bool) {
	if t.nodes&1023 == 0 && t.timedOut() {
		return 0, true
	}
	t.nodes++
	t.shared.Nodes.Add(1)
	if ply > t.seldepth {
		t.seldepth = ply
	}

	if ply >= MaxPly {
		return eval.Evaluate(t.pos, t.pawns), false
	}

	// The entry alpha decides the store's bound flag below: a score that
	// only beat a stand-pat-raised local alpha is still a fail-low against
	// the window this call was given.
	origAlpha := alpha

	// TT depth tag: 0 for plies that include checking moves (in check, or
	// the first quiescence ply), -1 for capture-only plies below that, so a
	// capture-only entry can never satisfy a checks-included probe.
	ttDepthTag := -1
	if inCheck || qdepth >= 0 {
		ttDepthTag = 0
	}

	hash := t.pos.Hash()
	ttEntry, ttHit := t.shared.probeTT(hash)
	var ttMove board.Move
	if ttHit {
		ttMove = ttEntry.Move
		if ttEntry.Depth >= ttDepthTag {
			score := tt.ScoreFromTT(ttEntry.Score, ply)
			switch ttEntry.Flag {
			case tt.Exact:
				return score, false
			case tt.Lower:
				if score >= beta {
					return score, false
				}
			case tt.Upper:
				if score <= alpha {
					return score, false
				}
			}
		}
	}

	var standPat int
	var bestScore int
	if inCheck {
		standPat = -Infinity
		bestScore = -Infinity
	} else {
		if ttHit {
			standPat = ttEntry.Eval
		} else {
			standPat = eval.Evaluate(t.pos, t.pawns)
		}
		bestScore = standPat
		if standPat >= beta {
			t.shared.TT.Store(hash, board.NoMove, tt.ScoreToTT(standPat, ply), standPat, ttDepthTag, tt.Lower)
			return standPat, false
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	cont := t.continuation(ply)
	var picker *movepick.Picker
	switch {
	case inCheck:
		picker = movepick.NewPicker(t.pos, movepick.ModeEvasion, ply, ttMove, cont, t.order)
	case qdepth >= 0:
		picker = movepick.NewPicker(t.pos, movepick.ModeQuiescenceChecks, ply, ttMove, cont, t.order)
	default:
		picker = movepick.NewPicker(t.pos, movepick.ModeQuiescence, ply, ttMove, cont, t.order)
	}

	bestMove := board.NoMove
	movesSeen := 0
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !inCheck && movepick.IsCapture(t.pos, m) && movepick.SEE(t.pos, m) < 0 {
			continue
		}
		movesSeen++

		t.pos.MakeMove(m)
		t.stack[ply].currentMove = m
		t.stack[ply].movedPiece = t.pos.PieceAt(m.To())
		score, aborted := t.quiescence(ply+1, qdepth-1, -beta, -alpha, t.pos.InCheck())
		score = -score
		t.pos.UnmakeMove(m)

		if aborted {
			return 0, true
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				if score >= beta {
					t.shared.TT.Store(hash, bestMove, tt.ScoreToTT(score, ply), standPat, ttDepthTag, tt.Lower)
					return score, false
				}
			}
		}
	}

	if inCheck && movesSeen == 0 {
		return -MateScore + ply, false
	}

	flag := tt.Upper
	if bestScore > origAlpha {
		flag = tt.Exact
	}
	t.shared.TT.Store(hash, bestMove, tt.ScoreToTT(bestScore, ply), standPat, ttDepthTag, flag)
	return bestScore, false
}
