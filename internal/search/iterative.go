package search

import (
	"time"

	"github.com/cetincan0/gochess/internal/board"
)

// aspirationStart is the initial half-width of the aspiration window,
// widened geometrically on each fail-high/fail-low retry.
const aspirationStart = 10

// aspirationMinDepth is the shallowest depth that uses a narrowed window;
// below it the search always uses the full (-Infinity, Infinity) range,
// since a narrow window on a cheap shallow search saves nothing and risks
// more re-searches than it avoids.
const aspirationMinDepth = 5

// iterate runs iterative deepening on t up to maxDepth (or until the
// shared stop flag trips), calling report after every completed depth on
// the main thread only. It returns the best move found at the last fully
// completed depth — a partial, aborted iteration's result is discarded.
func (t *thread) iterate(maxDepth int, report InfoFunc) (board.Move, int) {
	var bestMove board.Move
	bestScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > MaxPly {
			break
		}

		alpha, beta := -Infinity, Infinity
		window := aspirationStart
		if depth >= aspirationMinDepth {
			alpha = bestScore - window
			beta = bestScore + window
		}

		var score int
		var move board.Move
		var aborted bool
		for {
			score, move, aborted = t.searchRoot(depth, alpha, beta)
			if aborted {
				break
			}
			if score <= alpha {
				// Fail low: pull the upper side of the window toward alpha
				// before widening the lower side, so repeated retries don't
				// search against a beta left over from an earlier widening.
				beta = (alpha + beta) / 2
				window += window / 2
				alpha = score - window
				if alpha < -Infinity {
					alpha = -Infinity
				}
				continue
			}
			if score >= beta {
				window += window / 2
				beta = score + window
				if beta > Infinity {
					beta = Infinity
				}
				continue
			}
			break
		}

		if aborted {
			break
		}

		failedLow := depth > aspirationMinDepth && score < bestScore
		bestScore = score
		if move != board.NoMove {
			bestMove = move
		}

		if t.isMain && report != nil {
			report(t.makeReport(depth, score))
		}

		if t.isMain && t.tm != nil {
			t.tm.onIterationComplete(bestMove, failedLow)
			if t.tm.shouldStop() {
				break
			}
		}

		if t.shared.StopFlag.Load() {
			break
		}
	}

	return bestMove, bestScore
}

func (t *thread) makeReport(depth, score int) Report {
	r := Report{
		Depth:     depth,
		SelDepth:  t.seldepth,
		Score:     score,
		Nodes:     t.shared.Nodes.Load(),
		HashFull:  t.shared.TT.HashFull(),
		TBHits:    t.shared.TBHits.Load(),
		TTHitRate: t.shared.ttHitRate(),
		PV:        t.pv(),
	}
	if score >= MateScore-MaxPly {
		r.Mate = true
		r.MateIn = (MateScore - score + 1) / 2
	} else if score <= -MateScore+MaxPly {
		r.Mate = true
		r.MateIn = -(MateScore + score) / 2
	}
	elapsed := time.Since(time.Unix(0, t.startNano))
	r.TimeMS = elapsed.Milliseconds()
	if elapsed > 0 {
		r.NPS = uint64(float64(r.Nodes) / elapsed.Seconds())
	}
	return r
}
