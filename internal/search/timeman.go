package search

import (
	"time"

	"github.com/cetincan0/gochess/internal/board"
)

// timeManager turns a `go` command's limits into a soft and hard deadline
// for the main thread. The hard deadline aborts the search unconditionally;
// the soft deadline is checked only between completed iterations and is
// shrunk when the best move has been stable across recent depths, extended
// slightly after a fail-low, so a volatile position gets a little more
// time without ever exceeding the hard bound.
type timeManager struct {
	start        time.Time
	soft         time.Duration
	hard         time.Duration
	moveOverhead time.Duration

	lastBestMove board.Move
	stableCount  int
	failedLow    bool
}

// newTimeManager derives soft/hard budgets from Limits. moveOverhead is
// subtracted from the hard budget to leave room for engine-to-GUI
// communication latency.
func newTimeManager(l Limits, us board.Color, moveOverhead time.Duration) *timeManager {
	tm := &timeManager{start: time.Now(), moveOverhead: moveOverhead}

	switch {
	case l.MoveTime > 0:
		budget := time.Duration(l.MoveTime) * time.Millisecond
		tm.soft = budget
		tm.hard = budget
	case l.Infinite || l.Depth > 0:
		tm.soft = 0
		tm.hard = 0
	default:
		myTime, myInc := l.WTime, l.WInc
		if us == board.Black {
			myTime, myInc = l.BTime, l.BInc
		}
		movesToGo := l.MovesToGo
		if movesToGo <= 0 {
			movesToGo = 30
		}
		total := time.Duration(myTime) * time.Millisecond
		inc := time.Duration(myInc) * time.Millisecond
		base := total/time.Duration(movesToGo) + inc
		tm.soft = base
		tm.hard = minDuration(base*3, total/2)
	}

	if tm.hard > moveOverhead {
		tm.hard -= moveOverhead
	}
	if tm.soft > tm.hard {
		tm.soft = tm.hard
	}
	return tm
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

// onIterationComplete adjusts the soft budget in light of the depth just
// finished: a stable best move shrinks the remaining allowance, a changed
// move or a fail-low extends it.
func (tm *timeManager) onIterationComplete(best board.Move, failedLow bool) {
	if best == tm.lastBestMove {
		tm.stableCount++
	} else {
		tm.stableCount = 0
		tm.lastBestMove = best
	}
	tm.failedLow = failedLow
}

// shouldStop reports whether the soft deadline (adjusted for stability) has
// elapsed; only meaningful between completed iterations.
func (tm *timeManager) shouldStop() bool {
	if tm.soft <= 0 {
		return false
	}
	budget := tm.soft
	switch {
	case tm.failedLow:
		budget = budget * 13 / 10
	case tm.stableCount >= 4:
		budget = budget * 6 / 10
	case tm.stableCount >= 2:
		budget = budget * 8 / 10
	}
	return time.Since(tm.start) >= budget
}

// hardExpired reports whether the unconditional hard deadline has elapsed;
// checked mid-search on a node-count cadence.
func (tm *timeManager) hardExpired() bool {
	if tm.hard <= 0 {
		return false
	}
	return time.Since(tm.start) >= tm.hard
}

// checkTime is called periodically from within negamax on the main thread.
// A true ponder flag suppresses the hard deadline entirely: the GUI decides
// when pondering ends by sending `stop`.
func (t *thread) checkTime() bool {
	if t.shared.Ponder.Load() {
		return false
	}
	if t.tm == nil {
		return false
	}
	return t.tm.hardExpired()
}
