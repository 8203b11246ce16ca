package search

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// Engine owns the shared transposition table and per-option thread count;
// it is the entry point the UCI layer calls for a `go` command. A single
// Engine instance lives for the process lifetime; its Threads field and its
// table size (Shared.TT.Resize) may be changed between searches (never
// while one is in flight).
type Engine struct {
	Shared       *Shared
	Threads      int
	MoveOverhead time.Duration
}

// NewEngine builds an engine with a freshly allocated transposition table.
func NewEngine(hashMB, threads int) *Engine {
	if threads < 1 {
		threads = 1
	}
	return &Engine{
		Shared:       NewShared(hashMB),
		Threads:      threads,
		MoveOverhead: 10 * time.Millisecond,
	}
}

// Stop sets the shared timeout flag, causing every in-flight search thread
// to abort at its next recursion boundary.
func (e *Engine) Stop() { e.Shared.StopFlag.Store(true) }

// SetPonder toggles the ponder flag, which suppresses both the hard
// deadline check and (via the UCI layer) emission of the bestmove line
// until the GUI sends `stop` or `ponderhit`.
func (e *Engine) SetPonder(on bool) { e.Shared.Ponder.Store(on) }

// NewGame clears the transposition table and resets the generation
// counter, per the UCI `ucinewgame` contract.
func (e *Engine) NewGame() { e.Shared.TT.Clear() }

// Think launches a lazy-SMP search fan-out: Threads-1 helper threads plus
// the calling goroutine as main thread, all sharing e.Shared. It blocks
// until the main thread's iterative-deepening loop completes (by depth
// limit, time budget, or `stop`), joins every helper, and returns the main
// thread's best move and score. report is invoked once per completed main
// thread depth.
func (e *Engine) Think(root *position.Position, limits Limits, report InfoFunc) (board.Move, int) {
	e.Shared.StopFlag.Store(false)
	e.Shared.Nodes.Store(0)
	e.Shared.TBHits.Store(0)
	e.Shared.TT.NewSearch()

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	rootMoves := buildRootMoves(root)

	mainThread := newThread(0, e.Shared, root.Copy(), true)
	mainThread.rootMoves = cloneRootMoves(rootMoves)
	mainThread.startNano = time.Now().UnixNano()
	mainThread.tm = newTimeManager(limits, root.SideToMove, e.MoveOverhead)

	var group errgroup.Group

	for i := 1; i < e.Threads; i++ {
		workerIdx := i
		group.Go(func() error {
			w := newThread(workerIdx, e.Shared, root.Copy(), false)
			w.rootMoves = cloneRootMoves(rootMoves)
			helperDepth := maxDepth + w.depthOffset
			if helperDepth > MaxPly {
				helperDepth = MaxPly
			}
			w.iterate(helperDepth, nil)
			return nil
		})
	}

	bestMove, bestScore := mainThread.iterate(maxDepth, report)

	e.Shared.StopFlag.Store(true)
	_ = group.Wait()

	return bestMove, bestScore
}

func cloneRootMoves(moves []RootMove) []RootMove {
	out := make([]RootMove, len(moves))
	copy(out, moves)
	return out
}
