// Package search implements iterative-deepening alpha-beta search with
// aspiration windows, null-move pruning, late-move reductions, singular
// extensions, quiescence, and a lazy-SMP multi-threaded fan-out sharing a
// single transposition table.
package search

import (
	"sync/atomic"

	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/eval"
	"github.com/cetincan0/gochess/internal/movepick"
	"github.com/cetincan0/gochess/internal/position"
	"github.com/cetincan0/gochess/internal/tt"
)

const (
	Infinity  = tt.Infinity
	MateScore = tt.Mate
	MaxPly    = tt.MaxPly
)

// Limits describes one `go` command's search bound, already resolved into
// the units negamax/iterate operate on (milliseconds, plies, nodes).
type Limits struct {
	Depth     int
	MoveTime  int
	WTime     int
	BTime     int
	WInc      int
	BInc      int
	MovesToGo int
	Infinite  bool
	Ponder    bool
	Nodes     uint64
}

// RootMove is one legal move at the root plus the score and principal
// variation the most recently completed iteration assigned it.
type RootMove struct {
	Move  board.Move
	Score int
	PV    []board.Move
}

// InfoFunc is called once per completed iteration (and, optionally, more
// often for long-running single iterations) so the UCI layer can emit an
// `info` line without search depending on the UCI package.
type InfoFunc func(Report)

// Report mirrors one UCI `info` line's fields.
type Report struct {
	Depth     int
	SelDepth  int
	Score     int
	Mate      bool
	MateIn    int
	Lower     bool
	Upper     bool
	Nodes     uint64
	NPS       uint64
	HashFull  int
	TBHits    uint64
	TTHitRate float64
	TimeMS    int64
	PV        []board.Move
}

// Shared is the process-wide state every worker thread reads or writes
// without a lock: the transposition table and the timeout/ponder flags. A
// single Shared instance is constructed once and handed to every Engine.
type Shared struct {
	TT       *tt.Table
	StopFlag atomic.Bool
	Ponder   atomic.Bool
	Nodes    atomic.Uint64
	TBHits   atomic.Uint64
	TTProbes atomic.Uint64
	TTHits   atomic.Uint64
}

// probeTT wraps shared.TT.Probe with hit-rate bookkeeping so every call
// site (negamax, quiescence) reports through one place instead of
// duplicating the counter increments.
func (s *Shared) probeTT(key uint64) (tt.Entry, bool) {
	s.TTProbes.Add(1)
	e, ok := s.TT.Probe(key)
	if ok {
		s.TTHits.Add(1)
	}
	return e, ok
}

// ttHitRate returns the fraction of probeTT calls that found an entry,
// 0 if none have happened yet.
func (s *Shared) ttHitRate() float64 {
	probes := s.TTProbes.Load()
	if probes == 0 {
		return 0
	}
	return float64(s.TTHits.Load()) / float64(probes)
}

// NewShared allocates a transposition table of sizeMB megabytes and the
// coordination flags around it.
func NewShared(sizeMB int) *Shared {
	return &Shared{TT: tt.New(sizeMB)}
}

// lazySMPOffsets is the fixed per-thread depth-offset table: helper thread i
// searches at nominal depth + lazySMPOffsets[i % len] so threads explore
// diverging tree shapes instead of duplicating the main thread's work.
var lazySMPOffsets = [...]int{0, 1, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9}

func lazySMPOffset(threadIdx int) int {
	return lazySMPOffsets[threadIdx%len(lazySMPOffsets)]
}

// searchStackEntry is per-ply scratch state, addressable by ply without
// walking call-stack frames: static eval (for the "improving" heuristic),
// the move played into this ply (for continuation-history lookups), killers
// live in the Orderer instead since they're indexed the same way.
type searchStackEntry struct {
	staticEval  int
	currentMove board.Move
	movedPiece  board.Piece
	excluded    board.Move
	inCheck     bool
}

// thread owns everything one lazy-SMP search thread touches exclusively:
// its own Position, move orderer, pawn-structure cache, and per-ply scratch
// stacks. Nothing here is shared; the only shared state is *Shared.
type thread struct {
	idx    int
	pos    *position.Position
	order  *movepick.Orderer
	pawns  *eval.PawnCache
	shared *Shared

	nodes uint64

	stack [MaxPly + 4]searchStackEntry

	pvLen   [MaxPly + 1]int
	pvMoves [MaxPly + 1][MaxPly + 1]board.Move

	rootMoves    []RootMove
	excludedRoot map[board.Move]bool
	isMain       bool
	depthOffset  int
	seldepth     int

	// time management (main thread only)
	tm               *timeManager
	startNano        int64
	nodeCheckCounter uint64
}

func newThread(idx int, shared *Shared, pos *position.Position, isMain bool) *thread {
	return &thread{
		idx:         idx,
		pos:         pos,
		order:       movepick.NewOrderer(),
		pawns:       eval.NewPawnCache(),
		shared:      shared,
		isMain:      isMain,
		depthOffset: lazySMPOffset(idx),
	}
}

func (t *thread) timedOut() bool {
	return t.shared.StopFlag.Load()
}

func (t *thread) updatePV(ply int, m board.Move) {
	t.pvMoves[ply][ply] = m
	for j := ply + 1; j < t.pvLen[ply+1]; j++ {
		t.pvMoves[ply][j] = t.pvMoves[ply+1][j]
	}
	t.pvLen[ply] = t.pvLen[ply+1]
	if t.pvLen[ply] <= ply {
		t.pvLen[ply] = ply + 1
	}
}

func (t *thread) pv() []board.Move {
	n := t.pvLen[0]
	out := make([]board.Move, n)
	copy(out, t.pvMoves[0][:n])
	return out
}
