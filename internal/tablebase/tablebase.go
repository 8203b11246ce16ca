// Package tablebase defines the endgame-tablebase probe interface search
// treats as an opaque oracle (spec.md §1 Non-goals). Only the interface, a
// no-op implementation, and a thin Lichess HTTP-backed implementation are
// provided — no local Syzygy .rtbw/.rtbz parser, per SPEC_FULL.md §3.
package tablebase

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// WDL is a win/draw/loss result from the side-to-move's perspective.
type WDL int

const (
	WDLLoss        WDL = -2
	WDLBlessedLoss WDL = -1
	WDLDraw        WDL = 0
	WDLCursedWin   WDL = 1
	WDLWin         WDL = 2
)

// ProbeResult is the outcome of probing a single position.
type ProbeResult struct {
	Found bool
	WDL   WDL
	DTZ   int
}

// RootResult additionally names the recommended move at the root.
type RootResult struct {
	Found bool
	Move  board.Move
	WDL   WDL
	DTZ   int
}

// Prober is the interface search depends on; everything past this
// boundary is an external collaborator per spec.md §1.
type Prober interface {
	Probe(pos *position.Position) ProbeResult
	ProbeRoot(pos *position.Position) RootResult
	MaxPieces() int
	Available() bool
}

// ToScore converts a WDL result into a search-compatible centipawn-ish
// score, closer to mate the fewer plies remain, matching the convention
// hailam's tablebase.WDLToScore uses so probe results slot directly into
// the same score range as a mate-distance-pruned search result.
func ToScore(wdl WDL, ply int) int {
	const mate = 31000
	switch wdl {
	case WDLWin:
		return mate - ply
	case WDLCursedWin:
		return mate - 100 - ply
	case WDLDraw:
		return 0
	case WDLBlessedLoss:
		return -mate + 100 + ply
	case WDLLoss:
		return -mate + ply
	default:
		return 0
	}
}

// CountPieces returns the number of occupied squares, used by every
// Prober implementation to enforce its piece-count ceiling.
func CountPieces(pos *position.Position) int {
	return pos.AllOccupied.PopCount()
}

// NoopProber is used when no tablebase source is configured.
type NoopProber struct{}

func (NoopProber) Probe(*position.Position) ProbeResult    { return ProbeResult{Found: false} }
func (NoopProber) ProbeRoot(*position.Position) RootResult { return RootResult{Found: false} }
func (NoopProber) MaxPieces() int                          { return 0 }
func (NoopProber) Available() bool                         { return false }
