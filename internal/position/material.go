package position

import "github.com/cetincan0/gochess/internal/board"

// Material-count radix per piece type (pawns 0-8, knights/bishops/rooks
// 0-2, queens 0-1), chosen so sideIndex ranges over 9*3*3*3*2 = 486 values
// and the combined index white*486+black covers every reachable material
// balance in 236196 slots. Counts above the radix collapse to the top
// bucket: extra material still selects a valid (if saturated) index rather
// than overflowing.
const (
	pawnRadix     = 9
	minorRadix    = 3
	rookRadix     = 3
	queenRadix    = 2
	sideRadix     = pawnRadix * minorRadix * minorRadix * rookRadix * queenRadix
	CombinedRadix = sideRadix * sideRadix
)

func clampRadix(n, radix int) int {
	if n >= radix {
		return radix - 1
	}
	return n
}

// sideMaterialIndex folds one side's piece counts into a single 0..485 index.
func sideMaterialIndex(p *Position, c board.Color) int {
	pawns := clampRadix(p.Pieces[c][board.Pawn].PopCount(), pawnRadix)
	knights := clampRadix(p.Pieces[c][board.Knight].PopCount(), minorRadix)
	bishops := clampRadix(p.Pieces[c][board.Bishop].PopCount(), minorRadix)
	rooks := clampRadix(p.Pieces[c][board.Rook].PopCount(), rookRadix)
	queens := clampRadix(p.Pieces[c][board.Queen].PopCount(), queenRadix)
	return pawns + pawnRadix*(knights+minorRadix*(bishops+minorRadix*(rooks+rookRadix*queens)))
}

// MaterialIndex returns the per-side indices and their combined index into
// the conceptual 486x486 phase/imbalance/drawn-material space. Rather than
// materialize a 236196-entry literal table (which buys nothing over the
// formulas below — every cell is a pure function of the decoded counts),
// Phase/KnownDraw recompute directly from the position; MaterialIndex
// exists so callers that want a stable key for their own caches (e.g. a
// pawn-hash-style material cache) have one.
func MaterialIndex(p *Position) (white, black, combined int) {
	white = sideMaterialIndex(p, board.White)
	black = sideMaterialIndex(p, board.Black)
	return white, black, white*sideRadix + black
}

// phaseWeight is the classical tapered-eval weight per piece type.
var phaseWeight = [6]int{0, 1, 1, 2, 4, 0}

const TotalPhase = 24 // 4 knights+bishops + 4 rooks + 2 queens, by weight

// Phase returns a 0 (pure endgame) .. TotalPhase (full midgame) value
// derived from the non-pawn, non-king material left on the board.
func Phase(p *Position) int {
	phase := 0
	for pt := board.Knight; pt <= board.Queen; pt++ {
		count := p.Pieces[board.White][pt].PopCount() + p.Pieces[board.Black][pt].PopCount()
		phase += count * phaseWeight[pt]
	}
	if phase > TotalPhase {
		phase = TotalPhase
	}
	return phase
}

// NonPawnMaterial returns the non-pawn, non-king material value for c. The
// value is maintained incrementally in the Info stack (set at FEN load,
// adjusted by MakeMove on captures and promotions), so this is a read, not
// a recount.
func NonPawnMaterial(p *Position, c board.Color) int {
	return p.stack[p.top].NonPawnMaterial[c]
}

// KnownDraw reports material balances that are theoretically drawn
// regardless of position: this is IsInsufficientMaterial plus the common
// same-colored-bishop-with-extra-pawn-can't-win heuristic is left to eval's
// scale factor, since it depends on pawn placement, not just counts.
func KnownDraw(p *Position) bool {
	return p.IsInsufficientMaterial()
}
