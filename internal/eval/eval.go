package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// scaleNormal is the divisor for the endgame scale factor: a scale of
// scaleNormal means "no reduction", matching the classical tapered-eval
// convention (Stockfish's SCALE_FACTOR_NORMAL).
const scaleNormal = 64

// earlyExitThreshold short-circuits piece/king-safety/threat evaluation
// once material+PST+pawn structure alone already show a lopsided position:
// spending time refining a score that large almost never changes the move
// choice.
const earlyExitThreshold = 1000

// materialPST returns the incremental-in-spirit material+piece-square score
// as a side-relative (white-positive) (mg, eg) pair, recomputed from the
// current bitboards. Position does not carry a running PST accumulator
// (see position.Info), so this walks the board once per call instead of
// reading a maintained field; it is the cheapest of the evaluation terms
// and the one every other term is gated behind by earlyExitThreshold.
func materialPST(p *position.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := p.Pieces[c][pt]
			value := board.Value[pt]
			for bb != 0 {
				sq := bb.PopLSB()
				mg += sign * value
				eg += sign * value
				s := board.PSQTScore(board.NewPiece(pt, c), sq)
				mg += s.MG
				eg += s.EG
			}
		}
	}
	return mg, eg
}

func bishopPairBonus(p *position.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		bishops := p.Pieces[c][board.Bishop]
		if bishops&lightSquares != 0 && bishops&darkSquares != 0 {
			mg += sign * bishopPairMgBonus
			eg += sign * bishopPairEgBonus
		}
	}
	return mg, eg
}

func rookFileBonus(p *position.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		ownPawns := p.Pieces[c][board.Pawn]
		enemyPawns := p.Pieces[c.Other()][board.Pawn]
		rooks := p.Pieces[c][board.Rook]
		for rooks != 0 {
			sq := rooks.PopLSB()
			fileMask := board.FileMask[sq.File()]
			if ownPawns&fileMask == 0 {
				if enemyPawns&fileMask == 0 {
					mg += sign * rookOpenFileMg
					eg += sign * rookOpenFileEg
				} else {
					mg += sign * rookSemiOpenFileMg
					eg += sign * rookSemiOpenFileEg
				}
			}
		}
	}
	return mg, eg
}

// scaleFactor down-weights endgame scores that are drawish for reasons
// plain material counting can't see: opposite-colored bishops, or the
// stronger side having no pawns left to promote.
func scaleFactor(p *position.Position, eg int) int {
	strong, weak := board.White, board.Black
	if eg < 0 {
		strong, weak = board.Black, board.White
	}

	if p.Pieces[strong][board.Pawn] == 0 {
		nonPawn := position.NonPawnMaterial(p, strong)
		if nonPawn <= board.Value[board.Bishop] {
			return 0
		}
		if nonPawn <= board.Value[board.Rook] && position.NonPawnMaterial(p, weak) >= board.Value[board.Bishop] {
			return scaleNormal / 2
		}
	}

	wBishops := p.Pieces[board.White][board.Bishop]
	bBishops := p.Pieces[board.Black][board.Bishop]
	if wBishops.PopCount() == 1 && bBishops.PopCount() == 1 {
		wOnLight := wBishops&lightSquares != 0
		bOnLight := bBishops&lightSquares != 0
		if wOnLight != bOnLight {
			onlyMinors := position.NonPawnMaterial(p, board.White) == board.Value[board.Bishop] &&
				position.NonPawnMaterial(p, board.Black) == board.Value[board.Bishop]
			if onlyMinors {
				return 22
			}
			return 44
		}
	}

	return scaleNormal
}

// Evaluate returns a centipawn score from the side-to-move's perspective.
// It follows the classical tapered-eval recipe: accumulate every term as a
// (mg, eg) pair in white's favor, interpolate by game phase, scale the
// endgame component for known drawish material patterns, flip for black,
// and add a small bonus for having the move.
func Evaluate(p *position.Position, pc *PawnCache) int {
	mg, eg := materialPST(p)

	pawnMG, pawnEG := evaluatePawnStructureCached(p, pc)
	mg += pawnMG
	eg += pawnEG

	phase := position.Phase(p)

	avg := (mg + eg) / 2
	if avg > earlyExitThreshold || avg < -earlyExitThreshold {
		return taper(p, mg, eg, phase)
	}

	bpMG, bpEG := bishopPairBonus(p)
	mg += bpMG
	eg += bpEG

	rfMG, rfEG := rookFileBonus(p)
	mg += rfMG
	eg += rfEG

	mobMG, mobEG := evaluateMobility(p)
	mg += mobMG
	eg += mobEG

	pcMG, pcEG := evaluatePieces(p)
	mg += pcMG
	eg += pcEG

	mg += evaluateKingSafety(p)

	threatMG, threatEG := evaluateThreats(p)
	mg += threatMG
	eg += threatEG

	ppMG, ppEG := evaluatePassedPawns(p)
	mg += ppMG
	eg += ppEG

	return taper(p, mg, eg, phase)
}

func taper(p *position.Position, mg, eg, phase int) int {
	scale := scaleFactor(p, eg)
	score := (mg*phase + eg*(position.TotalPhase-phase)*scale/scaleNormal) / position.TotalPhase

	if p.SideToMove == board.Black {
		score = -score
	}
	score += TempoBonus
	return score
}
