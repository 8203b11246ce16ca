package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func isPassedPawn(p *position.Position, sq board.Square, c board.Color) bool {
	enemyPawns := p.Pieces[c.Other()][board.Pawn]
	return enemyPawns&board.PassedPawnMask(sq, c) == 0
}

// evaluatePassedPawns scores passed pawns by rank, with bonuses for being
// protected, connected, having a clear path to promotion, for favorable
// king distances, and for outrunning the enemy king entirely.
func evaluatePassedPawns(p *position.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		pawns := p.Pieces[c][board.Pawn]
		friendlyPawns := pawns
		enemy := c.Other()
		friendlyKing := p.KingSquare[c]
		enemyKing := p.KingSquare[enemy]

		for pawns != 0 {
			sq := pawns.PopLSB()
			if !isPassedPawn(p, sq, c) {
				continue
			}

			relRank := sq.RelativeRank(c)
			file := sq.File()
			bonus := passedPawnBonus[relRank]
			egExtra := 0

			var promoSq board.Square
			if c == board.White {
				promoSq = board.NewSquare(file, 7)
			} else {
				promoSq = board.NewSquare(file, 0)
			}

			friendlyDist := board.Distance(friendlyKing, sq)
			egExtra += kingDistanceBonus[7-minInt(friendlyDist, 7)]
			enemyDistToPromo := board.Distance(enemyKing, promoSq)
			egExtra += kingDistanceBonus[minInt(enemyDistToPromo, 7)]

			if board.PawnAttacks(sq, enemy)&friendlyPawns != 0 {
				bonus += passedPawnProtectedBonus
			}

			adjacent := board.AdjacentFileMask(file)
			connected := friendlyPawns & adjacent
			for t := connected; t != 0; {
				csq := t.PopLSB()
				if isPassedPawn(p, csq, c) {
					bonus += passedPawnConnectedBonus
					break
				}
			}

			front := board.FrontMask(sq, c)
			pathClear := front&p.AllOccupied == 0
			if pathClear {
				bonus += passedPawnFreePathBonus
			}

			if pathClear && relRank >= 4 {
				squaresToPromo := 7 - relRank
				enemyDist := board.Distance(enemyKing, sq)
				tempo := 0
				if p.SideToMove == c {
					tempo = 1
				}
				if enemyDist > squaresToPromo+1-tempo {
					egExtra += passedPawnUnstoppableBonus
				}
			}

			mg += sign * bonus
			eg += sign * (bonus*3/2 + egExtra)
		}
	}
	return mg, eg
}

// evaluatePawnStructure scores doubled, isolated, and backward pawns. It is
// the expensive per-square computation behind PawnCache's memoized values.
func evaluatePawnStructure(p *position.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		pawns := p.Pieces[c][board.Pawn]
		allPawns := pawns

		for pawns != 0 {
			sq := pawns.PopLSB()
			file := sq.File()
			fileMask := board.FileMask[file]

			onFile := allPawns & fileMask
			if onFile.PopCount() > 1 {
				var forward board.Square
				if c == board.White {
					forward = onFile.MSB()
				} else {
					forward = onFile.LSB()
				}
				if sq == forward {
					mg += sign * doubledPawnMgPenalty
					eg += sign * doubledPawnEgPenalty
				}
			}

			adjacent := board.AdjacentFileMask(file)
			if allPawns&adjacent == 0 {
				mg += sign * isolatedPawnMgPenalty
				eg += sign * isolatedPawnEgPenalty
				continue
			}

			relRank := sq.RelativeRank(c)
			if relRank > 1 {
				var behind board.Bitboard
				if c == board.White {
					for r := 0; r < sq.Rank(); r++ {
						behind |= board.RankMask[r]
					}
				} else {
					for r := sq.Rank() + 1; r < 8; r++ {
						behind |= board.RankMask[r]
					}
				}

				adjacentPawns := allPawns & adjacent
				if adjacentPawns != 0 && adjacentPawns&behind == adjacentPawns {
					continue
				}

				var stop board.Square
				if c == board.White {
					stop = sq + 8
				} else {
					stop = sq - 8
				}
				if stop.Valid() {
					enemyAttacks := board.PawnAttacks(stop, c)
					enemyPawns := p.Pieces[c.Other()][board.Pawn]
					if enemyPawns&enemyAttacks != 0 {
						mg += sign * backwardPawnMgPenalty
						eg += sign * backwardPawnEgPenalty
					}
				}
			}
		}
	}
	return mg, eg
}

// evaluatePawnStructureCached memoizes evaluatePawnStructure per pawn
// structure hash so lazy-SMP workers don't re-derive identical structures.
func evaluatePawnStructureCached(p *position.Position, pc *PawnCache) (mg, eg int) {
	if pc == nil {
		return evaluatePawnStructure(p)
	}
	if mg, eg, ok := pc.probe(p.PawnHash()); ok {
		return mg, eg
	}
	mg, eg = evaluatePawnStructure(p)
	pc.store(p.PawnHash(), mg, eg)
	return mg, eg
}
