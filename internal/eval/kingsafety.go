package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// evaluateKingSafety scores king danger as a middlegame-only term: mating
// attacks lose their bite once enough material is off the board.
//
// For each king it gathers attacker bookkeeping (number of distinct
// attackers of the extended king zone, their per-piece-type weights, and
// zone-attack counts). Only when the attacker count exceeds a threshold —
// one attacker if the opponent still has a queen, two otherwise — is a
// king-danger integer accumulated from that pressure plus pinned pieces,
// weak squares (attacked by the opponent, defended by nothing but the
// king), weak zone squares, potential safe checks by each opposing piece
// type, and the pawn-shelter deficit. The final deduction grows with the
// square of the danger, so two half-attacks hurt far less than one
// coordinated assault.
func evaluateKingSafety(p *position.Position) int {
	var score int
	occupied := p.AllOccupied

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemy := c.Other()
		ksq := p.KingSquare[c]
		zone := board.KingZone(ksq, c)

		// Attacker bookkeeping: which enemy pieces bear on the zone, with
		// per-type attack sets kept for the safe-check detection below.
		attackerCount := 0
		attackWeight := 0
		zoneAttackCount := 0
		var typeAttacks [6]board.Bitboard

		enemyPawns := p.Pieces[enemy][board.Pawn]
		if enemy == board.White {
			typeAttacks[board.Pawn] = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		} else {
			typeAttacks[board.Pawn] = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		}

		for pt := board.Knight; pt <= board.Queen; pt++ {
			for bb := p.Pieces[enemy][pt]; bb != 0; {
				sq := bb.PopLSB()
				var att board.Bitboard
				switch pt {
				case board.Knight:
					att = board.KnightAttacks(sq)
				case board.Bishop:
					att = board.BishopAttacks(sq, occupied)
				case board.Rook:
					att = board.RookAttacks(sq, occupied)
				case board.Queen:
					att = board.QueenAttacks(sq, occupied)
				}
				typeAttacks[pt] |= att
				if inZone := att & zone; inZone != 0 {
					attackerCount++
					attackWeight += attackerWeight[pt]
					zoneAttackCount += inZone.PopCount()
				}
			}
		}

		enemyAttacks := typeAttacks[board.Pawn] | typeAttacks[board.Knight] |
			typeAttacks[board.Bishop] | typeAttacks[board.Rook] |
			typeAttacks[board.Queen] | board.KingAttacks(p.KingSquare[enemy])

		// Our coverage with the king excluded: a square the king alone
		// defends is no safer than an undefended one once attackers pile on.
		nonKingDefense := defenseWithoutKing(p, c, occupied)
		kingCoverage := board.KingAttacks(ksq)

		shelter := pawnShelter(p, c, ksq)
		score += sign * shelter / 2

		threshold := 2
		if p.Pieces[enemy][board.Queen] != 0 {
			threshold = 1
		}
		if attackerCount <= threshold {
			continue
		}

		danger := attackWeight
		danger += kingDangerZoneAttack * zoneAttackCount
		danger += kingDangerPinned * p.Pinned(c).PopCount()

		weakSquares := enemyAttacks & kingCoverage &^ nonKingDefense
		danger += kingDangerWeakSquare * weakSquares.PopCount()
		weakZone := zone & enemyAttacks &^ nonKingDefense &^ kingCoverage
		danger += kingDangerWeakZone * weakZone.PopCount()

		// Potential safe checks: a square from which an enemy piece of each
		// type could give check, reachable by that type, unoccupied by the
		// attacker's own pieces, and not covered by anything of ours.
		safe := ^p.Occupied[enemy] &^ nonKingDefense
		bishopFromKing := board.BishopAttacks(ksq, occupied)
		rookFromKing := board.RookAttacks(ksq, occupied)
		if board.KnightAttacks(ksq)&typeAttacks[board.Knight]&safe != 0 {
			danger += safeCheckWeight[board.Knight]
		}
		if bishopFromKing&typeAttacks[board.Bishop]&safe != 0 {
			danger += safeCheckWeight[board.Bishop]
		}
		if rookFromKing&typeAttacks[board.Rook]&safe != 0 {
			danger += safeCheckWeight[board.Rook]
		}
		if (bishopFromKing|rookFromKing)&typeAttacks[board.Queen]&safe != 0 {
			danger += safeCheckWeight[board.Queen]
		}

		danger -= shelter
		if danger > 0 {
			score -= sign * danger * danger / kingDangerQuadDiv
		}
	}

	return score
}

// defenseWithoutKing returns every square c defends with a piece other
// than its king.
func defenseWithoutKing(p *position.Position, c board.Color, occupied board.Bitboard) board.Bitboard {
	var defense board.Bitboard

	pawns := p.Pieces[c][board.Pawn]
	if c == board.White {
		defense = pawns.NorthEast() | pawns.NorthWest()
	} else {
		defense = pawns.SouthEast() | pawns.SouthWest()
	}
	for bb := p.Pieces[c][board.Knight]; bb != 0; {
		defense |= board.KnightAttacks(bb.PopLSB())
	}
	for bb := p.Pieces[c][board.Bishop]; bb != 0; {
		defense |= board.BishopAttacks(bb.PopLSB(), occupied)
	}
	for bb := p.Pieces[c][board.Rook]; bb != 0; {
		defense |= board.RookAttacks(bb.PopLSB(), occupied)
	}
	for bb := p.Pieces[c][board.Queen]; bb != 0; {
		defense |= board.QueenAttacks(bb.PopLSB(), occupied)
	}
	return defense
}

// pawnShelter scores the pawn cover on the king's file and its neighbors:
// positive for intact shield pawns on the rank in front of the king's back
// rank, negative for files stripped bare or open to enemy heavy pieces.
func pawnShelter(p *position.Position, c board.Color, ksq board.Square) int {
	ownPawns := p.Pieces[c][board.Pawn]
	enemyPawns := p.Pieces[c.Other()][board.Pawn]

	shieldRank := 1
	if c == board.Black {
		shieldRank = 6
	}

	shelter := 0
	kingFile := ksq.File()
	for f := kingFile - 1; f <= kingFile+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		filePawns := ownPawns & board.FileMask[f]
		enemyOnFile := enemyPawns & board.FileMask[f]

		if ownPawns&board.FileMask[f]&board.RankMask[shieldRank] != 0 {
			shelter += pawnShieldBonus
		} else if filePawns == 0 {
			shelter += pawnShieldMissing
		}

		if filePawns == 0 && enemyOnFile == 0 {
			shelter += openFileNearKing
		} else if filePawns == 0 {
			shelter += semiOpenFileNearKing
		}
	}
	return shelter
}
