package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// evaluatePieces scores the per-piece positional terms that aren't mobility:
// knight/bishop outposts, rook placement (7th rank, open-file doubling,
// connectivity), bishops hemmed in by their own pawns, the classic trapped
// bishop and trapped rook patterns, space behind the pawn chain, and king
// tropism.
func evaluatePieces(p *position.Position) (mg, eg int) {
	occupied := p.AllOccupied

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		them := c.Other()
		ownPawns := p.Pieces[c][board.Pawn]
		enemyPawns := p.Pieces[them][board.Pawn]
		enemyKingSq := p.KingSquare[them]

		// Outposts: a minor piece on its fourth to sixth relative rank, on a
		// square no enemy pawn can ever evict it from.
		minors := p.Pieces[c][board.Knight] | p.Pieces[c][board.Bishop]
		for bb := minors; bb != 0; {
			sq := bb.PopLSB()
			rel := sq.RelativeRank(c)
			if rel < 3 || rel > 5 {
				continue
			}
			attackSpan := board.PassedPawnMask(sq, c) & board.AdjacentFileMask(sq.File())
			if enemyPawns&attackSpan != 0 {
				continue
			}
			protected := board.PawnAttacks(sq, them)&ownPawns != 0
			if p.PieceAt(sq).Type() == board.Knight {
				mg += sign * knightOutpostMg
				eg += sign * knightOutpostEg
				if protected {
					mg += sign * knightOutpostProtectedMg
					eg += sign * knightOutpostProtectedEg
				}
			} else if protected {
				mg += sign * bishopOutpostMg
				eg += sign * bishopOutpostEg
			}
		}

		// Bishops blocked by their own pawn chain.
		for bb := p.Pieces[c][board.Bishop]; bb != 0; {
			sq := bb.PopLSB()
			sameColor := lightSquares
			if darkSquares.IsSet(sq) {
				sameColor = darkSquares
			}
			n := (ownPawns & sameColor).PopCount()
			mg += sign * badBishopPenaltyMg * n
			eg += sign * badBishopPenaltyEg * n
		}

		// Trapped bishop on a7/h7 (a2/h2 for black) behind an enemy pawn.
		tbMG, tbEG := trappedBishopScore(p, c)
		mg += sign * tbMG
		eg += sign * tbEG

		rooks := p.Pieces[c][board.Rook]
		seventh := board.RankMask[6]
		backRank := board.RankMask[7]
		if c == board.Black {
			seventh = board.RankMask[1]
			backRank = board.RankMask[0]
		}
		rooksOn7th := 0
		for bb := rooks; bb != 0; {
			sq := bb.PopLSB()

			if board.SquareBB(sq)&seventh != 0 &&
				(enemyPawns&seventh != 0 || board.SquareBB(enemyKingSq)&backRank != 0) {
				rooksOn7th++
				mg += sign * rookOn7thMg
				eg += sign * rookOn7thEg
				if enemyPawns&seventh != 0 {
					mg += sign * rookOn7thWithPawnsMg
					eg += sign * rookOn7thWithPawnsEg
				}
			}

			others := rooks &^ board.SquareBB(sq)
			sameFile := others & board.FileMask[sq.File()]
			if sameFile != 0 && sq < sameFile.MSB() {
				mg += sign * doubledRooksOnFileMg
				eg += sign * doubledRooksOnFileEg
			}
			if board.RookAttacks(sq, occupied)&others != 0 && sq == rooks.LSB() {
				mg += sign * connectedRooksMg
				eg += sign * connectedRooksEg
			}
		}
		if rooksOn7th >= 2 {
			mg += sign * doubleRooksOn7thMg
			eg += sign * doubleRooksOn7thEg
		}

		trMG, trEG := trappedRookScore(p, c)
		mg += sign * trMG
		eg += sign * trEG

		// Space: safe central squares behind or on the pawn chain, only worth
		// counting while enough pieces remain to use them.
		nonPawnPieces := p.Occupied[c] &^ ownPawns
		if nonPawnPieces.PopCount() >= spaceMinPieces {
			zone := whiteSpaceZone
			if c == board.Black {
				zone = blackSpaceZone
			}
			var enemyPawnAttacks board.Bitboard
			if them == board.White {
				enemyPawnAttacks = enemyPawns.NorthEast() | enemyPawns.NorthWest()
			} else {
				enemyPawnAttacks = enemyPawns.SouthEast() | enemyPawns.SouthWest()
			}
			safe := zone &^ ownPawns &^ enemyPawnAttacks
			mg += sign * safe.PopCount() * spaceSquareBonus

			var behindPawns board.Bitboard
			if c == board.White {
				behindPawns = ownPawns.SouthFill() &^ ownPawns
			} else {
				behindPawns = ownPawns.NorthFill() &^ ownPawns
			}
			mg += sign * (safe & behindPawns).PopCount() * spaceBehindPawnBonus
		}

		// King tropism: pieces near the enemy king exert pressure even before
		// king safety proper kicks in.
		for pt := board.Knight; pt <= board.Queen; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				sq := bb.PopLSB()
				mg += sign * tropismWeight[pt] * (7 - board.Distance(sq, enemyKingSq))
			}
		}
	}

	return mg, eg
}

// trappedBishopScore detects the classic poisoned-pawn trap: a bishop on
// a7/h7 (a2/h2 for black) locked in by an enemy pawn on b6/g6 (b3/g3).
func trappedBishopScore(p *position.Position, c board.Color) (mg, eg int) {
	them := c.Other()
	bishops := p.Pieces[c][board.Bishop]
	enemyPawns := p.Pieces[them][board.Pawn]

	type trap struct{ bishop, pawn board.Square }
	var traps [2]trap
	if c == board.White {
		traps = [2]trap{{board.A7, board.B6}, {board.H7, board.G6}}
	} else {
		traps = [2]trap{{board.A2, board.B3}, {board.H2, board.G3}}
	}

	for _, tr := range traps {
		if bishops.IsSet(tr.bishop) && enemyPawns.IsSet(tr.pawn) {
			mg += trappedBishopPenaltyMg
			eg += trappedBishopPenaltyEg
		}
	}
	return mg, eg
}

// trappedRookScore penalizes a rook boxed into the corner by its own king
// after the right to castle out of the structure is gone.
func trappedRookScore(p *position.Position, c board.Color) (mg, eg int) {
	ksq := p.KingSquare[c]
	rooks := p.Pieces[c][board.Rook]
	rank := 0
	if c == board.Black {
		rank = 7
	}
	if ksq.Rank() != rank {
		return 0, 0
	}
	canKingSide := p.CastlingRights().CanCastle(c, true)
	canQueenSide := p.CastlingRights().CanCastle(c, false)

	kf := ksq.File()
	for bb := rooks & board.RankMask[rank]; bb != 0; {
		sq := bb.PopLSB()
		rf := sq.File()
		switch {
		case rf > kf && kf >= 4 && !canKingSide:
			mg += trappedRookPenaltyMg
			eg += trappedRookPenaltyEg
		case rf < kf && kf <= 3 && !canQueenSide:
			mg += trappedRookPenaltyMg
			eg += trappedRookPenaltyEg
		}
	}
	return mg, eg
}
