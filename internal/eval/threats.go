package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

func attacksBB(p *position.Position, c board.Color, occupied board.Bitboard) board.Bitboard {
	var attacks board.Bitboard

	pawns := p.Pieces[c][board.Pawn]
	if c == board.White {
		attacks |= pawns.NorthEast() | pawns.NorthWest()
	} else {
		attacks |= pawns.SouthEast() | pawns.SouthWest()
	}

	knights := p.Pieces[c][board.Knight]
	for knights != 0 {
		attacks |= board.KnightAttacks(knights.PopLSB())
	}
	bishops := p.Pieces[c][board.Bishop]
	for bishops != 0 {
		attacks |= board.BishopAttacks(bishops.PopLSB(), occupied)
	}
	rooks := p.Pieces[c][board.Rook]
	for rooks != 0 {
		attacks |= board.RookAttacks(rooks.PopLSB(), occupied)
	}
	queens := p.Pieces[c][board.Queen]
	for queens != 0 {
		attacks |= board.QueenAttacks(queens.PopLSB(), occupied)
	}
	attacks |= board.KingAttacks(p.KingSquare[c])

	return attacks
}

// evaluateThreats scores hanging and loose pieces, plus pawn/minor threats
// against enemy material — cheap proxies for tactical pressure that a
// static evaluator can't otherwise see.
func evaluateThreats(p *position.Position) (mg, eg int) {
	occupied := p.AllOccupied

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemy := c.Other()

		ourAttacks := attacksBB(p, c, occupied)
		enemyAttacks := attacksBB(p, enemy, occupied)

		ourPieces := p.Occupied[c] &^ board.SquareBB(p.KingSquare[c])
		hanging := ourPieces & enemyAttacks &^ ourAttacks
		hangingCount := hanging.PopCount()
		mg += sign * hangingCount * hangingPiecePenalty
		eg += sign * hangingCount * (hangingPiecePenalty * 3 / 2)

		loose := ourPieces &^ ourAttacks
		mg += sign * loose.PopCount() * loosePiecePenalty

		pawns := p.Pieces[c][board.Pawn]
		var pawnAttacks board.Bitboard
		if c == board.White {
			pawnAttacks = pawns.NorthEast() | pawns.NorthWest()
		} else {
			pawnAttacks = pawns.SouthEast() | pawns.SouthWest()
		}
		enemyPieces := p.Occupied[enemy] &^ board.SquareBB(p.KingSquare[enemy])
		pawnThreats := enemyPieces & pawnAttacks &^ p.Pieces[enemy][board.Pawn]
		threatCount := pawnThreats.PopCount()
		mg += sign * threatCount * threatByPawnBonus
		eg += sign * threatCount * threatByPawnBonus

		var minorAttacks board.Bitboard
		knights := p.Pieces[c][board.Knight]
		for knights != 0 {
			minorAttacks |= board.KnightAttacks(knights.PopLSB())
		}
		bishops := p.Pieces[c][board.Bishop]
		for bishops != 0 {
			minorAttacks |= board.BishopAttacks(bishops.PopLSB(), occupied)
		}
		majors := p.Pieces[enemy][board.Rook] | p.Pieces[enemy][board.Queen]
		minorThreats := majors & minorAttacks
		threatCount = minorThreats.PopCount()
		mg += sign * threatCount * threatByMinorBonus
		eg += sign * threatCount * threatByMinorBonus
	}

	return mg, eg
}
