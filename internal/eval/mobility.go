package eval

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// evaluateMobility scores safe-square mobility for knights, bishops, rooks
// and queens: squares a piece attacks that aren't occupied by a friendly
// piece or swept by an enemy pawn.
func evaluateMobility(p *position.Position) (mg, eg int) {
	occupied := p.AllOccupied

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		enemyPawns := p.Pieces[c.Other()][board.Pawn]
		var unsafe board.Bitboard
		if c == board.White {
			unsafe = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			unsafe = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}
		blocked := unsafe | p.Occupied[c]

		knights := p.Pieces[c][board.Knight]
		for knights != 0 {
			sq := knights.PopLSB()
			safe := board.KnightAttacks(sq) &^ blocked
			n := safe.PopCount()
			mg += sign * mobilityMgWeight[board.Knight] * n
			eg += sign * mobilityEgWeight[board.Knight] * n
		}

		bishops := p.Pieces[c][board.Bishop]
		for bishops != 0 {
			sq := bishops.PopLSB()
			safe := board.BishopAttacks(sq, occupied) &^ blocked
			n := safe.PopCount()
			mg += sign * mobilityMgWeight[board.Bishop] * n
			eg += sign * mobilityEgWeight[board.Bishop] * n
		}

		rooks := p.Pieces[c][board.Rook]
		for rooks != 0 {
			sq := rooks.PopLSB()
			safe := board.RookAttacks(sq, occupied) &^ blocked
			n := safe.PopCount()
			mg += sign * mobilityMgWeight[board.Rook] * n
			eg += sign * mobilityEgWeight[board.Rook] * n
		}

		queens := p.Pieces[c][board.Queen]
		for queens != 0 {
			sq := queens.PopLSB()
			safe := board.QueenAttacks(sq, occupied) &^ blocked
			n := safe.PopCount()
			mg += sign * mobilityMgWeight[board.Queen] * n
			eg += sign * mobilityEgWeight[board.Queen] * n
		}
	}

	return mg, eg
}
