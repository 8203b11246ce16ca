package movepick

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// SEE (Static Exchange Evaluation) estimates the material result of playing
// out every capture on m's destination square, from the moving side's
// perspective. It simulates the exchange with a swap algorithm rather than
// actually making and unmaking moves.
func SEE(p *position.Position, m board.Move) int {
	from := m.From()
	to := m.To()

	attacker := p.PieceAt(from)
	if attacker == board.NoPiece {
		return 0
	}

	var gain int
	if m.IsEnPassant() {
		gain = board.Value[board.Pawn]
	} else {
		victim := p.PieceAt(to)
		if victim == board.NoPiece {
			return 0
		}
		gain = board.Value[victim.Type()]
	}
	if m.IsPromotion() {
		gain += board.Value[m.Promotion()] - board.Value[board.Pawn]
	}

	return seeSwap(p, to, from, attacker, gain)
}

func seeSwap(p *position.Position, target, excludeFrom board.Square, firstAttacker board.Piece, initialGain int) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	occupied := p.AllOccupied &^ board.SquareBB(excludeFrom)
	attackerValue := board.Value[firstAttacker.Type()]
	side := firstAttacker.Color().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]
		if maxInt(-gain[d-1], gain[d]) < 0 {
			break
		}

		attackerSq, attackerPiece := leastValuableAttacker(p, target, side, occupied)
		if attackerSq == board.NoSquare {
			break
		}
		occupied &^= board.SquareBB(attackerSq)
		attackerValue = board.Value[attackerPiece.Type()]
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -maxInt(-gain[d-1], gain[d])
	}
	return gain[0]
}

func leastValuableAttacker(p *position.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	pawns := p.Pieces[side][board.Pawn] & board.PawnAttacks(target, side.Other()) & occupied
	if pawns != 0 {
		return pawns.LSB(), board.NewPiece(board.Pawn, side)
	}
	knights := p.Pieces[side][board.Knight] & board.KnightAttacks(target) & occupied
	if knights != 0 {
		return knights.LSB(), board.NewPiece(board.Knight, side)
	}
	bishopAttacks := board.BishopAttacks(target, occupied)
	bishops := p.Pieces[side][board.Bishop] & bishopAttacks & occupied
	if bishops != 0 {
		return bishops.LSB(), board.NewPiece(board.Bishop, side)
	}
	rookAttacks := board.RookAttacks(target, occupied)
	rooks := p.Pieces[side][board.Rook] & rookAttacks & occupied
	if rooks != 0 {
		return rooks.LSB(), board.NewPiece(board.Rook, side)
	}
	queens := p.Pieces[side][board.Queen] & (bishopAttacks | rookAttacks) & occupied
	if queens != 0 {
		return queens.LSB(), board.NewPiece(board.Queen, side)
	}
	king := p.Pieces[side][board.King] & board.KingAttacks(target) & occupied
	if king != 0 {
		return king.LSB(), board.NewPiece(board.King, side)
	}
	return board.NoSquare, board.NoPiece
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
