// Package movepick generates and orders moves: pseudo-legal generation,
// legality filtering, Static Exchange Evaluation, and the staged move
// picker search draws from (TT move, captures, killers, quiets).
package movepick

import (
	"github.com/cetincan0/gochess/internal/board"
	"github.com/cetincan0/gochess/internal/position"
)

// GenerateLegal returns every legal move in p.
func GenerateLegal(p *position.Position) *board.MoveList {
	ml := generatePseudoLegal(p)
	return filterLegal(p, ml)
}

// GeneratePseudoLegal returns every pseudo-legal move (may leave the king
// in check; callers that need legality must filter with p.IsLegal).
func GeneratePseudoLegal(p *position.Position) *board.MoveList {
	return generatePseudoLegal(p)
}

// GenerateCaptures returns every legal capture (including promotions and
// en passant), used by quiescence search.
func GenerateCaptures(p *position.Position) *board.MoveList {
	ml := &board.MoveList{}
	generateCaptures(p, ml)
	return filterLegal(p, ml)
}

func filterLegal(p *position.Position, ml *board.MoveList) *board.MoveList {
	out := &board.MoveList{}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			out.Add(m)
		}
	}
	return out
}

func generatePseudoLegal(p *position.Position) *board.MoveList {
	ml := &board.MoveList{}
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]
	own := p.Occupied[us]

	generatePawnMoves(p, ml, us, enemies, occupied)

	knights := p.Pieces[us][board.Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := board.KnightAttacks(from) &^ own
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	bishops := p.Pieces[us][board.Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := board.BishopAttacks(from, occupied) &^ own
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	rooks := p.Pieces[us][board.Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := board.RookAttacks(from, occupied) &^ own
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	queens := p.Pieces[us][board.Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := board.QueenAttacks(from, occupied) &^ own
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	from := p.KingSquare[us]
	attacks := board.KingAttacks(from) &^ own
	for attacks != 0 {
		ml.Add(board.NewMove(from, attacks.PopLSB()))
	}

	generateCastling(p, ml, us)

	return ml
}

func generatePawnMoves(p *position.Position, ml *board.MoveList, us board.Color, enemies, occupied board.Bitboard) {
	pawns := p.Pieces[us][board.Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR board.Bitboard
	var promoRank board.Bitboard
	var pushDir int

	if us == board.White {
		push1 = pawns.North() & empty
		push2 = (push1 & board.Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = board.Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & board.Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = board.Rank1
		pushDir = -8
	}

	nonPromo := push1 &^ promoRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir), to))
	}
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-2*pushDir), to))
	}

	nonPromoL := attackL &^ promoRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir+1), to))
	}
	nonPromoR := attackR &^ promoRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir-1), to))
	}

	promoPush := push1 & promoRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir), to)
	}
	promoL := attackL & promoRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir+1), to)
	}
	promoR := attackR & promoRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir-1), to)
	}

	if ep := p.EnPassant(); ep != board.NoSquare {
		epBB := board.SquareBB(ep)
		var attackers board.Bitboard
		if us == board.White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			ml.Add(board.NewEnPassant(attackers.PopLSB(), ep))
		}
	}
}

func addPromotions(ml *board.MoveList, from, to board.Square) {
	ml.Add(board.NewPromotion(from, to, board.Queen))
	ml.Add(board.NewPromotion(from, to, board.Rook))
	ml.Add(board.NewPromotion(from, to, board.Bishop))
	ml.Add(board.NewPromotion(from, to, board.Knight))
}

func generateCastling(p *position.Position, ml *board.MoveList, us board.Color) {
	them := us.Other()
	rights := p.CastlingRights()
	ksq := p.KingSquare[us]

	tryCastle := func(kingSide bool, kingTo board.Square) {
		side := 1
		if kingSide {
			side = 0
		}
		rookFrom := p.InitialRookSquare[us][side]
		lo, hi := rookFrom, ksq
		if lo > hi {
			lo, hi = hi, lo
		}
		between := board.Between(lo, hi) &^ board.SquareBB(ksq) &^ board.SquareBB(rookFrom)
		occWithoutCastlers := p.AllOccupied &^ board.SquareBB(ksq) &^ board.SquareBB(rookFrom)
		if between&occWithoutCastlers != 0 {
			return
		}
		step := 1
		if kingTo < ksq {
			step = -1
		}
		for sq := ksq; ; sq += board.Square(step) {
			if p.IsSquareAttacked(sq, them) {
				return
			}
			if sq == kingTo {
				break
			}
		}
		ml.Add(board.NewCastling(ksq, kingTo))
	}

	if us == board.White {
		if rights.CanCastle(board.White, true) {
			tryCastle(true, board.G1)
		}
		if rights.CanCastle(board.White, false) {
			tryCastle(false, board.C1)
		}
	} else {
		if rights.CanCastle(board.Black, true) {
			tryCastle(true, board.G8)
		}
		if rights.CanCastle(board.Black, false) {
			tryCastle(false, board.C8)
		}
	}
}

func generateCaptures(p *position.Position, ml *board.MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	pawns := p.Pieces[us][board.Pawn]
	var attackL, attackR board.Bitboard
	var promoRank board.Bitboard
	var pushDir int
	if us == board.White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = board.Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = board.Rank1
		pushDir = -8
	}

	nonPromoL := attackL &^ promoRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir+1), to))
	}
	nonPromoR := attackR &^ promoRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir-1), to))
	}
	promoL := attackL & promoRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir+1), to)
	}
	promoR := attackR & promoRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir-1), to)
	}

	empty := ^occupied
	var pushPromo board.Bitboard
	if us == board.White {
		pushPromo = pawns.North() & empty & board.Rank8
	} else {
		pushPromo = pawns.South() & empty & board.Rank1
	}
	for pushPromo != 0 {
		to := pushPromo.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir), to)
	}

	if ep := p.EnPassant(); ep != board.NoSquare {
		epBB := board.SquareBB(ep)
		var attackers board.Bitboard
		if us == board.White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			ml.Add(board.NewEnPassant(attackers.PopLSB(), ep))
		}
	}

	knights := p.Pieces[us][board.Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := board.KnightAttacks(from) & enemies
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}
	bishops := p.Pieces[us][board.Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := board.BishopAttacks(from, occupied) & enemies
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}
	rooks := p.Pieces[us][board.Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := board.RookAttacks(from, occupied) & enemies
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}
	queens := p.Pieces[us][board.Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := board.QueenAttacks(from, occupied) & enemies
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}
	from := p.KingSquare[us]
	attacks := board.KingAttacks(from) & enemies
	for attacks != 0 {
		ml.Add(board.NewMove(from, attacks.PopLSB()))
	}
}

// GenerateQuietChecks returns every legal non-capturing, non-promoting move
// that gives check, either directly or by discovery. Quiescence mixes these
// in at its first ply so a checking resource just past the horizon is not
// missed.
func GenerateQuietChecks(p *position.Position) *board.MoveList {
	ml := &board.MoveList{}
	generateQuietChecks(p, ml)
	return filterLegal(p, ml)
}

// discoveredCheckCandidates returns pieces of us that are the sole blocker
// between one of us's sliders and the enemy king; moving such a piece off
// the slider's ray gives check no matter where it lands.
func discoveredCheckCandidates(p *position.Position, us board.Color) board.Bitboard {
	them := us.Other()
	ksq := p.KingSquare[them]
	var candidates board.Bitboard

	snipers := board.RookAttacks(ksq, 0) & (p.Pieces[us][board.Rook] | p.Pieces[us][board.Queen])
	snipers |= board.BishopAttacks(ksq, 0) & (p.Pieces[us][board.Bishop] | p.Pieces[us][board.Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := board.Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			candidates |= blockers
		}
	}
	return candidates
}

func generateQuietChecks(p *position.Position, ml *board.MoveList) {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[them]
	occupied := p.AllOccupied
	empty := ^occupied
	discovered := discoveredCheckCandidates(p, us)

	addUnique := func(m board.Move) {
		if !ml.Contains(m) {
			ml.Add(m)
		}
	}

	// Direct checks: quiet moves landing on a square from which the moved
	// piece attacks the enemy king.
	knightTargets := board.KnightAttacks(ksq) & empty
	bishopTargets := board.BishopAttacks(ksq, occupied) & empty
	rookTargets := board.RookAttacks(ksq, occupied) & empty

	knights := p.Pieces[us][board.Knight]
	for knights != 0 {
		from := knights.PopLSB()
		tos := board.KnightAttacks(from) & knightTargets
		for tos != 0 {
			addUnique(board.NewMove(from, tos.PopLSB()))
		}
	}
	bishops := p.Pieces[us][board.Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		tos := board.BishopAttacks(from, occupied) & bishopTargets
		for tos != 0 {
			addUnique(board.NewMove(from, tos.PopLSB()))
		}
	}
	rooks := p.Pieces[us][board.Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		tos := board.RookAttacks(from, occupied) & rookTargets
		for tos != 0 {
			addUnique(board.NewMove(from, tos.PopLSB()))
		}
	}
	queens := p.Pieces[us][board.Queen]
	for queens != 0 {
		from := queens.PopLSB()
		tos := board.QueenAttacks(from, occupied) & (bishopTargets | rookTargets)
		for tos != 0 {
			addUnique(board.NewMove(from, tos.PopLSB()))
		}
	}

	// Checking pawn pushes: a pushed pawn checks if it lands on a square a
	// them-colored pawn at ksq would "attack" backwards — promotions excluded
	// (the capture generator owns those).
	pawnCheckSquares := board.PawnAttacks(ksq, them)
	pawns := p.Pieces[us][board.Pawn]
	var push1, push2 board.Bitboard
	pushDir := 8
	if us == board.White {
		push1 = pawns.North() & empty &^ board.Rank8
		push2 = (push1 & board.Rank3).North() & empty
	} else {
		push1 = pawns.South() & empty &^ board.Rank1
		push2 = (push1 & board.Rank6).South() & empty
		pushDir = -8
	}
	for tos := push1 & pawnCheckSquares; tos != 0; {
		to := tos.PopLSB()
		addUnique(board.NewMove(board.Square(int(to)-pushDir), to))
	}
	for tos := push2 & pawnCheckSquares; tos != 0; {
		to := tos.PopLSB()
		addUnique(board.NewMove(board.Square(int(to)-2*pushDir), to))
	}

	// Discovered checks: any quiet move of a candidate off the king ray.
	for cands := discovered; cands != 0; {
		from := cands.PopLSB()
		ray := board.Line(from, ksq)
		piece := p.PieceAt(from)
		var tos board.Bitboard
		switch piece.Type() {
		case board.Pawn:
			tos = board.PawnPush(from, us) & empty &^ (board.Rank1 | board.Rank8)
			if tos != 0 && from.RelativeRank(us) == 1 {
				tos |= board.PawnPush(tos.LSB(), us) & empty
			}
		case board.Knight:
			tos = board.KnightAttacks(from) & empty
		case board.Bishop:
			tos = board.BishopAttacks(from, occupied) & empty
		case board.Rook:
			tos = board.RookAttacks(from, occupied) & empty
		case board.Queen:
			// A queen blocking its own battery still attacks along the ray;
			// off-ray queen moves are already direct checks handled above.
			continue
		case board.King:
			tos = board.KingAttacks(from) & empty
		}
		tos &^= ray
		for tos != 0 {
			addUnique(board.NewMove(from, tos.PopLSB()))
		}
	}
}

// IsCapture reports whether m captures a piece in position p (before the
// move is made).
func IsCapture(p *position.Position, m board.Move) bool {
	return m.IsEnPassant() || p.PieceAt(m.To()) != board.NoPiece
}
