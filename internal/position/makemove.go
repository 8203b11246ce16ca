package position

import "github.com/cetincan0/gochess/internal/board"

// MakeMove applies m, pushing a new Info frame onto the stack. The Info it
// pushed is exactly what UnmakeMove needs to restore the previous frame, so
// UnmakeMove never has to recompute anything.
func (p *Position) MakeMove(m board.Move) {
	prev := &p.stack[p.top]
	p.top++
	next := &p.stack[p.top]

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.mailbox[from]
	pt := piece.Type()

	next.CastlingRights = prev.CastlingRights
	next.HalfMoveClock = prev.HalfMoveClock + 1
	next.CapturedPiece = board.NoPiece
	next.NonPawnMaterial = prev.NonPawnMaterial
	hash := prev.Hash
	pawnHash := prev.PawnHash

	hash ^= board.ZobristSTM
	if prev.EnPassant != board.NoSquare {
		hash ^= board.ZobristEPKey[prev.EnPassant.File()]
	}
	next.EnPassant = board.NoSquare

	switch {
	case m.IsEnPassant():
		capSq := to - 8
		if us == board.Black {
			capSq = to + 8
		}
		p.removePiece(capSq)
		next.CapturedPiece = board.NewPiece(board.Pawn, them)
		hash ^= board.ZobristPieceKey[them][board.Pawn][capSq]
		pawnHash ^= board.ZobristPieceKey[them][board.Pawn][capSq]
		next.HalfMoveClock = 0
	case p.mailbox[to] != board.NoPiece:
		captured := p.mailbox[to]
		p.removePiece(to)
		next.CapturedPiece = captured
		hash ^= board.ZobristPieceKey[them][captured.Type()][to]
		if captured.Type() == board.Pawn {
			pawnHash ^= board.ZobristPieceKey[them][board.Pawn][to]
		} else {
			next.NonPawnMaterial[them] -= board.Value[captured.Type()]
		}
		next.HalfMoveClock = 0
	}

	p.movePieceSquares(from, to)
	hash ^= board.ZobristPieceKey[us][pt][from]
	hash ^= board.ZobristPieceKey[us][pt][to]
	if pt == board.Pawn {
		pawnHash ^= board.ZobristPieceKey[us][board.Pawn][from]
		pawnHash ^= board.ZobristPieceKey[us][board.Pawn][to]
		next.HalfMoveClock = 0
	}

	if m.IsPromotion() {
		promo := m.Promotion()
		p.Pieces[us][board.Pawn] &^= board.SquareBB(to)
		p.Pieces[us][promo] |= board.SquareBB(to)
		p.mailbox[to] = board.NewPiece(promo, us)
		hash ^= board.ZobristPieceKey[us][board.Pawn][to]
		hash ^= board.ZobristPieceKey[us][promo][to]
		pawnHash ^= board.ZobristPieceKey[us][board.Pawn][to]
		next.NonPawnMaterial[us] += board.Value[promo]
	}

	if m.IsCastling() {
		kingSidestep := to > from
		side := queenSide
		if kingSidestep {
			side = kingSide
		}
		rookFrom := p.InitialRookSquare[us][side]
		rookTo := board.NewSquare(5, from.Rank())
		if side == queenSide {
			rookTo = board.NewSquare(3, from.Rank())
		}
		p.movePieceSquares(rookFrom, rookTo)
		hash ^= board.ZobristPieceKey[us][board.Rook][rookFrom]
		hash ^= board.ZobristPieceKey[us][board.Rook][rookTo]
	}

	next.CastlingRights &^= p.CastleMask[from] | p.CastleMask[to]

	// The en-passant target is only recorded (and hashed) when an enemy pawn
	// can actually capture onto it, so transpositions that differ only by an
	// unusable ep square share a hash.
	if pt == board.Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := board.Square((int(from) + int(to)) / 2)
		if board.PawnAttacks(epSquare, us)&p.Pieces[them][board.Pawn] != 0 {
			next.EnPassant = epSquare
			hash ^= board.ZobristEPKey[epSquare.File()]
		}
	}

	if next.CastlingRights != prev.CastlingRights {
		hash ^= board.ZobristCastleKey[prev.CastlingRights]
		hash ^= board.ZobristCastleKey[next.CastlingRights]
	}

	if us == board.Black {
		p.FullMoveNumber++
	}

	next.Hash = hash
	next.PawnHash = pawnHash
	p.SideToMove = them
	p.UpdateCheckers()
	p.refreshPinned()
}

// UnmakeMove restores the position to what it was before m was made; it
// assumes m is the most recent move applied via MakeMove.
func (p *Position) UnmakeMove(m board.Move) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	if us == board.Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promo := m.Promotion()
		p.Pieces[us][promo] &^= board.SquareBB(to)
		p.Pieces[us][board.Pawn] |= board.SquareBB(to)
		p.mailbox[to] = board.NewPiece(board.Pawn, us)
	}

	p.movePieceSquares(to, from)

	if m.IsCastling() {
		kingSidestep := to > from
		side := queenSide
		if kingSidestep {
			side = kingSide
		}
		rookFrom := p.InitialRookSquare[us][side]
		rookTo := board.NewSquare(5, from.Rank())
		if side == queenSide {
			rookTo = board.NewSquare(3, from.Rank())
		}
		p.movePieceSquares(rookTo, rookFrom)
	}

	captured := p.stack[p.top].CapturedPiece
	if captured != board.NoPiece {
		if m.IsEnPassant() {
			capSq := to - 8
			if us == board.Black {
				capSq = to + 8
			}
			p.setPiece(captured, capSq)
		} else {
			p.setPiece(captured, to)
		}
	}

	p.SideToMove = us
	p.top--
}

// MakeNullMove passes the turn without moving a piece, used by null-move
// pruning. It pushes a frame the same way MakeMove does, so UnmakeNullMove
// is just UnmakeMove's bookkeeping without any piece movement to undo.
func (p *Position) MakeNullMove() {
	prev := &p.stack[p.top]
	p.top++
	next := &p.stack[p.top]

	next.CastlingRights = prev.CastlingRights
	next.HalfMoveClock = prev.HalfMoveClock + 1
	next.CapturedPiece = board.NoPiece
	next.NonPawnMaterial = prev.NonPawnMaterial
	next.EnPassant = board.NoSquare

	hash := prev.Hash
	if prev.EnPassant != board.NoSquare {
		hash ^= board.ZobristEPKey[prev.EnPassant.File()]
	}
	hash ^= board.ZobristSTM
	next.Hash = hash
	next.PawnHash = prev.PawnHash

	p.SideToMove = p.SideToMove.Other()
	p.UpdateCheckers()
	next.Pinned = prev.Pinned
}

func (p *Position) UnmakeNullMove() {
	p.SideToMove = p.SideToMove.Other()
	p.top--
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
