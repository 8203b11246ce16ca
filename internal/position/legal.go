package position

import "github.com/cetincan0/gochess/internal/board"

// IsLegal reports whether pseudo-legal move m leaves the mover's own king
// safe. King moves are checked directly against the destination square;
// everything else is verified by actually playing the move and looking
// back at the king, which is the only approach that is correct for pins,
// discovered checks, and en-passant's double-capture edge case in one
// pass.
func (p *Position) IsLegal(m board.Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	if from == ksq {
		if m.IsCastling() {
			return true
		}
		occ := p.AllOccupied &^ board.SquareBB(from)
		return board.AttackersByColor(p.pieces(), m.To(), them, occ) == 0
	}

	// Out of check, a non-king move by an unpinned piece can never expose
	// the king (en passant excepted: removing the captured pawn can open a
	// rank ray no pin tracks). In check, every move must be played out to
	// verify it actually addresses the check.
	pinned := p.Pinned(us)
	if !p.InCheck() && pinned&board.SquareBB(from) == 0 && !m.IsEnPassant() {
		return true
	}

	p.MakeMove(m)
	attacked := p.IsSquareAttacked(ksq, them)
	p.UnmakeMove(m)
	return !attacked
}
