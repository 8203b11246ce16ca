package board

import "fmt"

// Move packs a move into 16 bits: from (6), to (6), type (4).
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-15: move type
type Move uint16

// Move types, occupying the top 4 bits.
const (
	mtNormal uint16 = iota
	mtCastling
	mtEnPassant
	mtPromoKnight
	mtPromoBishop
	mtPromoRook
	mtPromoQueen
)

const (
	// NoMove is the sentinel for "no move": from==to==0, type==normal.
	NoMove Move = 0
	// NullMove is the sentinel for a null move (passed turn): all bits set.
	NullMove Move = 0xFFFF
)

func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(mtNormal)<<12
}

func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(mtCastling)<<12
}

func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(mtEnPassant)<<12
}

// NewPromotion builds a promotion move. promo must be Knight/Bishop/Rook/Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	var mt uint16
	switch promo {
	case Knight:
		mt = mtPromoKnight
	case Bishop:
		mt = mtPromoBishop
	case Rook:
		mt = mtPromoRook
	default:
		mt = mtPromoQueen
	}
	return Move(from) | Move(to)<<6 | Move(mt)<<12
}

func (m Move) From() Square  { return Square(m & 0x3F) }
func (m Move) To() Square    { return Square((m >> 6) & 0x3F) }
func (m Move) mtype() uint16 { return uint16(m>>12) & 0xF }

func (m Move) IsCastling() bool  { return m.mtype() == mtCastling }
func (m Move) IsEnPassant() bool { return m.mtype() == mtEnPassant }
func (m Move) IsPromotion() bool { return m.mtype() >= mtPromoKnight }

// Promotion returns the promoted-to piece type; only valid if IsPromotion().
func (m Move) Promotion() PieceType {
	switch m.mtype() {
	case mtPromoKnight:
		return Knight
	case mtPromoBishop:
		return Bishop
	case mtPromoRook:
		return Rook
	default:
		return Queen
	}
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a UCI move string ("e2e4", "e7e8q") against a
// position-supplied piece lookup and en-passant target, so it can
// correctly tag castling/en-passant/promotion.
func ParseMove(s string, pieceAt func(Square) Piece, epTarget Square) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("board: invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) >= 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("board: invalid promotion %q", s)
		}
		return NewPromotion(from, to, promo), nil
	}
	piece := pieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("board: no piece on %s", from)
	}
	if piece.Type() == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if piece.Type() == Pawn && to == epTarget && epTarget != NoSquare {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity, allocation-free list of moves.
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move)        { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int          { return ml.count }
func (ml *MoveList) Get(i int) Move    { return ml.moves[i] }
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }
func (ml *MoveList) Swap(i, j int)     { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }
func (ml *MoveList) Clear()            { ml.count = 0 }
func (ml *MoveList) Slice() []Move     { return ml.moves[:ml.count] }

func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}
