package board

// Color is White or Black.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other flips the color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	if c == Black {
		return "Black"
	}
	return "NoColor"
}

// PieceType is the kind of piece, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

var pieceTypeChars = [7]byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}

// Char returns the lowercase FEN letter for the piece type.
func (pt PieceType) Char() byte { return pieceTypeChars[pt] }

// Value is the static material value of the piece type in centipawns.
var Value = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece packs a PieceType and a Color into 4 bits: color is the low bit,
// so piece^1 flips its color while leaving the type untouched.
type Piece uint8

const (
	WhitePawn   = Piece(Pawn<<1) | Piece(White)
	BlackPawn   = Piece(Pawn<<1) | Piece(Black)
	WhiteKnight = Piece(Knight<<1) | Piece(White)
	BlackKnight = Piece(Knight<<1) | Piece(Black)
	WhiteBishop = Piece(Bishop<<1) | Piece(White)
	BlackBishop = Piece(Bishop<<1) | Piece(Black)
	WhiteRook   = Piece(Rook<<1) | Piece(White)
	BlackRook   = Piece(Rook<<1) | Piece(Black)
	WhiteQueen  = Piece(Queen<<1) | Piece(White)
	BlackQueen  = Piece(Queen<<1) | Piece(Black)
	WhiteKing   = Piece(King<<1) | Piece(White)
	BlackKing   = Piece(King<<1) | Piece(Black)
	// NoPiece is the empty-square sentinel.
	NoPiece Piece = 12
)

// NewPiece builds a Piece from its type and color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt<<1) | Piece(c)
}

// Type extracts the PieceType.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p >> 1)
}

// Color extracts the Color.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p & 1)
}

// Value returns the piece's static material value.
func (p Piece) Value() int { return Value[p.Type()] }

func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	chars := "PpNnBbRrQqKk"
	return string(chars[p])
}

// PieceFromChar converts a FEN piece letter into a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'p':
		return BlackPawn
	case 'N':
		return WhiteKnight
	case 'n':
		return BlackKnight
	case 'B':
		return WhiteBishop
	case 'b':
		return BlackBishop
	case 'R':
		return WhiteRook
	case 'r':
		return BlackRook
	case 'Q':
		return WhiteQueen
	case 'q':
		return BlackQueen
	case 'K':
		return WhiteKing
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
