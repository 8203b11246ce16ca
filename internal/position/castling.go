// Package position implements the full chess position: piece placement,
// game state, make/undo, and FEN (de)serialization. It sits directly on
// top of the leaf board package and owns nothing that package does.
package position

import "github.com/cetincan0/gochess/internal/board"

// CastlingRights is a 4-bit set of which castling moves are still available.
// Bit layout matches FEN order (K, Q, k, q) so CastlingRights can index
// directly into board.ZobristCastleKey.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// CanCastle reports whether color c may still castle on the given side.
func (cr CastlingRights) CanCastle(c board.Color, kingSide bool) bool {
	switch {
	case c == board.White && kingSide:
		return cr&WhiteKingSide != 0
	case c == board.White && !kingSide:
		return cr&WhiteQueenSide != 0
	case c == board.Black && kingSide:
		return cr&BlackKingSide != 0
	default:
		return cr&BlackQueenSide != 0
	}
}

// rightsForColor returns the (kingSide, queenSide) right bits for c.
func rightsForColor(c board.Color) (kingSide, queenSide CastlingRights) {
	if c == board.White {
		return WhiteKingSide, WhiteQueenSide
	}
	return BlackKingSide, BlackQueenSide
}

// buildCastleMask computes, for every square, the castling rights that are
// lost the moment a piece leaves from or arrives on that square. It is
// derived from the actual king/rook home squares rather than hardcoded
// A/H files, so it works for both standard chess and Chess960 setups: the
// king's home square clears both of its own rights, and each rook's home
// square (InitialRookSquare) clears only the matching side.
func buildCastleMask(kingHome [2]board.Square, rookHome [2][2]board.Square) [64]CastlingRights {
	var mask [64]CastlingRights
	for c := board.White; c <= board.Black; c++ {
		kingSide, queenSide := rightsForColor(c)
		mask[kingHome[c]] |= kingSide | queenSide
		mask[rookHome[c][0]] |= kingSide
		mask[rookHome[c][1]] |= queenSide
	}
	return mask
}
