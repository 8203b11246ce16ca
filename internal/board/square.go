// Package board implements the leaf-level chess representation: squares,
// bitboards, pieces, moves, and the attack/magic tables used to query
// them. Nothing in this package depends on a full Position.
package board

import "fmt"

// Square is a board square encoded as rank*8+file (A1=0, H1=7, A8=56, H8=63).
type Square int8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	// NoSquare is the sentinel for "no square".
	NoSquare Square = 64
)

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file, 0=a .. 7=h.
func (s Square) File() int { return int(s) & 7 }

// Rank returns the rank, 0=rank1 .. 7=rank8.
func (s Square) Rank() int { return int(s) >> 3 }

// Valid reports whether s is one of the 64 board squares.
func (s Square) Valid() bool { return s >= A1 && s <= H8 }

// Mirror flips a square vertically (white's perspective <-> black's).
func (s Square) Mirror() Square { return s ^ 56 }

// RelativeRank returns the rank as seen by color c (0 = c's back rank).
func (s Square) RelativeRank(c Color) int {
	if c == White {
		return s.Rank()
	}
	return 7 - s.Rank()
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// ParseSquare parses algebraic notation, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("board: invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("board: invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

// Distance returns the Chebyshev distance between two squares.
func Distance(a, b Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	return max(abs(df), abs(dr))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
