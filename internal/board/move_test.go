package board

import "testing"

func TestMoveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Move
		from Square
		to   Square
	}{
		{"normal", NewMove(E2, E4), E2, E4},
		{"castling", NewCastling(E1, G1), E1, G1},
		{"enpassant", NewEnPassant(D5, E6), D5, E6},
		{"promo", NewPromotion(E7, E8, Queen), E7, E8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.m.From() != tc.from {
				t.Errorf("From() = %v, want %v", tc.m.From(), tc.from)
			}
			if tc.m.To() != tc.to {
				t.Errorf("To() = %v, want %v", tc.m.To(), tc.to)
			}
		})
	}
}

func TestMoveSentinels(t *testing.T) {
	if NoMove.From() != A1 || NoMove.To() != A1 {
		t.Errorf("NoMove should decode to from==to==0")
	}
	if NullMove.String() != "0000" {
		t.Errorf("NullMove.String() = %q, want 0000", NullMove.String())
	}
}

func TestMovePromotionType(t *testing.T) {
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		m := NewPromotion(A7, A8, pt)
		if !m.IsPromotion() {
			t.Fatalf("IsPromotion() false for %v promo", pt)
		}
		if m.Promotion() != pt {
			t.Errorf("Promotion() = %v, want %v", m.Promotion(), pt)
		}
	}
}

func TestMoveString(t *testing.T) {
	cases := map[Move]string{
		NewMove(E2, E4):              "e2e4",
		NewPromotion(E7, E8, Queen):  "e7e8q",
		NewPromotion(A2, A1, Knight): "a2a1n",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestParseMove(t *testing.T) {
	pieceAt := func(s Square) Piece {
		if s == E2 {
			return NewPiece(Pawn, White)
		}
		if s == E1 {
			return NewPiece(King, White)
		}
		return NoPiece
	}
	m, err := ParseMove("e2e4", pieceAt, NoSquare)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.From() != E2 || m.To() != E4 {
		t.Errorf("parsed move = %v", m)
	}

	castle, err := ParseMove("e1g1", pieceAt, NoSquare)
	if err != nil {
		t.Fatalf("ParseMove castling: %v", err)
	}
	if !castle.IsCastling() {
		t.Errorf("expected e1g1 from a king to be tagged castling")
	}

	if _, err := ParseMove("z9z9", pieceAt, NoSquare); err == nil {
		t.Errorf("expected error for invalid square")
	}
}

func TestMoveListBasics(t *testing.T) {
	var ml MoveList
	ml.Add(NewMove(E2, E4))
	ml.Add(NewMove(D2, D4))
	if ml.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ml.Len())
	}
	if !ml.Contains(NewMove(D2, D4)) {
		t.Errorf("Contains() missed an added move")
	}
	ml.Clear()
	if ml.Len() != 0 {
		t.Errorf("Clear() left Len() = %d", ml.Len())
	}
}
