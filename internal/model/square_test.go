package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSquareLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sq    Square
		label string
	}{
		{Sq(0, 0), "a8"},
		{Sq(7, 0), "a1"},
		{Sq(7, 7), "h1"},
		{Sq(4, 4), "e4"},
		{Sq(1, 3), "d7"},
	}
	for _, tt := range tests {
		if got := tt.sq.Label(); got != tt.label {
			t.Errorf("%v.Label() = %q, want %q", tt.sq, got, tt.label)
		}
		sq, err := ParseSquare(tt.label)
		if err != nil || sq != tt.sq {
			t.Errorf("ParseSquare(%q) = %v, %v; want %v", tt.label, sq, err, tt.sq)
		}
	}
	if got := NoSquare.Label(); got != "-" {
		t.Errorf("NoSquare.Label() = %q", got)
	}
}

func TestParseSquareErrors(t *testing.T) {
	t.Parallel()
	for _, label := range []string{"", "e", "e9", "i1", "e0", "e10", "E4"} {
		if _, err := ParseSquare(label); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) = %v, want ErrInvalidSquare", label, err)
		}
	}
}

func TestMoveJSON(t *testing.T) {
	t.Parallel()
	m := MoveRecord{From: Sq(1, 0), To: Sq(0, 0), PromotionRequested: true, Promotion: KindQueen}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"from":"a7","to":"a8","promotionRequested":true,"promotion":"queen"}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
	if got := m.String(); got != "a7a8q" {
		t.Errorf("String() = %q, want a7a8q", got)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()
	a := MoveRecord{From: Sq(6, 4), To: Sq(4, 4)}
	if got := a.Key(); got != 6444 {
		t.Errorf("Key() = %d, want 6444", got)
	}
	b := a
	b.Captured = Piece{KindPawn, SideBlack}
	if !a.Equal(b) {
		t.Errorf("moves with the same squares should be equal")
	}
}
