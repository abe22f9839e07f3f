package model

import (
	"fmt"
	"testing"
)

func TestPerft(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen    string
		counts []uint64
	}{
		{
			fen:    StartFEN,
			counts: []uint64{20, 400, 8902, 197281},
		},
		{
			fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			counts: []uint64{48, 2039, 97862},
		},
		{
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			counts: []uint64{14, 191, 2812, 43238},
		},
		{
			fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			counts: []uint64{6, 264, 9467},
		},
		{
			fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			counts: []uint64{44, 1486, 62379},
		},
	}

	for _, tt := range tests {
		tt := tt
		for i, want := range tt.counts {
			depth := i + 1
			want := want
			t.Run(fmt.Sprintf("%s/%d", tt.fen, depth), func(t *testing.T) {
				t.Parallel()
				if want > 50000 && testing.Short() {
					t.Skip("deep perft")
				}
				e := mustEngine(t, tt.fen)
				if got := Perft(e, depth); got != want {
					t.Errorf("Perft(%d) = %d, want %d", depth, got, want)
				}
				if e.Plies() != 0 || fenPrefix(e.FEN()) != fenPrefix(tt.fen) {
					t.Errorf("Perft left the engine at %s with %d plies", e.FEN(), e.Plies())
				}
			})
		}
	}
}

func TestDivide(t *testing.T) {
	t.Parallel()
	e := mustEngine(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	div := Divide(e, 2)

	var total uint64
	for _, n := range div {
		total += n
	}
	if total != 264 {
		t.Errorf("Divide(2) sums to %d, want 264", total)
	}
	if len(div) != 6 {
		t.Errorf("Divide(2) has %d root moves, want 6", len(div))
	}
	for _, label := range []string{"b4c5", "c4c5", "d2d4", "f1f2", "f3d4", "g1h1"} {
		if _, ok := div[label]; !ok {
			t.Errorf("Divide(2) lacks %s: %v", label, div)
		}
	}
}

func BenchmarkPerft(b *testing.B) {
	e := mustEngine(b, "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Perft(e, 3)
	}
}
