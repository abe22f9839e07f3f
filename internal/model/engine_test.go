package model

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

var testPositions = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func TestMakeUndoRoundTrip(t *testing.T) {
	t.Parallel()
	for i, fen := range testPositions {
		fen := fen
		seed := int64(i + 1)
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewSource(seed))
			e := mustEngine(t, fen)
			for ply := 0; ply < 60 && e.Status() == StatusActive; ply++ {
				before := *e.board
				legal := e.LegalMoves()
				for _, m := range legal {
					for _, c := range expand(m) {
						if err := e.MakeMove(c); err != nil {
							t.Fatalf("MakeMove(%s) in %s: %v", c, before.FEN(), err)
						}
						if e.board.Analyze(m.Moved.Side).InCheck {
							t.Errorf("%s leaves the %s king attacked in %s", c, m.Moved.Side, before.FEN())
						}
						if _, err := e.UndoMove(); err != nil {
							t.Fatal(err)
						}
						if *e.board != before {
							t.Fatalf("make/undo %s changed %s into %s", c, before.FEN(), e.board.FEN())
						}
						if got := e.LegalMoves(); !reflect.DeepEqual(got, legal) {
							t.Fatalf("legal moves changed after make/undo %s", c)
						}
					}
				}
				m := legal[rng.Intn(len(legal))]
				if err := e.MakeMove(m.WithPromotion(KindQueen)); err != nil {
					t.Fatal(err)
				}
			}
		})
	}
}

func TestMakeMoveErrors(t *testing.T) {
	t.Parallel()

	t.Run("illegal move", func(t *testing.T) {
		t.Parallel()
		e := mustEngine(t, "")
		before := e.FEN()
		err := e.MakeMove(MoveRecord{From: mustSquare(t, "e2"), To: mustSquare(t, "e5")})
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("err = %v, want ErrInvalidMove", err)
		}
		if e.FEN() != before || e.Plies() != 0 {
			t.Errorf("state changed by rejected move")
		}
	})

	t.Run("wrong side", func(t *testing.T) {
		t.Parallel()
		e := mustEngine(t, "")
		err := e.MakeMove(MoveRecord{From: mustSquare(t, "e7"), To: mustSquare(t, "e5")})
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("err = %v, want ErrInvalidMove", err)
		}
	})

	t.Run("promotion choice required", func(t *testing.T) {
		t.Parallel()
		e := mustEngine(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
		before := e.FEN()
		err := e.MakeMove(MoveRecord{From: mustSquare(t, "a7"), To: mustSquare(t, "a8")})
		if !errors.Is(err, ErrPromotionChoiceRequired) {
			t.Fatalf("err = %v, want ErrPromotionChoiceRequired", err)
		}
		if e.FEN() != before {
			t.Errorf("state changed by rejected promotion")
		}
	})

	t.Run("promotion to king", func(t *testing.T) {
		t.Parallel()
		e := mustEngine(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
		err := e.MakeMove(MoveRecord{From: mustSquare(t, "a7"), To: mustSquare(t, "a8"), Promotion: KindKing})
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("err = %v, want ErrInvalidMove", err)
		}
	})

	t.Run("undo on empty history", func(t *testing.T) {
		t.Parallel()
		e := mustEngine(t, "")
		if _, err := e.UndoMove(); !errors.Is(err, ErrNothingToUndo) {
			t.Fatalf("err = %v, want ErrNothingToUndo", err)
		}
		if e.FEN() != StartFEN {
			t.Errorf("state changed by empty undo")
		}
	})
}

func TestPromotion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		opts   []EngineOption
		choice Kind
		want   Kind
	}{
		{name: "explicit choice", choice: KindKnight, want: KindKnight},
		{name: "policy", opts: []EngineOption{WithPromotionPolicy(PromoteToQueen)}, want: KindQueen},
		{name: "choice beats policy", opts: []EngineOption{WithPromotionPolicy(PromoteToQueen)}, choice: KindRook, want: KindRook},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := mustEngine(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1", tt.opts...)
			a7, a8 := mustSquare(t, "a7"), mustSquare(t, "a8")
			if err := e.MakeMove(MoveRecord{From: a7, To: a8, Promotion: tt.choice}); err != nil {
				t.Fatal(err)
			}
			if got := e.At(a8); !got.Is(SideWhite, tt.want) {
				t.Errorf("a8 = %s, want white %s", got, tt.want)
			}
			last, _ := e.LastMove()
			if last.Promotion != tt.want {
				t.Errorf("recorded promotion = %s, want %s", last.Promotion, tt.want)
			}

			m, err := e.UndoMove()
			if err != nil {
				t.Fatal(err)
			}
			if m.Promotion != tt.want {
				t.Errorf("undone promotion = %s", m.Promotion)
			}
			if got := e.At(a7); !got.Is(SideWhite, KindPawn) {
				t.Errorf("a7 = %s after undo, want white pawn", got)
			}
			if !e.At(a8).IsEmpty() {
				t.Errorf("a8 = %s after undo, want empty", e.At(a8))
			}
		})
	}
}

func TestMakeMoveUsesLegalRecord(t *testing.T) {
	t.Parallel()
	e := mustEngine(t, "")
	// a caller-built record carries only squares
	m := MoveRecord{From: mustSquare(t, "g1"), To: mustSquare(t, "f3"), Castle: true}
	if err := e.MakeMove(m); err != nil {
		t.Fatal(err)
	}
	last, _ := e.LastMove()
	if last.Castle || !last.Moved.Is(SideWhite, KindKnight) {
		t.Errorf("recorded %#v", last)
	}
}

func TestHistoryAndReset(t *testing.T) {
	t.Parallel()
	e := mustEngine(t, "")
	play(t, e, "e2e4", "e7e5", "g1f3")
	if got := e.Plies(); got != 3 {
		t.Fatalf("Plies() = %d, want 3", got)
	}
	var got []string
	for _, m := range e.History() {
		got = append(got, m.String())
	}
	if want := []string{"e2e4", "e7e5", "g1f3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
	if e.Turn() != SideBlack {
		t.Errorf("Turn() = %s, want black", e.Turn())
	}

	e.Reset()
	if e.Plies() != 0 || e.FEN() != StartFEN {
		t.Errorf("Reset() left %d plies at %s", e.Plies(), e.FEN())
	}
	if _, err := e.UndoMove(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("UndoMove() after Reset = %v", err)
	}
}

func TestResetKeepsCustomStart(t *testing.T) {
	t.Parallel()
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	e := mustEngine(t, fen)
	play(t, e, "e1g1")
	e.Reset()
	if got := e.FEN(); got != fen {
		t.Errorf("FEN() after Reset = %q, want %q", got, fen)
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	e := mustEngine(t, "")
	play(t, e, "e2e4")
	c := e.Clone()
	play(t, c, "e7e5", "g1f3")

	if e.Plies() != 1 || c.Plies() != 3 {
		t.Fatalf("Plies() = %d/%d, want 1/3", e.Plies(), c.Plies())
	}
	if e.Turn() != SideBlack {
		t.Errorf("original turn changed")
	}
	if _, err := c.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if c.FEN() != e.FEN() {
		t.Errorf("clone %q diverged from %q after undo", c.FEN(), e.FEN())
	}
	if _, err := c.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if e.Plies() != 1 {
		t.Errorf("undo on clone popped original history")
	}
}

func TestLegalMovesReturnsCopy(t *testing.T) {
	t.Parallel()
	e := mustEngine(t, "")
	moves := e.LegalMoves()
	moves[0] = MoveRecord{}
	if e.LegalMoves()[0] == (MoveRecord{}) {
		t.Errorf("LegalMoves() exposes the cache")
	}
}
