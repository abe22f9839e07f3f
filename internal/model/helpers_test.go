package model

import (
	"sort"
	"strings"
	"testing"
)

func mustEngine(t testing.TB, fen string, opts ...EngineOption) *Engine {
	t.Helper()
	if fen != "" {
		opts = append(opts, WithFEN(fen))
	}
	e, err := NewEngine(opts...)
	if err != nil {
		t.Fatalf("NewEngine(%q): %v", fen, err)
	}
	return e
}

func mustSquare(t testing.TB, label string) Square {
	t.Helper()
	sq, err := ParseSquare(label)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}

// play applies moves given as "e2e4" / "e7e8q" labels.
func play(t testing.TB, e *Engine, moves ...string) {
	t.Helper()
	for _, label := range moves {
		m := MoveRecord{From: mustSquare(t, label[:2]), To: mustSquare(t, label[2:4])}
		if len(label) == 5 {
			k, ok := ParseKind(label[4:])
			if !ok {
				t.Fatalf("bad promotion in %q", label)
			}
			m.Promotion = k
		}
		if err := e.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", label, err)
		}
	}
}

// labels renders moves as sorted square-pair labels, promotions expanded.
func labels(moves []MoveRecord) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		for _, c := range expand(m) {
			out = append(out, c.String())
		}
	}
	sort.Strings(out)
	return out
}

func fenPrefix(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func fenField(fen string, i int) string {
	return strings.Fields(fen)[i]
}
