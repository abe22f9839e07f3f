package model

import (
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func oracleLabels(b *dragontoothmg.Board) []string {
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, strings.ToLower(moves[i].String()))
	}
	sort.Strings(out)
	return out
}

func oracleMove(t *testing.T, b *dragontoothmg.Board, label string) dragontoothmg.Move {
	t.Helper()
	moves := b.GenerateLegalMoves()
	for i := range moves {
		if strings.ToLower(moves[i].String()) == label {
			return moves[i]
		}
	}
	t.Fatalf("oracle has no move %s", label)
	return 0
}

// TestOracle plays seeded random games and compares every legal move set
// against dragontoothmg.
func TestOracle(t *testing.T) {
	t.Parallel()
	games := 20
	if testing.Short() {
		games = 4
	}
	for i, fen := range testPositions {
		fen := fen
		seed := int64(100 + i)
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewSource(seed))
			for g := 0; g < games; g++ {
				e := mustEngine(t, fen)
				ob := dragontoothmg.ParseFen(fen)
				for ply := 0; ply < 120; ply++ {
					got, want := labels(e.LegalMoves()), oracleLabels(&ob)
					if !reflect.DeepEqual(got, want) {
						t.Fatalf("position %s after %v:\n got  %v\n want %v", e.FEN(), e.History(), got, want)
					}
					if len(got) == 0 {
						break
					}
					label := got[rng.Intn(len(got))]
					play(t, e, label)
					ob.Apply(oracleMove(t, &ob, label))
				}
			}
		})
	}
}
