package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/benbeisheim/chesscore/internal/model"
)

var (
	ErrNoMoves         = errors.New("no legal moves")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy picks a move for the side to move. The engine is returned in the
// position it was passed in.
type Strategy interface {
	Choose(ctx context.Context, e *model.Engine) (model.MoveRecord, error)
}

// Parse returns the strategy called name. depth is used by minimax only.
func Parse(name string, depth int) (Strategy, error) {
	switch name {
	case "random":
		return NewRandom(time.Now().UnixNano()), nil
	case "greedy":
		return NewGreedy(time.Now().UnixNano()), nil
	case "minimax", "":
		return NewMinimax(depth), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// picker is a goroutine safe random source.
type picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newPicker(seed int64) *picker {
	return &picker{rng: rand.New(rand.NewSource(seed))}
}

func (p *picker) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

// Random plays any legal move.
type Random struct {
	p *picker
}

func NewRandom(seed int64) *Random {
	return &Random{p: newPicker(seed)}
}

func (r *Random) Choose(_ context.Context, e *model.Engine) (model.MoveRecord, error) {
	moves := e.LegalMoves()
	if len(moves) == 0 {
		return model.MoveRecord{}, ErrNoMoves
	}
	m := moves[r.p.intn(len(moves))]
	if m.PromotionRequested {
		m = m.WithPromotion(model.PromotionChoices[r.p.intn(len(model.PromotionChoices))])
	}
	return m, nil
}

// Greedy looks one ply ahead and maximizes material, breaking ties at random.
type Greedy struct {
	p *picker
}

func NewGreedy(seed int64) *Greedy {
	return &Greedy{p: newPicker(seed)}
}

func (g *Greedy) Choose(ctx context.Context, e *model.Engine) (model.MoveRecord, error) {
	moves := e.LegalMoves()
	if len(moves) == 0 {
		return model.MoveRecord{}, ErrNoMoves
	}

	best := -Checkmate - 1
	var equal []model.MoveRecord
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			break
		}
		for _, c := range candidates(m) {
			if err := e.MakeMove(c); err != nil {
				return model.MoveRecord{}, err
			}
			var score int
			switch e.Status() {
			case model.StatusCheckmate:
				score = Checkmate
			case model.StatusStalemate:
				score = Stalemate
			default:
				score = -relative(e)
			}
			if _, err := e.UndoMove(); err != nil {
				return model.MoveRecord{}, err
			}

			switch {
			case score > best:
				best = score
				equal = append(equal[:0], c)
			case score == best:
				equal = append(equal, c)
			}
		}
	}
	if len(equal) == 0 {
		return candidates(moves[0])[0], nil
	}
	return equal[g.p.intn(len(equal))], nil
}
