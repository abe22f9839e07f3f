package ai

import (
	"context"
	"runtime"
	"sync"

	"github.com/benbeisheim/chesscore/internal/model"
)

const scoreInfinite = Checkmate + 1

// Minimax is a fixed depth negamax search with alpha-beta pruning over
// material. Root moves are searched in parallel, each on its own clone.
// When ctx is done the best fully searched root move is returned.
type Minimax struct {
	Depth   int
	Workers int
}

func NewMinimax(depth int) *Minimax {
	if depth < 1 {
		depth = 1
	}
	return &Minimax{Depth: depth, Workers: runtime.GOMAXPROCS(0)}
}

type rootResult struct {
	index int
	move  model.MoveRecord
	score int
	err   error
}

func (mm *Minimax) Choose(ctx context.Context, e *model.Engine) (model.MoveRecord, error) {
	var roots []model.MoveRecord
	for _, m := range e.LegalMoves() {
		roots = append(roots, candidates(m)...)
	}
	if len(roots) == 0 {
		return model.MoveRecord{}, ErrNoMoves
	}

	workers := mm.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	results := make(chan rootResult, len(roots))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c := e.Clone()
				res := rootResult{index: i, move: roots[i]}
				if res.err = c.MakeMove(roots[i]); res.err == nil {
					var score int
					score, res.err = mm.negamax(ctx, c, mm.Depth-1, 1, -scoreInfinite, scoreInfinite)
					res.score = -score
				}
				results <- res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range roots {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	wg.Wait()
	close(results)

	best := rootResult{index: -1, score: -scoreInfinite}
	for res := range results {
		if res.err != nil {
			continue
		}
		// lowest index wins ties so the result does not depend on scheduling
		if res.score > best.score || (res.score == best.score && res.index < best.index) {
			best = res
		}
	}
	if best.index < 0 {
		return roots[0], nil
	}
	return best.move, nil
}

// negamax returns the score of the position for the side to move. ply is the
// distance from the root and makes nearer mates score higher.
func (mm *Minimax) negamax(ctx context.Context, e *model.Engine, depth, ply, alpha, beta int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	switch e.Status() {
	case model.StatusCheckmate:
		return -Checkmate + ply, nil
	case model.StatusStalemate:
		return Stalemate, nil
	}
	if depth <= 0 {
		return relative(e), nil
	}

	best := -scoreInfinite
	for _, m := range e.LegalMoves() {
		for _, c := range candidates(m) {
			if err := e.MakeMove(c); err != nil {
				return 0, err
			}
			score, err := mm.negamax(ctx, e, depth-1, ply+1, -beta, -alpha)
			if _, uerr := e.UndoMove(); uerr != nil {
				return 0, uerr
			}
			if err != nil {
				return 0, err
			}
			score = -score
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				return best, nil
			}
		}
	}
	return best, nil
}
