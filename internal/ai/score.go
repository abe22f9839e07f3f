package ai

import "github.com/benbeisheim/chesscore/internal/model"

const (
	Checkmate = 1000
	Stalemate = 0
)

var pieceScore = [...]int{
	model.KindEmpty:  0,
	model.KindPawn:   1,
	model.KindRook:   5,
	model.KindKnight: 3,
	model.KindBishop: 3,
	model.KindQueen:  10,
	model.KindKing:   0,
}

// ScoreMaterial sums piece values, positive when white is ahead.
func ScoreMaterial(grid [model.Size][model.Size]model.Piece) int {
	score := 0
	for _, row := range grid {
		for _, p := range row {
			if p.Side == model.SideWhite {
				score += pieceScore[p.Kind]
			} else {
				score -= pieceScore[p.Kind]
			}
		}
	}
	return score
}

// relative scores the position from the side to move's point of view.
func relative(e *model.Engine) int {
	score := ScoreMaterial(e.Grid())
	if e.Turn() == model.SideBlack {
		return -score
	}
	return score
}

// candidates expands a promotion into one move per promotion choice.
func candidates(m model.MoveRecord) []model.MoveRecord {
	if !m.PromotionRequested {
		return []model.MoveRecord{m}
	}
	out := make([]model.MoveRecord, len(model.PromotionChoices))
	for i, k := range model.PromotionChoices {
		out[i] = m.WithPromotion(k)
	}
	return out
}
