package model

// Perft counts the leaf nodes of the legal move tree to depth. Each promotion
// counts once per promotion choice.
func Perft(e *Engine, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	e.refresh()
	moves := e.legal

	if depth == 1 {
		nodes := uint64(len(moves))
		for _, m := range moves {
			if m.PromotionRequested {
				nodes += uint64(len(PromotionChoices) - 1)
			}
		}
		return nodes
	}

	var nodes uint64
	for _, m := range moves {
		for _, choice := range expand(m) {
			e.apply(choice)
			nodes += Perft(e, depth-1)
			e.UndoMove()
		}
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by move label.
func Divide(e *Engine, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range e.LegalMoves() {
		for _, choice := range expand(m) {
			e.apply(choice)
			out[choice.String()] = Perft(e, depth-1)
			e.UndoMove()
		}
	}
	return out
}

// expand turns a promotion into one move per choice.
func expand(m MoveRecord) []MoveRecord {
	if !m.PromotionRequested {
		return []MoveRecord{m}
	}
	out := make([]MoveRecord, len(PromotionChoices))
	for i, k := range PromotionChoices {
		out[i] = m.WithPromotion(k)
	}
	return out
}
