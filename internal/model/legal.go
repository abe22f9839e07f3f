package model

// legalMoves filters the pseudo-legal moves of the side to move down to the
// legal set and returns it together with the check scan it was built from.
//
// Double check leaves only king moves. Single check keeps king moves and
// moves landing on a block square. Castling is offered only when not in
// check. En passant is always settled by trial application.
func (b *BoardState) legalMoves() ([]MoveRecord, CheckInfo) {
	info := b.Analyze(b.turn)
	g := newGenerator(b, info)
	king := b.kings[b.turn]

	if info.DoubleCheck() {
		g.king(king)
		return g.moves, info
	}

	g.all()
	moves := g.moves[:0]
	var blocks []Square
	if info.InCheck {
		blocks = info.blockSquares(king)
	}
	for _, m := range g.moves {
		switch {
		case m.EnPassant:
			if !b.enPassantSafe(m) {
				continue
			}
		case m.Moved.Kind == KindKing:
		case info.InCheck && !containsSquare(blocks, m.To):
			continue
		}
		moves = append(moves, m)
	}

	if !info.InCheck {
		moves = b.castleMoves(moves)
	}
	return moves, info
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// castleMoves appends the available castles for the side to move. The king
// must not be in check; callers guarantee that.
func (b *BoardState) castleMoves(moves []MoveRecord) []MoveRecord {
	s := b.turn
	row := homeRow(s)
	from := Sq(row, 4)
	if b.kings[s] != from {
		return moves
	}
	enemy := s.Opposite()
	empty := func(col int) bool { return b.At(Sq(row, col)).IsEmpty() }
	safe := func(col int) bool { return !b.Attacked(Sq(row, col), enemy) }

	if b.castling.KingSide(s) && b.At(Sq(row, Size-1)).Is(s, KindRook) &&
		empty(5) && empty(6) && safe(5) && safe(6) {
		m := newMove(b, from, Sq(row, 6))
		m.Castle = true
		moves = append(moves, m)
	}
	// the b-file square only needs to be empty, the king never crosses it
	if b.castling.QueenSide(s) && b.At(Sq(row, 0)).Is(s, KindRook) &&
		empty(1) && empty(2) && empty(3) && safe(3) && safe(2) {
		m := newMove(b, from, Sq(row, 2))
		m.Castle = true
		moves = append(moves, m)
	}
	return moves
}
