package model

// generator accumulates pseudo-legal moves for the side to move. Pins are
// honoured, check is not (except for the king, whose destinations are
// verified by trial placement).
type generator struct {
	b     *BoardState
	side  Side
	info  CheckInfo
	moves []MoveRecord
}

func newGenerator(b *BoardState, info CheckInfo) *generator {
	return &generator{
		b:     b,
		side:  b.turn,
		info:  info,
		moves: make([]MoveRecord, 0, 48),
	}
}

// all generates moves for every piece of the side to move, scanning the grid
// row by row.
func (g *generator) all() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Sq(row, col)
			p := g.b.At(from)
			if p.IsEmpty() || p.Side != g.side {
				continue
			}
			g.piece(from, p.Kind)
		}
	}
}

func (g *generator) piece(from Square, k Kind) {
	switch k {
	case KindPawn:
		g.pawn(from)
	case KindRook:
		g.slide(from, orthogonalDirs)
	case KindBishop:
		g.slide(from, diagonalDirs)
	case KindQueen:
		g.slide(from, allDirs)
	case KindKnight:
		g.knight(from)
	case KindKing:
		g.king(from)
	}
}

// allowed reports whether the piece on from may move along d given pins.
func (g *generator) allowed(from Square, d Direction) bool {
	pin, pinned := g.info.PinDir(from)
	return !pinned || d.SameAxis(pin)
}

func (g *generator) add(m MoveRecord) {
	g.moves = append(g.moves, m)
}

func (g *generator) pawn(from Square) {
	f := forward(g.side)

	one := Sq(from.Row+f, from.Col)
	if one.OnBoard() && g.b.At(one).IsEmpty() && g.allowed(from, Direction{DR: f}) {
		g.addPawn(from, one)
		two := Sq(from.Row+2*f, from.Col)
		if from.Row == pawnRow(g.side) && g.b.At(two).IsEmpty() {
			g.add(newMove(g.b, from, two))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := Sq(from.Row+f, from.Col+dc)
		if !to.OnBoard() || !g.allowed(from, Direction{DR: f, DC: dc}) {
			continue
		}
		target := g.b.At(to)
		switch {
		case !target.IsEmpty():
			if target.Side != g.side {
				g.addPawn(from, to)
			}
		case to == g.b.enPassant:
			m := newMove(g.b, from, to)
			m.EnPassant = true
			m.Captured = g.b.At(m.capturedSquare())
			if m.Captured.Is(g.side.Opposite(), KindPawn) {
				g.add(m)
			}
		}
	}
}

func (g *generator) addPawn(from, to Square) {
	m := newMove(g.b, from, to)
	m.PromotionRequested = to.Row == promotionRow(g.side)
	g.add(m)
}

// slide ray-casts along dirs until the edge, an own piece (excluded) or an
// enemy piece (included).
func (g *generator) slide(from Square, dirs []Direction) {
	for _, d := range dirs {
		if !g.allowed(from, d) {
			continue
		}
		for i := 1; ; i++ {
			to := from.Step(d, i)
			if !to.OnBoard() {
				break
			}
			target := g.b.At(to)
			if target.IsEmpty() {
				g.add(newMove(g.b, from, to))
				continue
			}
			if target.Side != g.side {
				g.add(newMove(g.b, from, to))
			}
			break
		}
	}
}

func (g *generator) knight(from Square) {
	// a knight never moves along its pin axis
	if _, pinned := g.info.PinDir(from); pinned {
		return
	}
	for _, o := range knightOffsets {
		to := from.Step(o, 1)
		if !to.OnBoard() {
			continue
		}
		if target := g.b.At(to); target.IsEmpty() || target.Side != g.side {
			g.add(newMove(g.b, from, to))
		}
	}
}

func (g *generator) king(from Square) {
	for _, d := range allDirs {
		to := from.Step(d, 1)
		if !to.OnBoard() {
			continue
		}
		if target := g.b.At(to); !target.IsEmpty() && target.Side == g.side {
			continue
		}
		if g.b.kingSafeAt(from, to) {
			g.add(newMove(g.b, from, to))
		}
	}
}

// kingSafeAt tentatively relocates the king from -> to, rescans for checks
// and reverts. Relocating changes which rays reach the king, so the scan
// cannot be reused from the king's current square.
func (b *BoardState) kingSafeAt(from, to Square) bool {
	king, captured := b.At(from), b.At(to)
	b.clear(from)
	b.put(to, king)
	safe := !b.Analyze(king.Side).InCheck
	b.grid[to.Row][to.Col] = captured
	b.put(from, king)
	return safe
}

// enPassantSafe applies an en passant capture on the grid, rescans for checks
// and reverts. Two pawns leave the same rank, which a pin scan cannot see.
func (b *BoardState) enPassantSafe(m MoveRecord) bool {
	victimSq := m.capturedSquare()
	pawn, victim := b.At(m.From), b.At(victimSq)
	b.clear(m.From)
	b.clear(victimSq)
	b.put(m.To, pawn)
	safe := !b.Analyze(pawn.Side).InCheck
	b.clear(m.To)
	b.put(victimSq, victim)
	b.put(m.From, pawn)
	return safe
}
