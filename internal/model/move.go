package model

import "fmt"

// MoveRecord describes one move. It is a value type; copies never alias.
type MoveRecord struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Moved    Piece  `json:"-"`
	Captured Piece  `json:"-"`

	EnPassant          bool `json:"enPassant,omitempty"`
	Castle             bool `json:"castle,omitempty"`
	PromotionRequested bool `json:"promotionRequested,omitempty"`

	// Promotion is the caller's choice for a PromotionRequested move.
	Promotion Kind `json:"promotion,omitempty"`
}

func newMove(b *BoardState, from, to Square) MoveRecord {
	return MoveRecord{
		From:     from,
		To:       to,
		Moved:    b.At(from),
		Captured: b.At(to),
	}
}

// Key identifies a move by its squares alone.
func (m MoveRecord) Key() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

// Equal compares moves by Key.
func (m MoveRecord) Equal(o MoveRecord) bool {
	return m.Key() == o.Key()
}

// IsCapture reports whether the move removes an enemy piece.
func (m MoveRecord) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// WithPromotion returns a copy carrying the promotion choice k.
func (m MoveRecord) WithPromotion(k Kind) MoveRecord {
	m.Promotion = k
	return m
}

// capturedSquare is where the captured piece stands; it differs from To
// only for en passant.
func (m MoveRecord) capturedSquare() Square {
	if m.EnPassant {
		return Square{Row: m.From.Row, Col: m.To.Col}
	}
	return m.To
}

// castleRook returns the rook's source and destination for a castle.
func (m MoveRecord) castleRook() (from, to Square) {
	if m.To.Col > m.From.Col {
		return Sq(m.From.Row, Size-1), Sq(m.From.Row, m.To.Col-1)
	}
	return Sq(m.From.Row, 0), Sq(m.From.Row, m.To.Col+1)
}

// String renders the move as from+to labels, e.g. "e2e4" or "e7e8q".
func (m MoveRecord) String() string {
	s := m.From.Label() + m.To.Label()
	if m.Promotion != KindEmpty {
		s += string(m.Promotion.Letter() | 0x20)
	}
	return s
}

func (m MoveRecord) GoString() string {
	return fmt.Sprintf("MoveRecord{%s %s x%s ep=%v castle=%v promo=%v:%s}",
		m, m.Moved, m.Captured, m.EnPassant, m.Castle, m.PromotionRequested, m.Promotion)
}

// historyEntry is one reversible delta on the history stack.
type historyEntry struct {
	move      MoveRecord
	castling  CastlingRights
	enPassant Square

	// legal move cache, check scan and status of the position before the move.
	legal  []MoveRecord
	info   CheckInfo
	status Status
}
