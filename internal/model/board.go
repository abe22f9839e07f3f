package model

// CastlingRights holds the four independent castling permissions. During
// forward play a flag only ever goes from true to false.
type CastlingRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

// KingSide reports whether s may still castle king-side.
func (c CastlingRights) KingSide(s Side) bool {
	if s == SideWhite {
		return c.WhiteKingSide
	}
	return c.BlackKingSide
}

// QueenSide reports whether s may still castle queen-side.
func (c CastlingRights) QueenSide(s Side) bool {
	if s == SideWhite {
		return c.WhiteQueenSide
	}
	return c.BlackQueenSide
}

func (c *CastlingRights) revokeKingSide(s Side) {
	if s == SideWhite {
		c.WhiteKingSide = false
	} else {
		c.BlackKingSide = false
	}
}

func (c *CastlingRights) revokeQueenSide(s Side) {
	if s == SideWhite {
		c.WhiteQueenSide = false
	} else {
		c.BlackQueenSide = false
	}
}

// revokeCorner drops the right tied to the rook home square sq, if any.
func (c *CastlingRights) revokeCorner(s Side, sq Square) {
	if sq.Row != homeRow(s) {
		return
	}
	switch sq.Col {
	case 0:
		c.revokeQueenSide(s)
	case Size - 1:
		c.revokeKingSide(s)
	}
}

var startingRank = [Size]Kind{KindRook, KindKnight, KindBishop, KindQueen, KindKing, KindBishop, KindKnight, KindRook}

// BoardState is the canonical position: the grid, the side to move, castling
// rights, the en passant target and a cache of both king locations.
type BoardState struct {
	grid      [Size][Size]Piece
	turn      Side
	castling  CastlingRights
	enPassant Square
	kings     [2]Square
}

// NewBoardState returns the standard starting position.
func NewBoardState() *BoardState {
	b := &BoardState{
		turn: SideWhite,
		castling: CastlingRights{
			WhiteKingSide:  true,
			WhiteQueenSide: true,
			BlackKingSide:  true,
			BlackQueenSide: true,
		},
		enPassant: NoSquare,
	}
	for col, k := range startingRank {
		b.put(Sq(0, col), Piece{k, SideBlack})
		b.put(Sq(1, col), Piece{KindPawn, SideBlack})
		b.put(Sq(6, col), Piece{KindPawn, SideWhite})
		b.put(Sq(7, col), Piece{k, SideWhite})
	}
	return b
}

// At returns the piece on sq.
func (b *BoardState) At(sq Square) Piece {
	return b.grid[sq.Row][sq.Col]
}

// Turn returns the side to move.
func (b *BoardState) Turn() Side {
	return b.turn
}

// Castling returns the current castling rights.
func (b *BoardState) Castling() CastlingRights {
	return b.castling
}

// EnPassant returns the en passant target, or NoSquare.
func (b *BoardState) EnPassant() Square {
	return b.enPassant
}

// King returns the cached king location of s.
func (b *BoardState) King(s Side) Square {
	return b.kings[s]
}

// Grid returns a copy of the piece grid.
func (b *BoardState) Grid() [Size][Size]Piece {
	return b.grid
}

// Clone returns an independent copy. BoardState holds no references, so a
// value copy is a deep copy.
func (b *BoardState) Clone() *BoardState {
	c := *b
	return &c
}

// put places p on sq and keeps the king cache in sync.
func (b *BoardState) put(sq Square, p Piece) {
	b.grid[sq.Row][sq.Col] = p
	if p.Kind == KindKing {
		b.kings[p.Side] = sq
	}
}

func (b *BoardState) clear(sq Square) {
	b.grid[sq.Row][sq.Col] = NoPiece
}
