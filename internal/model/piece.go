package model

// Side is one of the two players.
type Side uint8

const (
	SideWhite Side = iota
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "white"
	case SideBlack:
		return "black"
	default:
		return ""
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return s ^ 1
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSide maps "white"/"black" (or "w"/"b") to a Side.
func ParseSide(str string) (Side, bool) {
	switch str {
	case "white", "w":
		return SideWhite, true
	case "black", "b":
		return SideBlack, true
	default:
		return SideWhite, false
	}
}

// Kind is the closed set of piece kinds. KindEmpty marks an empty cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPawn
	KindRook
	KindKnight
	KindBishop
	KindQueen
	KindKing
)

// PromotionChoices are the kinds a pawn may become on the far rank.
var PromotionChoices = []Kind{KindQueen, KindRook, KindBishop, KindKnight}

func (k Kind) String() string {
	switch k {
	case KindPawn:
		return "pawn"
	case KindRook:
		return "rook"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return ""
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Letter is the upper-case FEN letter of the kind.
func (k Kind) Letter() byte {
	switch k {
	case KindPawn:
		return 'P'
	case KindRook:
		return 'R'
	case KindKnight:
		return 'N'
	case KindBishop:
		return 'B'
	case KindQueen:
		return 'Q'
	case KindKing:
		return 'K'
	default:
		return 0
	}
}

// IsPromotion reports whether a pawn may promote to k.
func (k Kind) IsPromotion() bool {
	switch k {
	case KindQueen, KindRook, KindBishop, KindKnight:
		return true
	default:
		return false
	}
}

// ParseKind accepts a full name ("queen") or a letter ("q", "Q").
func ParseKind(str string) (Kind, bool) {
	switch str {
	case "pawn", "p", "P":
		return KindPawn, true
	case "rook", "r", "R":
		return KindRook, true
	case "knight", "n", "N":
		return KindKnight, true
	case "bishop", "b", "B":
		return KindBishop, true
	case "queen", "q", "Q":
		return KindQueen, true
	case "king", "k", "K":
		return KindKing, true
	default:
		return KindEmpty, false
	}
}

// Piece is a kind owned by a side. The zero value is an empty cell.
type Piece struct {
	Kind Kind
	Side Side
}

// NoPiece is the empty cell.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Kind == KindEmpty
}

// Is reports whether p is a piece of kind k owned by s.
func (p Piece) Is(s Side, k Kind) bool {
	return p.Kind == k && p.Side == s
}

// Symbol returns the FEN symbol: upper case for white, lower case for black.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return ""
	}
	sym := p.Kind.Letter()
	if p.Side == SideBlack {
		sym |= 0x20
	}
	return string(sym)
}

// Code is the two character code used in board snapshots, e.g. "wK" or "bp".
func (p Piece) Code() string {
	if p.IsEmpty() {
		return "--"
	}
	letter := p.Kind.Letter()
	if p.Kind == KindPawn {
		letter = 'p'
	}
	return string(p.Side.String()[0]) + string(letter)
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Side.String() + " " + p.Kind.String()
}

func pieceFromSymbol(c byte) (Piece, bool) {
	side := SideWhite
	if c >= 'a' && c <= 'z' {
		side = SideBlack
		c &^= 0x20
	}
	switch c {
	case 'P':
		return Piece{KindPawn, side}, true
	case 'R':
		return Piece{KindRook, side}, true
	case 'N':
		return Piece{KindKnight, side}, true
	case 'B':
		return Piece{KindBishop, side}, true
	case 'Q':
		return Piece{KindQueen, side}, true
	case 'K':
		return Piece{KindKing, side}, true
	default:
		return NoPiece, false
	}
}
