package model

import (
	"fmt"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a BoardState from the first four FEN fields. The move
// counters, when present, are accepted and ignored.
func ParseFEN(fen string) (*BoardState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := &BoardState{enPassant: NoSquare}
	if err := b.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.castling.WhiteKingSide = true
			case 'Q':
				b.castling.WhiteQueenSide = true
			case 'k':
				b.castling.BlackKingSide = true
			case 'q':
				b.castling.BlackQueenSide = true
			default:
				return nil, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, fields[2])
			}
		}
	}
	b.dropStaleCastling()

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
		}
		b.enPassant = sq
	}

	// the side not to move must not be in check
	if b.Analyze(b.turn.Opposite()).InCheck {
		return nil, fmt.Errorf("%w: %s king can be captured", ErrInvalidFEN, b.turn.Opposite())
	}
	return b, nil
}

func (b *BoardState) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidFEN, Size, len(ranks))
	}
	var kings [2]int
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			p, ok := pieceFromSymbol(c)
			if !ok {
				return fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, c)
			}
			if col >= Size {
				return fmt.Errorf("%w: rank %d is too long", ErrInvalidFEN, Size-row)
			}
			if p.Kind == KindKing {
				kings[p.Side]++
			}
			b.put(Sq(row, col), p)
			col++
		}
		if col != Size {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, Size-row, col)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return fmt.Errorf("%w: need exactly one king per side", ErrInvalidFEN)
	}
	return nil
}

// dropStaleCastling clears rights whose king or rook is not on its home square.
func (b *BoardState) dropStaleCastling() {
	for _, s := range [2]Side{SideWhite, SideBlack} {
		row := homeRow(s)
		if b.kings[s] != Sq(row, 4) {
			b.castling.revokeKingSide(s)
			b.castling.revokeQueenSide(s)
		}
		if !b.At(Sq(row, Size-1)).Is(s, KindRook) {
			b.castling.revokeKingSide(s)
		}
		if !b.At(Sq(row, 0)).Is(s, KindRook) {
			b.castling.revokeQueenSide(s)
		}
	}
}

// FEN renders the position. The move counters are always "0 1".
func (b *BoardState) FEN() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			p := b.grid[row][col]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(b.turn.String()[0])

	sb.WriteByte(' ')
	castling := ""
	if b.castling.WhiteKingSide {
		castling += "K"
	}
	if b.castling.WhiteQueenSide {
		castling += "Q"
	}
	if b.castling.BlackKingSide {
		castling += "k"
	}
	if b.castling.BlackQueenSide {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.Label())
	sb.WriteString(" 0 1")
	return sb.String()
}
