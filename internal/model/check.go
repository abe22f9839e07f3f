package model

// Pin is an allied piece that may only move along Dir (or its reverse)
// without exposing its king. Dir points from the king toward the pin.
type Pin struct {
	Square Square    `json:"square"`
	Dir    Direction `json:"dir"`
}

// Check is an enemy piece attacking the king. Dir and Distance locate it
// relative to the king; for knights Dir is the knight offset.
type Check struct {
	Square   Square    `json:"square"`
	Dir      Direction `json:"dir"`
	Distance int       `json:"distance"`
	Knight   bool      `json:"knight,omitempty"`
}

// CheckInfo is the transient result of a check/pin scan for one side.
type CheckInfo struct {
	InCheck bool    `json:"inCheck"`
	Pins    []Pin   `json:"pins,omitempty"`
	Checks  []Check `json:"checks,omitempty"`
}

// DoubleCheck reports whether more than one enemy piece gives check.
func (ci CheckInfo) DoubleCheck() bool {
	return len(ci.Checks) > 1
}

// PinDir returns the pin axis of the piece on sq, if it is pinned.
func (ci CheckInfo) PinDir(sq Square) (Direction, bool) {
	for _, p := range ci.Pins {
		if p.Square == sq {
			return p.Dir, true
		}
	}
	return Direction{}, false
}

// blockSquares lists the squares that resolve a single check by interposing
// or capturing: everything from the king (exclusive) to the checker
// (inclusive). A knight check can only be captured.
func (ci CheckInfo) blockSquares(king Square) []Square {
	c := ci.Checks[0]
	if c.Knight {
		return []Square{c.Square}
	}
	squares := make([]Square, 0, c.Distance)
	for i := 1; i <= c.Distance; i++ {
		squares = append(squares, king.Step(c.Dir, i))
	}
	return squares
}

// Analyze casts rays outward from s's king and reports whether it is in
// check, which allied pieces are pinned and which enemy pieces give check.
func (b *BoardState) Analyze(s Side) CheckInfo {
	var info CheckInfo
	king := b.kings[s]
	for _, d := range allDirs {
		candidate := NoSquare
		for i := 1; i < Size; i++ {
			sq := king.Step(d, i)
			if !sq.OnBoard() {
				break
			}
			p := b.At(sq)
			if p.IsEmpty() {
				continue
			}
			if p.Side == s {
				if candidate != NoSquare {
					// two allies on the ray: neither pin nor check
					break
				}
				candidate = sq
				continue
			}
			if !attacksAlong(p, d, i) {
				break
			}
			if candidate == NoSquare {
				info.InCheck = true
				info.Checks = append(info.Checks, Check{Square: sq, Dir: d, Distance: i})
			} else {
				info.Pins = append(info.Pins, Pin{Square: candidate, Dir: d})
			}
			break
		}
	}

	enemy := s.Opposite()
	for _, o := range knightOffsets {
		sq := king.Step(o, 1)
		if sq.OnBoard() && b.At(sq).Is(enemy, KindKnight) {
			info.InCheck = true
			info.Checks = append(info.Checks, Check{Square: sq, Dir: o, Distance: 1, Knight: true})
		}
	}
	return info
}

// attacksAlong reports whether p, found dist steps from a square along d,
// attacks that square.
func attacksAlong(p Piece, d Direction, dist int) bool {
	switch p.Kind {
	case KindRook:
		return !d.IsDiagonal()
	case KindBishop:
		return d.IsDiagonal()
	case KindQueen:
		return true
	case KindPawn:
		// the pawn must stand on the diagonal facing the square from its own side
		return dist == 1 && d.IsDiagonal() && d.DR == -forward(p.Side)
	case KindKing:
		return dist == 1
	default:
		return false
	}
}

// Attacked reports whether any piece of side by attacks sq.
func (b *BoardState) Attacked(sq Square, by Side) bool {
	for _, d := range allDirs {
		for i := 1; i < Size; i++ {
			to := sq.Step(d, i)
			if !to.OnBoard() {
				break
			}
			p := b.At(to)
			if p.IsEmpty() {
				continue
			}
			if p.Side == by && attacksAlong(p, d, i) {
				return true
			}
			break
		}
	}
	for _, o := range knightOffsets {
		to := sq.Step(o, 1)
		if to.OnBoard() && b.At(to).Is(by, KindKnight) {
			return true
		}
	}
	return false
}
