package model

import "fmt"

const Size = 8

// Square is a cell on the grid. Row 0 is black's back rank (rank 8) and
// column 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSquare marks an absent square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard reports whether the square lies inside the 8x8 grid.
func (sq Square) OnBoard() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// Step returns the square reached by moving n times in direction d.
func (sq Square) Step(d Direction, n int) Square {
	return Square{Row: sq.Row + d.DR*n, Col: sq.Col + d.DC*n}
}

// Label returns the file+rank label ("e4"); it is meant for display only.
func (sq Square) Label() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Col, Size-sq.Row)
}

func (sq Square) String() string {
	return sq.Label()
}

func (sq Square) MarshalText() ([]byte, error) {
	return []byte(sq.Label()), nil
}

func (sq *Square) UnmarshalText(b []byte) error {
	parsed, err := ParseSquare(string(b))
	if err != nil {
		return err
	}
	*sq = parsed
	return nil
}

// ParseSquare is the inverse of Label.
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, label)
	}
	col := int(label[0]) - 'a'
	rank := int(label[1]) - '0'
	sq := Square{Row: Size - rank, Col: col}
	if rank < 1 || !sq.OnBoard() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, label)
	}
	return sq, nil
}

// Direction is a unit step on the grid.
type Direction struct {
	DR int `json:"dr"`
	DC int `json:"dc"`
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{DR: -d.DR, DC: -d.DC}
}

// IsDiagonal reports whether d moves along a diagonal.
func (d Direction) IsDiagonal() bool {
	return d.DR != 0 && d.DC != 0
}

// SameAxis reports whether d and o lie on the same line, either way.
func (d Direction) SameAxis(o Direction) bool {
	return d == o || d == o.Reverse()
}

var (
	// orthogonal first, then diagonal; the ray scan relies on this order.
	orthogonalDirs = []Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	diagonalDirs   = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs        = append(append([]Direction{}, orthogonalDirs...), diagonalDirs...)

	knightOffsets = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// forward is the row delta a side's pawns advance by.
func forward(s Side) int {
	if s == SideWhite {
		return -1
	}
	return 1
}

// homeRow is the back rank of a side.
func homeRow(s Side) int {
	if s == SideWhite {
		return Size - 1
	}
	return 0
}

// pawnRow is the starting rank of a side's pawns.
func pawnRow(s Side) int {
	return homeRow(s) + forward(s)
}

// promotionRow is the far edge rank for a side's pawns.
func promotionRow(s Side) int {
	return homeRow(s.Opposite())
}
