package model

import "fmt"

// Status is the outcome of the current position.
type Status uint8

const (
	// StatusUnknown marks a stale status that is recomputed on demand.
	StatusUnknown Status = iota
	StatusActive
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsOver reports whether the game has ended.
func (s Status) IsOver() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

// PromotionPolicy picks the promotion kind when a move reaches the far rank
// without an explicit choice.
type PromotionPolicy func(m MoveRecord) Kind

// PromoteToQueen always promotes to a queen.
func PromoteToQueen(MoveRecord) Kind {
	return KindQueen
}

type engineConfig struct {
	fen    *string
	policy PromotionPolicy
}

type EngineOption func(*engineConfig)

// WithFEN starts the engine from a FEN position instead of the standard one.
func WithFEN(fen string) EngineOption {
	return func(c *engineConfig) {
		c.fen = &fen
	}
}

// WithPromotionPolicy resolves promotions the caller left unspecified. Without
// a policy such moves fail with ErrPromotionChoiceRequired.
func WithPromotionPolicy(p PromotionPolicy) EngineOption {
	return func(c *engineConfig) {
		c.policy = p
	}
}

// Engine owns a BoardState and its history and is the only way to mutate it.
// It is not safe for concurrent use; use Clone to fork a position.
type Engine struct {
	board   *BoardState
	history []historyEntry
	policy  PromotionPolicy
	initial *BoardState

	// cache for the current position; legal is nil when stale
	legal  []MoveRecord
	info   CheckInfo
	status Status
}

func NewEngine(opts ...EngineOption) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	board := NewBoardState()
	if cfg.fen != nil {
		var err error
		if board, err = ParseFEN(*cfg.fen); err != nil {
			return nil, err
		}
	}

	return &Engine{
		board:   board,
		initial: board.Clone(),
		policy:  cfg.policy,
		history: make([]historyEntry, 0, 64),
	}, nil
}

// Reset replaces the board with the starting position the engine was created
// with and drops the history.
func (e *Engine) Reset() {
	e.board = e.initial.Clone()
	clear(e.history)
	e.history = e.history[:0]
	e.invalidate()
}

func (e *Engine) invalidate() {
	e.legal = nil
	e.info = CheckInfo{}
	e.status = StatusUnknown
}

func (e *Engine) refresh() {
	if e.legal != nil {
		return
	}
	moves, info := e.board.legalMoves()
	if moves == nil {
		moves = []MoveRecord{}
	}
	e.legal, e.info = moves, info
	switch {
	case len(moves) > 0:
		e.status = StatusActive
	case info.InCheck:
		e.status = StatusCheckmate
	default:
		e.status = StatusStalemate
	}
}

// LegalMoves returns a copy of the legal moves of the side to move.
func (e *Engine) LegalMoves() []MoveRecord {
	e.refresh()
	return append(e.legal[:0:0], e.legal...)
}

// Status returns the status of the current position.
func (e *Engine) Status() Status {
	e.refresh()
	return e.status
}

// InCheck reports whether the side to move is in check.
func (e *Engine) InCheck() bool {
	e.refresh()
	return e.info.InCheck
}

// CheckInfo returns the check and pin scan of the side to move.
func (e *Engine) CheckInfo() CheckInfo {
	e.refresh()
	return e.info
}

func (e *Engine) Turn() Side {
	return e.board.turn
}

// Board returns a snapshot of the current position.
func (e *Engine) Board() *BoardState {
	return e.board.Clone()
}

// Grid returns a copy of the piece grid.
func (e *Engine) Grid() [Size][Size]Piece {
	return e.board.grid
}

// At returns the piece on sq without copying the board.
func (e *Engine) At(sq Square) Piece {
	return e.board.At(sq)
}

// FEN returns the current position in Forsyth-Edwards notation.
func (e *Engine) FEN() string {
	return e.board.FEN()
}

// Plies returns the number of moves applied.
func (e *Engine) Plies() int {
	return len(e.history)
}

// History returns the applied moves, oldest first.
func (e *Engine) History() []MoveRecord {
	moves := make([]MoveRecord, len(e.history))
	for i, h := range e.history {
		moves[i] = h.move
	}
	return moves
}

// LastMove returns the most recent move, if any.
func (e *Engine) LastMove() (MoveRecord, bool) {
	if len(e.history) == 0 {
		return MoveRecord{}, false
	}
	return e.history[len(e.history)-1].move, true
}

// FindMove returns the legal move from -> to, if there is one.
func (e *Engine) FindMove(from, to Square) (MoveRecord, bool) {
	e.refresh()
	for _, m := range e.legal {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return MoveRecord{}, false
}

// MakeMove applies m if it is legal in the current position. Only the squares
// of m and its Promotion are read; the rest is taken from the legal set. For a
// move that reaches the far rank, Promotion must be set unless a promotion
// policy is configured. Nothing is mutated when an error is returned.
func (e *Engine) MakeMove(m MoveRecord) error {
	legal, ok := e.FindMove(m.From, m.To)
	if !ok {
		return fmt.Errorf("%w: %s is not legal for %s", ErrInvalidMove, m, e.board.turn)
	}

	legal.Promotion = KindEmpty
	if legal.PromotionRequested {
		choice := m.Promotion
		if choice == KindEmpty && e.policy != nil {
			choice = e.policy(legal)
		}
		if choice == KindEmpty {
			return fmt.Errorf("%w: %s", ErrPromotionChoiceRequired, legal)
		}
		if !choice.IsPromotion() {
			return fmt.Errorf("%w: cannot promote to %s", ErrInvalidMove, choice)
		}
		legal.Promotion = choice
	}

	e.apply(legal)
	return nil
}

// apply performs a move already known to be legal.
func (e *Engine) apply(m MoveRecord) {
	b := e.board
	e.history = append(e.history, historyEntry{
		move:      m,
		castling:  b.castling,
		enPassant: b.enPassant,
		legal:     e.legal,
		info:      e.info,
		status:    e.status,
	})

	b.clear(m.From)
	if m.EnPassant {
		b.clear(m.capturedSquare())
	}
	if m.Castle {
		from, to := m.castleRook()
		rook := b.At(from)
		b.clear(from)
		b.put(to, rook)
	}
	placed := m.Moved
	if m.PromotionRequested {
		placed.Kind = m.Promotion
	}
	b.put(m.To, placed)

	if m.Moved.Kind == KindPawn && abs(m.To.Row-m.From.Row) == 2 {
		b.enPassant = Sq((m.From.Row+m.To.Row)/2, m.From.Col)
	} else {
		b.enPassant = NoSquare
	}

	switch m.Moved.Kind {
	case KindKing:
		b.castling.revokeKingSide(m.Moved.Side)
		b.castling.revokeQueenSide(m.Moved.Side)
	case KindRook:
		b.castling.revokeCorner(m.Moved.Side, m.From)
	}
	if m.Captured.Kind == KindRook {
		b.castling.revokeCorner(m.Captured.Side, m.To)
	}

	b.turn = b.turn.Opposite()
	e.invalidate()
}

// UndoMove reverts the most recent move and returns it.
func (e *Engine) UndoMove() (MoveRecord, error) {
	n := len(e.history)
	if n == 0 {
		return MoveRecord{}, ErrNothingToUndo
	}
	top := e.history[n-1]
	e.history[n-1] = historyEntry{}
	e.history = e.history[:n-1]

	m, b := top.move, e.board
	if m.Castle {
		from, to := m.castleRook()
		rook := b.At(to)
		b.clear(to)
		b.put(from, rook)
	}
	if m.EnPassant {
		b.clear(m.To)
		b.put(m.capturedSquare(), m.Captured)
	} else {
		b.put(m.To, m.Captured)
	}
	b.put(m.From, m.Moved)

	b.castling = top.castling
	b.enPassant = top.enPassant
	b.turn = m.Moved.Side
	e.legal, e.info, e.status = top.legal, top.info, top.status
	return m, nil
}

// Clone returns an independent engine at the same position with the same
// history. Cached move lists are shared; they are never mutated in place.
func (e *Engine) Clone() *Engine {
	c := *e
	c.board = e.board.Clone()
	c.history = append(make([]historyEntry, 0, cap(e.history)), e.history...)
	return &c
}
