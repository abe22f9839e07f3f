package service

import "github.com/benbeisheim/chesscore/internal/model"

// GameState is the snapshot sent to clients.
type GameState struct {
	ID              string               `json:"id"`
	Board           BoardView            `json:"boardState"`
	FEN             string               `json:"fen"`
	ToMove          model.Side           `json:"toMove"`
	Status          model.Status         `json:"status"`
	IsCheck         bool                 `json:"isCheck"`
	Checkers        []model.Square       `json:"checkers"`
	Pinned          []model.Square       `json:"pinned"`
	LegalMoves      []MoveView           `json:"legalMoves"`
	MoveHistory     []string             `json:"moveHistory"`
	LastMove        *MoveView            `json:"lastMove"`
	CapturedPieces  CapturedPieces       `json:"capturedPieces"`
	EnPassantTarget *model.Square        `json:"enPassantTarget"`
	Castling        model.CastlingRights `json:"castling"`
	Resolve         *Result              `json:"resolve"`
	Players         Players              `json:"players"`
	Timed           bool                 `json:"timed"`
}

// BoardView holds piece codes such as "wK" or "bp", "--" for empty, indexed
// by row then column with row 0 being rank 8.
type BoardView [model.Size][model.Size]string

func newBoardView(grid [model.Size][model.Size]model.Piece) BoardView {
	var v BoardView
	for r, row := range grid {
		for c, p := range row {
			v[r][c] = p.Code()
		}
	}
	return v
}

// CapturedPieces lists piece codes taken by each side.
type CapturedPieces struct {
	White []string `json:"white"`
	Black []string `json:"black"`
}

// Result is set once the game is over. Winner is "white", "black" or "draw".
type Result struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type MoveView struct {
	From              model.Square `json:"from"`
	To                model.Square `json:"to"`
	Piece             string       `json:"piece"`
	Capture           bool         `json:"capture,omitempty"`
	Castle            bool         `json:"castle,omitempty"`
	EnPassant         bool         `json:"enPassant,omitempty"`
	PromotionRequired bool         `json:"promotionRequired,omitempty"`
	Promotion         model.Kind   `json:"promotion,omitempty"`
}

func newMoveView(m model.MoveRecord) MoveView {
	return MoveView{
		From:              m.From,
		To:                m.To,
		Piece:             m.Moved.Code(),
		Capture:           m.IsCapture(),
		Castle:            m.Castle,
		EnPassant:         m.EnPassant,
		PromotionRequired: m.PromotionRequested,
		Promotion:         m.Promotion,
	}
}

func moveViews(moves []model.MoveRecord) []MoveView {
	views := make([]MoveView, len(moves))
	for i, m := range moves {
		views[i] = newMoveView(m)
	}
	return views
}
