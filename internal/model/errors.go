package model

import "errors"

var (
	ErrInvalidMove             = errors.New("invalid move")
	ErrNothingToUndo           = errors.New("nothing to undo")
	ErrPromotionChoiceRequired = errors.New("promotion choice required")
	ErrInvalidFEN              = errors.New("invalid fen")
	ErrInvalidSquare           = errors.New("invalid square")
)
