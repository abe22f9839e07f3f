package service

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameExists         = errors.New("game already exists")
	ErrGameFull           = errors.New("game is full")
	ErrNotInGame          = errors.New("player not in game")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrGameOver           = errors.New("game is over")
	ErrWaitingForOpponent = errors.New("waiting for opponent")
	ErrAlreadyQueued      = errors.New("player already in queue")
	ErrNotQueued          = errors.New("player not in queue")
	ErrBadRequest         = errors.New("bad request")
)
