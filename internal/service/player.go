package service

import "github.com/benbeisheim/chesscore/internal/model"

// ComputerID is the player id of the built-in opponent.
const ComputerID = "computer"

type ClientPlayer struct {
	ID       string     `json:"name"`
	Color    model.Side `json:"color"`
	TimeLeft int        `json:"timeLeft"`
	Running  bool       `json:"clockRunning"`
	Computer bool       `json:"computer,omitempty"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// Match tells a queued player which game and side they were paired into.
type Match struct {
	GameID string     `json:"gameId"`
	Color  model.Side `json:"color"`
}
