package service

import (
	"fmt"

	"github.com/benbeisheim/chesscore/internal/ai"
	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// CreateRequest describes a new game. Opponent is "human" (default) or
// "computer". Color is the creator's side, white when empty.
type CreateRequest struct {
	Opponent string `json:"opponent"`
	Color    string `json:"color"`
	FEN      string `json:"fen"`
	Strategy string `json:"strategy"`
	Depth    int    `json:"depth"`
}

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame creates a game and seats playerID in it.
func (gs *GameService) CreateGame(playerID string, req CreateRequest) (string, model.Side, error) {
	cfg := gs.gameManager.Config()
	opts := GameOptions{
		FEN:       req.FEN,
		Clock:     cfg.Clock,
		AITimeout: cfg.AITimeout,
		Now:       cfg.Now,
	}

	color := model.SideWhite
	if req.Color != "" {
		var ok bool
		if color, ok = model.ParseSide(req.Color); !ok {
			return "", color, fmt.Errorf("%w: unknown color %q", ErrBadRequest, req.Color)
		}
	}

	switch req.Opponent {
	case "", "human":
	case "computer":
		name := req.Strategy
		if name == "" {
			name = cfg.AIStrategy
		}
		depth := req.Depth
		if depth <= 0 {
			depth = cfg.AIDepth
		}
		strategy, err := ai.Parse(name, depth)
		if err != nil {
			return "", color, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		opts.Computer = strategy
		opts.ComputerSide = color.Opposite()
	default:
		return "", color, fmt.Errorf("%w: unknown opponent %q", ErrBadRequest, req.Opponent)
	}

	gameID := uuid.New().String()
	game, err := NewGame(gameID, opts)
	if err != nil {
		return "", color, fmt.Errorf("failed to create game: %w", err)
	}
	// seated before it is visible to anyone else
	if color, err = game.Seat(playerID, color); err != nil {
		return "", color, err
	}
	if err := gs.gameManager.AddGame(game); err != nil {
		return "", color, fmt.Errorf("failed to create game: %w", err)
	}
	log.Infow("game created", "game", gameID, "player", playerID, "color", color, "opponent", req.Opponent)
	return gameID, color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Side, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) (*Match, error) {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) (*Match, error) {
	return gs.gameManager.MatchStatus(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) error {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

// LegalMoves lists the legal moves in a game, optionally only those from the
// square labelled from.
func (gs *GameService) LegalMoves(gameID string, from string) ([]MoveView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if from == "" {
		return game.LegalMoves(nil), nil
	}
	sq, err := model.ParseSquare(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return game.LegalMoves(&sq), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move ws.MovePayload) (GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

func (gs *GameService) HandleUndo(gameID string, playerID string) (GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	if err := game.Undo(playerID); err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
