// service/game_manager.go
package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Config holds the defaults applied to every new game.
type Config struct {
	Clock      time.Duration
	AIDepth    int
	AIStrategy string
	AITimeout  time.Duration
	Now        func() time.Time
}

type GameManager struct {
	games   map[string]*Game
	queue   *Queue
	matches map[string]Match // playerID -> pairing not yet collected
	cfg     Config
	mu      sync.RWMutex
}

func NewGameManager(cfg Config) *GameManager {
	return &GameManager{
		games:   make(map[string]*Game),
		queue:   NewQueue(),
		matches: make(map[string]Match),
		cfg:     cfg,
	}
}

func (gm *GameManager) Config() Config {
	return gm.cfg
}

func (gm *GameManager) CreateGame(gameID string, opts GameOptions) (*Game, error) {
	game, err := NewGame(gameID, opts)
	if err != nil {
		return nil, err
	}
	if err := gm.AddGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

// AddGame registers a game built with NewGame.
func (gm *GameManager) AddGame(game *Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return ErrGameExists
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Side, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.SideWhite, err
	}
	return game.AddPlayer(playerID)
}

// JoinMatchmaking queues playerID and pairs the two longest waiting players
// into a new game. The returned match is set when playerID was paired.
func (gm *GameManager) JoinMatchmaking(playerID string) (*Match, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, waiting := gm.matches[playerID]; waiting {
		return nil, ErrAlreadyQueued
	}
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return nil, err
	}

	p1, p2, ok := gm.queue.NextPair()
	if !ok {
		return nil, nil
	}

	gameID := uuid.New().String()
	game, err := NewGame(gameID, GameOptions{Clock: gm.cfg.Clock, Now: gm.cfg.Now})
	if err != nil {
		return nil, err
	}
	gm.games[gameID] = game
	for _, p := range []QueuedPlayer{p1, p2} {
		color, err := game.AddPlayer(p.PlayerID)
		if err != nil {
			return nil, err
		}
		gm.matches[p.PlayerID] = Match{GameID: gameID, Color: color}
	}
	log.Infow("match found", "game", gameID, "white", p1.PlayerID, "black", p2.PlayerID,
		"waited", time.Since(p1.JoinedAt))

	m := gm.matches[playerID]
	delete(gm.matches, playerID)
	return &m, nil
}

// MatchStatus collects the pairing of a queued player, if there is one.
func (gm *GameManager) MatchStatus(playerID string) (*Match, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if m, ok := gm.matches[playerID]; ok {
		delete(gm.matches, playerID)
		return &m, nil
	}
	if !gm.queue.Contains(playerID) {
		return nil, ErrNotQueued
	}
	return nil, nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) error {
	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
