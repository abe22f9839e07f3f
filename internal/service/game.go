package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chesscore/internal/ai"
	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type GameOptions struct {
	// FEN sets up a custom starting position.
	FEN string
	// Clock is the time per side; zero means untimed.
	Clock time.Duration
	// Computer, when set, plays ComputerSide.
	Computer     ai.Strategy
	ComputerSide model.Side
	AITimeout    time.Duration
	Now          func() time.Time
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *model.Engine
	players     [2]string
	clocks      [2]*Clock
	computer    ai.Strategy
	aiTimeout   time.Duration
	flagged     *model.Side // side that lost on time
	version     uint64      // bumped on every move and take back
	connections *GameConnections
}

func NewGame(id string, opts GameOptions) (*Game, error) {
	var engineOpts []model.EngineOption
	if opts.FEN != "" {
		engineOpts = append(engineOpts, model.WithFEN(opts.FEN))
	}
	engine, err := model.NewEngine(engineOpts...)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:          id,
		engine:      engine,
		computer:    opts.Computer,
		aiTimeout:   opts.AITimeout,
		connections: NewGameConnections(),
	}
	if opts.Clock > 0 {
		g.clocks[model.SideWhite] = NewClock(opts.Clock, opts.Now)
		g.clocks[model.SideBlack] = NewClock(opts.Clock, opts.Now)
	}
	if g.computer != nil {
		g.players[opts.ComputerSide] = ComputerID
		if g.aiTimeout <= 0 {
			g.aiTimeout = 5 * time.Second
		}
	}
	return g, nil
}

// AddPlayer seats playerID on the first free side, white first. A player
// already seated gets their side back.
func (g *Game) AddPlayer(playerID string) (model.Side, error) {
	return g.seat(playerID, nil)
}

// Seat puts playerID on side.
func (g *Game) Seat(playerID string, side model.Side) (model.Side, error) {
	return g.seat(playerID, &side)
}

func (g *Game) seat(playerID string, want *model.Side) (model.Side, error) {
	g.mu.Lock()
	if seated, ok := g.sideOf(playerID); ok {
		g.mu.Unlock()
		return seated, nil
	}
	side := model.SideWhite
	switch {
	case want != nil:
		side = *want
	case g.players[model.SideWhite] != "":
		side = model.SideBlack
	}
	if g.players[side] != "" {
		g.mu.Unlock()
		return side, ErrGameFull
	}
	g.players[side] = playerID
	log.Infow("player joined", "game", g.ID, "player", playerID, "color", side)

	state := g.state()
	g.mu.Unlock()

	g.broadcastState(state)
	g.playComputer()
	return side, nil
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.sideOf(playerID)
	return ok
}

func (g *Game) sideOf(playerID string) (model.Side, bool) {
	if playerID == "" {
		return model.SideWhite, false
	}
	for _, side := range [2]model.Side{model.SideWhite, model.SideBlack} {
		if g.players[side] == playerID {
			return side, true
		}
	}
	return model.SideWhite, false
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkFlag()
	return g.state()
}

// LegalMoves lists the moves of the side to move, optionally only those
// starting on from.
func (g *Game) LegalMoves(from *model.Square) []MoveView {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over() {
		return []MoveView{}
	}
	views := []MoveView{}
	for _, m := range g.engine.LegalMoves() {
		if from == nil || m.From == *from {
			views = append(views, newMoveView(m))
		}
	}
	return views
}

// MakeMove plays a move for playerID and, in a game against the computer,
// the computer's reply.
func (g *Game) MakeMove(playerID string, move ws.MovePayload) error {
	g.mu.Lock()
	changed, err := g.makeMove(playerID, move)
	var state GameState
	if changed {
		state = g.state()
	}
	g.mu.Unlock()

	if changed {
		g.broadcastState(state)
	}
	if err == nil {
		g.playComputer()
	}
	return err
}

func (g *Game) makeMove(playerID string, move ws.MovePayload) (bool, error) {
	side, ok := g.sideOf(playerID)
	if !ok {
		return false, ErrNotInGame
	}
	if g.players[model.SideWhite] == "" || g.players[model.SideBlack] == "" {
		return false, ErrWaitingForOpponent
	}
	if g.checkFlag() {
		return true, ErrGameOver
	}
	if g.over() {
		return false, ErrGameOver
	}
	if g.engine.Turn() != side {
		return false, ErrNotYourTurn
	}

	m, err := parseMove(move)
	if err != nil {
		return false, err
	}
	if err := g.apply(m); err != nil {
		return false, err
	}
	log.Debugw("move played", "game", g.ID, "player", playerID, "move", m.String())
	return true, nil
}

func parseMove(move ws.MovePayload) (model.MoveRecord, error) {
	from, err := model.ParseSquare(move.From)
	if err != nil {
		return model.MoveRecord{}, fmt.Errorf("%w: from: %w", model.ErrInvalidMove, err)
	}
	to, err := model.ParseSquare(move.To)
	if err != nil {
		return model.MoveRecord{}, fmt.Errorf("%w: to: %w", model.ErrInvalidMove, err)
	}
	m := model.MoveRecord{From: from, To: to}
	if move.Promotion != "" {
		k, ok := model.ParseKind(move.Promotion)
		if !ok {
			return model.MoveRecord{}, fmt.Errorf("%w: unknown promotion %q", model.ErrInvalidMove, move.Promotion)
		}
		m.Promotion = k
	}
	return m, nil
}

// apply makes m on the engine and hands the clock to the other side.
func (g *Game) apply(m model.MoveRecord) error {
	mover := g.engine.Turn()
	if err := g.engine.MakeMove(m); err != nil {
		return err
	}
	g.version++
	g.clocks[mover].Stop()
	if !g.over() {
		g.clocks[mover.Opposite()].Start()
	}
	return nil
}

// Undo takes back the last move of playerID. Against the computer the
// computer's reply is taken back as well so it is the player's turn again.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	err := g.undo(playerID)
	var state GameState
	if err == nil {
		state = g.state()
	}
	g.mu.Unlock()

	if err == nil {
		g.broadcastState(state)
	}
	return err
}

func (g *Game) undo(playerID string) error {
	side, ok := g.sideOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.flagged != nil {
		return ErrGameOver
	}

	plies := 1
	if g.computer != nil {
		if g.engine.Turn() == side {
			plies = 2
		}
	} else if last, ok := g.engine.LastMove(); ok && last.Moved.Side != side {
		return ErrNotYourTurn
	}
	if g.engine.Plies() < plies {
		return model.ErrNothingToUndo
	}
	for i := 0; i < plies; i++ {
		if _, err := g.engine.UndoMove(); err != nil {
			return err
		}
	}
	g.version++

	for _, c := range g.clocks {
		c.Stop()
	}
	if g.engine.Plies() > 0 {
		g.clocks[g.engine.Turn()].Start()
	}
	log.Debugw("move taken back", "game", g.ID, "player", playerID, "plies", plies)
	return nil
}

// playComputer lets the computer move if it is its turn. The search runs on a
// clone without holding g.mu; the move is dropped if the game changed
// meanwhile.
func (g *Game) playComputer() {
	g.mu.Lock()
	if !g.computerToMove() {
		g.mu.Unlock()
		return
	}
	position := g.engine.Clone()
	version := g.version
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), g.aiTimeout)
	defer cancel()
	start := time.Now()
	m, err := g.computer.Choose(ctx, position)
	if err != nil {
		log.Errorw("computer failed to choose a move", "game", g.ID, "error", err)
		return
	}

	g.mu.Lock()
	if g.version != version || !g.computerToMove() {
		g.mu.Unlock()
		log.Debugw("game changed during computer search", "game", g.ID, "move", m.String())
		return
	}
	if err := g.apply(m); err != nil {
		g.mu.Unlock()
		log.Errorw("computer chose an illegal move", "game", g.ID, "move", m.String(), "error", err)
		return
	}
	state := g.state()
	g.mu.Unlock()

	log.Debugw("computer moved", "game", g.ID, "move", m.String(), "took", time.Since(start))
	g.broadcastState(state)
}

func (g *Game) computerToMove() bool {
	if g.computer == nil || g.over() || g.players[g.engine.Turn()] != ComputerID {
		return false
	}
	return g.players[g.engine.Turn().Opposite()] != ""
}

// checkFlag ends the game when the side to move has run out of time.
func (g *Game) checkFlag() bool {
	if g.flagged != nil || g.engine.Status().IsOver() {
		return false
	}
	side := g.engine.Turn()
	if !g.clocks[side].Expired() {
		return false
	}
	g.flagged = &side
	for _, c := range g.clocks {
		c.Stop()
	}
	log.Infow("flag fell", "game", g.ID, "color", side)
	return true
}

func (g *Game) over() bool {
	return g.flagged != nil || g.engine.Status().IsOver()
}

func (g *Game) result() *Result {
	if g.flagged != nil {
		return &Result{Winner: g.flagged.Opposite().String(), Reason: "timeout"}
	}
	switch g.engine.Status() {
	case model.StatusCheckmate:
		return &Result{Winner: g.engine.Turn().Opposite().String(), Reason: "checkmate"}
	case model.StatusStalemate:
		return &Result{Winner: "draw", Reason: "stalemate"}
	}
	return nil
}

func (g *Game) state() GameState {
	e := g.engine
	history := e.History()

	state := GameState{
		ID:             g.ID,
		Board:          newBoardView(e.Grid()),
		FEN:            e.FEN(),
		ToMove:         e.Turn(),
		Status:         e.Status(),
		IsCheck:        e.InCheck(),
		LegalMoves:     []MoveView{},
		MoveHistory:    make([]string, len(history)),
		CapturedPieces: CapturedPieces{White: []string{}, Black: []string{}},
		Castling:       e.Board().Castling(),
		Resolve:        g.result(),
		Timed:          g.clocks[model.SideWhite] != nil,
	}
	if state.Resolve == nil {
		state.LegalMoves = moveViews(e.LegalMoves())
	}
	info := e.CheckInfo()
	state.Checkers = make([]model.Square, len(info.Checks))
	for i, c := range info.Checks {
		state.Checkers[i] = c.Square
	}
	state.Pinned = make([]model.Square, len(info.Pins))
	for i, p := range info.Pins {
		state.Pinned[i] = p.Square
	}
	for i, m := range history {
		state.MoveHistory[i] = m.String()
		if !m.IsCapture() {
			continue
		}
		if m.Moved.Side == model.SideWhite {
			state.CapturedPieces.White = append(state.CapturedPieces.White, m.Captured.Code())
		} else {
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, m.Captured.Code())
		}
	}
	if last, ok := e.LastMove(); ok {
		v := newMoveView(last)
		state.LastMove = &v
	}
	if ep := e.Board().EnPassant(); ep != model.NoSquare {
		state.EnPassantTarget = &ep
	}
	state.Players = Players{
		White: g.clientPlayer(model.SideWhite),
		Black: g.clientPlayer(model.SideBlack),
	}
	return state
}

func (g *Game) clientPlayer(side model.Side) ClientPlayer {
	return ClientPlayer{
		ID:       g.players[side],
		Color:    side,
		TimeLeft: g.clocks[side].tenths(),
		Running:  g.clocks[side].Running(),
		Computer: g.players[side] == ComputerID,
	}
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and reject the new one
		g.connections.mu.Unlock()
		conn.Close()
		return fmt.Errorf("connection already exists for %s", playerID)
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugw("connection registered", "game", g.ID, "player", playerID)

	// Send initial state
	g.broadcastState(g.State())
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only unregister if this is still the current connection
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debugw("connection unregistered", "game", g.ID, "player", playerID)
	}
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorw("failed to marshal game state", "game", g.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "game", g.ID, "player", playerID, "error", err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}
