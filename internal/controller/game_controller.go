package controller

import (
	"errors"

	"github.com/benbeisheim/chesscore/internal/ai"
	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/service"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on r. Every route expects the playerID
// local set by middleware.EnsurePlayerID.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Post("/matchmaking/join", gc.JoinMatchmaking)
	r.Get("/matchmaking/status", gc.MatchmakingStatus)
	r.Post("/matchmaking/leave", gc.LeaveMatchmaking)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/moves", gc.LegalMoves)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Post("/:gameId/undo", gc.Undo)
}

// statusFor maps service and rules errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrNotQueued):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, model.ErrInvalidMove),
		errors.Is(err, model.ErrPromotionChoiceRequired),
		errors.Is(err, model.ErrInvalidFEN),
		errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, ai.ErrUnknownStrategy):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrWaitingForOpponent),
		errors.Is(err, service.ErrAlreadyQueued),
		errors.Is(err, model.ErrNothingToUndo):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, color, err := gc.gameService.CreateGame(playerID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	color, err := gc.gameService.JoinGame(gameID, playerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"gameId":  gameID,
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Query("from"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameState, err := gc.gameService.HandleUndo(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	match, err := gc.gameService.JoinMatchmaking(playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(matchResponse(match))
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	match, err := gc.gameService.MatchmakingStatus(playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(matchResponse(match))
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.LeaveMatchmaking(playerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

func matchResponse(match *service.Match) fiber.Map {
	if match == nil {
		return fiber.Map{"status": "queued"}
	}
	return fiber.Map{
		"status": "matched",
		"gameId": match.GameID,
		"color":  match.Color,
	}
}
