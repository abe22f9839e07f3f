package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDHeader carries the client's player id; the playerId query
// parameter is the fallback for websocket clients that cannot set headers.
const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player id in the playerID local or
// rejects the request with 401.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("playerID").(string); ok && id != "" {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			log.Debugw("request without player id", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// the id outlives the request in seats and queues; fasthttp reuses
		// the buffer it points into
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
