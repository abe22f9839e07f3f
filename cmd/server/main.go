package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/chesscore/internal/controller"
	"github.com/benbeisheim/chesscore/internal/middleware"
	"github.com/benbeisheim/chesscore/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

// env returns the environment variable key, or def when it is unset.
func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warnw("ignoring bad integer", "env", key, "value", v)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warnw("ignoring bad duration", "env", key, "value", v)
	}
	return def
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func main() {
	addr := flag.String("addr", env("CHESS_ADDR", ":3000"), "listen address")
	origins := flag.String("origins", env("CHESS_ORIGINS", "http://localhost:5173"), "comma separated allowed origins")
	clock := flag.Duration("clock", envDuration("CHESS_CLOCK", 0), "time per side, 0 for untimed games")
	aiDepth := flag.Int("ai-depth", envInt("CHESS_AI_DEPTH", 3), "search depth of the minimax computer")
	aiStrategy := flag.String("ai-strategy", env("CHESS_AI_STRATEGY", "minimax"), "default computer strategy: random, greedy or minimax")
	aiTimeout := flag.Duration("ai-timeout", envDuration("CHESS_AI_TIMEOUT", 5*time.Second), "longest the computer may think")
	logLevel := flag.String("log-level", env("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	flag.Parse()

	log.SetLevel(parseLevel(*logLevel))

	app := fiber.New(fiber.Config{
		AppName:   "chesscore",
		Immutable: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(service.Config{
		Clock:      *clock,
		AIDepth:    *aiDepth,
		AIStrategy: *aiStrategy,
		AITimeout:  *aiTimeout,
	})
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         strings.Split(*origins, ","),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.Register(api.Group("/game"))

	log.Infow("starting server", "addr", *addr, "clock", *clock, "aiStrategy", *aiStrategy, "aiDepth", *aiDepth)
	log.Fatal(app.Listen(*addr))
}
