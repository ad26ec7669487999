package bootstrap

import (
	"equitie-backend/internal/config"
	"equitie-backend/internal/interfaces/router"
	"equitie-backend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Env, cfg.LogLevel)
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
