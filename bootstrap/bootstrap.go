package bootstrap

import (
	"grainbook-backend/internal/app"
	"grainbook-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fiberApp, _, _, err := app.CreateApp(cfg)
	return fiberApp, err
}
