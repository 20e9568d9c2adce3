package app

import (
	"fmt"
	"strings"

	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, container *Container) (*App, func() error, error) {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, container)

	registry := routes.NewRegistry(routes.Deps{
		Config: cfg,
		DB:     container.DB,
		Redis:  container.Redis,
		Mailer: container.Mailer,
		Hub:    container.Hub,
		Logger: container.Logger,
	})
	if err := registry.Register(f); err != nil {
		return nil, nil, err
	}

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, container *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(container.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
