package routes

import (
	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/delivery/http/handler"
	"hotel-onboarding/internal/delivery/http/middleware"
	v1 "hotel-onboarding/internal/delivery/http/routes/v1"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/infrastructure/cache"
	"hotel-onboarding/internal/infrastructure/mail"
	"hotel-onboarding/internal/pkg/jwt"
	"hotel-onboarding/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// Deps carries the shared infrastructure the route tree wires handlers to.
type Deps struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	Mailer mail.Mailer
	Hub    *ws.Hub
	Logger zerolog.Logger
}

type Registry struct {
	deps Deps

	jwt    jwt.Service
	authMw *middleware.AuthMiddleware
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	return &Registry{
		deps:   deps,
		jwt:    jwtSvc,
		authMw: middleware.NewAuthMiddleware(jwtSvc),
		health: handler.NewHealthHandler(deps.DB, deps.Redis),
	}
}

func (r *Registry) Register(app *fiber.App) error {
	if app == nil {
		return nil
	}

	r.registerHealth(app)
	r.registerWS(app)
	return r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	wsHandler := ws.NewHandler(r.deps.Hub, r.deps.Logger)
	app.Get(
		"/ws/dashboard",
		wsHandler.HandleDashboardWS,
		r.authMw.Middleware(),
		middleware.RequireCapability(user.CapViewDashboard),
	)
}

func (r *Registry) registerAPI(app *fiber.App) error {
	api := app.Group("/api")
	return v1.Register(api.Group("/v1"), v1.Deps{
		Config: r.deps.Config,
		DB:     r.deps.DB,
		Redis:  r.deps.Redis,
		Mailer: r.deps.Mailer,
		JWT:    r.jwt,
		AuthMw: r.authMw,
	})
}
