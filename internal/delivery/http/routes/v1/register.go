package v1

import (
	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/delivery/http/handler"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/infrastructure/cache"
	"hotel-onboarding/internal/infrastructure/document"
	"hotel-onboarding/internal/infrastructure/mail"
	"hotel-onboarding/internal/infrastructure/persistence/postgres"
	"hotel-onboarding/internal/pkg/jwt"
	"hotel-onboarding/internal/repository"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	Mailer mail.Mailer
	JWT    jwt.Service
	AuthMw *middleware.AuthMiddleware
}

type handlerSet struct {
	auth         *handler.AuthHandler
	applications *handler.ApplicationHandler
	review       *handler.ReviewHandler
	hr           *handler.HRHandler
	dashboard    *handler.DashboardHandler
	onboarding   *handler.OnboardingHandler
}

func Register(r fiber.Router, deps Deps) error {
	if r == nil {
		return nil
	}

	userRepo, err := postgres.NewUserRepository(deps.DB)
	if err != nil {
		return err
	}

	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	propertyRepo := repository.NewPostgresPropertyRepository(deps.DB)
	employeeRepo := repository.NewPostgresEmployeeRepository(deps.DB)
	onboardingRepo := repository.NewPostgresOnboardingRepository(deps.DB)
	dashboardRepo := repository.NewPostgresDashboardRepository(deps.DB)
	approvalStore := repository.NewPostgresApprovalStore(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, deps.JWT)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, propertyRepo)
	reviewUC := usecase.NewReviewUsecase(
		applicationRepo,
		approvalStore,
		propertyRepo,
		deps.Mailer,
		deps.Config.App.FrontendBaseURL,
	)
	onboardingUC := usecase.NewOnboardingUsecase(
		onboardingRepo,
		employeeRepo,
		propertyRepo,
		document.NewPDFGenerator(),
	)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, userRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, deps.Redis)

	mount(r, handlerSet{
		auth:         handler.NewAuthHandler(authUC),
		applications: handler.NewApplicationHandler(applicationUC),
		review:       handler.NewReviewHandler(reviewUC),
		hr:           handler.NewHRHandler(propertyUC),
		dashboard:    handler.NewDashboardHandler(dashboardUC),
		onboarding:   handler.NewOnboardingHandler(onboardingUC, deps.JWT),
	}, deps.AuthMw)

	return nil
}

func mount(r fiber.Router, h handlerSet, authMw *middleware.AuthMiddleware) {
	h.auth.RegisterRoutes(r.Group("/auth"))

	// Public, unauthenticated surfaces: applicant intake and the
	// token-addressed onboarding flow.
	h.applications.RegisterRoutes(r.Group("/properties"))
	h.onboarding.RegisterRoutes(r.Group("/onboarding"))

	protected := r.Group("", authMw.Middleware())

	h.review.RegisterRoutes(protected.Group(
		"/applications",
		middleware.RequireCapability(user.CapReviewApplications),
	))

	// The manage gate rides on each HR route instead of the /hr prefix.
	// Group middleware is prefix-scoped, so a gate on /hr would also
	// intercept the dashboard below and lock managers out of it.
	hr := protected.Group("/hr")
	h.hr.RegisterRoutes(hr, middleware.RequireCapability(user.CapManageProperties))
	h.dashboard.RegisterRoutes(hr.Group(
		"/dashboard",
		middleware.RequireCapability(user.CapViewDashboard),
	))
}
