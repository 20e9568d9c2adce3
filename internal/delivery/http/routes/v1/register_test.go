package v1

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotel-onboarding/internal/delivery/http/handler"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/domain/property"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/pkg/jwt"
	"hotel-onboarding/internal/repository"
	"hotel-onboarding/internal/usecase"
)

type stubDashboardUsecase struct{}

func (stubDashboardUsecase) Counts(context.Context, usecase.Actor) (repository.DashboardCounts, error) {
	return repository.DashboardCounts{ApplicationsByStatus: map[string]int{}}, nil
}

type stubPropertyUsecase struct{}

func (stubPropertyUsecase) CreateProperty(context.Context, usecase.PropertyInput) (property.Property, error) {
	return property.Property{}, nil
}

func (stubPropertyUsecase) UpdateProperty(context.Context, uuid.UUID, usecase.PropertyInput) (property.Property, error) {
	return property.Property{}, nil
}

func (stubPropertyUsecase) ListProperties(context.Context) ([]property.Property, error) {
	return nil, nil
}

func (stubPropertyUsecase) AssignManager(context.Context, uuid.UUID, uuid.UUID) error   { return nil }
func (stubPropertyUsecase) UnassignManager(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubPropertyUsecase) CreateManager(context.Context, usecase.ManagerInput) (user.User, error) {
	return user.User{}, nil
}

func (stubPropertyUsecase) UpdateManager(context.Context, uuid.UUID, usecase.ManagerUpdateInput) (user.User, error) {
	return user.User{}, nil
}

func (stubPropertyUsecase) ListManagers(context.Context) ([]user.User, error) { return nil, nil }

// testRouteTree mounts the real route topology with stubbed business logic
// so authorization can be exercised end to end through the middleware chain.
func testRouteTree(t *testing.T) (*fiber.App, jwt.Service) {
	t.Helper()

	svc := jwt.NewHMACService("access-test-secret", "refresh-test-secret", time.Hour, time.Hour)
	authMw := middleware.NewAuthMiddleware(svc)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(zerolog.Nop()).Middleware())

	mount(app.Group("/api/v1"), handlerSet{
		auth:         handler.NewAuthHandler(nil),
		applications: handler.NewApplicationHandler(nil),
		review:       handler.NewReviewHandler(nil),
		hr:           handler.NewHRHandler(stubPropertyUsecase{}),
		dashboard:    handler.NewDashboardHandler(stubDashboardUsecase{}),
		onboarding:   handler.NewOnboardingHandler(nil, svc),
	}, authMw)

	return app, svc
}

func accessTokenFor(t *testing.T, svc jwt.Service, role user.Role) string {
	t.Helper()
	token, err := svc.GenerateAccessToken(user.User{
		ID:    uuid.New(),
		Email: string(role) + "@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestRoutes_ManagerCanReachDashboard(t *testing.T) {
	app, svc := testRouteTree(t)
	token := accessTokenFor(t, svc, user.RoleManager)

	req := httptest.NewRequest("GET", "/api/v1/hr/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("manager dashboard status = %d, want 200", resp.StatusCode)
	}
}

func TestRoutes_ManagerCannotManageProperties(t *testing.T) {
	app, svc := testRouteTree(t)
	token := accessTokenFor(t, svc, user.RoleManager)

	req := httptest.NewRequest("GET", "/api/v1/hr/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("manager /hr/properties status = %d, want 403", resp.StatusCode)
	}
}

func TestRoutes_HRCanManageProperties(t *testing.T) {
	app, svc := testRouteTree(t)
	token := accessTokenFor(t, svc, user.RoleHR)

	req := httptest.NewRequest("GET", "/api/v1/hr/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("hr /hr/properties status = %d, want 200", resp.StatusCode)
	}
}

func TestRoutes_DashboardRequiresAuth(t *testing.T) {
	app, _ := testRouteTree(t)

	req := httptest.NewRequest("GET", "/api/v1/hr/dashboard", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unauthenticated dashboard status = %d, want 401", resp.StatusCode)
	}
}
