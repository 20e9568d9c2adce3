package handler

import (
	"hotel-onboarding/internal/delivery/http/dto"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/pkg/response"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// HRHandler covers the HR-only administration surface: properties,
// manager assignments, and manager accounts.
type HRHandler struct {
	properties usecase.PropertyUsecase
}

type propertyRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

type assignManagerRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type createManagerRequest struct {
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	PropertyID *uuid.UUID `json:"property_id"`
}

type updateManagerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  *bool  `json:"is_active"`
}

func NewHRHandler(properties usecase.PropertyUsecase) *HRHandler {
	return &HRHandler{properties: properties}
}

// RegisterRoutes attaches the gate per route rather than on the group, so
// sibling groups under the same prefix keep their own authorization.
func (h *HRHandler) RegisterRoutes(r fiber.Router, gate ...fiber.Handler) {
	if r == nil {
		return
	}

	// Fiber v3 runs the leading handler first and the variadic handlers
	// after it, so the gate must precede the route handler.
	add := func(method func(string, any, ...any) fiber.Router, path string, final fiber.Handler) {
		chain := make([]any, 0, len(gate)+1)
		for _, g := range gate {
			chain = append(chain, g)
		}
		chain = append(chain, final)
		method(path, chain[0], chain[1:]...)
	}

	add(r.Get, "/properties", h.ListProperties)
	add(r.Post, "/properties", h.CreateProperty)
	add(r.Put, "/properties/:id", h.UpdateProperty)
	add(r.Post, "/properties/:id/managers", h.AssignManager)
	add(r.Delete, "/properties/:id/managers/:user_id", h.UnassignManager)

	add(r.Get, "/managers", h.ListManagers)
	add(r.Post, "/managers", h.CreateManager)
	add(r.Put, "/managers/:id", h.UpdateManager)
}

func (h *HRHandler) ListProperties(c fiber.Ctx) error {
	props, err := h.properties.ListProperties(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, dto.NewPropertyResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *HRHandler) CreateProperty(c fiber.Ctx) error {
	var req propertyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.properties.CreateProperty(c.Context(), usecase.PropertyInput{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewPropertyResponse(p))
}

func (h *HRHandler) UpdateProperty(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req propertyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.properties.UpdateProperty(c.Context(), id, usecase.PropertyInput{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPropertyResponse(p))
}

func (h *HRHandler) AssignManager(c fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req assignManagerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.UserID == uuid.Nil {
		return middleware.ValidationError(map[string]string{"user_id": "required"})
	}

	if err := h.properties.AssignManager(c.Context(), propertyID, req.UserID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *HRHandler) UnassignManager(c fiber.Ctx) error {
	propertyID, userID, err := pathPair(c)
	if err != nil {
		return err
	}
	if err := h.properties.UnassignManager(c.Context(), propertyID, userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *HRHandler) ListManagers(c fiber.Ctx) error {
	managers, err := h.properties.ListManagers(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(managers))
}

func (h *HRHandler) CreateManager(c fiber.Ctx) error {
	var req createManagerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	u, err := h.properties.CreateManager(c.Context(), usecase.ManagerInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewUserResponse(u))
}

func (h *HRHandler) UpdateManager(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req updateManagerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	u, err := h.properties.UpdateManager(c.Context(), id, usecase.ManagerUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func pathPair(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}
	return propertyID, userID, nil
}
