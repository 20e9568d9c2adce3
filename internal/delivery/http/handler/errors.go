package handler

import (
	"errors"

	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/pkg/response"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError translates the usecase error taxonomy into AppErrors the
// error middleware renders. Scope misses arrive here as ErrNotFound already,
// so nothing about another property's existence leaks.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return middleware.ValidationError(ve.Fields)
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrSessionExpired):
		return middleware.NewAppError(fiber.StatusConflict, "Session expired", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func actorFromCtx(c fiber.Ctx) (usecase.Actor, error) {
	id, role, props, ok := middleware.CallerIdentity(c)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usecase.Actor{UserID: id, Role: role, PropertyIDs: props}, nil
}
