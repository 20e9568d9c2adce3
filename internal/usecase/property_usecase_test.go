package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/user"
)

func managerAccount() user.User {
	return user.User{
		ID:           uuid.New(),
		Email:        "dana@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         user.RoleManager,
		FirstName:    "Dana",
		LastName:     "Reed",
		IsActive:     true,
	}
}

func TestManagerUpdate_DeactivatesAccount(t *testing.T) {
	m := managerAccount()
	users := newStubUserRepo(m)
	uc := NewPropertyUsecase(newStubPropertyRepo(), users)

	inactive := false
	got, err := uc.UpdateManager(context.Background(), m.ID, ManagerUpdateInput{
		FirstName: "Daniela",
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	stored := users.users[m.ID]
	if stored.IsActive {
		t.Fatalf("manager should be deactivated")
	}
	if stored.FirstName != "Daniela" {
		t.Fatalf("first name = %q, want Daniela", stored.FirstName)
	}
	if stored.LastName != "Reed" {
		t.Fatalf("untouched field changed: last name = %q", stored.LastName)
	}
	if got.PasswordHash != "" {
		t.Fatalf("returned manager still carries the password hash")
	}
}

func TestManagerUpdate_NonManagerIsNotFound(t *testing.T) {
	hr := managerAccount()
	hr.Role = user.RoleHR
	users := newStubUserRepo(hr)
	uc := NewPropertyUsecase(newStubPropertyRepo(), users)

	_, err := uc.UpdateManager(context.Background(), hr.ID, ManagerUpdateInput{FirstName: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a non-manager account, got %v", err)
	}
}

func TestManagerUpdate_UnknownIDIsNotFound(t *testing.T) {
	uc := NewPropertyUsecase(newStubPropertyRepo(), newStubUserRepo())

	_, err := uc.UpdateManager(context.Background(), uuid.New(), ManagerUpdateInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
