package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/property"
)

func validSubmitInput() SubmitApplicationInput {
	return SubmitApplicationInput{
		Department:       "Front Desk",
		Position:         "Receptionist",
		FirstName:        "Alex",
		LastName:         "Kim",
		Email:            "Alex.Kim@Example.com",
		Phone:            "619-555-0188",
		Address:          "12 Elm St",
		City:             "San Diego",
		State:            "CA",
		ZipCode:          "92101",
		WorkAuthorized:   true,
		EmploymentType:   "full_time",
		DesiredStartDate: "2026-10-01",
	}
}

func TestSubmit_Success(t *testing.T) {
	propertyID := uuid.New()
	apps := newStubApplicationRepo()
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	uc := NewApplicationUsecase(apps, props)

	a, err := uc.Submit(context.Background(), propertyID, validSubmitInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if a.Status != application.StatusPending {
		t.Fatalf("status = %s, want pending", a.Status)
	}
	if a.Email != "alex.kim@example.com" {
		t.Fatalf("email not lowercased: %q", a.Email)
	}
	if _, ok := apps.apps[a.ID]; !ok {
		t.Fatalf("application not persisted")
	}
}

func TestSubmit_InactivePropertyIsNotFound(t *testing.T) {
	propertyID := uuid.New()
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Closed", IsActive: false})
	uc := NewApplicationUsecase(newStubApplicationRepo(), props)

	_, err := uc.Submit(context.Background(), propertyID, validSubmitInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmit_ItemizedValidation(t *testing.T) {
	propertyID := uuid.New()
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	apps := newStubApplicationRepo()
	uc := NewApplicationUsecase(apps, props)

	in := validSubmitInput()
	in.FirstName = ""
	in.Email = "not-an-email"
	in.Phone = "abc"
	in.DesiredStartDate = "10/01/2026"

	_, err := uc.Submit(context.Background(), propertyID, in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	want := map[string]string{
		"first_name":         "required",
		"email":              "invalid email address",
		"phone":              "invalid phone number",
		"desired_start_date": "invalid date, expected YYYY-MM-DD",
	}
	for field, msg := range want {
		if got := ve.Fields[field]; got != msg {
			t.Fatalf("field %s = %q, want %q", field, got, msg)
		}
	}
	if len(apps.apps) != 0 {
		t.Fatalf("nothing may be written when validation fails")
	}
}

func TestSubmit_PastStartDate(t *testing.T) {
	propertyID := uuid.New()
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	uc := NewApplicationUsecase(newStubApplicationRepo(), props)
	uc.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	in := validSubmitInput()
	in.DesiredStartDate = "2026-10-01"

	_, err := uc.Submit(context.Background(), propertyID, in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := ve.Fields["desired_start_date"]; !ok {
		t.Fatalf("expected desired_start_date in validation fields")
	}
}

func TestPropertyInfo_HidesInactive(t *testing.T) {
	active := property.Property{ID: uuid.New(), Name: "Open", IsActive: true}
	inactive := property.Property{ID: uuid.New(), Name: "Closed", IsActive: false}
	uc := NewApplicationUsecase(newStubApplicationRepo(), newStubPropertyRepo(active, inactive))

	p, err := uc.PropertyInfo(context.Background(), active.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Name != "Open" {
		t.Fatalf("unexpected property: %+v", p)
	}

	if _, err := uc.PropertyInfo(context.Background(), inactive.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive property, got %v", err)
	}
}
