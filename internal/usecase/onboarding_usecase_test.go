package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/employee"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/infrastructure/document"
)

type stubPDF struct{}

func (stubPDF) OnboardingPacket(document.PacketData) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func onboardingFixture(t *testing.T) (*OnboardingService, *stubSessionRepo, onboarding.Session) {
	t.Helper()

	sessions := newStubSessionRepo()
	emps := newStubEmployeeRepo()

	emp := employee.Employee{
		ID:        uuid.New(),
		FirstName: "Maria",
		LastName:  "Lopez",
		Offer:     employee.JobOffer{JobTitle: "Room Attendant", StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	emps.employees[emp.ID] = emp

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	sess := onboarding.Session{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		AccessToken: "tok-123",
		Status:      onboarding.StatusInProgress,
		CurrentStep: onboarding.StepPersonalInfo,
		ExpiresAt:   now.Add(onboarding.DefaultWindow),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sessions.sessions[sess.ID] = sess

	uc := NewOnboardingUsecase(sessions, emps, newStubPropertyRepo(), stubPDF{})
	uc.now = func() time.Time { return now }
	return uc, sessions, sess
}

func payload() json.RawMessage {
	return json.RawMessage(`{"ok":true}`)
}

func TestSubmitStep_UnknownStep(t *testing.T) {
	uc, _, _ := onboardingFixture(t)

	_, err := uc.SubmitStep(context.Background(), "tok-123", "bogus_step", payload(), nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitStep_OutOfOrder(t *testing.T) {
	uc, _, _ := onboardingFixture(t)

	_, err := uc.SubmitStep(context.Background(), "tok-123", onboarding.StepW4, payload(), nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for out-of-order step, got %v", err)
	}
	if _, ok := ve.Fields["step_id"]; !ok {
		t.Fatalf("expected step_id in validation fields")
	}
}

func TestSubmitStep_ManagerOnlyForbiddenForEmployee(t *testing.T) {
	uc, sessions, sess := onboardingFixture(t)

	for _, id := range []onboarding.StepID{onboarding.StepPersonalInfo, onboarding.StepI9Section1, onboarding.StepDocumentUpload} {
		if _, err := uc.SubmitStep(context.Background(), "tok-123", id, payload(), nil); err != nil {
			t.Fatalf("step %s: unexpected err: %v", id, err)
		}
	}

	_, err := uc.SubmitStep(context.Background(), "tok-123", onboarding.StepI9Section2, payload(), nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee on i9_section2, got %v", err)
	}

	manager := &Actor{UserID: uuid.New(), Role: user.RoleManager}
	state, err := uc.SubmitStep(context.Background(), "tok-123", onboarding.StepI9Section2, payload(), manager)
	if err != nil {
		t.Fatalf("manager submit failed: %v", err)
	}
	if state.Session.CurrentStep != onboarding.StepW4 {
		t.Fatalf("current step = %s, want w4", state.Session.CurrentStep)
	}

	var recorded onboarding.CompletedStep
	for _, st := range sessions.steps[sess.ID] {
		if st.StepID == onboarding.StepI9Section2 {
			recorded = st
		}
	}
	if recorded.CompletedBy == "employee" || recorded.CompletedBy == "" {
		t.Fatalf("manager-only step must record the reviewer, got %q", recorded.CompletedBy)
	}
}

func TestSubmitStep_CompletesSession(t *testing.T) {
	uc, _, _ := onboardingFixture(t)
	manager := &Actor{UserID: uuid.New(), Role: user.RoleManager}

	var state SessionState
	var err error
	for _, s := range onboarding.Steps() {
		actor := (*Actor)(nil)
		if s.ManagerOnly {
			actor = manager
		}
		state, err = uc.SubmitStep(context.Background(), "tok-123", s.ID, payload(), actor)
		if err != nil {
			t.Fatalf("step %s: unexpected err: %v", s.ID, err)
		}
	}

	if state.Session.Status != onboarding.StatusCompleted {
		t.Fatalf("session status = %s, want completed", state.Session.Status)
	}
	if state.Session.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}

	_, err = uc.SubmitStep(context.Background(), "tok-123", onboarding.StepFinalReview, payload(), nil)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on completed session, got %v", err)
	}
}

func TestGetSession_ExpiredToken(t *testing.T) {
	uc, sessions, sess := onboardingFixture(t)
	uc.now = func() time.Time { return sess.ExpiresAt.Add(time.Hour) }

	_, err := uc.GetSession(context.Background(), "tok-123")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := sessions.sessions[sess.ID].Status; got != onboarding.StatusExpired {
		t.Fatalf("session status = %s, want expired after lazy expiry", got)
	}
}

func TestGetSession_UnknownToken(t *testing.T) {
	uc, _, _ := onboardingFixture(t)

	_, err := uc.GetSession(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPacket_ReturnsPDF(t *testing.T) {
	uc, _, _ := onboardingFixture(t)

	b, err := uc.Packet(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("empty packet")
	}
}
