package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/domain/property"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/repository"
)

const testFrontendURL = "https://portal.example.com"

func pendingApplication(propertyID uuid.UUID) application.Application {
	return application.Application{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Department: "Housekeeping",
		Position:   "Room Attendant",
		FirstName:  "Maria",
		LastName:   "Lopez",
		Email:      "maria@example.com",
		Phone:      "619-555-0123",
		Status:     application.StatusPending,
	}
}

func validOffer() JobOfferInput {
	return JobOfferInput{
		JobTitle:     "Room Attendant",
		StartDate:    "2026-09-01",
		StartTime:    "09:00",
		PayRate:      18.50,
		PayFrequency: "biweekly",
		Supervisor:   "Dana Reed",
	}
}

func hrActor() Actor {
	return Actor{UserID: uuid.New(), Role: user.RoleHR}
}

func TestReviewApprove_Success(t *testing.T) {
	propertyID := uuid.New()
	app := pendingApplication(propertyID)
	apps := newStubApplicationRepo(app)
	store := newStubApprovalStore(apps)
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	mailer := &capturingMailer{}

	uc := NewReviewUsecase(apps, store, props, mailer, testFrontendURL)

	result, err := uc.Approve(context.Background(), hrActor(), app.ID, validOffer())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got := apps.apps[app.ID].Status; got != application.StatusApproved {
		t.Fatalf("application status = %s, want approved", got)
	}

	emp, ok := store.employees[result.EmployeeID]
	if !ok {
		t.Fatalf("employee record not created")
	}
	if emp.ApplicationID != app.ID {
		t.Fatalf("employee linked to wrong application")
	}
	if emp.Offer.JobTitle != "Room Attendant" || emp.Offer.PayRate != 18.50 {
		t.Fatalf("offer terms not carried onto employee: %+v", emp.Offer)
	}

	sess, ok := store.sessions[result.SessionID]
	if !ok {
		t.Fatalf("onboarding session not created")
	}
	if sess.Status != onboarding.StatusInProgress {
		t.Fatalf("session status = %s, want in_progress", sess.Status)
	}
	if sess.CurrentStep != onboarding.StepPersonalInfo {
		t.Fatalf("session current step = %s, want personal_info", sess.CurrentStep)
	}
	if sess.AccessToken == "" {
		t.Fatalf("session has no access token")
	}

	wantURL := testFrontendURL + "/onboarding/" + sess.AccessToken
	if result.OnboardingURL != wantURL {
		t.Fatalf("onboarding url = %q, want %q", result.OnboardingURL, wantURL)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To != app.Email {
		t.Fatalf("mail sent to %q, want %q", mailer.sent[0].To, app.Email)
	}
	if !strings.Contains(mailer.sent[0].Body, wantURL) {
		t.Fatalf("approval mail does not carry the onboarding link")
	}
}

func TestReviewApprove_OfferValidation(t *testing.T) {
	propertyID := uuid.New()
	app := pendingApplication(propertyID)
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	_, err := uc.Approve(context.Background(), hrActor(), app.ID, JobOfferInput{})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"job_title", "start_date", "start_time", "pay_rate", "pay_frequency", "supervisor"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("missing validation message for %s", field)
		}
	}
}

func TestReviewApprove_NotPending(t *testing.T) {
	propertyID := uuid.New()
	app := pendingApplication(propertyID)
	app.Status = application.StatusRejected
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	_, err := uc.Approve(context.Background(), hrActor(), app.ID, validOffer())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReviewApprove_ScopeMissIsNotFound(t *testing.T) {
	app := pendingApplication(uuid.New())
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	manager := Actor{UserID: uuid.New(), Role: user.RoleManager, PropertyIDs: []uuid.UUID{uuid.New()}}
	_, err := uc.Approve(context.Background(), manager, app.ID, validOffer())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for out-of-scope application, got %v", err)
	}
}

func TestReviewApprove_LostRaceIsConflict(t *testing.T) {
	app := pendingApplication(uuid.New())
	apps := newStubApplicationRepo(app)
	store := newStubApprovalStore(apps)
	store.stale = true
	uc := NewReviewUsecase(apps, store, newStubPropertyRepo(), nil, testFrontendURL)

	_, err := uc.Approve(context.Background(), hrActor(), app.ID, validOffer())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when the guarded update loses, got %v", err)
	}
	if len(store.employees) != 0 {
		t.Fatalf("no employee may be created after a lost race")
	}
}

func TestReviewApprove_FailedProvisionKeepsPending(t *testing.T) {
	propertyID := uuid.New()
	app := pendingApplication(propertyID)
	apps := newStubApplicationRepo(app)
	store := newStubApprovalStore(apps)
	store.failures = 1
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	uc := NewReviewUsecase(apps, store, props, &capturingMailer{}, testFrontendURL)

	_, err := uc.Approve(context.Background(), hrActor(), app.ID, validOffer())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal on failed provisioning, got %v", err)
	}
	if got := apps.apps[app.ID].Status; got != application.StatusPending {
		t.Fatalf("application status = %s, want pending after rollback", got)
	}
	if len(store.employees) != 0 {
		t.Fatalf("rolled-back approval must not leave an employee behind")
	}

	result, err := uc.Approve(context.Background(), hrActor(), app.ID, validOffer())
	if err != nil {
		t.Fatalf("retry after rollback failed: %v", err)
	}
	if got := apps.apps[app.ID].Status; got != application.StatusApproved {
		t.Fatalf("retry status = %s, want approved", got)
	}
	if _, ok := store.employees[result.EmployeeID]; !ok {
		t.Fatalf("retry did not create the employee record")
	}
	if len(store.employees) != 1 {
		t.Fatalf("expected exactly 1 employee, got %d", len(store.employees))
	}
}

func TestReviewReject_RequiresReason(t *testing.T) {
	app := pendingApplication(uuid.New())
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	err := uc.Reject(context.Background(), hrActor(), app.ID, "   ")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := ve.Fields["rejection_reason"]; !ok {
		t.Fatalf("expected rejection_reason in validation fields")
	}
}

func TestReviewReject_StoresReasonAndMails(t *testing.T) {
	propertyID := uuid.New()
	app := pendingApplication(propertyID)
	apps := newStubApplicationRepo(app)
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	mailer := &capturingMailer{}
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), props, mailer, testFrontendURL)

	if err := uc.Reject(context.Background(), hrActor(), app.ID, "position filled"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	stored := apps.apps[app.ID]
	if stored.Status != application.StatusRejected {
		t.Fatalf("status = %s, want rejected", stored.Status)
	}
	if stored.RejectionReason == nil || *stored.RejectionReason != "position filled" {
		t.Fatalf("rejection reason not stored")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != app.Email {
		t.Fatalf("rejection mail not sent to applicant")
	}
}

func TestReviewReject_LostRaceIsConflict(t *testing.T) {
	app := pendingApplication(uuid.New())
	apps := newStubApplicationRepo(app)
	apps.denyUpdate = true
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	err := uc.Reject(context.Background(), hrActor(), app.ID, "position filled")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when the guarded update loses, got %v", err)
	}
}

func TestReviewReactivate_FromRejected(t *testing.T) {
	app := pendingApplication(uuid.New())
	app.Status = application.StatusRejected
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	if err := uc.Reactivate(context.Background(), hrActor(), app.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := apps.apps[app.ID].Status; got != application.StatusPending {
		t.Fatalf("status = %s, want pending", got)
	}
}

func TestReviewTalentPool_ApprovedIsTerminal(t *testing.T) {
	app := pendingApplication(uuid.New())
	app.Status = application.StatusApproved
	apps := newStubApplicationRepo(app)
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	err := uc.MoveToTalentPool(context.Background(), hrActor(), app.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReviewBulkReject_PartialFailure(t *testing.T) {
	propertyID := uuid.New()
	ok := pendingApplication(propertyID)
	terminal := pendingApplication(propertyID)
	terminal.Status = application.StatusApproved
	apps := newStubApplicationRepo(ok, terminal)
	props := newStubPropertyRepo(property.Property{ID: propertyID, Name: "Grand Vista", IsActive: true})
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), props, &capturingMailer{}, testFrontendURL)

	results := uc.BulkReject(context.Background(), hrActor(), []uuid.UUID{ok.ID, terminal.ID}, "no fit")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].OK || results[0].ID != ok.ID {
		t.Fatalf("first item should succeed: %+v", results[0])
	}
	if results[1].OK || results[1].Error == "" {
		t.Fatalf("second item should fail with a message: %+v", results[1])
	}
	if got := apps.apps[ok.ID].Status; got != application.StatusRejected {
		t.Fatalf("first application status = %s, want rejected", got)
	}
	if got := apps.apps[terminal.ID].Status; got != application.StatusApproved {
		t.Fatalf("failed item must be untouched, got %s", got)
	}
}

func TestReviewList_RejectsUnknownStatus(t *testing.T) {
	apps := newStubApplicationRepo()
	uc := NewReviewUsecase(apps, newStubApprovalStore(apps), newStubPropertyRepo(), nil, testFrontendURL)

	_, err := uc.List(context.Background(), hrActor(), repository.ApplicationFilter{Status: "bogus"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
