package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/property"
	"hotel-onboarding/internal/repository"
	"hotel-onboarding/internal/ws"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9().\s-]{7,20}$`)
)

type SubmitApplicationInput struct {
	Department string
	Position   string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string

	WorkAuthorized   bool
	EmploymentType   string
	DesiredStartDate string // YYYY-MM-DD
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, propertyID uuid.UUID, in SubmitApplicationInput) (application.Application, error)
	PropertyInfo(ctx context.Context, propertyID uuid.UUID) (property.Property, error)
}

type ApplicationService struct {
	applications repository.ApplicationRepository
	properties   repository.PropertyRepository

	now func() time.Time
}

func NewApplicationUsecase(applications repository.ApplicationRepository, properties repository.PropertyRepository) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		properties:   properties,
		now:          time.Now,
	}
}

// PropertyInfo backs the public apply page. Inactive properties are hidden.
func (s *ApplicationService) PropertyInfo(ctx context.Context, propertyID uuid.UUID) (property.Property, error) {
	p, err := s.properties.GetActiveByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return property.Property{}, ErrNotFound
		}
		return property.Property{}, ErrInternal
	}
	return p, nil
}

// Submit is the public, unauthenticated application intake. Validation is
// itemized per field; nothing is written unless every check passes.
func (s *ApplicationService) Submit(ctx context.Context, propertyID uuid.UUID, in SubmitApplicationInput) (application.Application, error) {
	if _, err := s.properties.GetActiveByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	fields := map[string]string{}
	req := func(field, value string) string {
		v := strings.TrimSpace(value)
		if v == "" {
			fields[field] = "required"
		}
		return v
	}

	department := req("department", in.Department)
	position := req("position", in.Position)
	firstName := req("first_name", in.FirstName)
	lastName := req("last_name", in.LastName)
	address := req("address", in.Address)
	city := req("city", in.City)
	state := req("state", in.State)
	zipCode := req("zip_code", in.ZipCode)
	employmentType := req("employment_type", in.EmploymentType)

	email := req("email", in.Email)
	if email != "" && !emailRe.MatchString(email) {
		fields["email"] = "invalid email address"
	}

	phone := req("phone", in.Phone)
	if phone != "" && !phoneRe.MatchString(phone) {
		fields["phone"] = "invalid phone number"
	}

	var startDate time.Time
	raw := req("desired_start_date", in.DesiredStartDate)
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields["desired_start_date"] = "invalid date, expected YYYY-MM-DD"
		} else {
			today := s.now().UTC().Truncate(24 * time.Hour)
			if parsed.Before(today) {
				fields["desired_start_date"] = "start date must not be in the past"
			}
			startDate = parsed
		}
	}

	if len(fields) > 0 {
		return application.Application{}, NewValidationError(fields)
	}

	now := s.now().UTC()
	a := application.Application{
		ID:         uuid.New(),
		PropertyID: propertyID,

		Department: department,
		Position:   position,

		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(email),
		Phone:     phone,
		Address:   address,
		City:      city,
		State:     state,
		ZipCode:   zipCode,

		WorkAuthorized:   in.WorkAuthorized,
		EmploymentType:   employmentType,
		DesiredStartDate: startDate,

		Status:      application.StatusPending,
		SubmittedAt: now,
	}

	if err := s.applications.Create(ctx, a); err != nil {
		return application.Application{}, ErrInternal
	}

	ws.NotifyApplicationEvent(ws.EventApplicationSubmitted, a.ID, a.PropertyID, string(a.Status))

	return a, nil
}
