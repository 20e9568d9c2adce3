package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/property"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/repository"
	ucauth "hotel-onboarding/internal/usecase/auth"
)

type PropertyInput struct {
	Name     string
	Address  string
	City     string
	State    string
	ZipCode  string
	Phone    string
	IsActive *bool
}

type ManagerInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	PropertyID *uuid.UUID
}

// ManagerUpdateInput edits a manager account. Zero-value fields are left
// untouched; IsActive false deactivates the account and locks it out of
// login.
type ManagerUpdateInput struct {
	FirstName string
	LastName  string
	IsActive  *bool
}

type PropertyUsecase interface {
	CreateProperty(ctx context.Context, in PropertyInput) (property.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, in PropertyInput) (property.Property, error)
	ListProperties(ctx context.Context) ([]property.Property, error)

	AssignManager(ctx context.Context, propertyID, userID uuid.UUID) error
	UnassignManager(ctx context.Context, propertyID, userID uuid.UUID) error

	CreateManager(ctx context.Context, in ManagerInput) (user.User, error)
	UpdateManager(ctx context.Context, id uuid.UUID, in ManagerUpdateInput) (user.User, error)
	ListManagers(ctx context.Context) ([]user.User, error)
}

type PropertyService struct {
	properties repository.PropertyRepository
	users      user.Repository

	now func() time.Time
}

func NewPropertyUsecase(properties repository.PropertyRepository, users user.Repository) *PropertyService {
	return &PropertyService{properties: properties, users: users, now: time.Now}
}

func (s *PropertyService) CreateProperty(ctx context.Context, in PropertyInput) (property.Property, error) {
	fields := validateProperty(in, true)
	if len(fields) > 0 {
		return property.Property{}, NewValidationError(fields)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := property.Property{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		ZipCode:   strings.TrimSpace(in.ZipCode),
		Phone:     strings.TrimSpace(in.Phone),
		IsActive:  active,
		CreatedAt: s.now().UTC(),
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return property.Property{}, ErrInternal
	}
	return p, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, in PropertyInput) (property.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return property.Property{}, ErrNotFound
		}
		return property.Property{}, ErrInternal
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		p.Address = v
	}
	if v := strings.TrimSpace(in.City); v != "" {
		p.City = v
	}
	if v := strings.TrimSpace(in.State); v != "" {
		p.State = v
	}
	if v := strings.TrimSpace(in.ZipCode); v != "" {
		p.ZipCode = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		p.Phone = v
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := s.properties.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return property.Property{}, ErrNotFound
		}
		return property.Property{}, ErrInternal
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]property.Property, error) {
	out, err := s.properties.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *PropertyService) AssignManager(ctx context.Context, propertyID, userID uuid.UUID) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if u.Role != user.RoleManager {
		return NewValidationError(map[string]string{"user_id": "not a manager account"})
	}

	if err := s.properties.AssignManager(ctx, propertyID, userID); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *PropertyService) UnassignManager(ctx context.Context, propertyID, userID uuid.UUID) error {
	if err := s.properties.UnassignManager(ctx, propertyID, userID); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *PropertyService) CreateManager(ctx context.Context, in ManagerInput) (user.User, error) {
	fields := map[string]string{}

	email := ucauth.NormalizeEmail(in.Email)
	if email == "" {
		fields["email"] = "required"
	} else if !emailRe.MatchString(email) {
		fields["email"] = "invalid email address"
	}
	if !ucauth.ValidPassword(in.Password) {
		fields["password"] = "must be at least 8 characters"
	}
	if strings.TrimSpace(in.FirstName) == "" {
		fields["first_name"] = "required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		fields["last_name"] = "required"
	}
	if len(fields) > 0 {
		return user.User{}, NewValidationError(fields)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrConflict
	}

	hash, err := ucauth.HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleManager,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, ErrInternal
	}

	if in.PropertyID != nil {
		if err := s.AssignManager(ctx, *in.PropertyID, u.ID); err != nil {
			return user.User{}, err
		}
		u.PropertyIDs = []uuid.UUID{*in.PropertyID}
	}

	return ucauth.Sanitize(u), nil
}

func (s *PropertyService) UpdateManager(ctx context.Context, id uuid.UUID, in ManagerUpdateInput) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	if u.Role != user.RoleManager {
		return user.User{}, ErrNotFound
	}

	if v := strings.TrimSpace(in.FirstName); v != "" {
		u.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		u.LastName = v
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return ucauth.Sanitize(u), nil
}

func (s *PropertyService) ListManagers(ctx context.Context) ([]user.User, error) {
	managers, err := s.users.ListByRole(ctx, user.RoleManager)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range managers {
		managers[i] = ucauth.Sanitize(managers[i])
	}
	return managers, nil
}

func validateProperty(in PropertyInput, creating bool) map[string]string {
	if !creating {
		return nil
	}
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(in.Address) == "" {
		fields["address"] = "required"
	}
	if strings.TrimSpace(in.City) == "" {
		fields["city"] = "required"
	}
	if strings.TrimSpace(in.State) == "" {
		fields["state"] = "required"
	}
	if strings.TrimSpace(in.ZipCode) == "" {
		fields["zip_code"] = "required"
	}
	return fields
}
