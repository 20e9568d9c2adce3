package repository

import (
	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/user"
)

// Scope restricts every read and write to the caller's visible properties.
// It is applied inside the repositories so no handler or usecase can forget
// it. HR gets the unrestricted scope; managers get their assignment set.
type Scope struct {
	All         bool
	PropertyIDs []uuid.UUID
}

func HRScope() Scope {
	return Scope{All: true}
}

func ManagerScope(propertyIDs []uuid.UUID) Scope {
	return Scope{PropertyIDs: propertyIDs}
}

func ScopeFor(role user.Role, propertyIDs []uuid.UUID) Scope {
	if role == user.RoleHR {
		return HRScope()
	}
	return ManagerScope(propertyIDs)
}

// Allows reports whether propertyID falls inside the scope. An empty manager
// scope allows nothing.
func (s Scope) Allows(propertyID uuid.UUID) bool {
	if s.All {
		return true
	}
	for _, id := range s.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

// idsOrNil returns the property filter for SQL: nil means unrestricted.
func (s Scope) idsOrNil() []uuid.UUID {
	if s.All {
		return nil
	}
	if len(s.PropertyIDs) == 0 {
		// Force an empty result set rather than an unfiltered query.
		return []uuid.UUID{uuid.Nil}
	}
	return s.PropertyIDs
}
