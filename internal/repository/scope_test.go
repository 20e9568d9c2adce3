package repository

import (
	"testing"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/user"
)

func TestScopeFor(t *testing.T) {
	if s := ScopeFor(user.RoleHR, nil); !s.All {
		t.Fatalf("HR scope must be unrestricted")
	}

	ids := []uuid.UUID{uuid.New()}
	s := ScopeFor(user.RoleManager, ids)
	if s.All {
		t.Fatalf("manager scope must be restricted")
	}
	if !s.Allows(ids[0]) {
		t.Fatalf("manager scope must allow assigned property")
	}
	if s.Allows(uuid.New()) {
		t.Fatalf("manager scope must deny other properties")
	}
}

func TestScopeIdsOrNil(t *testing.T) {
	if got := HRScope().idsOrNil(); got != nil {
		t.Fatalf("HR filter should be nil, got %v", got)
	}

	// A manager without assignments must match nothing, not everything.
	got := ManagerScope(nil).idsOrNil()
	if len(got) != 1 || got[0] != uuid.Nil {
		t.Fatalf("empty manager scope should produce the impossible filter, got %v", got)
	}

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	if got := ManagerScope(ids).idsOrNil(); len(got) != 2 {
		t.Fatalf("manager filter should carry assignments, got %v", got)
	}
}
