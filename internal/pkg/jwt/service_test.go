package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/user"
)

func testService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	props := []uuid.UUID{uuid.New(), uuid.New()}
	u := user.User{
		ID:          uuid.New(),
		Email:       "manager@example.com",
		Role:        user.RoleManager,
		PropertyIDs: props,
	}

	tok, err := svc.GenerateAccessToken(u)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("user id mismatch")
	}
	if claims.Role != user.RoleManager {
		t.Fatalf("role = %s, want manager", claims.Role)
	}
	if len(claims.PropertyIDs) != 2 {
		t.Fatalf("property scope lost in round trip: %v", claims.PropertyIDs)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type = %s, want access", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token misread as refresh")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := testService()
	id := uuid.New()

	tok, err := svc.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("user id mismatch")
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("refresh token not recognized")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.GenerateAccessToken(user.User{ID: uuid.New(), Role: user.RoleHR})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testService()
	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := NewHMACService("different", "different", time.Hour, time.Hour)
	tok, err := other.GenerateAccessToken(user.User{ID: uuid.New(), Role: user.RoleHR})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := testService().ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
