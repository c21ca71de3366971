package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-chars-minimum"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour)

	token, err := mgr.Generate("hr-admin", true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Sub != "hr-admin" {
		t.Errorf("claims.Sub = %q, want %q", claims.Sub, "hr-admin")
	}
	if !claims.Admin {
		t.Error("claims.Admin = false, want true")
	}
}

func TestTokenManager_NonAdminClaims(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour)

	token, err := mgr.Generate("new-hire", false)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Admin {
		t.Error("claims.Admin = true, want false")
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("a-different-secret-key-entirely!", time.Hour)

	token, err := mgr.Generate("hr-admin", true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() with wrong secret succeeded, want error")
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	mgr := NewTokenManager(testSecret, -time.Minute)

	token, err := mgr.Generate("hr-admin", true)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := mgr.Validate(token); err == nil {
		t.Error("Validate() accepted expired token, want error")
	}
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour)

	if _, err := mgr.Validate("not.a.token"); err == nil {
		t.Error("Validate() accepted malformed token, want error")
	}
}
