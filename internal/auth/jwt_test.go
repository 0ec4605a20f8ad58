package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret = "test-secret"
	testAud    = "parkspot"
	testIss    = "idp"
)

func TestValidateTokenRoundtrip(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, testAud, testIss)

	raw, err := a.GenerateToken(42, false, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := a.ValidateToken(raw)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	caller, err := CallerFromToken(token)
	if err != nil {
		t.Fatalf("CallerFromToken: %v", err)
	}
	if caller.ID != 42 || caller.IsAdmin {
		t.Errorf("caller = %+v, want ID 42, not admin", caller)
	}
}

func TestAdminClaim(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, testAud, testIss)

	raw, err := a.GenerateToken(7, true, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, err := a.ValidateToken(raw)
	if err != nil {
		t.Fatal(err)
	}
	caller, err := CallerFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if !caller.IsAdmin {
		t.Error("is_admin claim should grant the admin capability")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("other-secret", testAud, testIss)
	raw, err := issuer.GenerateToken(42, false, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	a := NewJWTAuthenticator(testSecret, testAud, testIss)
	if _, err := a.ValidateToken(raw); err == nil {
		t.Error("token signed with the wrong secret must not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, testAud, testIss)
	raw, err := a.GenerateToken(42, false, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ValidateToken(raw); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestValidateTokenRejectsWrongAlg(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iss": testIss,
		"aud": testAud,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	a := NewJWTAuthenticator(testSecret, testAud, testIss)
	if _, err := a.ValidateToken(raw); err == nil {
		t.Error("only HS256 is accepted")
	}
}

func TestCallerFromTokenRejectsBadSubject(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, testAud, testIss)

	claims := jwt.MapClaims{
		"sub": "not-a-number",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iss": testIss,
		"aud": testAud,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	token, err := a.ValidateToken(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CallerFromToken(token); err == nil {
		t.Error("non-numeric subject must be rejected")
	}
}
