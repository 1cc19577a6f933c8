package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestSignAndParseSession(t *testing.T) {
	t.Parallel()

	j, err := New("super-secret", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tok, err := j.SignSession("someone@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession error: %v", err)
	}

	claims, err := j.ParseSession(tok)
	if err != nil {
		t.Fatalf("ParseSession error: %v", err)
	}
	if claims.Email != "someone@iut-dhaka.edu" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.Version != TokenVersion {
		t.Fatalf("version mismatch: got %d want %d", claims.Version, TokenVersion)
	}
	if claims.ID == "" {
		t.Fatal("expected a token ID")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected an expiry claim")
	}
}

func TestParseSession_Expired(t *testing.T) {
	t.Parallel()

	j, err := New("secret", time.Millisecond)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tok, err := j.SignSession("u@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := j.ParseSession(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseSession_WrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := New("right-secret", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	verifier, err := New("wrong-secret", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tok, err := signer.SignSession("u@iut-dhaka.edu")
	if err != nil {
		t.Fatalf("SignSession error: %v", err)
	}

	if _, err := verifier.ParseSession(tok); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestParseSession_Malformed(t *testing.T) {
	t.Parallel()

	j, err := New("k", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, tok := range []string{"", "not.a.jwt"} {
		if _, err := j.ParseSession(tok); err == nil {
			t.Fatalf("expected error for token %q, got nil", tok)
		}
	}
}

func TestParseSession_WrongVersion(t *testing.T) {
	t.Parallel()

	key := "versioned-secret"
	j, err := New(key, time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
		Email:   "u@iut-dhaka.edu",
		Version: TokenVersion + 1,
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = j.ParseSession(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSession_EmptyEmail(t *testing.T) {
	t.Parallel()

	key := "empty-email-secret"
	j, err := New(key, time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
		Version: TokenVersion,
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = j.ParseSession(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := New("", time.Hour); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := New("k", 0); err == nil {
		t.Fatal("expected error for zero validity")
	}
}

func TestSessionCookie(t *testing.T) {
	t.Parallel()

	dev := SessionCookie("tok", false)
	if !dev.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if dev.Secure {
		t.Fatal("dev cookie must not be Secure")
	}

	prod := SessionCookie("tok", true)
	if !prod.Secure {
		t.Fatal("prod cookie must be Secure")
	}

	expired := ExpiredSessionCookie(true)
	if expired.MaxAge >= 0 {
		t.Fatalf("expected negative MaxAge, got %d", expired.MaxAge)
	}
	if expired.Value != "" {
		t.Fatalf("expected empty value, got %q", expired.Value)
	}
}
