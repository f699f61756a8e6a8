package utils

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret"), Issuer: "pacho", TokenTTL: 30 * time.Minute}

	grade := 85.5
	claims := AccessClaims{
		UserID:    "3f1a0a1e-0000-0000-0000-000000000001",
		Email:     "experto@example.com",
		FullName:  "Juan Perez",
		Role:      "experto",
		Status:    1,
		SessionID: "3f1a0a1e-0000-0000-0000-000000000002",
		TestState: "aprobado",
		TestGrade: &grade,
	}

	token, ttl, err := manager.IssueToken(claims)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", ttl)
	}

	parsed, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.SessionID != claims.SessionID {
		t.Fatalf("identity mismatch: %+v", parsed)
	}
	if parsed.Role != "experto" || parsed.TestState != "aprobado" {
		t.Fatalf("role snapshot mismatch: %+v", parsed)
	}
	if parsed.TestGrade == nil || *parsed.TestGrade != 85.5 {
		t.Fatalf("grade snapshot mismatch: %v", parsed.TestGrade)
	}
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	issuer := JWTManager{Secret: []byte("right"), TokenTTL: time.Minute}
	token, _, err := issuer.IssueToken(AccessClaims{UserID: "u"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := JWTManager{Secret: []byte("wrong")}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret")}
	if _, err := manager.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens")
	}
	if len(first) != 43 {
		t.Fatalf("expected 43 chars of base64url for 32 bytes, got %d", len(first))
	}
}

func TestHashTokenIsStableAndOneWay(t *testing.T) {
	digest := HashToken("some-token")
	if digest != HashToken("some-token") {
		t.Fatal("expected a deterministic digest")
	}
	if digest == "some-token" {
		t.Fatal("digest must differ from the input")
	}
	if HashToken("other-token") == digest {
		t.Fatal("different inputs must not collide")
	}
}
