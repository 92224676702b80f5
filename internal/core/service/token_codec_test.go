package service

import (
	"strings"
	"testing"

	"github.com/taskvault/todo-api/internal/core/domain"
)

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec("secret")

	token, err := codec.Issue("user_1", domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	userID, purpose, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("expected user_1, got %s", userID)
	}
	if purpose != domain.TokenPurposeAuth {
		t.Fatalf("expected purpose %q, got %q", domain.TokenPurposeAuth, purpose)
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	token, err := NewJWTCodec("secret").Issue("user_1", domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, _, err := NewJWTCodec("other").Verify(token); err != domain.ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestJWTCodec_TamperedPayload(t *testing.T) {
	codec := NewJWTCodec("secret")
	token, err := codec.Issue("user_1", domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Swap the payload segment for the payload of a token minted with a
	// different identity; the signature no longer covers it.
	other, err := codec.Issue("user_2", domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	if _, _, err := codec.Verify(tampered); err != domain.ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestJWTCodec_Garbage(t *testing.T) {
	codec := NewJWTCodec("secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := codec.Verify(token); err != domain.ErrInvalidSignature {
			t.Fatalf("Verify(%q): expected ErrInvalidSignature, got %v", token, err)
		}
	}
}

func TestJWTCodec_PurposePreserved(t *testing.T) {
	codec := NewJWTCodec("secret")

	token, err := codec.Issue("user_1", "reset")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, purpose, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if purpose != "reset" {
		t.Fatalf("expected purpose reset, got %q", purpose)
	}
}
