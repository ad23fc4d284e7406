package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dpatil-neu/skycatalog/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	username, err := GetUsernameFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUsernameFromToken error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("username mismatch: got %q want %q", username, "alice")
	}
}

func TestGetUsernameFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("bob", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUsernameFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGetUsernameFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("carol", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUsernameFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetUsernameFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := GetUsernameFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
