package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Antonio-Junior1/thermoguard/internal/storage"
)

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, expires, err := mgr.GenerateAccessToken(7, "agente@thermoguard.com", "AGENTE", "thermoguard")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 7 {
		t.Fatalf("user id = %d (%v)", id, err)
	}
	if claims.Tipo != "AGENTE" || claims.Email != "agente@thermoguard.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	exp, ok := ExpiryOf(token)
	if !ok {
		t.Fatal("ExpiryOf should read exp")
	}
	if exp.Unix() != expires.Unix() {
		t.Fatalf("exp = %v, want %v", exp, expires)
	}
}

func TestParseRejectsOtherSecret(t *testing.T) {
	a := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	b := NewJWTManager("fedcba9876543210fedcba9876543210", time.Hour)
	token, _, err := a.GenerateAccessToken(1, "x@y.z", "ADMIN", "thermoguard")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.ParseAndValidate(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestExpiryOfOpaqueToken(t *testing.T) {
	if _, ok := ExpiryOf("token-opaco"); ok {
		t.Fatal("opaque token has no expiry")
	}
}

func TestRefreshTokensSingleUse(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	tokens := NewRefreshTokens(store, "thermoguard", time.Hour)

	raw, err := tokens.Issue(ctx, 42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := store.Get(ctx, raw); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("token cru não deveria ser gravado")
	}

	id, err := tokens.Consume(ctx, raw)
	if err != nil || id != 42 {
		t.Fatalf("consume = %d (%v)", id, err)
	}
	if _, err := tokens.Consume(ctx, raw); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("segundo uso: %v", err)
	}
	if _, err := tokens.Consume(ctx, "  "); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("token vazio: %v", err)
	}
}

func TestRefreshTokensExpire(t *testing.T) {
	ctx := context.Background()
	tokens := NewRefreshTokens(storage.NewMemoryStore(), "thermoguard", time.Millisecond)
	raw, err := tokens.Issue(ctx, 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := tokens.Consume(ctx, raw); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := Hash("segredo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !Verify("segredo", hash) {
		t.Fatal("senha correta recusada")
	}
	if Verify("errada", hash) {
		t.Fatal("wrong password accepted")
	}
	if Verify("segredo", "não-é-hash") {
		t.Fatal("malformed hash accepted")
	}
	if _, err := Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty password: %v", err)
	}
}
