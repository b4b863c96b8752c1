package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Antonio-Junior1/thermoguard/internal/storage"
)

// ErrInvalidRefresh indica refresh token desconhecido, expirado ou já usado.
var ErrInvalidRefresh = errors.New("refresh token inválido")

// RefreshTokens emite refresh tokens opacos de uso único. Só o hash do
// token é gravado, com o id do dono como valor.
type RefreshTokens struct {
	store    storage.Store
	audience string
	ttl      time.Duration
}

func NewRefreshTokens(store storage.Store, audience string, ttl time.Duration) *RefreshTokens {
	return &RefreshTokens{store: store, audience: audience, ttl: ttl}
}

// Issue gera um token para o usuário.
func (t *RefreshTokens) Issue(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	if err := t.store.Set(ctx, t.key(raw), strconv.FormatInt(userID, 10), t.ttl); err != nil {
		return "", fmt.Errorf("gravar refresh token: %w", err)
	}
	return raw, nil
}

// Consume invalida o token e devolve o id do dono.
func (t *RefreshTokens) Consume(ctx context.Context, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidRefresh
	}
	key := t.key(raw)
	owner, err := t.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrInvalidRefresh
	}
	if err != nil {
		return 0, fmt.Errorf("ler refresh token: %w", err)
	}
	if err := t.store.Remove(ctx, key); err != nil {
		return 0, fmt.Errorf("revogar refresh token: %w", err)
	}
	id, err := strconv.ParseInt(owner, 10, 64)
	if err != nil {
		return 0, ErrInvalidRefresh
	}
	return id, nil
}

func (t *RefreshTokens) key(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("refresh:%s:%s", t.audience, base64.RawURLEncoding.EncodeToString(sum[:]))
}
