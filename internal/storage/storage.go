package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indica chave ausente no armazenamento.
var ErrNotFound = errors.New("storage: chave não encontrada")

// Store define o armazenamento chave/valor usado pela sessão e pela API de testes.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// MultiSet grava todos os pares numa única operação.
	MultiSet(ctx context.Context, values map[string]string) error
	// Remove apaga todas as chaves numa única operação; chaves ausentes são ignoradas.
	Remove(ctx context.Context, keys ...string) error
	Close() error
}
