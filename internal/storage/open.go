package storage

import "fmt"

// Open escolhe o backend pelo nome configurado (file, redis ou memory).
func Open(kind, filePath, redisURL string) (Store, error) {
	switch kind {
	case "", "file":
		return NewFileStore(filePath)
	case "redis":
		return NewRedisStore(redisURL)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: backend desconhecido %q", kind)
	}
}
