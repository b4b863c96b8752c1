package util

import "github.com/google/uuid"

// NewRequestID gera o identificador enviado em X-Request-ID.
func NewRequestID() string {
	return uuid.NewString()
}
