package session

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidLoginResponse indica resposta de login sem token.
	ErrInvalidLoginResponse = errors.New("Resposta de login inválida")
	// ErrInvalidRegisterResponse indica resposta de registro sem token.
	ErrInvalidRegisterResponse = errors.New("Resposta de registro inválida")
	// ErrNoRefreshToken indica que não há refresh token persistido.
	ErrNoRefreshToken = errors.New("Token de atualização não encontrado")
	// ErrRefreshFailed indica resposta de refresh sem token.
	ErrRefreshFailed = errors.New("Falha ao atualizar token")
)

// LockedOutError é devolvido enquanto o bloqueio por tentativas estiver ativo.
type LockedOutError struct {
	Remaining time.Duration
}

// Minutes arredonda o tempo restante para cima.
func (e *LockedOutError) Minutes() int {
	return int(math.Ceil(e.Remaining.Minutes()))
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("Muitas tentativas de login. Tente novamente em %d minutos.", e.Minutes())
}

// RefreshError indica que a sessão não pôde ser renovada; a sessão já foi encerrada.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "não foi possível renovar a sessão: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}
