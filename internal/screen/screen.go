// Package screen contém os controladores das telas, independentes da interface.
package screen

import (
	"context"
	"errors"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/session"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// Mensagens exibidas ao usuário.
const (
	MsgValidationTitle = "Erro de Validação"
	MsgFixForm         = "Por favor, corrija os erros no formulário"
	MsgLoadRegioes     = "Não foi possível carregar as regiões"
	MsgLoadDados       = "Não foi possível carregar os dados"
	MsgDeleteRegiao    = "Não foi possível excluir a região"
	MsgDeleteSensor    = "Não foi possível excluir o sensor"
	MsgSaveRegiao      = "Não foi possível salvar a região"
	MsgSaveSensor      = "Não foi possível salvar o sensor"
	MsgLoginFailed     = "Erro ao fazer login. Tente novamente."
)

// RegiaoService é o subconjunto de regiao.Service usado pelas telas.
type RegiaoService interface {
	ListAll(ctx context.Context) ([]regiao.Regiao, error)
	Create(ctx context.Context, in regiao.Input) (*regiao.Regiao, error)
	Update(ctx context.Context, id int64, in regiao.Input) (*regiao.Regiao, error)
	Delete(ctx context.Context, id int64) error
}

// SensorService é o subconjunto de sensor.Service usado pelas telas.
type SensorService interface {
	ListAll(ctx context.Context) ([]sensor.Sensor, error)
	Create(ctx context.Context, in sensor.Input) (*sensor.Sensor, error)
	Update(ctx context.Context, id int64, in sensor.Input) (*sensor.Sensor, error)
	Delete(ctx context.Context, id int64) error
}

// Authenticator é o subconjunto de session.Manager usado no login.
type Authenticator interface {
	Login(ctx context.Context, email, senha string) (*session.Result, error)
}

// Navigator recebe o resultado das telas.
type Navigator interface {
	GoBack()
	SetAuthenticated(ok bool)
}

// AlertMessage traduz um erro para o texto do alerta exibido.
// Erros de API, timeout e bloqueio já têm mensagem própria; o resto usa fallback.
func AlertMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var (
		verr   *util.ValidationError
		reqErr *api.RequestError
		locked *session.LockedOutError
	)
	switch {
	case errors.As(err, &verr):
		return MsgFixForm
	case errors.As(err, &locked):
		return locked.Error()
	case errors.Is(err, api.ErrTimeout):
		return api.ErrTimeout.Error()
	case errors.As(err, &reqErr):
		return reqErr.Message
	default:
		return fallback
	}
}
