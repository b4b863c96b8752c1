package screen

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/session"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// LoginForm controla a tela de login.
type LoginForm struct {
	Email string
	Senha string

	auth   Authenticator
	nav    Navigator
	logger zerolog.Logger
}

func NewLoginForm(auth Authenticator, nav Navigator, logger zerolog.Logger) *LoginForm {
	return &LoginForm{auth: auth, nav: nav, logger: logger.With().Str("screen", "login").Logger()}
}

// Submit valida os campos e autentica. Em caso de sucesso o roteador vai ao menu.
func (f *LoginForm) Submit(ctx context.Context) (*session.Result, error) {
	email := strings.TrimSpace(f.Email)
	if err := util.Check(session.ValidateLoginData(email, f.Senha)); err != nil {
		return nil, err
	}
	res, err := f.auth.Login(ctx, email, f.Senha)
	if err != nil {
		f.logger.Warn().Err(err).Str("email", email).Msg("login falhou")
		return nil, err
	}
	f.Senha = ""
	f.nav.SetAuthenticated(true)
	return res, nil
}
