package session

import (
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// RegisterInput são os dados do formulário de cadastro.
type RegisterInput struct {
	Nome           string
	Email          string
	Senha          string
	ConfirmarSenha string
	Tipo           string
	IDRegiao       int64
}

// ValidateLoginData verifica e-mail e senha antes do envio.
func ValidateLoginData(email, senha string) []string {
	var errs []string
	email = strings.TrimSpace(email)
	if email == "" {
		errs = append(errs, "Email é obrigatório")
	} else if !util.IsValidEmail(email) {
		errs = append(errs, "Email deve ter um formato válido")
	}
	if util.IsBlank(senha) {
		errs = append(errs, "Senha é obrigatória")
	}
	return errs
}

// ValidateRegisterData verifica o formulário de cadastro.
func ValidateRegisterData(in RegisterInput) []string {
	var errs []string
	if util.IsBlank(in.Nome) {
		errs = append(errs, "Nome é obrigatório")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, "Email é obrigatório")
	} else if !util.IsValidEmail(email) {
		errs = append(errs, "Email deve ter um formato válido")
	}
	switch {
	case util.IsBlank(in.Senha):
		errs = append(errs, "Senha é obrigatória")
	case len([]rune(in.Senha)) < 6:
		errs = append(errs, "Senha deve ter pelo menos 6 caracteres")
	}
	if in.Senha != in.ConfirmarSenha {
		errs = append(errs, "Senhas não coincidem")
	}
	if in.Tipo == "" {
		errs = append(errs, "Tipo de usuário é obrigatório")
	}
	return errs
}
