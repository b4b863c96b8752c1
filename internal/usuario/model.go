package usuario

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

const (
	TipoCidadao = "CIDADAO"
	TipoAgente  = "AGENTE"
	TipoAdmin   = "ADMIN"
)

// Ações verificadas por TemPermissao.
const (
	AcaoVisualizar = "visualizar"
	AcaoCriar      = "criar"
	AcaoEditar     = "editar"
	AcaoDeletar    = "deletar"
	AcaoGerenciar  = "gerenciar"
)

var permissoes = map[string][]string{
	TipoCidadao: {AcaoVisualizar},
	TipoAgente:  {AcaoVisualizar, AcaoCriar, AcaoEditar},
	TipoAdmin:   {AcaoVisualizar, AcaoCriar, AcaoEditar, AcaoDeletar, AcaoGerenciar},
}

// Usuario é uma conta da plataforma. IDRegiao zero indica sem região.
type Usuario struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Tipo     string `json:"tipo"`
	IDRegiao int64  `json:"idRegiao,omitempty"`
}

// Input reúne os dados de criação/edição.
type Input struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Tipo     string `json:"tipo"`
	IDRegiao int64  `json:"idRegiao,omitempty"`
}

// Validate devolve as mensagens de erro de campo; lista vazia significa válido.
func Validate(in Input) []string {
	var errs []string
	if util.IsBlank(in.Nome) {
		errs = append(errs, "Nome é obrigatório")
	}
	if util.TooLong(in.Nome, 100) {
		errs = append(errs, "Nome deve ter no máximo 100 caracteres")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, "Email é obrigatório")
	} else if !util.IsValidEmail(email) {
		errs = append(errs, "Email deve ter um formato válido")
	}
	if util.TooLong(email, 100) {
		errs = append(errs, "Email deve ter no máximo 100 caracteres")
	}
	switch {
	case in.Tipo == "":
		errs = append(errs, "Tipo é obrigatório")
	case !IsValidTipo(in.Tipo):
		errs = append(errs, "Tipo deve ser CIDADAO, AGENTE ou ADMIN")
	}
	return errs
}

// IsValidTipo verifica se o tipo é um dos perfis conhecidos.
func IsValidTipo(tipo string) bool {
	return util.OneOf(tipo, TipoCidadao, TipoAgente, TipoAdmin)
}

// TemPermissao informa se o perfil pode executar a ação.
func TemPermissao(tipo, acao string) bool {
	for _, a := range permissoes[tipo] {
		if a == acao {
			return true
		}
	}
	return false
}

func TipoOptions() []util.Option {
	return []util.Option{
		{Label: "Cidadão", Value: TipoCidadao},
		{Label: "Agente", Value: TipoAgente},
		{Label: "Administrador", Value: TipoAdmin},
	}
}

func CorTipo(tipo string) string {
	switch tipo {
	case TipoCidadao:
		return "#2196F3"
	case TipoAgente:
		return "#4CAF50"
	case TipoAdmin:
		return "#FF5722"
	default:
		return "#9E9E9E"
	}
}

func IconeTipo(tipo string) string {
	switch tipo {
	case TipoAgente:
		return "shield-checkmark"
	case TipoAdmin:
		return "settings"
	default:
		return "person"
	}
}

// FormatarNome capitaliza cada palavra do nome.
func FormatarNome(nome string) string {
	if nome == "" {
		return "--"
	}
	words := strings.Split(nome, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// Iniciais devolve as iniciais para avatar: uma letra para nome simples,
// primeira e última palavra para nomes compostos.
func Iniciais(nome string) string {
	words := strings.Fields(nome)
	switch len(words) {
	case 0:
		return "??"
	case 1:
		return strings.ToUpper(firstRune(words[0]))
	default:
		return strings.ToUpper(firstRune(words[0]) + firstRune(words[len(words)-1]))
	}
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func firstRune(w string) string {
	r, _ := utf8.DecodeRuneInString(w)
	return string(r)
}
