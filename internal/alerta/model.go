package alerta

import (
	"fmt"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

const (
	TipoCalor = "CALOR"
	TipoFrio  = "FRIO"

	SeveridadeBaixa = "BAIXA"
	SeveridadeMedia = "MEDIA"
	SeveridadeAlta  = "ALTA"
)

// Alerta é um aviso de temperatura extrema numa região.
type Alerta struct {
	ID         int64  `json:"id"`
	IDRegiao   int64  `json:"idRegiao"`
	Tipo       string `json:"tipo"`
	Severidade string `json:"severidade"`
	DataHora   string `json:"dataHora"`
	Mensagem   string `json:"mensagem"`
}

// Input reúne os dados de criação.
type Input struct {
	IDRegiao   int64  `json:"idRegiao"`
	Tipo       string `json:"tipo"`
	Severidade string `json:"severidade"`
	DataHora   string `json:"dataHora"`
	Mensagem   string `json:"mensagem"`
}

// Validate devolve as mensagens de erro de campo; lista vazia significa válido.
func Validate(in Input) []string {
	var errs []string
	if in.IDRegiao <= 0 {
		errs = append(errs, "Região é obrigatória")
	}
	switch {
	case in.Tipo == "":
		errs = append(errs, "Tipo é obrigatório")
	case !util.OneOf(in.Tipo, TipoCalor, TipoFrio):
		errs = append(errs, "Tipo deve ser CALOR ou FRIO")
	}
	switch {
	case in.Severidade == "":
		errs = append(errs, "Severidade é obrigatória")
	case !util.OneOf(in.Severidade, SeveridadeBaixa, SeveridadeMedia, SeveridadeAlta):
		errs = append(errs, "Severidade deve ser BAIXA, MEDIA ou ALTA")
	}
	if util.IsBlank(in.DataHora) {
		errs = append(errs, "Data e hora são obrigatórias")
	}
	if util.IsBlank(in.Mensagem) {
		errs = append(errs, "Mensagem é obrigatória")
	}
	if util.TooLong(in.Mensagem, 200) {
		errs = append(errs, "Mensagem deve ter no máximo 200 caracteres")
	}
	return errs
}

func TipoOptions() []util.Option {
	return []util.Option{{Label: "Calor", Value: TipoCalor}, {Label: "Frio", Value: TipoFrio}}
}

func SeveridadeOptions() []util.Option {
	return []util.Option{
		{Label: "Baixa", Value: SeveridadeBaixa},
		{Label: "Média", Value: SeveridadeMedia},
		{Label: "Alta", Value: SeveridadeAlta},
	}
}

// CorSeveridade devolve a cor hexadecimal usada para a severidade.
func CorSeveridade(severidade string) string {
	switch severidade {
	case SeveridadeBaixa:
		return "#4CAF50"
	case SeveridadeMedia:
		return "#FF9800"
	case SeveridadeAlta:
		return "#F44336"
	default:
		return "#9E9E9E"
	}
}

// IconeTipo devolve o nome do ícone associado ao tipo.
func IconeTipo(tipo string) string {
	switch tipo {
	case TipoCalor:
		return "thermometer-plus"
	case TipoFrio:
		return "thermometer-minus"
	default:
		return "thermometer"
	}
}

// GerarMensagemAutomatica compõe a mensagem padrão do alerta.
// temperatura nil omite o valor medido.
func GerarMensagemAutomatica(tipo, severidade string, temperatura *float64) string {
	tipoTexto := "baixa"
	if tipo == TipoCalor {
		tipoTexto = "alta"
	}

	words := []string{"Temperatura"}
	switch severidade {
	case SeveridadeAlta:
		words = append(words, "extremamente")
	case SeveridadeMedia:
		words = append(words, "moderadamente")
	}
	words = append(words, tipoTexto, "detectada")

	var b strings.Builder
	b.WriteString(strings.Join(words, " "))
	if temperatura != nil {
		fmt.Fprintf(&b, " (%g°C)", *temperatura)
	}
	switch severidade {
	case SeveridadeAlta:
		b.WriteString(". Ação imediata necessária.")
	case SeveridadeMedia:
		b.WriteString(". Monitoramento recomendado.")
	default:
		b.WriteString(". Situação sob controle.")
	}
	return b.String()
}
