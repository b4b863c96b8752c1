package regiao

import (
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// Regiao representa uma área monitorada.
type Regiao struct {
	ID              int64   `json:"id"`
	Nome            string  `json:"nome"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Vulnerabilidade float64 `json:"vulnerabilidade"`
}

// Input reúne os dados de criação/edição. Ponteiros nil indicam campo ausente.
type Input struct {
	Nome            string
	Latitude        *float64
	Longitude       *float64
	Vulnerabilidade *float64
}

type payload struct {
	Nome            string   `json:"nome"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Vulnerabilidade float64  `json:"vulnerabilidade"`
}

func (in Input) payload() payload {
	p := payload{
		Nome:      strings.TrimSpace(in.Nome),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if in.Vulnerabilidade != nil {
		p.Vulnerabilidade = *in.Vulnerabilidade
	}
	return p
}

// FieldLabels relaciona campos do formulário aos rótulos usados nas mensagens.
var FieldLabels = map[string]string{
	"nome":            "Nome",
	"latitude":        "Latitude",
	"longitude":       "Longitude",
	"vulnerabilidade": "Vulnerabilidade",
}

// Validate devolve as mensagens de erro de campo; lista vazia significa válido.
func Validate(in Input) []string {
	var errs []string
	if util.IsBlank(in.Nome) {
		errs = append(errs, "Nome é obrigatório")
	}
	if in.Latitude == nil || !util.IsFinite(*in.Latitude) {
		errs = append(errs, "Latitude deve ser um número válido")
	}
	if in.Longitude == nil || !util.IsFinite(*in.Longitude) {
		errs = append(errs, "Longitude deve ser um número válido")
	}
	if v := in.Vulnerabilidade; v != nil {
		if !util.IsFinite(*v) || *v < 0 || *v > 1 {
			errs = append(errs, "Vulnerabilidade deve ser um número entre 0 e 1")
		}
	}
	return errs
}

// FromRegiao monta um Input a partir de uma região existente (modo edição).
func FromRegiao(r Regiao) Input {
	lat, lon, vul := r.Latitude, r.Longitude, r.Vulnerabilidade
	return Input{Nome: r.Nome, Latitude: &lat, Longitude: &lon, Vulnerabilidade: &vul}
}
