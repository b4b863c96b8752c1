package sensor

import (
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

const (
	StatusAtivo      = "ATIVO"
	StatusInativo    = "INATIVO"
	StatusManutencao = "MANUTENCAO"
)

// Sensor representa um equipamento instalado numa região.
type Sensor struct {
	ID             int64  `json:"id"`
	IDRegiao       int64  `json:"idRegiao"`
	Modelo         string `json:"modelo"`
	Status         string `json:"status"`
	DataInstalacao string `json:"dataInstalacao"`
}

// Input reúne os dados de criação/edição. IDRegiao zero significa ausente.
type Input struct {
	IDRegiao       int64  `json:"idRegiao"`
	Modelo         string `json:"modelo"`
	Status         string `json:"status"`
	DataInstalacao string `json:"dataInstalacao"`
}

// Page é a resposta paginada de /sensores/paginado e /sensores/filtro.
type Page struct {
	Content       []Sensor `json:"content"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	Number        int      `json:"number"`
	Size          int      `json:"size"`
}

// FieldLabels relaciona campos do formulário aos rótulos usados nas mensagens.
var FieldLabels = map[string]string{
	"idRegiao":       "Região",
	"modelo":         "Modelo",
	"status":         "Status",
	"dataInstalacao": "Data de instalação",
}

// Validate devolve as mensagens de erro de campo; lista vazia significa válido.
func Validate(in Input) []string {
	var errs []string
	if in.IDRegiao <= 0 {
		errs = append(errs, "Região é obrigatória")
	}
	if util.IsBlank(in.Modelo) {
		errs = append(errs, "Modelo é obrigatório")
	}
	if util.TooLong(in.Modelo, 50) {
		errs = append(errs, "Modelo deve ter no máximo 50 caracteres")
	}
	switch {
	case in.Status == "":
		errs = append(errs, "Status é obrigatório")
	case !util.OneOf(in.Status, StatusAtivo, StatusInativo, StatusManutencao):
		errs = append(errs, "Status deve ser ATIVO, INATIVO ou MANUTENCAO")
	}
	if util.IsBlank(in.DataInstalacao) {
		errs = append(errs, "Data de instalação é obrigatória")
	}
	return errs
}

// StatusOptions lista os status aceitos com rótulos de exibição.
func StatusOptions() []util.Option {
	return []util.Option{
		{Label: "Ativo", Value: StatusAtivo},
		{Label: "Inativo", Value: StatusInativo},
		{Label: "Manutenção", Value: StatusManutencao},
	}
}

// StatusLabel devolve o rótulo de exibição do status.
func StatusLabel(status string) string {
	for _, opt := range StatusOptions() {
		if opt.Value == status {
			return opt.Label
		}
	}
	return status
}

// FromSensor monta um Input a partir de um sensor existente (modo edição).
// A data é reduzida ao formato AAAA-MM-DD.
func FromSensor(s Sensor) Input {
	date := s.DataInstalacao
	if i := strings.IndexByte(date, 'T'); i > 0 {
		date = date[:i]
	}
	return Input{IDRegiao: s.IDRegiao, Modelo: s.Modelo, Status: s.Status, DataInstalacao: date}
}

func (in Input) normalized() Input {
	in.Modelo = strings.TrimSpace(in.Modelo)
	in.DataInstalacao = strings.TrimSpace(in.DataInstalacao)
	return in
}
