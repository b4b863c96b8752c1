package leitura

import (
	"fmt"
	"time"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// APIDateTimeLayout é o formato de data/hora aceito pela API, sem fuso.
const APIDateTimeLayout = "2006-01-02T15:04:05"

// Leitura é uma medição de temperatura e umidade de um sensor.
type Leitura struct {
	ID          int64   `json:"id"`
	IDSensor    int64   `json:"idSensor"`
	Temperatura float64 `json:"temperatura"`
	Umidade     float64 `json:"umidade"`
	DataHora    string  `json:"dataHora"`
}

// Input reúne os dados de criação. Temperatura zero é válida, por isso ponteiro.
type Input struct {
	IDSensor    int64    `json:"idSensor"`
	Temperatura *float64 `json:"temperatura"`
	Umidade     *float64 `json:"umidade"`
	DataHora    string   `json:"dataHora"`
}

// MediaRegiao é um item de /leituras/temperatura-media-por-regiao.
type MediaRegiao struct {
	IDRegiao         int64   `json:"idRegiao"`
	NomeRegiao       string  `json:"nomeRegiao"`
	TemperaturaMedia float64 `json:"temperaturaMedia"`
}

// Validate devolve as mensagens de erro de campo; lista vazia significa válido.
func Validate(in Input) []string {
	var errs []string
	if in.IDSensor <= 0 {
		errs = append(errs, "Sensor é obrigatório")
	}
	switch {
	case in.Temperatura == nil:
		errs = append(errs, "Temperatura é obrigatória")
	case !util.IsFinite(*in.Temperatura):
		errs = append(errs, "Temperatura deve ser um número válido")
	}
	switch {
	case in.Umidade == nil:
		errs = append(errs, "Umidade é obrigatória")
	case !util.IsFinite(*in.Umidade):
		errs = append(errs, "Umidade deve ser um número válido")
	case *in.Umidade < 0 || *in.Umidade > 100:
		errs = append(errs, "Umidade deve estar entre 0 e 100%")
	}
	if util.IsBlank(in.DataHora) {
		errs = append(errs, "Data e hora são obrigatórias")
	}
	return errs
}

// FormatTemperatura exibe a temperatura em °C ou °F com uma casa decimal.
func FormatTemperatura(t *float64, unidade string) string {
	if t == nil {
		return "--"
	}
	if unidade == "fahrenheit" {
		return fmt.Sprintf("%.1f°F", *t*9/5+32)
	}
	return fmt.Sprintf("%.1f°C", *t)
}

// FormatUmidade exibe a umidade relativa com uma casa decimal.
func FormatUmidade(u *float64) string {
	if u == nil {
		return "--"
	}
	return fmt.Sprintf("%.1f%%", *u)
}

// FormatDataHoraParaAPI converte para UTC e remove o fuso.
func FormatDataHoraParaAPI(t time.Time) string {
	return t.UTC().Format(APIDateTimeLayout)
}

// ParseDataHora lê datas da API com ou sem fuso.
func ParseDataHora(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(APIDateTimeLayout, value)
}
