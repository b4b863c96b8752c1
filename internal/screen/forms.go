package screen

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// RegiaoForm controla criação e edição de região. Os campos são texto livre.
type RegiaoForm struct {
	Nome            string
	Latitude        string
	Longitude       string
	Vulnerabilidade string

	// Errors mapeia campo para mensagem após um Submit inválido.
	Errors map[string]string

	editing *regiao.Regiao
	svc     RegiaoService
	nav     Navigator
	logger  zerolog.Logger
}

// NewRegiaoForm abre o formulário; editing nil significa criação.
func NewRegiaoForm(svc RegiaoService, nav Navigator, editing *regiao.Regiao, logger zerolog.Logger) *RegiaoForm {
	f := &RegiaoForm{svc: svc, nav: nav, editing: editing, logger: logger.With().Str("screen", "RegiaoForm").Logger()}
	if editing != nil {
		f.Nome = editing.Nome
		f.Latitude = formatFloat(editing.Latitude)
		f.Longitude = formatFloat(editing.Longitude)
		f.Vulnerabilidade = formatFloat(editing.Vulnerabilidade)
	}
	return f
}

func (f *RegiaoForm) IsEditing() bool { return f.editing != nil }

// Title devolve o título da tela conforme o modo.
func (f *RegiaoForm) Title() string {
	if f.IsEditing() {
		return "Editar Região"
	}
	return "Nova Região"
}

// Input converte os campos de texto. Campo vazio fica ausente; texto não
// numérico vira NaN e falha na validação.
func (f *RegiaoForm) Input() regiao.Input {
	return regiao.Input{
		Nome:            f.Nome,
		Latitude:        parseFloat(f.Latitude),
		Longitude:       parseFloat(f.Longitude),
		Vulnerabilidade: parseFloat(f.Vulnerabilidade),
	}
}

// ClearError remove o erro do campo quando o usuário volta a digitar.
func (f *RegiaoForm) ClearError(field string) {
	delete(f.Errors, field)
}

// Submit valida, grava e volta ao menu. Devolve a mensagem de sucesso.
func (f *RegiaoForm) Submit(ctx context.Context) (string, error) {
	in := f.Input()
	errs := regiao.Validate(in)
	f.Errors = util.FieldErrors(errs, regiao.FieldLabels)
	if err := util.Check(errs); err != nil {
		return "", err
	}

	var (
		err error
		msg string
	)
	if f.editing != nil {
		_, err = f.svc.Update(ctx, f.editing.ID, in)
		msg = "Região atualizada com sucesso"
	} else {
		_, err = f.svc.Create(ctx, in)
		msg = "Região criada com sucesso"
	}
	if err != nil {
		f.logger.Error().Err(err).Msg("erro ao salvar região")
		return "", err
	}
	f.nav.GoBack()
	return msg, nil
}

// SensorForm controla criação e edição de sensor.
type SensorForm struct {
	Modelo         string
	Status         string
	DataInstalacao string
	IDRegiao       string

	Errors map[string]string

	editing *sensor.Sensor
	svc     SensorService
	regioes RegiaoService
	regions []regiao.Regiao
	nav     Navigator
	logger  zerolog.Logger
}

func NewSensorForm(svc SensorService, regioes RegiaoService, nav Navigator, editing *sensor.Sensor, logger zerolog.Logger) *SensorForm {
	f := &SensorForm{
		svc:     svc,
		regioes: regioes,
		nav:     nav,
		editing: editing,
		logger:  logger.With().Str("screen", "SensorForm").Logger(),
	}
	if editing != nil {
		in := sensor.FromSensor(*editing)
		f.Modelo = in.Modelo
		f.Status = in.Status
		f.DataInstalacao = in.DataInstalacao
		f.IDRegiao = strconv.FormatInt(in.IDRegiao, 10)
	}
	return f
}

func (f *SensorForm) IsEditing() bool { return f.editing != nil }

func (f *SensorForm) Title() string {
	if f.IsEditing() {
		return "Editar Sensor"
	}
	return "Novo Sensor"
}

// LoadRegions carrega as opções do seletor de região.
func (f *SensorForm) LoadRegions(ctx context.Context) error {
	list, err := f.regioes.ListAll(ctx)
	if err != nil {
		f.logger.Error().Err(err).Msg("erro ao carregar regiões")
		return err
	}
	f.regions = list
	return nil
}

// RegionOptions devolve as regiões como opções de seletor.
func (f *SensorForm) RegionOptions() []util.Option {
	out := make([]util.Option, 0, len(f.regions))
	for _, r := range f.regions {
		out = append(out, util.Option{Label: r.Nome, Value: strconv.FormatInt(r.ID, 10)})
	}
	return out
}

func (f *SensorForm) Input() sensor.Input {
	id, _ := strconv.ParseInt(strings.TrimSpace(f.IDRegiao), 10, 64)
	return sensor.Input{
		IDRegiao:       id,
		Modelo:         f.Modelo,
		Status:         strings.ToUpper(strings.TrimSpace(f.Status)),
		DataInstalacao: f.DataInstalacao,
	}
}

func (f *SensorForm) ClearError(field string) {
	delete(f.Errors, field)
}

func (f *SensorForm) Submit(ctx context.Context) (string, error) {
	in := f.Input()
	errs := sensor.Validate(in)
	f.Errors = util.FieldErrors(errs, sensor.FieldLabels)
	if err := util.Check(errs); err != nil {
		return "", err
	}

	var (
		err error
		msg string
	)
	if f.editing != nil {
		_, err = f.svc.Update(ctx, f.editing.ID, in)
		msg = "Sensor atualizado com sucesso"
	} else {
		_, err = f.svc.Create(ctx, in)
		msg = "Sensor criado com sucesso"
	}
	if err != nil {
		f.logger.Error().Err(err).Msg("erro ao salvar sensor")
		return "", err
	}
	f.nav.GoBack()
	return msg, nil
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
