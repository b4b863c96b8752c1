package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

// SensorList carrega sensores e regiões em paralelo para exibir o nome da região.
type SensorList struct {
	mu      sync.Mutex
	sensors SensorService
	regioes RegiaoService
	items   []sensor.Sensor
	regions []regiao.Regiao
	query   string
	status  string
	logger  zerolog.Logger
}

func NewSensorList(sensors SensorService, regioes RegiaoService, logger zerolog.Logger) *SensorList {
	return &SensorList{
		sensors: sensors,
		regioes: regioes,
		logger:  logger.With().Str("screen", "SensorList").Logger(),
	}
}

// Load busca sensores e regiões ao mesmo tempo. Qualquer falha cancela a outra
// requisição e nada é alterado.
func (l *SensorList) Load(ctx context.Context) error {
	var (
		items   []sensor.Sensor
		regions []regiao.Regiao
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.sensors.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		regions, err = l.regioes.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Error().Err(err).Msg("erro ao carregar dados")
		return err
	}

	l.mu.Lock()
	l.items = items
	l.regions = regions
	l.mu.Unlock()
	return nil
}

func (l *SensorList) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

func (l *SensorList) SetQuery(q string) {
	l.mu.Lock()
	l.query = q
	l.mu.Unlock()
}

// SetStatus define o filtro de status; vazio mostra todos.
func (l *SensorList) SetStatus(status string) {
	l.mu.Lock()
	l.status = status
	l.mu.Unlock()
}

func (l *SensorList) Status() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Visible devolve os sensores que passam pela busca e pelo filtro de status.
func (l *SensorList) Visible() []sensor.Sensor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]sensor.Sensor(nil), sensor.Filter(l.items, l.query, l.status)...)
}

// Regions devolve as regiões carregadas junto com os sensores.
func (l *SensorList) Regions() []regiao.Regiao {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]regiao.Regiao(nil), l.regions...)
}

// RegionName resolve o nome da região do sensor.
func (l *SensorList) RegionName(idRegiao int64) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return regiao.NameByID(l.regions, idRegiao)
}

func (l *SensorList) ConfirmDelete(s sensor.Sensor) string {
	return fmt.Sprintf("Deseja realmente excluir o sensor %q?", s.Modelo)
}

// Delete remove o sensor e recarrega os dados.
func (l *SensorList) Delete(ctx context.Context, id int64) error {
	if err := l.sensors.Delete(ctx, id); err != nil {
		l.logger.Error().Err(err).Int64("id", id).Msg("erro ao excluir sensor")
		return err
	}
	return l.Load(ctx)
}
