package monitor

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/config"
)

// Classificações de temperatura.
const (
	ClassCriticalHigh = "critical_high"
	ClassWarningHigh  = "warning_high"
	ClassNormal       = "normal"
	ClassWarningLow   = "warning_low"
	ClassCriticalLow  = "critical_low"
)

// Filtro "sem restrição" usado pelas telas.
const (
	FilterAll       = "todos"
	FilterAllRegion = "todas"
)

// Service expõe os dados consolidados do painel de monitoramento.
type Service struct {
	locations []Location
	alerts    []Alert
	limits    config.TemperatureLimits
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService carrega os dados de demonstração relativos ao instante atual.
func NewService(limits config.TemperatureLimits, logger zerolog.Logger) *Service {
	return newService(limits, logger, time.Now)
}

func newService(limits config.TemperatureLimits, logger zerolog.Logger, now func() time.Time) *Service {
	t := now()
	return &Service{
		locations: mockLocations(t),
		alerts:    mockAlerts(t),
		limits:    limits,
		logger:    logger.With().Str("component", "monitor").Logger(),
		now:       now,
	}
}

// Locations devolve uma cópia dos locais monitorados.
func (s *Service) Locations() []Location {
	return append([]Location(nil), s.locations...)
}

// Alerts devolve uma cópia dos alertas.
func (s *Service) Alerts() []Alert {
	return append([]Alert(nil), s.alerts...)
}

// Stats calcula o resumo do painel.
func (s *Service) Stats() Stats {
	st := Stats{TotalLocations: len(s.locations), LastUpdate: s.now()}
	for _, a := range s.alerts {
		if !a.Resolved {
			st.ActiveAlerts++
		}
	}
	if len(s.locations) == 0 {
		return st
	}

	var sum float64
	highest, lowest := s.locations[0], s.locations[0]
	for _, loc := range s.locations {
		if loc.Status == StatusCritico {
			st.CriticalLocations++
		}
		sum += loc.CurrentTemperature
		if loc.CurrentTemperature > highest.CurrentTemperature {
			highest = loc
		}
		if loc.CurrentTemperature < lowest.CurrentTemperature {
			lowest = loc
		}
	}
	st.AverageTemperature = math.Round(sum / float64(len(s.locations)))
	st.Highest = Extreme{Value: highest.CurrentTemperature, Location: highest.Name}
	st.Lowest = Extreme{Value: lowest.CurrentTemperature, Location: lowest.Name}
	return st
}

// ClassifyTemperature enquadra a temperatura nas faixas configuradas.
func (s *Service) ClassifyTemperature(t float64) string {
	switch {
	case t >= s.limits.CriticalHigh:
		return ClassCriticalHigh
	case t >= s.limits.WarningHigh:
		return ClassWarningHigh
	case t <= s.limits.CriticalLow:
		return ClassCriticalLow
	case t <= s.limits.WarningLow:
		return ClassWarningLow
	default:
		return ClassNormal
	}
}

// FilterLocations aplica busca por nome e filtros de status e região.
// "todos"/"todas" ou vazio desativam o filtro correspondente.
func (s *Service) FilterLocations(query, status, region string) []Location {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Location, 0, len(s.locations))
	for _, loc := range s.locations {
		if query != "" && !strings.Contains(strings.ToLower(loc.Name), query) {
			continue
		}
		if status != "" && status != FilterAll && loc.Status != status {
			continue
		}
		if region != "" && region != FilterAllRegion && loc.Region != region {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// FilterAlerts filtra por tipo ("alta"/"baixa") e, se resolved não for nil, por situação.
func (s *Service) FilterAlerts(tipo string, resolved *bool) []Alert {
	out := make([]Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if tipo != "" && tipo != FilterAll && a.Type != tipo {
			continue
		}
		if resolved != nil && a.Resolved != *resolved {
			continue
		}
		out = append(out, a)
	}
	return out
}

// RecentAlerts devolve os n alertas ativos mais recentes.
func (s *Service) RecentAlerts(n int) []Alert {
	active := false
	out := s.FilterAlerts("", &active)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CriticalLocations devolve os locais em estado crítico.
func (s *Service) CriticalLocations() []Location {
	return s.FilterLocations("", StatusCritico, "")
}

// Regions lista as regiões distintas, na ordem em que aparecem.
func (s *Service) Regions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, loc := range s.locations {
		if !seen[loc.Region] {
			seen[loc.Region] = true
			out = append(out, loc.Region)
		}
	}
	return out
}

// Nearby ordena os locais pela distância até o dispositivo.
func (s *Service) Nearby(ctx context.Context, locator Locator) ([]NearbyLocation, error) {
	pos, err := locator.CurrentPosition(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("localização indisponível")
		return nil, err
	}
	out := make([]NearbyLocation, 0, len(s.locations))
	for _, loc := range s.locations {
		d := DistanceKm(pos, Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude})
		out = append(out, NearbyLocation{Location: loc, DistanceKm: math.Round(d*100) / 100})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}
