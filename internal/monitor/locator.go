package monitor

import (
	"context"
	"errors"
	"math"
)

// ErrPermissionDenied indica que o acesso à localização foi negado.
// Bloqueia apenas a tela de locais.
var ErrPermissionDenied = errors.New("Permissão da localização não foi concedida")

// Coordinates é uma posição geográfica em graus decimais.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator fornece a posição atual do dispositivo.
type Locator interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// StaticLocator devolve coordenadas configuradas.
type StaticLocator struct {
	Granted  bool
	Position Coordinates
}

func (l StaticLocator) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if !l.Granted {
		return Coordinates{}, ErrPermissionDenied
	}
	return l.Position, nil
}

const earthRadiusKm = 6371.0

// DistanceKm calcula a distância pela fórmula de haversine.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
