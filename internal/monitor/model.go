package monitor

import "time"

// Status de um local monitorado.
const (
	StatusCritico = "crítico"
	StatusAlerta  = "alerta"
	StatusNormal  = "normal"
)

// Tipos de alerta do painel.
const (
	AlertaAlta  = "alta"
	AlertaBaixa = "baixa"
)

// Location é um ponto monitorado exibido no painel e na tela de locais.
type Location struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Region             string    `json:"region"`
	CurrentTemperature float64   `json:"currentTemperature"`
	FeelsLike          float64   `json:"feelsLike"`
	Humidity           float64   `json:"humidity"`
	WindSpeed          float64   `json:"windSpeed"`
	Altitude           float64   `json:"altitude"`
	Status             string    `json:"status"`
	LastUpdate         time.Time `json:"lastUpdate"`
}

// Alert é um alerta do painel, ligado a um Location.
type Alert struct {
	ID           string     `json:"id"`
	LocationID   string     `json:"locationId"`
	LocationName string     `json:"locationName"`
	Type         string     `json:"type"`
	Temperature  float64    `json:"temperature"`
	Severity     string     `json:"severity"`
	Message      string     `json:"message"`
	Timestamp    time.Time  `json:"timestamp"`
	Resolved     bool       `json:"resolved"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// Extreme identifica a temperatura extrema e onde ocorreu.
type Extreme struct {
	Value    float64 `json:"value"`
	Location string  `json:"location"`
}

// Stats resume o painel.
type Stats struct {
	TotalLocations     int       `json:"totalLocations"`
	ActiveAlerts       int       `json:"activeAlerts"`
	CriticalLocations  int       `json:"criticalLocations"`
	AverageTemperature float64   `json:"averageTemperature"`
	Highest            Extreme   `json:"highestTemperature"`
	Lowest             Extreme   `json:"lowestTemperature"`
	LastUpdate         time.Time `json:"lastUpdate"`
}

// NearbyLocation é um local com a distância até o dispositivo.
type NearbyLocation struct {
	Location
	DistanceKm float64 `json:"distanceKm"`
}

func mockLocations(now time.Time) []Location {
	ago := func(min int) time.Time { return now.Add(-time.Duration(min) * time.Minute) }
	return []Location{
		{ID: "loc1", Name: "Centro Comunitário Vila Nova", Latitude: -23.5505, Longitude: -46.6333, Region: "Zona Sul", CurrentTemperature: 38, FeelsLike: 40, Humidity: 65, WindSpeed: 12, Altitude: 760, Status: StatusCritico, LastUpdate: ago(15)},
		{ID: "loc2", Name: "Abrigo Municipal Esperança", Latitude: -23.5605, Longitude: -46.6233, Region: "Zona Leste", CurrentTemperature: 32, FeelsLike: 34, Humidity: 70, WindSpeed: 8, Altitude: 780, Status: StatusAlerta, LastUpdate: ago(5)},
		{ID: "loc3", Name: "Asilo São Francisco", Latitude: -23.5705, Longitude: -46.6433, Region: "Zona Norte", CurrentTemperature: 28, FeelsLike: 30, Humidity: 75, WindSpeed: 5, Altitude: 800, Status: StatusNormal, LastUpdate: ago(10)},
		{ID: "loc4", Name: "Centro de Acolhimento Luz", Latitude: -23.5305, Longitude: -46.6133, Region: "Centro", CurrentTemperature: 4, FeelsLike: 2, Humidity: 85, WindSpeed: 15, Altitude: 750, Status: StatusCritico, LastUpdate: ago(8)},
		{ID: "loc5", Name: "Comunidade Vila Esperança", Latitude: -23.5805, Longitude: -46.6533, Region: "Zona Oeste", CurrentTemperature: 8, FeelsLike: 6, Humidity: 80, WindSpeed: 10, Altitude: 790, Status: StatusAlerta, LastUpdate: ago(3)},
		{ID: "loc6", Name: "Hospital Comunitário São José", Latitude: -23.5405, Longitude: -46.6633, Region: "Zona Sul", CurrentTemperature: 22, FeelsLike: 22, Humidity: 60, WindSpeed: 7, Altitude: 770, Status: StatusNormal, LastUpdate: ago(12)},
	}
}

func mockAlerts(now time.Time) []Alert {
	ago := func(min int) time.Time { return now.Add(-time.Duration(min) * time.Minute) }
	resolvedAt := func(min int) *time.Time { t := ago(min); return &t }
	return []Alert{
		{ID: "alert1", LocationID: "loc1", LocationName: "Centro Comunitário Vila Nova", Type: AlertaAlta, Temperature: 38, Severity: StatusCritico, Message: "Temperatura extremamente alta detectada. Risco para idosos e crianças.", Timestamp: ago(30)},
		{ID: "alert2", LocationID: "loc4", LocationName: "Centro de Acolhimento Luz", Type: AlertaBaixa, Temperature: 4, Severity: StatusCritico, Message: "Temperatura extremamente baixa detectada. Risco de hipotermia.", Timestamp: ago(45)},
		{ID: "alert3", LocationID: "loc2", LocationName: "Abrigo Municipal Esperança", Type: AlertaAlta, Temperature: 32, Severity: StatusAlerta, Message: "Temperatura elevada detectada. Monitorar idosos e crianças.", Timestamp: ago(60)},
		{ID: "alert4", LocationID: "loc5", LocationName: "Comunidade Vila Esperança", Type: AlertaBaixa, Temperature: 8, Severity: StatusAlerta, Message: "Temperatura baixa detectada. Monitorar pessoas vulneráveis.", Timestamp: ago(90)},
		{ID: "alert5", LocationID: "loc3", LocationName: "Asilo São Francisco", Type: AlertaAlta, Temperature: 31, Severity: StatusAlerta, Message: "Temperatura elevada detectada. Monitorar idosos.", Timestamp: ago(120), Resolved: true, ResolvedAt: resolvedAt(60)},
		{ID: "alert6", LocationID: "loc6", LocationName: "Hospital Comunitário São José", Type: AlertaBaixa, Temperature: 10, Severity: StatusAlerta, Message: "Temperatura baixa detectada. Monitorar pacientes.", Timestamp: ago(180), Resolved: true, ResolvedAt: resolvedAt(90)},
	}
}
