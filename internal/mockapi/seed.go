package mockapi

import (
	"time"

	"github.com/Antonio-Junior1/thermoguard/internal/alerta"
	"github.com/Antonio-Junior1/thermoguard/internal/leitura"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

// seedDemo popula regiões, sensores, leituras e alertas de exemplo.
func seedDemo(store *Store, now time.Time) {
	sul := store.CreateRegiao(regiao.Regiao{Nome: "Zona Sul", Latitude: -23.6505, Longitude: -46.7033, Vulnerabilidade: 0.8})
	centro := store.CreateRegiao(regiao.Regiao{Nome: "Centro", Latitude: -23.5505, Longitude: -46.6333, Vulnerabilidade: 0.6})
	leste := store.CreateRegiao(regiao.Regiao{Nome: "Zona Leste", Latitude: -23.5405, Longitude: -46.4733, Vulnerabilidade: 0.7})

	day := now.AddDate(0, -6, 0).Format("2006-01-02")
	s1, _ := store.CreateSensor(sensor.Sensor{IDRegiao: sul.ID, Modelo: "DHT22", Status: sensor.StatusAtivo, DataInstalacao: day})
	s2, _ := store.CreateSensor(sensor.Sensor{IDRegiao: centro.ID, Modelo: "DS18B20", Status: sensor.StatusManutencao, DataInstalacao: day})
	_, _ = store.CreateSensor(sensor.Sensor{IDRegiao: leste.ID, Modelo: "DHT11", Status: sensor.StatusInativo, DataInstalacao: day})

	at := func(minutes int) string {
		return leitura.FormatDataHoraParaAPI(now.Add(-time.Duration(minutes) * time.Minute))
	}
	_, _ = store.CreateLeitura(leitura.Leitura{IDSensor: s1.ID, Temperatura: 38.2, Umidade: 65, DataHora: at(15)})
	_, _ = store.CreateLeitura(leitura.Leitura{IDSensor: s1.ID, Temperatura: 36.5, Umidade: 60, DataHora: at(75)})
	_, _ = store.CreateLeitura(leitura.Leitura{IDSensor: s2.ID, Temperatura: 4.1, Umidade: 85, DataHora: at(8)})

	calor, frio := 38.2, 4.1
	_, _ = store.CreateAlerta(alerta.Alerta{
		IDRegiao: sul.ID, Tipo: alerta.TipoCalor, Severidade: alerta.SeveridadeAlta, DataHora: at(15),
		Mensagem: alerta.GerarMensagemAutomatica(alerta.TipoCalor, alerta.SeveridadeAlta, &calor),
	})
	_, _ = store.CreateAlerta(alerta.Alerta{
		IDRegiao: centro.ID, Tipo: alerta.TipoFrio, Severidade: alerta.SeveridadeAlta, DataHora: at(8),
		Mensagem: alerta.GerarMensagemAutomatica(alerta.TipoFrio, alerta.SeveridadeAlta, &frio),
	})
}
