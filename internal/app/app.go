// Package app monta as dependências do cliente a partir da configuração.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/alerta"
	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/config"
	"github.com/Antonio-Junior1/thermoguard/internal/leitura"
	"github.com/Antonio-Junior1/thermoguard/internal/monitor"
	"github.com/Antonio-Junior1/thermoguard/internal/navigation"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/session"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

// App concentra cliente HTTP, sessão, serviços e roteador.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    storage.Store
	Client   *api.Client
	Session  *session.Manager
	Router   *navigation.Router
	Regioes  *regiao.Service
	Sensores *sensor.Service
	Leituras *leitura.Service
	Alertas  *alerta.Service
	Usuarios *usuario.Service
	Monitor  *monitor.Service
	Locator  monitor.Locator
}

// New abre o armazenamento da sessão e cria os serviços.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := storage.Open(cfg.Session.Store, cfg.Session.File, cfg.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore permite injetar o armazenamento (testes).
func NewWithStore(cfg *config.Config, store storage.Store, logger zerolog.Logger) *App {
	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Prefix:  cfg.API.Prefix,
		Timeout: cfg.API.Timeout,
	}, logger)

	mgr := session.NewManager(client, store, session.Config{
		StorageKey:       cfg.Session.StorageKey,
		TokenTTL:         cfg.Session.TokenTTL,
		MaxLoginAttempts: cfg.Session.MaxLoginAttempts,
		LockoutDuration:  cfg.Session.LockoutDuration,
	}, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Client:   client,
		Session:  mgr,
		Router:   navigation.NewRouter(logger),
		Regioes:  regiao.NewService(regiao.NewRepository(client)),
		Sensores: sensor.NewService(sensor.NewRepository(client)),
		Leituras: leitura.NewService(leitura.NewRepository(client)),
		Alertas:  alerta.NewService(alerta.NewRepository(client)),
		Usuarios: usuario.NewService(usuario.NewRepository(client)),
		Monitor:  monitor.NewService(cfg.Temperature, logger),
		Locator: monitor.StaticLocator{
			Granted:  cfg.Location.PermissionGranted,
			Position: monitor.Coordinates{Latitude: cfg.Location.Latitude, Longitude: cfg.Location.Longitude},
		},
	}
}

// Close libera o armazenamento.
func (a *App) Close() error {
	return a.Store.Close()
}
