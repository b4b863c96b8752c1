// Package mockapi implementa uma API REST falsa compatível com o app, para
// demonstrações e testes ponta a ponta.
package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/config"
	"github.com/Antonio-Junior1/thermoguard/internal/mockapi/middleware"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

const tokenAudience = "thermoguard"

// Server reúne dependências dos handlers.
type Server struct {
	cfg     *config.MockAPIConfig
	store   *Store
	jwt     *auth.JWTManager
	refresh *auth.RefreshTokens
	limiter *middleware.RateLimiter
	logger  zerolog.Logger
}

// NewServer cria a API com o administrador inicial e, se configurado, dados de demonstração.
// refresh guarda o estado dos refresh tokens (memória ou Redis).
func NewServer(cfg *config.MockAPIConfig, refresh storage.Store, logger zerolog.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   NewStore(),
		jwt:     auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL),
		refresh: auth.NewRefreshTokens(refresh, tokenAudience, cfg.JWTRefreshTTL),
		limiter: middleware.NewRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst),
		logger:  logger.With().Str("component", "mockapi").Logger(),
	}

	hash := cfg.AdminHash
	if hash == "" {
		var err error
		if hash, err = auth.Hash(cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("hash admin: %w", err)
		}
	}
	admin := usuario.Usuario{Nome: "Administrador", Email: cfg.AdminEmail, Tipo: usuario.TipoAdmin}
	if _, err := s.store.CreateUsuario(admin, hash); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if cfg.SeedDemo {
		seedDemo(s.store, time.Now())
	}
	return s, nil
}

// Store expõe os dados em memória.
func (s *Server) Store() *Store {
	return s.store
}

// Router devolve o roteador chi configurado.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Recover(s.logger))
	r.Use(middleware.CORS(s.cfg.AllowOrigins))

	r.Get("/health", s.Health)

	api := func(ar chi.Router) {
		ar.Use(middleware.IPRateLimit(s.limiter))

		ar.Post("/auth/login", s.Login)
		ar.Post("/auth/register", s.Register)
		ar.Post("/auth/refresh", s.Refresh)

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.Auth(s.jwt))
			pr.Use(middleware.Permission)

			pr.Route("/regioes", func(rr chi.Router) {
				rr.Get("/", s.ListRegioes)
				rr.Post("/", s.CreateRegiao)
				rr.Get("/{id}", s.GetRegiao)
				rr.Put("/{id}", s.UpdateRegiao)
				rr.Delete("/{id}", s.DeleteRegiao)
			})
			pr.Route("/sensores", func(rr chi.Router) {
				rr.Get("/", s.ListSensores)
				rr.Post("/", s.CreateSensor)
				rr.Get("/paginado", s.PageSensores)
				rr.Get("/filtro", s.FilterSensores)
				rr.Get("/{id}", s.GetSensor)
				rr.Put("/{id}", s.UpdateSensor)
				rr.Delete("/{id}", s.DeleteSensor)
			})
			pr.Route("/leituras", func(rr chi.Router) {
				rr.Get("/", s.ListLeituras)
				rr.Post("/", s.CreateLeitura)
				rr.Get("/temperatura-media-por-regiao", s.AverageByRegion)
				rr.Get("/{id}", s.GetLeitura)
				rr.Delete("/{id}", s.DeleteLeitura)
			})
			pr.Route("/alertas", func(rr chi.Router) {
				rr.Get("/", s.ListAlertas)
				rr.Post("/", s.CreateAlerta)
				rr.Get("/{id}", s.GetAlerta)
				rr.Delete("/{id}", s.DeleteAlerta)
			})
			pr.Route("/usuarios", func(rr chi.Router) {
				rr.Use(middleware.RequireAction(usuario.AcaoGerenciar))
				rr.Get("/", s.ListUsuarios)
				rr.Post("/", s.CreateUsuario)
				rr.Get("/{id}", s.GetUsuario)
				rr.Put("/{id}", s.UpdateUsuario)
				rr.Delete("/{id}", s.DeleteUsuario)
			})
		})
	}

	if s.cfg.Prefix == "" {
		r.Group(api)
	} else {
		r.Route(s.cfg.Prefix, api)
	}
	return r
}

// Health responde sem autenticação.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "time": time.Now().UTC()})
}
