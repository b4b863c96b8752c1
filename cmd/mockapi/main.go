package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/Antonio-Junior1/thermoguard/internal/config"
	"github.com/Antonio-Junior1/thermoguard/internal/logging"
	"github.com/Antonio-Junior1/thermoguard/internal/mockapi"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api falsa encerrada com erro")
	}
}

func run() error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.LoadMockAPI,
			newLogger,
			newRefreshStore,
			mockapi.NewServer,
			newHTTPServer,
		),
		fx.Invoke(func(*http.Server) {}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startCtx, startCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	<-ctx.Done()
	log.Info().Msg("encerrando...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	return app.Stop(stopCtx)
}

func newLogger(lc fx.Lifecycle, cfg *config.MockAPIConfig) (zerolog.Logger, error) {
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return zerolog.Nop(), err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return closer.Close() },
	})
	return logger, nil
}

// newRefreshStore guarda os refresh tokens no Redis quando REDIS_URL está definido.
func newRefreshStore(lc fx.Lifecycle, cfg *config.MockAPIConfig, logger zerolog.Logger) (storage.Store, error) {
	var store storage.Store = storage.NewMemoryStore()
	if cfg.RedisURL != "" {
		rs, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		store = rs
		logger.Info().Msg("refresh tokens no redis")
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return store.Close() },
	})
	return store, nil
}

func newHTTPServer(lc fx.Lifecycle, cfg *config.MockAPIConfig, api *mockapi.Server, logger zerolog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("servidor parou")
				}
			}()
			logger.Info().Str("prefix", cfg.Prefix).Msgf("API falsa ouvindo em :%d", cfg.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
