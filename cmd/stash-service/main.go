package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/api"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/config"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/platform/factory"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/platform/logger"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/services"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
)

func main() {
	log := logger.New("stash-service")
	if err := run(log); err != nil {
		log.Error().Err(err).Msg("stash-service exited with error")
		os.Exit(1)
	}
}

// run starts the storage service HTTP server and blocks until shutdown or
// error.
func run(log zerolog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Storage service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	// Media downloads resolve through the Bot API; without a token the
	// service still serves everything except media download resolution.
	var resolver services.FileResolver
	if cfg.BotToken != "" {
		resolver = telegram.NewClient(cfg.BotToken)
	} else {
		log.Warn().Msg("SMP_BOT_TOKEN not set, media download resolution disabled")
	}

	router := api.NewRouter(st, resolver, log)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}
