package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/bot"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/config"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/gateway"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/platform/logger"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/workqueue"
)

func main() {
	log := logger.New("stash-bot")
	if err := run(log); err != nil {
		log.Error().Err(err).Msg("stash-bot exited with error")
		os.Exit(1)
	}
}

// run wires the bot together and blocks on the long-poll loop until a
// shutdown signal arrives.
func run(log zerolog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if cfg.BotToken == "" {
		return fmt.Errorf("SMP_BOT_TOKEN is required")
	}

	qcfg, err := workqueue.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load queue configuration")
		return err
	}

	log.Info().
		Str("service_url", cfg.ServiceURL).
		Int("poll_timeout", cfg.PollTimeout).
		Int("queue_size", qcfg.QueueSize).
		Msg("Bot starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics server starting")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
		defer func() { _ = metricsSrv.Close() }()
	}

	tg := telegram.NewClient(cfg.BotToken)
	gw := gateway.New(cfg.ServiceURL)

	machine := bot.NewMachine(gw, tg, bot.NewStateStore(), log)
	dispatcher := bot.NewDispatcher(machine, qcfg, log)
	defer dispatcher.Stop()

	poller := telegram.NewPoller(tg, cfg.PollTimeout, log, func(u telegram.Update) {
		dispatcher.Dispatch(ctx, u)
	})

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("Bot stopped")
	return nil
}
