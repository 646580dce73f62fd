package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alextes/calabi/bootstrap"
	"github.com/alextes/calabi/bot"
	"github.com/alextes/calabi/githubstatus"
	"github.com/alextes/calabi/httpclient"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/observability"
	"github.com/alextes/calabi/redis"
	"github.com/alextes/calabi/server"
	"github.com/alextes/calabi/util"
)

func runCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch GitHub and bet on incident markets until stopped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, b, err := buildApp(cfg)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), b.Run)
		},
	}
}

// buildApp wires the clients, telemetry, bot and status server into an app.
// Components start in registration order: telemetry first so the clients'
// spans and metrics are exported from the start.
func buildApp(cfg *Config, opts ...bootstrap.Option) (*bootstrap.App[*Config], *bot.Bot, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	log := app.Logger

	if err := app.RegisterComponent(observability.NewTelemetry(cfg.Observability, app.Name, app.Version)); err != nil {
		return nil, nil, err
	}

	// Instruments from the global meter follow the provider installed when
	// telemetry starts.
	metrics, err := observability.NewBotMetrics(observability.Meter())
	if err != nil {
		return nil, nil, fmt.Errorf("creating bot metrics: %w", err)
	}

	status, err := githubstatus.New(cfg.GitHub, githubstatus.WithLogger(log.WithComponent(githubstatus.ServiceName)))
	if err != nil {
		return nil, nil, err
	}
	markets, err := manifold.New(cfg.Manifold,
		manifold.WithMetrics(metrics),
		manifold.WithLogger(log.WithComponent(manifold.ServiceName)),
	)
	if err != nil {
		return nil, nil, err
	}
	for _, hc := range []*httpclient.Client{status.HTTPClient(), markets.HTTPClient()} {
		if err := app.RegisterComponent(httpclient.NewComponent(hc)); err != nil {
			return nil, nil, err
		}
	}

	botOpts := []bot.Option{bot.WithMetrics(metrics)}
	if cfg.Redis.Enabled {
		store := redis.NewComponent(cfg.Redis, log)
		if err := app.RegisterComponent(store); err != nil {
			return nil, nil, err
		}
		botOpts = append(botOpts, bot.WithLedger(redis.NewLedger(store, cfg.Redis.ExclusionsKey(), cfg.Redis.ExclusionTTL)))
	}

	b, err := bot.New(cfg.Bot, bot.Deps{
		Markets:    markets,
		Bettor:     markets,
		Status:     status,
		Classifier: manifold.NewClassifier(cfg.Manifold.TrustedCreators...),
	}, botOpts...)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server, log)
		srv.ApplyMiddleware()
		srv.RegisterEndpoints(server.Endpoints{
			Service: app.Name,
			Version: app.Version,
			Health:  app.Components.HealthAll,
			State:   b,
		})
		if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
			return nil, nil, err
		}
	}

	app.OnReady(func(ctx context.Context) error {
		log.Info("calabi is ready", logger.Fields(
			"manifold_key", util.MaskSecret(cfg.Manifold.APIKey, 4),
			"excluded_days", b.Snapshot().ExcludedDays,
			"status_server", cfg.Server.Enabled,
			"telemetry", cfg.Observability.Enabled,
			"ledger", cfg.Redis.Enabled,
		))
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		snap := b.Snapshot()
		log.Info("calabi stopped", logger.Fields(
			"targets", len(snap.Targets),
			"exclusions", len(snap.Exclusions),
		))
		return nil
	})

	return app, b, nil
}
