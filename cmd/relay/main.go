// Command relay runs the alert distribution relay: an authenticated HTTP
// API where producers push alerts into named groups and consumers follow a
// live event stream per group, backed by Redis for the last-value cache and
// the pub/sub fanout.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alertflow/relay/modules/alerts"
	"github.com/alertflow/relay/modules/auth"
	"github.com/alertflow/relay/modules/health"
	"github.com/alertflow/relay/pkg/broadcast"
	"github.com/alertflow/relay/pkg/config"
	"github.com/alertflow/relay/pkg/httpserver"
	"github.com/alertflow/relay/pkg/logger"
	"github.com/alertflow/relay/pkg/redis"
)

const serviceName = "relay"

// busBufferSize is the per-subscriber delivery buffer; a slow stream
// consumer misses payloads beyond it rather than stalling publishers.
const busBufferSize = 32

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, serviceName)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("relay terminated", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		redisCfg  redis.Config
		serverCfg httpserver.Config
		authCfg   auth.Config
	)
	config.MustLoad(&redisCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&authCfg)

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	users, err := auth.OpenBoltStore(authCfg.StoreDir)
	if err != nil {
		return err
	}
	defer users.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bus := broadcast.NewRedisBus(client, busBufferSize)
	store := alerts.NewRedisStore(client)
	engine := alerts.NewService(store, bus, log,
		alerts.WithMetrics(alerts.NewMetrics(registry)),
	)

	authSvc := auth.NewService(users, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Operational endpoints stay outside the credential check.
	health.Mount(ctx, r, log, registry, redis.Healthcheck(client))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authSvc))
		r.Mount("/", alerts.NewHandler(engine, log).Router())
	})

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
