package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/cmd/liquid-staking-hub/cli"
	"github.com/babylonchain/liquid-staking-hub/cmd/liquid-staking-hub/scripts"
	"github.com/babylonchain/liquid-staking-hub/internal/api"
	"github.com/babylonchain/liquid-staking-hub/internal/clients"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/jobs"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/healthcheck"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/metrics"
	"github.com/babylonchain/liquid-staking-hub/internal/queue"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
)

const shutdownTimeout = 10 * time.Second

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up hub db model")
	}

	clients := clients.New(cfg)
	services, err := services.New(ctx, cfg, clients)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up hub services layer")
	}

	queues := queue.New(cfg.Queue, cfg.Db.DbBatchSizeLimit, services)

	// Check if the replay flag is set
	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unprocessable messages.")
		err := scripts.ReplayUnprocessableMessages(ctx, queues.ExecuteQueueClient, services.DbClient)
		if err != nil {
			log.Fatal().Err(err).Msg("error while replaying unprocessable messages")
		}
		return
	}

	// Start the event queue processing
	queues.StartReceivingMessages()
	defer queues.StopReceivingMessages()

	if _, err := jobs.StartOutboxPublisher(ctx, cfg.Keeper.OutboxInterval, services.OutboxNotifications(), queues); err != nil {
		log.Fatal().Err(err).Msg("error while starting the outbox publisher")
	}
	if err := jobs.StartKeeperCron(ctx, cfg.Keeper, services, cfg.Queue.QueueProcessingTimeout); err != nil {
		log.Fatal().Err(err).Msg("error while starting keeper jobs")
	}
	dbHealth := healthcheck.CheckerFunc(func() error { return services.DoHealthCheck(ctx) })
	if err := healthcheck.StartHealthCheckCron(ctx, cfg.Server.HealthCheckInterval, queues, dbHealth); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up hub api service")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down hub api service")
		}
	}()

	if err = apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("error while starting hub api service")
	}
	log.Info().Msg("hub api service stopped")
}
