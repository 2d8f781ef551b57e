package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/tracing"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// Executor runs hub messages.
type Executor interface {
	Execute(ctx context.Context, req services.ExecuteRequest) (*services.ExecutionResult, *types.Error)
}

var (
	checkSlashingMsg     = json.RawMessage(`{"check_slashing":{}}`)
	updateGlobalIndexMsg = json.RawMessage(`{"update_global_index":{}}`)
)

func everySpec(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}

// StartKeeperCron schedules the permissionless maintenance messages. A run
// is skipped while the previous one of the same job is still executing.
func StartKeeperCron(ctx context.Context, cfg config.KeeperConfig, executor Executor, timeout time.Duration) error {
	if !cfg.Enabled {
		log.Info().Msg("Keeper jobs are disabled")
		return nil
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	jobs := []struct {
		name     string
		interval time.Duration
		msg      json.RawMessage
	}{
		{"check_slashing", cfg.CheckSlashingInterval, checkSlashingMsg},
		{"update_global_index", cfg.UpdateGlobalIndexInterval, updateGlobalIndexMsg},
	}
	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(everySpec(job.interval), func() {
			runKeeperJob(ctx, executor, cfg.Sender, job.name, job.msg, timeout)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	c.Start()
	log.Info().Str("sender", cfg.Sender).Msg("Initiated keeper cron")

	go func() {
		<-ctx.Done()
		log.Info().Msg("Stopping keeper cron")
		<-c.Stop().Done()
	}()
	return nil
}

func runKeeperJob(
	ctx context.Context, executor Executor, sender, name string, msg json.RawMessage, timeout time.Duration,
) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx = tracing.AttachTracingIntoContext(ctx)
	logger := log.With().Str("job", name).Interface("traceId", ctx.Value(tracing.TraceIdKey)).Logger()
	ctx = logger.WithContext(ctx)

	res, err := executor.Execute(ctx, services.ExecuteRequest{Sender: sender, Msg: msg})
	if err != nil {
		if services.IsRejection(err) {
			logger.Warn().Err(err).Msg("keeper message rejected")
		} else {
			logger.Error().Err(err).Msg("keeper message failed")
		}
		return false
	}
	logger.Info().
		Str("execution_id", res.ExecutionID).
		Int("messages", len(res.Messages)).
		Msg("keeper message executed")
	return true
}
