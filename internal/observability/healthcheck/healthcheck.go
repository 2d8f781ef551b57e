package healthcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger zerolog.Logger = log.Logger

// exit terminates the process once a dependency is found unhealthy.
var exit = func() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// Checker reports whether a long-lived connection is still usable.
type Checker interface {
	IsConnectionHealthy() error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func() error

func (f CheckerFunc) IsConnectionHealthy() error { return f() }

// StartHealthCheckCron checks every dependency each cronTime seconds and
// terminates the service on the first failure, leaving the restart to the
// orchestrator.
func StartHealthCheckCron(ctx context.Context, cronTime int, checkers ...Checker) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime == 0 {
		cronTime = 60
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		runHealthChecks(checkers)
	})

	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func runHealthChecks(checkers []Checker) bool {
	for _, checker := range checkers {
		if err := checker.IsConnectionHealthy(); err != nil {
			logger.Error().Err(err).Msg("One or more connections are not healthy.")
			exit()
			return false
		}
	}
	return true
}
