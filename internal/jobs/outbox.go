package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// OutboxPublisher drains committed outbound messages to the broker.
type OutboxPublisher interface {
	PublishOutbox(ctx context.Context) (int, error)
}

// StartOutboxPublisher publishes the outbox once at start, after every commit
// notification and on every interval tick. Publishing never runs
// concurrently with itself.
func StartOutboxPublisher(
	ctx context.Context, interval time.Duration, notifications <-chan struct{}, publisher OutboxPublisher,
) (<-chan struct{}, error) {
	tick := make(chan struct{}, 1)
	c := cron.New()
	_, err := c.AddFunc(everySpec(interval), func() {
		select {
		case tick <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()

	ctx = log.With().Str("job", "outbox").Logger().WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer c.Stop()
		for {
			publishOutbox(ctx, publisher)
			select {
			case <-ctx.Done():
				log.Ctx(ctx).Info().Msg("Stopping outbox publisher")
				return
			case <-notifications:
			case <-tick:
			}
		}
	}()
	return done, nil
}

func publishOutbox(ctx context.Context, publisher OutboxPublisher) {
	published, err := publisher.PublishOutbox(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int("published", published).Msg("failed to publish the outbox")
		return
	}
	if published > 0 {
		log.Ctx(ctx).Debug().Int("published", published).Msg("outbox published")
	}
}
