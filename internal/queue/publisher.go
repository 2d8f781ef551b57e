package queue

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/observability/metrics"
	"github.com/babylonchain/liquid-staking-hub/internal/queue/client"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// OutboxSource hands out committed outbound messages that still need publishing.
type OutboxSource interface {
	PendingOutbox(ctx context.Context, limit int64) ([]services.OutboundMessagePublic, *types.Error)
	MarkOutboxPublished(ctx context.Context, messageIDs []string) *types.Error
}

// PublishOutbox sends pending outbound messages in emission order until none
// are left. Publishing stops at the first failure; what was sent before it is
// marked, the rest is retried on the next call. A message can be published
// twice if marking fails, so consumers dedupe on message_id.
func (q *Queues) PublishOutbox(ctx context.Context) (int, error) {
	published := 0
	for {
		pending, apiErr := q.Outbox.PendingOutbox(ctx, q.outboxBatchSize)
		if apiErr != nil {
			return published, apiErr
		}
		if len(pending) == 0 {
			return published, nil
		}

		sent := make([]string, 0, len(pending))
		var sendErr error
		for _, msg := range pending {
			if sendErr = q.sendOutbound(ctx, msg); sendErr != nil {
				log.Ctx(ctx).Error().Err(sendErr).
					Str("message_id", msg.MessageID).
					Msg("failed to publish outbound message")
				break
			}
			sent = append(sent, msg.MessageID)
		}

		if len(sent) > 0 {
			if apiErr := q.Outbox.MarkOutboxPublished(ctx, sent); apiErr != nil {
				return published, apiErr
			}
			published += len(sent)
			metrics.RecordOutboxPublished(len(sent))
		}
		if sendErr != nil {
			return published, sendErr
		}
		if int64(len(pending)) < q.outboxBatchSize {
			return published, nil
		}
	}
}

func (q *Queues) sendOutbound(ctx context.Context, msg services.OutboundMessagePublic) error {
	body, err := json.Marshal(client.OutboundMessageEvent{
		MessageID:   msg.MessageID,
		ExecutionID: msg.ExecutionID,
		Index:       msg.Index,
		Kind:        msg.Kind,
		Msg:         msg.Msg,
	})
	if err != nil {
		return err
	}
	return q.OutboundQueueClient.SendMessage(ctx, string(body))
}
