package services

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

type OutboundMessagePublic struct {
	MessageID   string          `json:"message_id"`
	ExecutionID string          `json:"execution_id"`
	Index       int             `json:"index"`
	Kind        string          `json:"kind"`
	Msg         json.RawMessage `json:"msg"`
}

func fromOutboxDocument(d model.OutboxDocument) OutboundMessagePublic {
	return OutboundMessagePublic{
		MessageID:   d.MessageID,
		ExecutionID: d.ExecutionID,
		Index:       d.Index,
		Kind:        d.Kind,
		Msg:         json.RawMessage(d.Body),
	}
}

// OutboxNotifications fires after an execution committed outbound messages.
// Notifications coalesce: one pending signal covers any number of commits.
func (s *Services) OutboxNotifications() <-chan struct{} {
	return s.outbox
}

func (s *Services) notifyOutbox() {
	select {
	case s.outbox <- struct{}{}:
	default:
	}
}

// PendingOutbox returns up to limit unpublished messages in emission order.
func (s *Services) PendingOutbox(ctx context.Context, limit int64) ([]OutboundMessagePublic, *types.Error) {
	docs, err := s.DbClient.FindPendingOutbox(ctx, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to find pending outbound messages")
		return nil, types.NewInternalServiceError(err)
	}
	messages := make([]OutboundMessagePublic, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, fromOutboxDocument(d))
	}
	return messages, nil
}

func (s *Services) MarkOutboxPublished(ctx context.Context, messageIDs []string) *types.Error {
	if err := s.DbClient.MarkOutboxPublished(ctx, messageIDs); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to mark outbound messages as published")
		return types.NewInternalServiceError(err)
	}
	return nil
}
