package handlers

import (
	"context"

	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// HubService is the part of the service layer the queue handlers drive.
type HubService interface {
	Execute(ctx context.Context, req services.ExecuteRequest) (*services.ExecutionResult, *types.Error)
	SaveUnprocessableMessages(ctx context.Context, messageBody, receipt, reason string) *types.Error
}

type QueueHandler struct {
	Services HubService
}

type MessageHandler func(ctx context.Context, messageBody string) *types.Error
type UnprocessableMessageHandler func(ctx context.Context, messageBody, receipt, reason string) *types.Error

func NewQueueHandler(services HubService) *QueueHandler {
	return &QueueHandler{
		Services: services,
	}
}

func (qh *QueueHandler) HandleUnprocessedMessage(ctx context.Context, messageBody, receipt, reason string) *types.Error {
	return qh.Services.SaveUnprocessableMessages(ctx, messageBody, receipt, reason)
}
