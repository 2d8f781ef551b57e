package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/metrics"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/tracing"
	"github.com/babylonchain/liquid-staking-hub/internal/queue/client"
	"github.com/babylonchain/liquid-staking-hub/internal/queue/handlers"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
)

type Queues struct {
	ExecuteQueueClient  client.QueueClient
	OutboundQueueClient client.QueueClient
	Handlers            *handlers.QueueHandler
	Outbox              OutboxSource
	processingTimeout   time.Duration
	maxRetryAttempts    int32
	outboxBatchSize     int64
}

func New(cfg config.QueueConfig, outboxBatchSize int64, service *services.Services) *Queues {
	executeQueueClient, err := client.NewRabbitMqClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, cfg.ExecuteQueueName, cfg.ReQueueDelayTime,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating ExecuteQueueClient")
	}
	outboundQueueClient, err := client.NewRabbitMqClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, cfg.OutboundQueueName, cfg.ReQueueDelayTime,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating OutboundQueueClient")
	}
	return NewWithClients(cfg, outboxBatchSize, executeQueueClient, outboundQueueClient, service)
}

// NewWithClients wires the queues on existing clients.
func NewWithClients(
	cfg config.QueueConfig, outboxBatchSize int64,
	executeQueueClient, outboundQueueClient client.QueueClient, service interface {
		handlers.HubService
		OutboxSource
	},
) *Queues {
	return &Queues{
		ExecuteQueueClient:  executeQueueClient,
		OutboundQueueClient: outboundQueueClient,
		Handlers:            handlers.NewQueueHandler(service),
		Outbox:              service,
		processingTimeout:   cfg.QueueProcessingTimeout,
		maxRetryAttempts:    cfg.MsgMaxRetryAttempts,
		outboxBatchSize:     outboxBatchSize,
	}
}

// Start all message processing
func (q *Queues) StartReceivingMessages() {
	startQueueMessageProcessing(
		q.ExecuteQueueClient, q.Handlers.ExecuteHandler, q.Handlers.HandleUnprocessedMessage,
		q.maxRetryAttempts, q.processingTimeout,
	)
}

// Turn off all message processing
func (q *Queues) StopReceivingMessages() {
	for _, c := range []client.QueueClient{q.ExecuteQueueClient, q.OutboundQueueClient} {
		if err := c.Stop(); err != nil {
			log.Error().Err(err).Str("queueName", c.GetQueueName()).Msg("error while stopping queue client")
		}
	}
}

func startQueueMessageProcessing(
	queueClient client.QueueClient,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	maxRetryAttempts int32, timeout time.Duration,
) {
	messagesChan, err := queueClient.ReceiveMessages()
	if err != nil {
		log.Fatal().Err(err).Str("queueName", queueClient.GetQueueName()).Msg("error setting up message channel from queue")
	}

	go func() {
		for message := range messagesChan {
			processMessage(queueClient, handler, unprocessableHandler, message, maxRetryAttempts, timeout)
		}
		log.Info().Str("queueName", queueClient.GetQueueName()).Msg("stopped receiving messages from queue")
	}()
}

// processMessage handles one delivery. Messages the hub rejects and messages
// out of retries are parked as unprocessable; other failures are requeued.
func processMessage(
	queueClient client.QueueClient,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	message client.QueueMessage, maxRetryAttempts int32, timeout time.Duration,
) {
	queueName := queueClient.GetQueueName()
	logger := log.With().Str("queueName", queueName).Logger()

	// For each message, create a new context with a deadline or timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx = tracing.AttachTracingIntoContext(ctx)
	ctx = logger.With().Interface("traceId", ctx.Value(tracing.TraceIdKey)).Logger().WithContext(ctx)

	timer := metrics.StartQueueProcessingTimer(queueName)
	procErr := handler(ctx, message.Body)
	if procErr == nil {
		// a nil *types.Error is not a nil error
		timer(nil)
		deleteMessage(ctx, queueClient, message.Receipt)
		return
	}
	timer(procErr)

	if services.IsRejection(procErr) {
		log.Ctx(ctx).Warn().Err(procErr).Msg("message rejected, saving as unprocessable")
		parkMessage(ctx, queueClient, unprocessableHandler, message, procErr.Error())
		return
	}

	if message.GetRetryAttempts() >= maxRetryAttempts {
		log.Ctx(ctx).Error().Err(procErr).
			Int32("retryAttempts", message.GetRetryAttempts()).
			Msg("exceeded retry attempts, saving as unprocessable")
		reason := fmt.Sprintf("exceeded %d retry attempts: %s", maxRetryAttempts, procErr.Error())
		parkMessage(ctx, queueClient, unprocessableHandler, message, reason)
		return
	}

	log.Ctx(ctx).Error().Err(procErr).Msg("error while processing message from queue, requeueing")
	if err := queueClient.ReQueueMessage(ctx, message); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while requeuing message")
	}
}

func parkMessage(
	ctx context.Context, queueClient client.QueueClient,
	unprocessableHandler handlers.UnprocessableMessageHandler, message client.QueueMessage, reason string,
) {
	if err := unprocessableHandler(ctx, message.Body, message.Receipt, reason); err != nil {
		// leave the delivery unacknowledged so the broker redelivers it
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return
	}
	deleteMessage(ctx, queueClient, message.Receipt)
}

func deleteMessage(ctx context.Context, queueClient client.QueueClient, receipt string) {
	if err := queueClient.DeleteMessage(receipt); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while deleting message from queue")
	}
}

func (q *Queues) IsConnectionHealthy() error {
	var errorMessages []string
	for _, c := range []client.QueueClient{q.ExecuteQueueClient, q.OutboundQueueClient} {
		if err := c.Ping(); err != nil {
			errorMessages = append(errorMessages, fmt.Sprintf("%s is not healthy: %v", c.GetQueueName(), err))
		}
	}
	if len(errorMessages) > 0 {
		return fmt.Errorf("queue connections are not healthy: %v", errorMessages)
	}
	return nil
}
