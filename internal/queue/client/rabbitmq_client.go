package client

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	retryAttemptsHeader = "x-processing-attempts"
	delayedQueueSuffix  = "_delay"
	prefetchCount       = 1
)

// RabbitMqClient consumes and publishes one durable queue. Requeued messages
// wait in a companion queue whose TTL dead-letters them back.
type RabbitMqClient struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	stopCh     chan struct{}
	stopOnce   sync.Once

	// deliveries maps receipts to in-flight deliveries until acked.
	mu         sync.Mutex
	deliveries map[string]amqp.Delivery
}

var _ QueueClient = (*RabbitMqClient)(nil)

func NewRabbitMqClient(url, user, password, queueName string, reQueueDelay time.Duration) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", user, password, url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := declareQueues(ch, queueName, reQueueDelay); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMqClient{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		stopCh:     make(chan struct{}),
		deliveries: make(map[string]amqp.Delivery),
	}, nil
}

func declareQueues(ch *amqp.Channel, queueName string, reQueueDelay time.Duration) error {
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return err
	}
	_, err := ch.QueueDeclare(queueName+delayedQueueSuffix, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queueName,
		"x-message-ttl":             reQueueDelay.Milliseconds(),
	})
	return err
}

func (c *RabbitMqClient) ReceiveMessages() (<-chan QueueMessage, error) {
	deliveries, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	output := make(chan QueueMessage)
	go func() {
		defer close(output)
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				receipt := strconv.FormatUint(d.DeliveryTag, 10)
				c.mu.Lock()
				c.deliveries[receipt] = d
				c.mu.Unlock()

				select {
				case output <- QueueMessage{
					Body:          string(d.Body),
					Receipt:       receipt,
					RetryAttempts: retryAttempts(d.Headers),
				}:
				case <-c.stopCh:
					return
				}
			case <-c.stopCh:
				return
			}
		}
	}()
	return output, nil
}

func retryAttempts(headers amqp.Table) int32 {
	switch v := headers[retryAttemptsHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}

// DeleteMessage acknowledges the delivery with the given receipt.
func (c *RabbitMqClient) DeleteMessage(receipt string) error {
	d, err := c.takeDelivery(receipt)
	if err != nil {
		return err
	}
	return d.Ack(false)
}

func (c *RabbitMqClient) takeDelivery(receipt string) (amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.deliveries[receipt]
	if !ok {
		return amqp.Delivery{}, fmt.Errorf("unknown receipt %s on queue %s", receipt, c.queueName)
	}
	delete(c.deliveries, receipt)
	return d, nil
}

func (c *RabbitMqClient) ReQueueMessage(ctx context.Context, message QueueMessage) error {
	err := c.publish(ctx, c.queueName+delayedQueueSuffix, message.Body, amqp.Table{
		retryAttemptsHeader: message.IncrementRetryAttempts(),
	})
	if err != nil {
		return err
	}
	return c.DeleteMessage(message.Receipt)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	return c.publish(ctx, c.queueName, messageBody, nil)
}

func (c *RabbitMqClient) publish(ctx context.Context, routingKey, body string, headers amqp.Table) error {
	return c.channel.PublishWithContext(ctx, "", routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
		Timestamp:    time.Now(),
		Body:         []byte(body),
	})
}

func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection for %s is closed", c.queueName)
	}
	if c.channel.IsClosed() {
		return fmt.Errorf("rabbitmq channel for %s is closed", c.queueName)
	}
	return nil
}

func (c *RabbitMqClient) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if chErr := c.channel.Close(); chErr != nil {
			log.Warn().Err(chErr).Str("queueName", c.queueName).Msg("failed to close channel")
		}
		err = c.connection.Close()
	})
	return err
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}
