package config

import (
	"fmt"
	"time"
)

const (
	defaultExecuteQueueName  = "hub_execute_queue"
	defaultOutboundQueueName = "hub_outbound_queue"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue_user"`
	QueuePassword          string        `mapstructure:"queue_password"`
	Url                    string        `mapstructure:"url"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	MsgMaxRetryAttempts    int32         `mapstructure:"msg_max_retry_attempts"`
	ReQueueDelayTime       time.Duration `mapstructure:"requeue_delay_time"`
	ExecuteQueueName       string        `mapstructure:"execute_queue_name"`
	OutboundQueueName      string        `mapstructure:"outbound_queue_name"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return fmt.Errorf("invalid queue processing timeout")
	}

	if cfg.MsgMaxRetryAttempts <= 0 {
		return fmt.Errorf("invalid queue message max retry attempts")
	}

	if cfg.ReQueueDelayTime < 0 {
		return fmt.Errorf("requeue delay time cannot be negative")
	}

	if cfg.ExecuteQueueName == "" {
		cfg.ExecuteQueueName = defaultExecuteQueueName
	}

	if cfg.OutboundQueueName == "" {
		cfg.OutboundQueueName = defaultOutboundQueueName
	}

	if cfg.ExecuteQueueName == cfg.OutboundQueueName {
		return fmt.Errorf("execute and outbound queues must differ")
	}

	return nil
}
