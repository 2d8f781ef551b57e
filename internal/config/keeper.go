package config

import (
	"errors"
	"time"
)

// KeeperConfig schedules the permissionless maintenance messages the service
// sends to the hub on its own.
type KeeperConfig struct {
	Enabled                   bool          `mapstructure:"enabled"`
	Sender                    string        `mapstructure:"sender"`
	CheckSlashingInterval     time.Duration `mapstructure:"check-slashing-interval"`
	UpdateGlobalIndexInterval time.Duration `mapstructure:"update-global-index-interval"`
	OutboxInterval            time.Duration `mapstructure:"outbox-interval"`
}

func (cfg *KeeperConfig) Validate() error {
	if cfg.OutboxInterval < time.Second {
		return errors.New("outbox-interval must be at least 1s")
	}

	if !cfg.Enabled {
		return nil
	}

	if cfg.Sender == "" {
		return errors.New("keeper sender cannot be empty")
	}

	if cfg.CheckSlashingInterval < time.Second {
		return errors.New("check-slashing-interval must be at least 1s")
	}

	if cfg.UpdateGlobalIndexInterval < time.Second {
		return errors.New("update-global-index-interval must be at least 1s")
	}

	return nil
}
