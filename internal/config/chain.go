package config

import (
	"errors"
	"net/url"
)

type ChainConfig struct {
	LcdURL string `mapstructure:"lcd-url"`
	// Timeout of a single LCD request, in milliseconds.
	Timeout      int    `mapstructure:"timeout"`
	MaxRetries   uint64 `mapstructure:"max-retries"`
	Bech32Prefix string `mapstructure:"bech32-prefix"`
	HubAddress   string `mapstructure:"hub-address"`
}

func (cfg *ChainConfig) Validate() error {
	if cfg.LcdURL == "" {
		return errors.New("lcd-url cannot be empty")
	}

	parsedURL, err := url.ParseRequestURI(cfg.LcdURL)
	if err != nil {
		return errors.New("invalid lcd-url")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("lcd-url must start with http or https")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	if cfg.Bech32Prefix == "" {
		return errors.New("bech32-prefix cannot be empty")
	}

	if cfg.HubAddress == "" {
		return errors.New("hub-address cannot be empty")
	}

	return nil
}
