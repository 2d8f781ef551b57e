package config

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// HubConfig holds the parameters the hub is instantiated with when the
// service starts against an empty contract store.
type HubConfig struct {
	AutoInstantiate     bool   `mapstructure:"auto-instantiate"`
	Owner               string `mapstructure:"owner"`
	EpochPeriod         uint64 `mapstructure:"epoch-period"`
	UnbondingPeriod     uint64 `mapstructure:"unbonding-period"`
	UnderlyingCoinDenom string `mapstructure:"underlying-coin-denom"`
	RewardDenom         string `mapstructure:"reward-denom"`
	PegRecoveryFee      string `mapstructure:"peg-recovery-fee"`
	ErThreshold         string `mapstructure:"er-threshold"`
	Validator           string `mapstructure:"validator"`
}

func (cfg *HubConfig) Validate() error {
	if !cfg.AutoInstantiate {
		return nil
	}

	if cfg.Owner == "" {
		return errors.New("hub owner cannot be empty")
	}

	if cfg.UnderlyingCoinDenom == "" || cfg.RewardDenom == "" {
		return errors.New("hub denoms cannot be empty")
	}

	if _, err := cfg.PegRecoveryFeeDec(); err != nil {
		return err
	}

	if _, err := cfg.ErThresholdDec(); err != nil {
		return err
	}

	return nil
}

func (cfg *HubConfig) PegRecoveryFeeDec() (sdkmath.LegacyDec, error) {
	return parseDec("peg-recovery-fee", cfg.PegRecoveryFee)
}

func (cfg *HubConfig) ErThresholdDec() (sdkmath.LegacyDec, error) {
	return parseDec("er-threshold", cfg.ErThreshold)
}

func parseDec(field, value string) (sdkmath.LegacyDec, error) {
	dec, err := sdkmath.LegacyNewDecFromStr(value)
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return dec, nil
}
