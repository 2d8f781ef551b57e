package hub

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
)

func (h *Hub) updateParams(ctx context.Context, info MessageInfo, msg UpdateParams) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	if msg.EpochPeriod != nil {
		params.EpochPeriod = *msg.EpochPeriod
	}
	if msg.UnbondingPeriod != nil {
		params.UnbondingPeriod = *msg.UnbondingPeriod
	}
	if msg.PegRecoveryFee != nil {
		params.PegRecoveryFee = *msg.PegRecoveryFee
	}
	if msg.ErThreshold != nil {
		params.ErThreshold = *msg.ErThreshold
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := h.Params.Set(ctx, params); err != nil {
		return nil, err
	}
	return newResponse("update_params"), nil
}

// updateConfig changes the owner and the registered contracts. Registering a
// reward dispatcher also points the staking rewards at it.
func (h *Hub) updateConfig(ctx context.Context, info MessageInfo, msg UpdateConfig) (*Response, error) {
	cfg, err := h.assertOwner(ctx, info.Sender)
	if err != nil {
		return nil, err
	}
	res := newResponse("update_config")

	fields := []struct {
		name   string
		value  *string
		target **string
	}{
		{"rewards_dispatcher_contract", msg.RewardsDispatcherContract, &cfg.RewardDispatcherContract},
		{"validators_registry_contract", msg.ValidatorsRegistryContract, &cfg.ValidatorsRegistryContract},
		{"bluna_token_contract", msg.BLunaTokenContract, &cfg.BLunaTokenContract},
		{"stluna_token_contract", msg.StLunaTokenContract, &cfg.StLunaTokenContract},
		{"airdrop_registry_contract", msg.AirdropRegistryContract, &cfg.AirdropRegistryContract},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := h.checkAddress(f.name, *f.value); err != nil {
			return nil, err
		}
		addr := *f.value
		*f.target = &addr
	}
	if msg.Owner != nil {
		if err := h.checkAddress("owner", *msg.Owner); err != nil {
			return nil, err
		}
		cfg.Creator = *msg.Owner
	}
	if msg.RewardsDispatcherContract != nil {
		res.addMessages(setWithdrawAddressMsg(*msg.RewardsDispatcherContract))
	}

	if err := h.Config.Set(ctx, cfg); err != nil {
		return nil, err
	}
	return res, nil
}

func (h *Hub) pause(ctx context.Context, info MessageInfo) (*Response, error) {
	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if info.Sender != cfg.Creator {
		guardian, err := h.Guardians.Has(ctx, info.Sender)
		if err != nil {
			return nil, err
		}
		if !guardian {
			return nil, errorsmod.Wrapf(ErrUnauthorized, "%s is neither the owner nor a guardian", info.Sender)
		}
	}
	return h.setPaused(ctx, true)
}

func (h *Hub) unpause(ctx context.Context, info MessageInfo) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	return h.setPaused(ctx, false)
}

func (h *Hub) setPaused(ctx context.Context, paused bool) (*Response, error) {
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	params.Paused = paused
	if err := h.Params.Set(ctx, params); err != nil {
		return nil, err
	}
	action := "pause_contracts"
	if !paused {
		action = "unpause_contracts"
	}
	return newResponse(action).addAttribute("paused", strconv.FormatBool(paused)), nil
}

func (h *Hub) addGuardians(ctx context.Context, info MessageInfo, msg AddGuardians) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	for _, addr := range msg.Addresses {
		if err := h.checkAddress("guardian", addr); err != nil {
			return nil, err
		}
		if err := h.Guardians.Set(ctx, addr); err != nil {
			return nil, err
		}
	}
	return newResponse("add_guardians").addAttribute("count", strconv.Itoa(len(msg.Addresses))), nil
}

func (h *Hub) removeGuardians(ctx context.Context, info MessageInfo, msg RemoveGuardians) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	for _, addr := range msg.Addresses {
		if err := h.Guardians.Remove(ctx, addr); err != nil {
			return nil, err
		}
	}
	return newResponse("remove_guardians").addAttribute("count", strconv.Itoa(len(msg.Addresses))), nil
}
