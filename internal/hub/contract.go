package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// Instantiate stores the initial configuration. Funds attached in the
// underlying denom are an initial deposit: they are delegated to the given
// validator without minting anything.
func (h *Hub) Instantiate(ctx context.Context, env Env, info MessageInfo, msg InstantiateMsg) (*Response, error) {
	var res *Response
	err := h.atomic(ctx, func(ctx context.Context) error {
		var err error
		res, err = h.instantiate(ctx, env, info, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (h *Hub) instantiate(ctx context.Context, env Env, info MessageInfo, msg InstantiateMsg) (*Response, error) {
	exists, err := h.Config.Has(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInstantiated
	}
	if err := h.checkAddress("sender", info.Sender); err != nil {
		return nil, err
	}

	params := Parameters{
		EpochPeriod:         msg.EpochPeriod,
		UnderlyingCoinDenom: msg.UnderlyingCoinDenom,
		UnbondingPeriod:     msg.UnbondingPeriod,
		PegRecoveryFee:      msg.PegRecoveryFee,
		ErThreshold:         msg.ErThreshold,
		RewardDenom:         msg.RewardDenom,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cfg := Config{Creator: info.Sender}
	state := newState(env.Block.Time)

	for _, set := range []func() error{
		func() error { return h.Config.Set(ctx, cfg) },
		func() error { return h.Params.Set(ctx, params) },
		func() error { return h.CurrentBatch.Set(ctx, newBatch(1)) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}

	res := newResponse("instantiate").addAttribute("owner", info.Sender)
	if msg.Validator != "" {
		if err := h.checkAddress("validator", msg.Validator); err != nil {
			return nil, err
		}
		if err := h.Validators.Set(ctx, msg.Validator, Validator{Address: msg.Validator, TotalDelegated: sdkmath.ZeroInt()}); err != nil {
			return nil, err
		}
	}

	deposit := info.Funds.AmountOf(params.UnderlyingCoinDenom)
	if deposit.IsPositive() {
		if msg.Validator == "" {
			return nil, errorsmod.Wrap(ErrInvalidRequest, "an initial deposit needs a validator")
		}
		if err := checkUint128(deposit); err != nil {
			return nil, err
		}
		state.TotalBondAmount = deposit
		if err := h.Validators.Set(ctx, msg.Validator, Validator{Address: msg.Validator, TotalDelegated: deposit}); err != nil {
			return nil, err
		}
		registerMsgs, err := h.bootstrap(ctx, cfg, []string{msg.Validator})
		if err != nil {
			return nil, err
		}
		res.addMessages(delegateMsg(msg.Validator, NewCoin(params.UnderlyingCoinDenom, deposit))).
			addMessages(registerMsgs...).
			addAttribute("initial_deposit", deposit.String())
	}

	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}
	return res, nil
}

// Execute runs one message atomically: either every write lands and the
// returned messages must be dispatched, or nothing changed.
func (h *Hub) Execute(ctx context.Context, env Env, info MessageInfo, msg ExecuteMsg) (*Response, error) {
	name, err := msg.Name()
	if err != nil {
		return nil, err
	}
	var res *Response
	err = h.atomic(ctx, func(ctx context.Context) error {
		var err error
		res, err = h.dispatch(ctx, env, info, msg)
		return err
	})
	if err != nil {
		h.logger.Debug().Err(err).Str("msg", name).Str("sender", info.Sender).Msg("execution rejected")
		return nil, err
	}
	return res, nil
}

func (h *Hub) dispatch(ctx context.Context, env Env, info MessageInfo, msg ExecuteMsg) (*Response, error) {
	switch {
	case msg.Bond != nil:
		return h.bond(ctx, env, info, msg.Bond.Validator, BLuna)
	case msg.BondForStLuna != nil:
		return h.bond(ctx, env, info, "", StLuna)
	case msg.BondRewards != nil:
		return h.bondRewards(ctx, env, info)
	case msg.Receive != nil:
		return h.receive(ctx, env, info, *msg.Receive)
	case msg.UpdateGlobalIndex != nil:
		return h.updateGlobalIndex(ctx, env, *msg.UpdateGlobalIndex)
	case msg.WithdrawUnbonded != nil:
		return h.withdrawUnbonded(ctx, env, info)
	case msg.CheckSlashing != nil:
		return h.checkSlashing(ctx, env)
	case msg.UpdateParams != nil:
		return h.updateParams(ctx, info, *msg.UpdateParams)
	case msg.UpdateConfig != nil:
		return h.updateConfig(ctx, info, *msg.UpdateConfig)
	case msg.RegisterValidator != nil:
		return h.registerValidator(ctx, info, *msg.RegisterValidator)
	case msg.DeregisterValidator != nil:
		return h.deregisterValidator(ctx, env, info, *msg.DeregisterValidator)
	case msg.ClaimAirdrops != nil:
		return h.claimAirdrops(ctx, info, *msg.ClaimAirdrops)
	case msg.PauseContracts != nil:
		return h.pause(ctx, info)
	case msg.UnpauseContracts != nil:
		return h.unpause(ctx, info)
	case msg.AddGuardians != nil:
		return h.addGuardians(ctx, info, *msg.AddGuardians)
	case msg.RemoveGuardians != nil:
		return h.removeGuardians(ctx, info, *msg.RemoveGuardians)
	}
	return nil, errorsmod.Wrap(ErrInvalidRequest, "unknown execute message")
}
