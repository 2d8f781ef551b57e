package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// pegFeeOnMint is the fee taken from freshly minted bLuna while the bLuna
// rate is below the threshold: min(floor(mint*fee), supply+mint+requested-(bonded+amount)).
func pegFeeOnMint(params Parameters, state State, supply, requested, mint, amount sdkmath.Int) (sdkmath.Int, error) {
	if !state.ExchangeRate.LT(params.ErThreshold) {
		return sdkmath.ZeroInt(), nil
	}
	maxFee, err := mulDec(mint, params.PegRecoveryFee)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	issued, err := safeAdd(supply, mint)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	if issued, err = safeAdd(issued, requested); err != nil {
		return sdkmath.ZeroInt(), err
	}
	backed, err := safeAdd(state.TotalBondAmount, amount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return minInt(maxFee, saturatingSub(issued, backed)), nil
}

// pegFeeOnBurn is the fee taken from redeemed bLuna while the bLuna rate is
// below the threshold: min(floor(amount*fee), supply+requested-bonded).
func pegFeeOnBurn(params Parameters, state State, supply, requested, amount sdkmath.Int) (sdkmath.Int, error) {
	if !state.ExchangeRate.LT(params.ErThreshold) {
		return sdkmath.ZeroInt(), nil
	}
	maxFee, err := mulDec(amount, params.PegRecoveryFee)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	issued, err := safeAdd(supply, requested)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return minInt(maxFee, saturatingSub(issued, state.TotalBondAmount)), nil
}

func (h *Hub) bond(ctx context.Context, env Env, info MessageInfo, validator string, token Token) (*Response, error) {
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.assertNotPaused(params); err != nil {
		return nil, err
	}
	amount, err := singlePayment(info.Funds, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}
	if validator != "" {
		if err := h.assertWhitelisted(ctx, validator); err != nil {
			return nil, err
		}
	}

	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	tokenContract := cfg.BLunaTokenContract
	name := "bLuna token"
	if token == StLuna {
		tokenContract, name = cfg.StLunaTokenContract, "stLuna token"
	}
	tokenAddr, err := registered(tokenContract, name)
	if err != nil {
		return nil, err
	}

	state, _, err := h.refreshState(ctx, env)
	if err != nil {
		return nil, err
	}
	batch, err := h.loadBatch(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := h.tokenSupply(ctx, tokenContract)
	if err != nil {
		return nil, err
	}

	var mint sdkmath.Int
	switch token {
	case BLuna:
		if mint, err = divDec(amount, state.ExchangeRate); err != nil {
			return nil, err
		}
		fee, err := pegFeeOnMint(params, state, supply, batch.RequestedWithFee, mint, amount)
		if err != nil {
			return nil, err
		}
		mint = mint.Sub(fee)
		if state.TotalBondAmount, err = safeAdd(state.TotalBondAmount, amount); err != nil {
			return nil, err
		}
		state.updateBLunaRate(supply.Add(mint), batch.RequestedWithFee)
	case StLuna:
		if mint, err = divDec(amount, state.StLunaExchangeRate); err != nil {
			return nil, err
		}
		if state.TotalBondStLunaAmount, err = safeAdd(state.TotalBondStLunaAmount, amount); err != nil {
			return nil, err
		}
		state.updateStLunaRate(supply.Add(mint), batch.RequestedStLuna)
	default:
		return nil, errorsmod.Wrapf(ErrInvalidRequest, "unknown token %s", token)
	}
	if !mint.IsPositive() {
		return nil, errorsmod.Wrapf(ErrInvalidFunds, "bonding %s%s mints no %s", amount, params.UnderlyingCoinDenom, name)
	}

	delegateMsgs, delegated, err := h.delegate(ctx, env, params, validator, amount)
	if err != nil {
		return nil, err
	}
	mintMessage, err := mintMsg(tokenAddr, info.Sender, mint)
	if err != nil {
		return nil, err
	}
	registerMsgs, err := h.bootstrap(ctx, cfg, delegated)
	if err != nil {
		return nil, err
	}

	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}

	action := "mint"
	if token == StLuna {
		action = "mint_stluna"
	}
	return newResponse(action).
		addAttribute("from", info.Sender).
		addAttribute("bonded", amount.String()).
		addAttribute("minted", mint.String()).
		addMessages(delegateMsgs...).
		addMessages(mintMessage).
		addMessages(registerMsgs...), nil
}

// bondRewards restakes rewards the dispatcher sends back. Nothing is minted,
// so the stLuna exchange rate grows.
func (h *Hub) bondRewards(ctx context.Context, env Env, info MessageInfo) (*Response, error) {
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.assertNotPaused(params); err != nil {
		return nil, err
	}
	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	dispatcher, err := registered(cfg.RewardDispatcherContract, "reward dispatcher")
	if err != nil {
		return nil, err
	}
	if info.Sender != dispatcher {
		return nil, errorsmod.Wrapf(ErrUnauthorized, "%s is not the reward dispatcher", info.Sender)
	}
	amount, err := singlePayment(info.Funds, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}

	state, _, err := h.refreshState(ctx, env)
	if err != nil {
		return nil, err
	}
	batch, err := h.loadBatch(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := h.tokenSupply(ctx, cfg.StLunaTokenContract)
	if err != nil {
		return nil, err
	}
	if state.TotalBondStLunaAmount, err = safeAdd(state.TotalBondStLunaAmount, amount); err != nil {
		return nil, err
	}
	state.updateStLunaRate(supply, batch.RequestedStLuna)

	delegateMsgs, _, err := h.delegate(ctx, env, params, "", amount)
	if err != nil {
		return nil, err
	}
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}
	return newResponse("bond_rewards").
		addAttribute("from", info.Sender).
		addAttribute("bonded", amount.String()).
		addMessages(delegateMsgs...), nil
}

// bootstrap marks the first bond ever and asks the validator registry to
// register the validators it delegated to.
func (h *Hub) bootstrap(ctx context.Context, cfg Config, validators []string) ([]CosmosMsg, error) {
	done, err := h.Bootstrapped.Has(ctx)
	if err != nil || done {
		return nil, err
	}
	if err := h.Bootstrapped.Set(ctx, true); err != nil {
		return nil, err
	}
	if cfg.ValidatorsRegistryContract == nil {
		return nil, nil
	}
	msgs := make([]CosmosMsg, 0, len(validators))
	for _, val := range validators {
		msg, err := wasmExecute(*cfg.ValidatorsRegistryContract, RegistryExecuteMsg{
			AddValidator: &RegistryAddValidator{Validator: RegistryValidator{Address: val}},
		})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
