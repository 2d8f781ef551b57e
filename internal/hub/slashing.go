package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/liquid-staking-hub/internal/hub/selection"
)

// liveDelegations returns the hub's delegations in the underlying denom as
// reported by the chain.
func (h *Hub) liveDelegations(ctx context.Context, env Env, denom string) ([]selection.Delegation, sdkmath.Int, error) {
	delegations, err := h.querier.AllDelegations(ctx, env.Contract.Address)
	if err != nil {
		return nil, sdkmath.ZeroInt(), errorsmod.Wrapf(ErrQuery, "delegations of %s: %s", env.Contract.Address, err)
	}
	total := sdkmath.ZeroInt()
	out := make([]selection.Delegation, 0, len(delegations))
	for _, d := range delegations {
		if d.Amount.Denom != denom || d.Amount.Amount.IsNil() || !d.Amount.Amount.IsPositive() {
			continue
		}
		out = append(out, selection.Delegation{Validator: d.Validator, Amount: d.Amount.Amount})
		if total, err = safeAdd(total, d.Amount.Amount); err != nil {
			return nil, sdkmath.ZeroInt(), err
		}
	}
	return out, total, nil
}

// refreshState compares the bonded totals the hub believes in with the
// chain's live delegations. When less is delegated than believed, both sides
// are scaled down pro rata and both exchange rates are recomputed. The
// returned state is not saved.
func (h *Hub) refreshState(ctx context.Context, env Env) (State, bool, error) {
	state, err := h.loadState(ctx)
	if err != nil {
		return state, false, err
	}
	params, err := h.loadParams(ctx)
	if err != nil {
		return state, false, err
	}

	_, actual, err := h.liveDelegations(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return state, false, err
	}
	believed := state.totalBonded()
	if actual.GTE(believed) {
		return state, false, nil
	}

	blunaShare := decFromRatio(state.TotalBondAmount, believed)
	blunaBonded, err := mulDec(actual, blunaShare)
	if err != nil {
		return state, false, err
	}
	stlunaBonded, err := safeSub(actual, blunaBonded)
	if err != nil {
		return state, false, err
	}

	h.logger.Info().
		Str("believed", believed.String()).
		Str("actual", actual.String()).
		Msg("slashing detected, rescaling bonded amounts")

	state.TotalBondAmount = blunaBonded
	state.TotalBondStLunaAmount = stlunaBonded
	if err := h.recomputeRates(ctx, &state); err != nil {
		return state, false, err
	}
	return state, true, nil
}

// recomputeRates refreshes both exchange rates from the current token
// supplies and the amounts requested in the open batch.
func (h *Hub) recomputeRates(ctx context.Context, state *State) error {
	cfg, err := h.loadConfig(ctx)
	if err != nil {
		return err
	}
	batch, err := h.loadBatch(ctx)
	if err != nil {
		return err
	}
	blunaSupply, err := h.tokenSupply(ctx, cfg.BLunaTokenContract)
	if err != nil {
		return err
	}
	stlunaSupply, err := h.tokenSupply(ctx, cfg.StLunaTokenContract)
	if err != nil {
		return err
	}
	state.updateBLunaRate(blunaSupply, batch.RequestedWithFee)
	state.updateStLunaRate(stlunaSupply, batch.RequestedStLuna)
	return nil
}

func (h *Hub) checkSlashing(ctx context.Context, env Env) (*Response, error) {
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.assertNotPaused(params); err != nil {
		return nil, err
	}
	state, _, err := h.refreshState(ctx, env)
	if err != nil {
		return nil, err
	}
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}
	return newResponse("check_slashing").
		addAttribute("bluna_exchange_rate", state.ExchangeRate.String()).
		addAttribute("stluna_exchange_rate", state.StLunaExchangeRate.String()), nil
}
