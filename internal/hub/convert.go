package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// convert swaps one derivative token for the other at their exchange rates.
// The underlying value moves between the two bonded totals; nothing is
// delegated or undelegated.
func (h *Hub) convert(ctx context.Context, env Env, params Parameters, cfg Config, from Token, sender string, amount sdkmath.Int) (*Response, error) {
	blunaAddr, err := registered(cfg.BLunaTokenContract, "bLuna token")
	if err != nil {
		return nil, err
	}
	stlunaAddr, err := registered(cfg.StLunaTokenContract, "stLuna token")
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
	blunaSupply, err := h.tokenSupply(ctx, cfg.BLunaTokenContract)
	if err != nil {
		return nil, err
	}
	stlunaSupply, err := h.tokenSupply(ctx, cfg.StLunaTokenContract)
	if err != nil {
		return nil, err
	}

	var (
		minted, denomEquiv   sdkmath.Int
		mintToken, burnToken string
	)
	switch from {
	case BLuna:
		fee, err := pegFeeOnBurn(params, state, blunaSupply, batch.RequestedWithFee, amount)
		if err != nil {
			return nil, err
		}
		if denomEquiv, err = mulDec(amount.Sub(fee), state.ExchangeRate); err != nil {
			return nil, err
		}
		if minted, err = divDec(denomEquiv, state.StLunaExchangeRate); err != nil {
			return nil, err
		}
		if state.TotalBondAmount, err = safeSub(state.TotalBondAmount, denomEquiv); err != nil {
			return nil, err
		}
		if state.TotalBondStLunaAmount, err = safeAdd(state.TotalBondStLunaAmount, denomEquiv); err != nil {
			return nil, err
		}
		if blunaSupply, err = safeSub(blunaSupply, amount); err != nil {
			return nil, err
		}
		stlunaSupply = stlunaSupply.Add(minted)
		mintToken, burnToken = stlunaAddr, blunaAddr
	case StLuna:
		if denomEquiv, err = mulDec(amount, state.StLunaExchangeRate); err != nil {
			return nil, err
		}
		if minted, err = divDec(denomEquiv, state.ExchangeRate); err != nil {
			return nil, err
		}
		fee, err := pegFeeOnMint(params, state, blunaSupply, batch.RequestedWithFee, minted, denomEquiv)
		if err != nil {
			return nil, err
		}
		minted = minted.Sub(fee)
		if state.TotalBondAmount, err = safeAdd(state.TotalBondAmount, denomEquiv); err != nil {
			return nil, err
		}
		if state.TotalBondStLunaAmount, err = safeSub(state.TotalBondStLunaAmount, denomEquiv); err != nil {
			return nil, err
		}
		if stlunaSupply, err = safeSub(stlunaSupply, amount); err != nil {
			return nil, err
		}
		blunaSupply = blunaSupply.Add(minted)
		mintToken, burnToken = blunaAddr, stlunaAddr
	}
	if !minted.IsPositive() {
		return nil, errorsmod.Wrapf(ErrInvalidFunds, "converting %s %s mints nothing", amount, from)
	}

	state.updateBLunaRate(blunaSupply, batch.RequestedWithFee)
	state.updateStLunaRate(stlunaSupply, batch.RequestedStLuna)
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}

	mint, err := mintMsg(mintToken, sender, minted)
	if err != nil {
		return nil, err
	}
	burn, err := burnMsg(burnToken, amount)
	if err != nil {
		return nil, err
	}
	return newResponse("convert").
		addAttribute("from", sender).
		addAttribute("denom_equiv", denomEquiv.String()).
		addAttribute("burnt_amount", amount.String()).
		addAttribute("minted_amount", minted.String()).
		addMessages(mint, burn), nil
}
