package hub

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// receive handles the callback of a token contract that got derivative
// tokens sent to the hub.
func (h *Hub) receive(ctx context.Context, env Env, info MessageInfo, msg Cw20ReceiveMsg) (*Response, error) {
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

	var token Token
	switch {
	case cfg.BLunaTokenContract != nil && info.Sender == *cfg.BLunaTokenContract:
		token = BLuna
	case cfg.StLunaTokenContract != nil && info.Sender == *cfg.StLunaTokenContract:
		token = StLuna
	default:
		return nil, errorsmod.Wrapf(ErrUnauthorized, "%s is not a registered token contract", info.Sender)
	}
	if err := checkUint128(msg.Amount); err != nil {
		return nil, err
	}
	if !msg.Amount.IsPositive() {
		return nil, errorsmod.Wrap(ErrInvalidFunds, "amount must be positive")
	}
	if err := h.checkAddress("sender", msg.Sender); err != nil {
		return nil, err
	}

	hook, err := parseHookMsg(msg.Msg)
	if err != nil {
		return nil, err
	}
	switch {
	case hook.Unbond != nil:
		return h.unbond(ctx, env, params, cfg, token, msg.Sender, msg.Amount)
	default:
		return h.convert(ctx, env, params, cfg, token, msg.Sender, msg.Amount)
	}
}

// unbond queues a redemption in the open batch and closes the batch when the
// epoch has elapsed. The received tokens are always burnt in full.
func (h *Hub) unbond(ctx context.Context, env Env, params Parameters, cfg Config, token Token, sender string, amount sdkmath.Int) (*Response, error) {
	state, _, err := h.refreshState(ctx, env)
	if err != nil {
		return nil, err
	}
	batch, err := h.loadBatch(ctx)
	if err != nil {
		return nil, err
	}

	tokenContract := cfg.BLunaTokenContract
	if token == StLuna {
		tokenContract = cfg.StLunaTokenContract
	}
	supply, err := h.tokenSupply(ctx, tokenContract)
	if err != nil {
		return nil, err
	}
	remaining, err := safeSub(supply, amount)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrUnderflow, "burning %s exceeds the %s supply %s", amount, token, supply)
	}

	request := UnbondWaitEntity{BLunaAmount: sdkmath.ZeroInt(), StLunaAmount: sdkmath.ZeroInt()}
	switch token {
	case BLuna:
		fee, err := pegFeeOnBurn(params, state, supply, batch.RequestedWithFee, amount)
		if err != nil {
			return nil, err
		}
		request.BLunaAmount = amount.Sub(fee)
		if batch.RequestedWithFee, err = safeAdd(batch.RequestedWithFee, request.BLunaAmount); err != nil {
			return nil, err
		}
		state.updateBLunaRate(remaining, batch.RequestedWithFee)
	case StLuna:
		request.StLunaAmount = amount
		if batch.RequestedStLuna, err = safeAdd(batch.RequestedStLuna, amount); err != nil {
			return nil, err
		}
		state.updateStLunaRate(remaining, batch.RequestedStLuna)
	}
	if err := h.mergeWaitEntry(ctx, sender, batch.ID, request); err != nil {
		return nil, err
	}

	res := newResponse("burn").
		addAttribute("from", sender).
		addAttribute("burnt_amount", amount.String()).
		addAttribute("unbonded_amount", request.BLunaAmount.Add(request.StLunaAmount).String())

	if elapsed(env.Block.Time, state.LastUnbondedTime) >= params.EpochPeriod {
		undelegateMsgs, err := h.closeBatch(ctx, env, params, &state, &batch)
		if err != nil {
			return nil, err
		}
		res.addMessages(undelegateMsgs...)
	}

	if err := h.CurrentBatch.Set(ctx, batch); err != nil {
		return nil, err
	}
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}

	burn, err := burnMsg(*tokenContract, amount)
	if err != nil {
		return nil, err
	}
	return res.addMessages(burn), nil
}

func elapsed(now, since uint64) uint64 {
	if now < since {
		return 0
	}
	return now - since
}

func (h *Hub) mergeWaitEntry(ctx context.Context, sender string, batchID uint64, request UnbondWaitEntity) error {
	key := collections.Join(sender, batchID)
	entry, err := h.UnbondWaitList.Get(ctx, key)
	switch {
	case errors.Is(err, collections.ErrNotFound):
		entry = UnbondWaitEntity{BLunaAmount: sdkmath.ZeroInt(), StLunaAmount: sdkmath.ZeroInt()}
	case err != nil:
		return err
	}
	if entry.BLunaAmount, err = safeAdd(entry.BLunaAmount, request.BLunaAmount); err != nil {
		return err
	}
	if entry.StLunaAmount, err = safeAdd(entry.StLunaAmount, request.StLunaAmount); err != nil {
		return err
	}
	return h.UnbondWaitList.Set(ctx, key, entry)
}

// closeBatch undelegates the underlying value of the open batch, archives it
// and opens the next one.
func (h *Hub) closeBatch(ctx context.Context, env Env, params Parameters, state *State, batch *CurrentBatch) ([]CosmosMsg, error) {
	blunaAmount, err := mulDec(batch.RequestedWithFee, state.ExchangeRate)
	if err != nil {
		return nil, err
	}
	stlunaAmount, err := mulDec(batch.RequestedStLuna, state.StLunaExchangeRate)
	if err != nil {
		return nil, err
	}
	total, err := safeAdd(blunaAmount, stlunaAmount)
	if err != nil {
		return nil, err
	}
	if total.Equal(sdkmath.OneInt()) {
		return nil, errorsmod.Wrapf(ErrDegenerateUndelegation, "batch %d undelegates a single unit", batch.ID)
	}

	msgs, err := h.undelegate(ctx, env, params, total, batch.ID)
	if err != nil {
		return nil, err
	}
	if state.TotalBondAmount, err = safeSub(state.TotalBondAmount, blunaAmount); err != nil {
		return nil, err
	}
	if state.TotalBondStLunaAmount, err = safeSub(state.TotalBondStLunaAmount, stlunaAmount); err != nil {
		return nil, err
	}

	history := UnbondHistory{
		BatchID:                   batch.ID,
		Time:                      env.Block.Time,
		Amount:                    batch.RequestedWithFee,
		AppliedExchangeRate:       state.ExchangeRate,
		WithdrawRate:              state.ExchangeRate,
		StLunaAmount:              batch.RequestedStLuna,
		StLunaAppliedExchangeRate: state.StLunaExchangeRate,
		StLunaWithdrawRate:        state.StLunaExchangeRate,
		ReleasedAmount:            sdkmath.ZeroInt(),
		StLunaReleasedAmount:      sdkmath.ZeroInt(),
		ClaimedAmount:             sdkmath.ZeroInt(),
		PaidAmount:                sdkmath.ZeroInt(),
		StLunaClaimedAmount:       sdkmath.ZeroInt(),
		StLunaPaidAmount:          sdkmath.ZeroInt(),
	}
	if err := h.UnbondHistory.Set(ctx, batch.ID, history); err != nil {
		return nil, err
	}

	h.logger.Info().
		Uint64("batch_id", batch.ID).
		Str("undelegated", total.String()).
		Int("validators", len(msgs)).
		Msg("closed unbond batch")

	*batch = newBatch(batch.ID + 1)
	state.LastUnbondedTime = env.Block.Time
	return msgs, nil
}
