package hub

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/liquid-staking-hub/internal/hub/reconcile"
)

func (h *Hub) hubBalance(ctx context.Context, env Env, denom string) (sdkmath.Int, error) {
	coin, err := h.querier.Balance(ctx, env.Contract.Address, denom)
	if err != nil {
		return sdkmath.ZeroInt(), errorsmod.Wrapf(ErrQuery, "balance of %s: %s", env.Contract.Address, err)
	}
	if coin.Amount.IsNil() {
		return sdkmath.ZeroInt(), nil
	}
	if err := checkUint128(coin.Amount); err != nil {
		return sdkmath.ZeroInt(), err
	}
	return coin.Amount, nil
}

// releaseBatches folds the balance change since the last withdrawal into
// the unbonded accumulator and finalizes every mature batch. What actually
// arrived is split over those batches in proportion to what they were owed,
// so the released amounts add up to the accumulator exactly. A negative
// accumulator releases nothing and is carried over.
func (h *Hub) releaseBatches(ctx context.Context, env Env, params Parameters, balance sdkmath.Int) (State, error) {
	state, err := h.loadState(ctx)
	if err != nil {
		return state, err
	}
	actual := state.ActualUnbondedAmount.Add(balance.Sub(state.PrevHubBalance))
	state.ActualUnbondedAmount = actual

	cutoff := elapsed(env.Block.Time, params.UnbondingPeriod)
	var (
		pending  []UnbondHistory
		entries  []reconcile.Entry
		nominals = map[uint64][2]sdkmath.Int{}
	)
	rng := new(collections.Range[uint64]).StartExclusive(state.LastProcessedBatch)
	err = h.UnbondHistory.Walk(ctx, rng, func(id uint64, history UnbondHistory) (bool, error) {
		if history.Time > cutoff || history.Released {
			return true, nil
		}
		bluna, stluna, err := history.nominal()
		if err != nil {
			return true, err
		}
		nominals[id] = [2]sdkmath.Int{bluna, stluna}
		pending = append(pending, history)
		entries = append(entries, reconcile.Entry{ID: id, Nominal: bluna.Add(stluna)})
		return false, nil
	})
	if err != nil || len(pending) == 0 {
		return state, err
	}

	distributable := actual
	if distributable.IsNegative() {
		distributable = sdkmath.ZeroInt()
	}
	results, err := reconcile.Distribute(entries, distributable)
	if err != nil {
		return state, errorsmod.Wrap(ErrInvalidRequest, err.Error())
	}

	released := sdkmath.ZeroInt()
	for i, result := range results {
		history := pending[i]
		nominal := nominals[result.ID]
		blunaFinal, stlunaFinal := reconcile.Split(result.Final, nominal[0], nominal[1])

		history.ReleasedAmount = blunaFinal
		history.StLunaReleasedAmount = stlunaFinal
		if !blunaFinal.Equal(nominal[0]) && history.Amount.IsPositive() {
			history.WithdrawRate = decFromRatio(blunaFinal, history.Amount)
		}
		if !stlunaFinal.Equal(nominal[1]) && history.StLunaAmount.IsPositive() {
			history.StLunaWithdrawRate = decFromRatio(stlunaFinal, history.StLunaAmount)
		}
		history.Released = true
		if err := h.UnbondHistory.Set(ctx, history.BatchID, history); err != nil {
			return state, err
		}
		state.LastProcessedBatch = history.BatchID
		released = released.Add(result.Final)

		h.logger.Debug().
			Uint64("batch_id", history.BatchID).
			Str("nominal", result.Nominal.String()).
			Str("released", result.Final.String()).
			Msg("released unbond batch")
	}
	state.ActualUnbondedAmount = actual.Sub(released)
	return state, nil
}

// claimShare returns what a request of amount tokens is owed from one side
// of a released batch, and whether the request is the last unsettled part
// of that side.
func claimShare(amount, total, claimed, released, paid sdkmath.Int) (sdkmath.Int, bool, error) {
	if !amount.IsPositive() {
		return sdkmath.ZeroInt(), false, nil
	}
	remaining := saturatingSub(released, paid)
	if claimed.Add(amount).GTE(total) {
		return remaining, true, nil
	}
	share, err := mulRatio(amount, released, total)
	if err != nil {
		return sdkmath.ZeroInt(), false, err
	}
	return minInt(share, remaining), false, nil
}

// settlement is one wait-list entry ready to be paid out.
type settlement struct {
	history UnbondHistory
	amount  sdkmath.Int
}

// finishedAmount sums what address can claim from released batches. A
// request whose pro rata share rounds to zero stays queued until it becomes
// the last claimant of its batch, so every batch pays out exactly its
// released amount.
func (h *Hub) finishedAmount(ctx context.Context, address string) (sdkmath.Int, []settlement, error) {
	total := sdkmath.ZeroInt()
	var settled []settlement
	rng := collections.NewPrefixedPairRange[string, uint64](address)
	err := h.UnbondWaitList.Walk(ctx, rng, func(key collections.Pair[string, uint64], entry UnbondWaitEntity) (bool, error) {
		history, err := h.UnbondHistory.Get(ctx, key.K2())
		if errors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return true, err
		}
		if !history.Released {
			return false, nil
		}
		history.fillClaims()

		bluna, blunaLast, err := claimShare(orZero(entry.BLunaAmount), history.Amount,
			history.ClaimedAmount, history.ReleasedAmount, history.PaidAmount)
		if err != nil {
			return true, err
		}
		stluna, stlunaLast, err := claimShare(orZero(entry.StLunaAmount), history.StLunaAmount,
			history.StLunaClaimedAmount, history.StLunaReleasedAmount, history.StLunaPaidAmount)
		if err != nil {
			return true, err
		}
		amount := bluna.Add(stluna)
		if amount.IsZero() && !blunaLast && !stlunaLast {
			return false, nil
		}

		history.ClaimedAmount = history.ClaimedAmount.Add(orZero(entry.BLunaAmount))
		history.PaidAmount = history.PaidAmount.Add(bluna)
		history.StLunaClaimedAmount = history.StLunaClaimedAmount.Add(orZero(entry.StLunaAmount))
		history.StLunaPaidAmount = history.StLunaPaidAmount.Add(stluna)
		if total, err = safeAdd(total, amount); err != nil {
			return true, err
		}
		settled = append(settled, settlement{history: history, amount: amount})
		return false, nil
	})
	return total, settled, err
}

func (h *Hub) withdrawUnbonded(ctx context.Context, env Env, info MessageInfo) (*Response, error) {
	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := h.hubBalance(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}
	state, err := h.releaseBatches(ctx, env, params, balance)
	if err != nil {
		return nil, err
	}

	amount, settled, err := h.finishedAmount(ctx, info.Sender)
	if err != nil {
		return nil, err
	}
	if len(settled) == 0 {
		return nil, errorsmod.Wrapf(ErrNothingToWithdraw, "No withdrawable %s assets are available yet", params.UnderlyingCoinDenom)
	}
	for _, s := range settled {
		if err := h.UnbondWaitList.Remove(ctx, collections.Join(info.Sender, s.history.BatchID)); err != nil {
			return nil, err
		}
		if err := h.UnbondHistory.Set(ctx, s.history.BatchID, s.history); err != nil {
			return nil, err
		}
	}

	if state.PrevHubBalance, err = safeSub(balance, amount); err != nil {
		return nil, err
	}
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}

	res := newResponse("finish_burn").
		addAttribute("from", env.Contract.Address).
		addAttribute("to", info.Sender).
		addAttribute("amount", amount.String())
	// the last claimant of a fully slashed batch has nothing to receive
	if amount.IsPositive() {
		res.addMessages(bankSend(info.Sender, NewCoin(params.UnderlyingCoinDenom, amount)))
	}
	return res, nil
}
