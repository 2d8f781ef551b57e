package hub

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/liquid-staking-hub/internal/hub/selection"
)

func (h *Hub) assertWhitelisted(ctx context.Context, validator string) error {
	ok, err := h.Validators.Has(ctx, validator)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrapf(ErrUnknownValidator, "%s is not whitelisted", validator)
	}
	return nil
}

func (h *Hub) whitelist(ctx context.Context) ([]Validator, error) {
	out := make([]Validator, 0)
	err := h.Validators.Walk(ctx, nil, func(_ string, v Validator) (bool, error) {
		out = append(out, v)
		return false, nil
	})
	return out, err
}

// whitelistSnapshot pairs every whitelisted validator with its live stake.
func (h *Hub) whitelistSnapshot(ctx context.Context, live []selection.Delegation) ([]selection.Delegation, error) {
	held := make(map[string]sdkmath.Int, len(live))
	for _, d := range live {
		held[d.Validator] = d.Amount
	}
	validators, err := h.whitelist(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]selection.Delegation, len(validators))
	for i, v := range validators {
		amount, ok := held[v.Address]
		if !ok {
			amount = sdkmath.ZeroInt()
		}
		snapshot[i] = selection.Delegation{Validator: v.Address, Amount: amount}
	}
	return snapshot, nil
}

// recordDelegated refreshes the advisory stake cache of a whitelisted
// validator. Validators outside the whitelist are ignored.
func (h *Hub) recordDelegated(ctx context.Context, validator string, amount sdkmath.Int) error {
	v, err := h.Validators.Get(ctx, validator)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil
		}
		return err
	}
	v.TotalDelegated = amount
	return h.Validators.Set(ctx, validator, v)
}

// delegate builds the delegate messages for amount. With an explicit
// validator everything goes there, otherwise the amount is levelled across
// the whitelist. It returns the validators that receive stake.
func (h *Hub) delegate(ctx context.Context, env Env, params Parameters, validator string, amount sdkmath.Int) ([]CosmosMsg, []string, error) {
	live, _, err := h.liveDelegations(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := h.whitelistSnapshot(ctx, live)
	if err != nil {
		return nil, nil, err
	}

	var allocations []selection.Allocation
	if validator != "" {
		allocations = []selection.Allocation{{Validator: validator, Amount: amount}}
	} else {
		allocations, err = selection.ForDelegation(snapshot, amount)
		if errors.Is(err, selection.ErrNoValidators) {
			return nil, nil, errorsmod.Wrap(ErrInvalidRequest, "no whitelisted validators to delegate to")
		}
		if err != nil {
			return nil, nil, errorsmod.Wrap(ErrInvalidRequest, err.Error())
		}
	}

	current := make(map[string]sdkmath.Int, len(snapshot))
	for _, d := range snapshot {
		current[d.Validator] = d.Amount
	}
	msgs := make([]CosmosMsg, 0, len(allocations))
	validators := make([]string, 0, len(allocations))
	for _, a := range allocations {
		msgs = append(msgs, delegateMsg(a.Validator, NewCoin(params.UnderlyingCoinDenom, a.Amount)))
		validators = append(validators, a.Validator)
		after := a.Amount
		if held, ok := current[a.Validator]; ok {
			after = held.Add(a.Amount)
		}
		if err := h.recordDelegated(ctx, a.Validator, after); err != nil {
			return nil, nil, err
		}
	}
	return msgs, validators, nil
}

// undelegate builds the undelegate messages for a closing batch.
func (h *Hub) undelegate(ctx context.Context, env Env, params Parameters, amount sdkmath.Int, batchID uint64) ([]CosmosMsg, error) {
	live, _, err := h.liveDelegations(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}
	allocations, err := selection.ForUndelegation(live, amount, batchID)
	if err != nil {
		return nil, errorsmod.Wrap(ErrUndelegationShortfall, err.Error())
	}

	held := make(map[string]sdkmath.Int, len(live))
	for _, d := range live {
		held[d.Validator] = d.Amount
	}
	msgs := make([]CosmosMsg, 0, len(allocations))
	for _, a := range allocations {
		msgs = append(msgs, undelegateMsg(a.Validator, NewCoin(params.UnderlyingCoinDenom, a.Amount)))
		if err := h.recordDelegated(ctx, a.Validator, held[a.Validator].Sub(a.Amount)); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

func (h *Hub) registerValidator(ctx context.Context, info MessageInfo, msg RegisterValidator) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if err := h.checkAddress("validator", msg.Validator); err != nil {
		return nil, err
	}
	exists, err := h.Validators.Has(ctx, msg.Validator)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := h.Validators.Set(ctx, msg.Validator, Validator{Address: msg.Validator, TotalDelegated: sdkmath.ZeroInt()}); err != nil {
			return nil, err
		}
	}
	return newResponse("register_validator").addAttribute("validator", msg.Validator), nil
}

// deregisterValidator removes a validator from the whitelist and moves its
// stake to the remaining validators. Rewards are harvested first since a
// redelegation withdraws them.
func (h *Hub) deregisterValidator(ctx context.Context, env Env, info MessageInfo, msg DeregisterValidator) (*Response, error) {
	if _, err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if err := h.assertWhitelisted(ctx, msg.Validator); err != nil {
		return nil, err
	}
	validators, err := h.whitelist(ctx)
	if err != nil {
		return nil, err
	}
	if len(validators) <= 1 {
		return nil, errorsmod.Wrapf(ErrLastValidator, "%s is the only whitelisted validator", msg.Validator)
	}
	if err := h.Validators.Remove(ctx, msg.Validator); err != nil {
		return nil, err
	}

	res := newResponse("de_register_validator").addAttribute("validator", msg.Validator)

	params, err := h.loadParams(ctx)
	if err != nil {
		return nil, err
	}
	delegation, err := h.querier.Delegation(ctx, env.Contract.Address, msg.Validator)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrQuery, "delegation to %s: %s", msg.Validator, err)
	}
	if delegation == nil || delegation.Amount.Denom != params.UnderlyingCoinDenom || !delegation.Amount.Amount.IsPositive() {
		return res, nil
	}

	harvest, err := wasmExecute(env.Contract.Address, ExecuteMsg{UpdateGlobalIndex: &UpdateGlobalIndex{}})
	if err != nil {
		return nil, err
	}
	res.addMessages(harvest)

	live, _, err := h.liveDelegations(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}
	snapshot, err := h.whitelistSnapshot(ctx, live)
	if err != nil {
		return nil, err
	}
	moves, err := selection.ForRedelegation(msg.Validator, snapshot, delegation.Amount.Amount)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidRequest, err.Error())
	}
	current := make(map[string]sdkmath.Int, len(snapshot))
	for _, d := range snapshot {
		current[d.Validator] = d.Amount
	}
	for _, m := range moves {
		res.addMessages(redelegateMsg(m.Src, m.Dst, NewCoin(params.UnderlyingCoinDenom, m.Amount)))
		if err := h.recordDelegated(ctx, m.Dst, current[m.Dst].Add(m.Amount)); err != nil {
			return nil, err
		}
	}
	return res, nil
}
