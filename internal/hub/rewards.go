package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"
)

// updateGlobalIndex withdraws the rewards of every delegation to the reward
// dispatcher and asks it to swap and distribute them.
func (h *Hub) updateGlobalIndex(ctx context.Context, env Env, msg UpdateGlobalIndex) (*Response, error) {
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

	res := newResponse("update_global_index")

	delegations, _, err := h.liveDelegations(ctx, env, params.UnderlyingCoinDenom)
	if err != nil {
		return nil, err
	}
	for _, d := range delegations {
		res.addMessages(withdrawRewardMsg(d.Validator))
	}

	if len(msg.AirdropHooks) > 0 {
		registry, err := registered(cfg.AirdropRegistryContract, "airdrop registry")
		if err != nil {
			return nil, err
		}
		for _, hook := range msg.AirdropHooks {
			res.addMessages(rawWasmExecute(registry, hook))
		}
	}

	state, err := h.loadState(ctx)
	if err != nil {
		return nil, err
	}
	swap, err := wasmExecute(dispatcher, RewardExecuteMsg{SwapToRewardDenom: &SwapToRewardDenom{
		BLunaTotalBonded:  state.TotalBondAmount,
		StLunaTotalBonded: state.TotalBondStLunaAmount,
	}})
	if err != nil {
		return nil, err
	}
	dispatch, err := wasmExecute(dispatcher, RewardExecuteMsg{DispatchRewards: &struct{}{}})
	if err != nil {
		return nil, err
	}
	res.addMessages(swap, dispatch)

	state.LastIndexModification = env.Block.Time
	if err := h.State.Set(ctx, state); err != nil {
		return nil, err
	}
	return res, nil
}

// claimAirdrops forwards a claim to an airdrop contract. Only the owner and
// the airdrop registry may trigger it.
func (h *Hub) claimAirdrops(ctx context.Context, info MessageInfo, msg ClaimAirdrops) (*Response, error) {
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
	isRegistry := cfg.AirdropRegistryContract != nil && info.Sender == *cfg.AirdropRegistryContract
	if info.Sender != cfg.Creator && !isRegistry {
		return nil, errorsmod.Wrapf(ErrUnauthorized, "%s may not claim airdrops", info.Sender)
	}
	if err := h.checkAddress("airdrop_contract", msg.AirdropContract); err != nil {
		return nil, err
	}
	if len(msg.ClaimMsg) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidRequest, "claim_msg must be set")
	}

	res := newResponse("claim_airdrop").
		addAttribute("airdrop_contract", msg.AirdropContract).
		addMessages(rawWasmExecute(msg.AirdropContract, msg.ClaimMsg))
	if msg.SwapContract != "" {
		if err := h.checkAddress("swap_contract", msg.SwapContract); err != nil {
			return nil, err
		}
		if len(msg.SwapMsg) == 0 {
			return nil, errorsmod.Wrap(ErrInvalidRequest, "swap_msg must be set along with swap_contract")
		}
		res.addMessages(rawWasmExecute(msg.SwapContract, msg.SwapMsg))
	}
	return res, nil
}
