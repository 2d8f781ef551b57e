package hub

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

const (
	DefaultHistoryLimit uint32 = 10
	MaxHistoryLimit     uint32 = 30
)

func (h *Hub) QueryConfig(ctx context.Context) (Config, error) {
	return h.loadConfig(ctx)
}

func (h *Hub) QueryState(ctx context.Context) (State, error) {
	return h.loadState(ctx)
}

func (h *Hub) QueryCurrentBatch(ctx context.Context) (CurrentBatch, error) {
	return h.loadBatch(ctx)
}

func (h *Hub) QueryParameters(ctx context.Context) (Parameters, error) {
	return h.loadParams(ctx)
}

// QueryWithdrawableUnbonded reports what address could withdraw right now.
// Batch releases are simulated against the current balance and block time
// and then thrown away.
func (h *Hub) QueryWithdrawableUnbonded(ctx context.Context, env Env, address string) (WithdrawableUnbondedResponse, error) {
	res := WithdrawableUnbondedResponse{Withdrawable: sdkmath.ZeroInt()}
	err := h.simulate(ctx, func(ctx context.Context) error {
		params, err := h.loadParams(ctx)
		if err != nil {
			return err
		}
		balance, err := h.hubBalance(ctx, env, params.UnderlyingCoinDenom)
		if err != nil {
			return err
		}
		state, err := h.releaseBatches(ctx, env, params, balance)
		if err != nil {
			return err
		}
		if err := h.State.Set(ctx, state); err != nil {
			return err
		}
		res.Withdrawable, _, err = h.finishedAmount(ctx, address)
		return err
	})
	return res, err
}

func (h *Hub) QueryUnbondRequests(ctx context.Context, address string) (UnbondRequestsResponse, error) {
	res := UnbondRequestsResponse{Address: address, Requests: []UnbondRequest{}}
	rng := collections.NewPrefixedPairRange[string, uint64](address)
	err := h.UnbondWaitList.Walk(ctx, rng, func(key collections.Pair[string, uint64], entry UnbondWaitEntity) (bool, error) {
		res.Requests = append(res.Requests, UnbondRequest{
			BatchID:      key.K2(),
			BLunaAmount:  entry.BLunaAmount,
			StLunaAmount: entry.StLunaAmount,
		})
		return false, nil
	})
	return res, err
}

// QueryAllHistory pages through the unbond history in batch order, starting
// after startFrom.
func (h *Hub) QueryAllHistory(ctx context.Context, startFrom *uint64, limit *uint32) (AllHistoryResponse, error) {
	n := DefaultHistoryLimit
	if limit != nil {
		n = *limit
	}
	if n > MaxHistoryLimit {
		n = MaxHistoryLimit
	}

	res := AllHistoryResponse{History: []UnbondHistory{}}
	if n == 0 {
		return res, nil
	}
	var rng collections.Ranger[uint64]
	if startFrom != nil {
		rng = new(collections.Range[uint64]).StartExclusive(*startFrom)
	}
	err := h.UnbondHistory.Walk(ctx, rng, func(_ uint64, history UnbondHistory) (bool, error) {
		res.History = append(res.History, history)
		return uint32(len(res.History)) >= n, nil
	})
	return res, err
}

func (h *Hub) QueryWhitelistedValidators(ctx context.Context) (WhitelistedValidatorsResponse, error) {
	validators, err := h.whitelist(ctx)
	return WhitelistedValidatorsResponse{Validators: validators}, err
}

func (h *Hub) QueryGuardians(ctx context.Context) (GuardiansResponse, error) {
	res := GuardiansResponse{Guardians: []string{}}
	err := h.Guardians.Walk(ctx, nil, func(addr string) (bool, error) {
		res.Guardians = append(res.Guardians, addr)
		return false, nil
	})
	return res, err
}

// Query answers a query message with the matching response type.
func (h *Hub) Query(ctx context.Context, env Env, msg QueryMsg) (any, error) {
	switch {
	case msg.Config != nil:
		return h.QueryConfig(ctx)
	case msg.State != nil:
		return h.QueryState(ctx)
	case msg.CurrentBatch != nil:
		return h.QueryCurrentBatch(ctx)
	case msg.Parameters != nil:
		return h.QueryParameters(ctx)
	case msg.WithdrawableUnbonded != nil:
		return h.QueryWithdrawableUnbonded(ctx, env, msg.WithdrawableUnbonded.Address)
	case msg.UnbondRequests != nil:
		return h.QueryUnbondRequests(ctx, msg.UnbondRequests.Address)
	case msg.AllHistory != nil:
		return h.QueryAllHistory(ctx, msg.AllHistory.StartFrom, msg.AllHistory.Limit)
	case msg.WhitelistedValidators != nil:
		return h.QueryWhitelistedValidators(ctx)
	case msg.Guardians != nil:
		return h.QueryGuardians(ctx)
	}
	return nil, errorsmod.Wrap(ErrInvalidRequest, "unknown query message")
}
