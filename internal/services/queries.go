package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

// query runs fn against the committed contract store.
func query[R any](ctx context.Context, s *Services, fn func(ctx context.Context) (R, error)) (R, *types.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := fn(s.committedContext(ctx))
	if err != nil {
		var zero R
		return zero, mapHubError(err)
	}
	return res, nil
}

func (s *Services) HubConfig(ctx context.Context) (hub.Config, *types.Error) {
	return query(ctx, s, s.Hub.QueryConfig)
}

func (s *Services) HubState(ctx context.Context) (hub.State, *types.Error) {
	return query(ctx, s, s.Hub.QueryState)
}

func (s *Services) CurrentBatch(ctx context.Context) (hub.CurrentBatch, *types.Error) {
	return query(ctx, s, s.Hub.QueryCurrentBatch)
}

func (s *Services) Parameters(ctx context.Context) (hub.Parameters, *types.Error) {
	return query(ctx, s, s.Hub.QueryParameters)
}

// WithdrawableUnbonded simulates a withdrawal by address at the latest block.
func (s *Services) WithdrawableUnbonded(ctx context.Context, address string) (hub.WithdrawableUnbondedResponse, *types.Error) {
	block, apiErr := s.resolveBlock(ctx, nil)
	if apiErr != nil {
		return hub.WithdrawableUnbondedResponse{}, apiErr
	}
	env := s.contractEnv(block)
	return query(ctx, s, func(ctx context.Context) (hub.WithdrawableUnbondedResponse, error) {
		return s.Hub.QueryWithdrawableUnbonded(ctx, env, address)
	})
}

func (s *Services) UnbondRequests(ctx context.Context, address string) (hub.UnbondRequestsResponse, *types.Error) {
	return query(ctx, s, func(ctx context.Context) (hub.UnbondRequestsResponse, error) {
		return s.Hub.QueryUnbondRequests(ctx, address)
	})
}

func (s *Services) AllHistory(ctx context.Context, startFrom *uint64, limit *uint32) (hub.AllHistoryResponse, *types.Error) {
	return query(ctx, s, func(ctx context.Context) (hub.AllHistoryResponse, error) {
		return s.Hub.QueryAllHistory(ctx, startFrom, limit)
	})
}

func (s *Services) WhitelistedValidators(ctx context.Context) (hub.WhitelistedValidatorsResponse, *types.Error) {
	return query(ctx, s, s.Hub.QueryWhitelistedValidators)
}

func (s *Services) Guardians(ctx context.Context) (hub.GuardiansResponse, *types.Error) {
	return query(ctx, s, s.Hub.QueryGuardians)
}

// Query answers a raw query message. The latest block is fetched only for
// queries that depend on block time.
func (s *Services) Query(ctx context.Context, raw json.RawMessage) (any, *types.Error) {
	var msg hub.QueryMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	var env hub.Env
	if msg.WithdrawableUnbonded != nil {
		block, apiErr := s.resolveBlock(ctx, nil)
		if apiErr != nil {
			return nil, apiErr
		}
		env = s.contractEnv(block)
	}
	return query(ctx, s, func(ctx context.Context) (any, error) {
		return s.Hub.Query(ctx, env, msg)
	})
}
