package services

import (
	"context"
	"encoding/json"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/metrics"
	"github.com/babylonchain/liquid-staking-hub/internal/observability/tracing"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

const instantiateMsgName = "instantiate"

type ExecuteRequest struct {
	Sender string
	Funds  hub.Coins
	Msg    json.RawMessage
	// Block pins the execution to a block. The latest chain block is used when nil.
	Block *hub.BlockInfo
}

type ExecutionResult struct {
	ExecutionID string          `json:"execution_id"`
	Sequence    int64           `json:"sequence"`
	Messages    []hub.CosmosMsg `json:"messages"`
	Attributes  []hub.Attribute `json:"attributes"`
}

// execution is one message run against a branch of the contract store.
type execution struct {
	name   string
	sender string
	funds  hub.Coins
	raw    json.RawMessage
	block  *hub.BlockInfo
	run    func(ctx context.Context, env hub.Env) (*hub.Response, error)
}

// Execute parses and runs an execute message. Either every write and every
// emitted message is committed, or nothing is.
func (s *Services) Execute(ctx context.Context, req ExecuteRequest) (*ExecutionResult, *types.Error) {
	msg, err := hub.ParseExecuteMsg(req.Msg)
	if err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	name, err := msg.Name()
	if err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	info := hub.MessageInfo{Sender: req.Sender, Funds: req.Funds}
	return s.execute(ctx, execution{
		name:   name,
		sender: req.Sender,
		funds:  req.Funds,
		raw:    req.Msg,
		block:  req.Block,
		run: func(ctx context.Context, env hub.Env) (*hub.Response, error) {
			return s.Hub.Execute(ctx, env, info, msg)
		},
	})
}

// Instantiate stores the hub's initial configuration.
func (s *Services) Instantiate(
	ctx context.Context, sender string, funds hub.Coins, msg hub.InstantiateMsg,
) (*ExecutionResult, *types.Error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	info := hub.MessageInfo{Sender: sender, Funds: funds}
	return s.execute(ctx, execution{
		name:   instantiateMsgName,
		sender: sender,
		funds:  funds,
		raw:    raw,
		run: func(ctx context.Context, env hub.Env) (*hub.Response, error) {
			return s.Hub.Instantiate(ctx, env, info, msg)
		},
	})
}

func (s *Services) execute(ctx context.Context, e execution) (*ExecutionResult, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, apiErr := s.resolveBlock(ctx, e.block)
	if apiErr != nil {
		metrics.RecordHubExecution(e.name, types.Failed.ToString())
		return nil, apiErr
	}
	env := s.contractEnv(block)

	branch := store.NewCacheKVStore(s.DbClient.ContractStore(ctx))
	res, err := e.run(store.WithKVStore(ctx, branch), env)

	record := &model.ExecutionDocument{
		ExecutionID: uuid.New().String(),
		Sequence:    s.sequence + 1,
		MsgName:     e.name,
		Sender:      e.sender,
		Funds:       e.funds.String(),
		Msg:         string(e.raw),
		BlockHeight: block.Height,
		BlockTime:   block.Time,
		Attributes:  []model.ExecutionAttribute{},
		MessageIDs:  []string{},
	}

	if err != nil {
		apiErr := mapHubError(err)
		if !IsRejection(apiErr) {
			log.Ctx(ctx).Error().Err(err).Str("msg", e.name).Msg("hub execution failed")
			metrics.RecordHubExecution(e.name, types.Failed.ToString())
			return nil, apiErr
		}
		record.Outcome = types.Rejected
		record.Error = err.Error()
		if saveErr := s.DbClient.SaveExecution(ctx, record); saveErr != nil {
			log.Ctx(ctx).Error().Err(saveErr).Str("msg", e.name).Msg("failed to record rejected execution")
		} else {
			s.sequence = record.Sequence
		}
		metrics.RecordHubExecution(e.name, types.Rejected.ToString())
		return nil, apiErr
	}

	outbox, err := outboxDocuments(record, res.Messages)
	if err != nil {
		metrics.RecordHubExecution(e.name, types.Failed.ToString())
		return nil, types.NewInternalServiceError(err)
	}
	record.Outcome = types.Committed
	for _, attr := range res.Attributes {
		record.Attributes = append(record.Attributes, model.ExecutionAttribute{Key: attr.Key, Value: attr.Value})
	}

	if err := s.DbClient.CommitExecution(ctx, record, branch.Changes(), outbox); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("msg", e.name).Msg("failed to commit hub execution")
		metrics.RecordHubExecution(e.name, types.Failed.ToString())
		return nil, types.NewInternalServiceError(err)
	}
	s.sequence = record.Sequence
	metrics.RecordHubExecution(e.name, types.Committed.ToString())
	s.recordState(store.WithKVStore(ctx, branch))
	if len(outbox) > 0 {
		s.notifyOutbox()
	}

	log.Ctx(ctx).Info().
		Str("execution_id", record.ExecutionID).
		Str("msg", e.name).
		Int("messages", len(outbox)).
		Msg("hub execution committed")

	return &ExecutionResult{
		ExecutionID: record.ExecutionID,
		Sequence:    record.Sequence,
		Messages:    res.Messages,
		Attributes:  res.Attributes,
	}, nil
}

func outboxDocuments(record *model.ExecutionDocument, msgs []hub.CosmosMsg) ([]model.OutboxDocument, error) {
	docs := make([]model.OutboxDocument, 0, len(msgs))
	for i, msg := range msgs {
		body, err := json.Marshal(msg)
		if err != nil {
			return nil, err
		}
		id := uuid.New().String()
		docs = append(docs, model.OutboxDocument{
			MessageID:   id,
			ExecutionID: record.ExecutionID,
			Sequence:    record.Sequence,
			Index:       i,
			Kind:        msg.Kind(),
			Body:        string(body),
		})
		record.MessageIDs = append(record.MessageIDs, id)
	}
	return docs, nil
}

func (s *Services) resolveBlock(ctx context.Context, block *hub.BlockInfo) (hub.BlockInfo, *types.Error) {
	if block != nil {
		if block.Time == 0 {
			return hub.BlockInfo{}, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "block time is required")
		}
		return *block, nil
	}
	latest, err := tracing.WrapWithSpan(ctx, "latest_block", func() (hub.BlockInfo, error) {
		return s.Clients.Chain.LatestBlock(ctx)
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to fetch the latest block")
		return hub.BlockInfo{}, mapHubError(errorsmod.Wrap(hub.ErrQuery, err.Error()))
	}
	return latest, nil
}

// recordState exports the rates and bonded amounts seen through ctx.
func (s *Services) recordState(ctx context.Context) {
	state, err := s.Hub.QueryState(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to read hub state for metrics")
		return
	}
	metrics.RecordHubState(types.BLuna.ToString(), decToFloat(state.ExchangeRate), intToFloat(state.TotalBondAmount))
	metrics.RecordHubState(types.StLuna.ToString(), decToFloat(state.StLunaExchangeRate), intToFloat(state.TotalBondStLunaAmount))
}

func decToFloat(d sdkmath.LegacyDec) float64 {
	f, _ := d.Float64()
	return f
}

func intToFloat(i sdkmath.Int) float64 {
	return decToFloat(sdkmath.LegacyNewDecFromInt(i))
}

func (s *Services) autoInstantiate(ctx context.Context) error {
	instantiated, err := s.Hub.Config.Has(s.committedContext(ctx))
	if err != nil {
		return err
	}
	if instantiated {
		return nil
	}

	cfg := s.cfg.Hub
	pegFee, err := cfg.PegRecoveryFeeDec()
	if err != nil {
		return err
	}
	erThreshold, err := cfg.ErThresholdDec()
	if err != nil {
		return err
	}
	_, apiErr := s.Instantiate(ctx, cfg.Owner, nil, hub.InstantiateMsg{
		EpochPeriod:         cfg.EpochPeriod,
		UnderlyingCoinDenom: cfg.UnderlyingCoinDenom,
		UnbondingPeriod:     cfg.UnbondingPeriod,
		PegRecoveryFee:      pegFee,
		ErThreshold:         erThreshold,
		RewardDenom:         cfg.RewardDenom,
		Validator:           cfg.Validator,
	})
	if apiErr != nil {
		return apiErr
	}
	log.Ctx(ctx).Info().Str("owner", cfg.Owner).Msg("hub instantiated")
	return nil
}
