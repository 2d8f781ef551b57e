package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/liquid-staking-hub/internal/clients"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/mocks"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

const (
	hubAddr  = "hub"
	owner    = "owner"
	val1     = "val1"
	denom    = "uluna"
	bluna    = "bluna_token"
	stluna   = "stluna_token"
	blockTS  = uint64(1_700_000_000)
	userA    = "alice"
	registry = "validators_registry"
)

// fakeChain serves the hub's chain queries from memory.
type fakeChain struct {
	mu          sync.Mutex
	delegations map[string]sdkmath.Int
	balance     sdkmath.Int
	supply      map[string]sdkmath.Int
	block       hub.BlockInfo
	queryErr    error
	blockErr    error
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		delegations: map[string]sdkmath.Int{},
		balance:     sdkmath.ZeroInt(),
		supply:      map[string]sdkmath.Int{bluna: sdkmath.ZeroInt(), stluna: sdkmath.ZeroInt()},
		block:       hub.BlockInfo{Height: 1, Time: blockTS, ChainID: "test-1"},
	}
}

func (f *fakeChain) GetBaseURL() string            { return "http://lcd.invalid" }
func (f *fakeChain) GetDefaultRequestTimeout() int { return 1000 }
func (f *fakeChain) GetHttpClient() *http.Client   { return http.DefaultClient }

func (f *fakeChain) LatestBlock(context.Context) (hub.BlockInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blockErr != nil {
		return hub.BlockInfo{}, f.blockErr
	}
	return f.block, nil
}

func (f *fakeChain) AllDelegations(_ context.Context, delegator string) ([]hub.Delegation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	validators := make([]string, 0, len(f.delegations))
	for v := range f.delegations {
		validators = append(validators, v)
	}
	sort.Strings(validators)
	out := []hub.Delegation{}
	for _, v := range validators {
		out = append(out, hub.Delegation{Delegator: delegator, Validator: v, Amount: hub.NewCoin(denom, f.delegations[v])})
	}
	return out, nil
}

func (f *fakeChain) Delegation(_ context.Context, delegator, validator string) (*hub.Delegation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	amount, ok := f.delegations[validator]
	if !ok {
		return nil, nil
	}
	return &hub.Delegation{Delegator: delegator, Validator: validator, Amount: hub.NewCoin(denom, amount)}, nil
}

func (f *fakeChain) Balance(_ context.Context, _ string, d string) (hub.Coin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return hub.Coin{}, f.queryErr
	}
	return hub.NewCoin(d, f.balance), nil
}

func (f *fakeChain) TokenInfo(_ context.Context, contract string) (hub.TokenInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return hub.TokenInfo{}, f.queryErr
	}
	supply, ok := f.supply[contract]
	if !ok {
		return hub.TokenInfo{}, errors.New("no such token")
	}
	return hub.TokenInfo{Name: contract, Symbol: contract, Decimals: 6, TotalSupply: supply}, nil
}

// apply plays back delegations and mints the way the chain would once the
// outbound messages land.
func (f *fakeChain) apply(t *testing.T, msgs []hub.CosmosMsg) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range msgs {
		switch {
		case msg.Staking != nil && msg.Staking.Delegate != nil:
			d := msg.Staking.Delegate
			current, ok := f.delegations[d.Validator]
			if !ok {
				current = sdkmath.ZeroInt()
			}
			f.delegations[d.Validator] = current.Add(d.Amount.Amount)
		case msg.Wasm != nil && msg.Wasm.Execute != nil:
			contract := msg.Wasm.Execute.ContractAddr
			if _, ok := f.supply[contract]; !ok {
				continue
			}
			var cw20 hub.Cw20ExecuteMsg
			require.NoError(t, json.Unmarshal(msg.Wasm.Execute.Msg, &cw20))
			if cw20.Mint != nil {
				f.supply[contract] = f.supply[contract].Add(cw20.Mint.Amount)
			}
		}
	}
}

// fakeDb backs a mocked DBClient with an in-memory contract store.
type fakeDb struct {
	*mocks.DBClient
	kv        *store.MemKVStore
	mu        sync.Mutex
	committed []model.ExecutionDocument
	rejected  []model.ExecutionDocument
	outbox    []model.OutboxDocument
	commitErr error
}

func newFakeDb(t *testing.T) *fakeDb {
	f := &fakeDb{DBClient: mocks.NewDBClient(t), kv: store.NewMemKVStore()}
	f.On("LastExecutionSequence", mock.Anything).Return(int64(0), nil).Maybe()
	f.On("ContractStore", mock.Anything).Return(f.kv).Maybe()
	f.On("CommitExecution", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, record *model.ExecutionDocument, changes []store.Change, outbox []model.OutboxDocument) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.commitErr != nil {
				return f.commitErr
			}
			for _, c := range changes {
				if c.Delete {
					require.NoError(t, f.kv.Delete(c.Key))
				} else {
					require.NoError(t, f.kv.Set(c.Key, c.Value))
				}
			}
			f.committed = append(f.committed, *record)
			f.outbox = append(f.outbox, outbox...)
			return nil
		}).Maybe()
	f.On("SaveExecution", mock.Anything, mock.Anything).
		Return(func(_ context.Context, record *model.ExecutionDocument) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.rejected = append(f.rejected, *record)
			return nil
		}).Maybe()
	return f
}

func (f *fakeDb) snapshot(t *testing.T) map[string]string {
	t.Helper()
	it, err := f.kv.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()
	out := map[string]string{}
	for ; it.Valid(); it.Next() {
		out[string(it.Key())] = string(it.Value())
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Db: config.DbConfig{MaxPaginationLimit: 10, DbBatchSizeLimit: 100},
		Chain: config.ChainConfig{
			LcdURL:     "http://lcd.invalid",
			Timeout:    1000,
			HubAddress: hubAddr,
		},
		Hub: config.HubConfig{
			AutoInstantiate:     true,
			Owner:               owner,
			EpochPeriod:         30,
			UnbondingPeriod:     2,
			UnderlyingCoinDenom: denom,
			RewardDenom:         "uusd",
			PegRecoveryFee:      "0",
			ErThreshold:         "1",
			Validator:           val1,
		},
	}
}

type testEnv struct {
	services *Services
	db       *fakeDb
	chain    *fakeChain
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	chain := newFakeChain()
	db := newFakeDb(t)
	s, err := NewWithDbClient(context.Background(), testConfig(), db, &clients.Clients{Chain: chain})
	require.NoError(t, err)
	return &testEnv{services: s, db: db, chain: chain}
}

// registerContracts points the hub at its token, reward and registry contracts.
func (e *testEnv) registerContracts(t *testing.T) *ExecutionResult {
	t.Helper()
	res, apiErr := e.services.Execute(context.Background(), ExecuteRequest{
		Sender: owner,
		Msg: []byte(`{"update_config":{
			"rewards_dispatcher_contract":"reward_dispatcher",
			"validators_registry_contract":"` + registry + `",
			"bluna_token_contract":"` + bluna + `",
			"stluna_token_contract":"` + stluna + `",
			"airdrop_registry_contract":"airdrop_registry"}}`),
	})
	require.Nil(t, apiErr)
	return res
}
