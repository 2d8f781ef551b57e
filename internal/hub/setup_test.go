package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

const (
	hubAddr     = "hub"
	owner       = "owner"
	blunaToken  = "bluna_token"
	stlunaToken = "stluna_token"
	dispatcher  = "reward_dispatcher"
	registry    = "validators_registry"
	airdrops    = "airdrop_registry"
	val1        = "val1"
	val2        = "val2"
	val3        = "val3"
	denom       = "uluna"
	userA       = "alice"
	userB       = "bob"
	userC       = "carol"
	startTime   = uint64(1_700_000_000)
)

// fakeChain answers the hub's queries and plays back the messages it emits,
// the way the host chain would once a transaction commits.
type fakeChain struct {
	delegations map[string]sdkmath.Int
	balance     sdkmath.Int
	supply      map[string]sdkmath.Int
	unbonding   sdkmath.Int
	queryErr    error
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		delegations: map[string]sdkmath.Int{},
		balance:     sdkmath.ZeroInt(),
		supply:      map[string]sdkmath.Int{blunaToken: sdkmath.ZeroInt(), stlunaToken: sdkmath.ZeroInt()},
		unbonding:   sdkmath.ZeroInt(),
	}
}

func (f *fakeChain) AllDelegations(_ context.Context, delegator string) ([]Delegation, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	validators := make([]string, 0, len(f.delegations))
	for v := range f.delegations {
		validators = append(validators, v)
	}
	sort.Strings(validators)
	out := make([]Delegation, 0, len(validators))
	for _, v := range validators {
		if f.delegations[v].IsPositive() {
			out = append(out, Delegation{Delegator: delegator, Validator: v, Amount: NewCoin(denom, f.delegations[v])})
		}
	}
	return out, nil
}

func (f *fakeChain) Delegation(_ context.Context, delegator, validator string) (*Delegation, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	amount, ok := f.delegations[validator]
	if !ok || !amount.IsPositive() {
		return nil, nil
	}
	return &Delegation{Delegator: delegator, Validator: validator, Amount: NewCoin(denom, amount)}, nil
}

func (f *fakeChain) Balance(_ context.Context, _ string, d string) (Coin, error) {
	if f.queryErr != nil {
		return Coin{}, f.queryErr
	}
	return NewCoin(d, f.balance), nil
}

func (f *fakeChain) TokenInfo(_ context.Context, contract string) (TokenInfo, error) {
	if f.queryErr != nil {
		return TokenInfo{}, f.queryErr
	}
	supply, ok := f.supply[contract]
	if !ok {
		return TokenInfo{}, errors.New("no such token")
	}
	return TokenInfo{Name: contract, Symbol: contract, Decimals: 6, TotalSupply: supply}, nil
}

func (f *fakeChain) delegated() sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, a := range f.delegations {
		total = total.Add(a)
	}
	return total
}

func (f *fakeChain) add(validator string, amount sdkmath.Int) {
	current, ok := f.delegations[validator]
	if !ok {
		current = sdkmath.ZeroInt()
	}
	f.delegations[validator] = current.Add(amount)
}

func (f *fakeChain) apply(t *testing.T, msgs []CosmosMsg) {
	t.Helper()
	for _, msg := range msgs {
		switch {
		case msg.Staking != nil && msg.Staking.Delegate != nil:
			f.add(msg.Staking.Delegate.Validator, msg.Staking.Delegate.Amount.Amount)
		case msg.Staking != nil && msg.Staking.Undelegate != nil:
			u := msg.Staking.Undelegate
			f.add(u.Validator, u.Amount.Amount.Neg())
			f.unbonding = f.unbonding.Add(u.Amount.Amount)
		case msg.Staking != nil && msg.Staking.Redelegate != nil:
			r := msg.Staking.Redelegate
			f.add(r.SrcValidator, r.Amount.Amount.Neg())
			f.add(r.DstValidator, r.Amount.Amount)
		case msg.Bank != nil && msg.Bank.Send != nil:
			f.balance = f.balance.Sub(msg.Bank.Send.Amount.AmountOf(denom))
			require.False(t, f.balance.IsNegative(), "hub sent more than it holds")
		case msg.Wasm != nil && msg.Wasm.Execute != nil:
			if _, ok := f.supply[msg.Wasm.Execute.ContractAddr]; !ok {
				continue
			}
			var cw20 Cw20ExecuteMsg
			require.NoError(t, json.Unmarshal(msg.Wasm.Execute.Msg, &cw20))
			contract := msg.Wasm.Execute.ContractAddr
			switch {
			case cw20.Mint != nil:
				f.supply[contract] = f.supply[contract].Add(cw20.Mint.Amount)
			case cw20.Burn != nil:
				f.supply[contract] = f.supply[contract].Sub(cw20.Burn.Amount)
			}
		}
	}
}

// completeUnbonding credits amount of the undelegated stake to the hub.
func (f *fakeChain) completeUnbonding(amount sdkmath.Int) {
	f.unbonding = f.unbonding.Sub(amount)
	f.balance = f.balance.Add(amount)
}

type testHub struct {
	t     *testing.T
	hub   *Hub
	chain *fakeChain
	kv    *store.MemKVStore
	ctx   context.Context
	now   uint64
}

type setupOptions struct {
	deposit        int64
	pegRecoveryFee sdkmath.LegacyDec
	erThreshold    sdkmath.LegacyDec
}

func defaultSetup() setupOptions {
	return setupOptions{
		deposit:        1000,
		pegRecoveryFee: sdkmath.LegacyZeroDec(),
		erThreshold:    sdkmath.LegacyOneDec(),
	}
}

// newTestHub instantiates a hub with val1 whitelisted and an initial deposit
// backed by an equal, pre-issued bLuna supply, then registers every contract.
func newTestHub(t *testing.T, opts setupOptions) *testHub {
	t.Helper()
	chain := newFakeChain()
	h, err := New(chain)
	require.NoError(t, err)
	kv := store.NewMemKVStore()
	th := &testHub{
		t:     t,
		hub:   h,
		chain: chain,
		kv:    kv,
		ctx:   store.WithKVStore(context.Background(), kv),
		now:   startTime,
	}

	var funds Coins
	if opts.deposit > 0 {
		funds = Coins{NewCoin(denom, sdkmath.NewInt(opts.deposit))}
	}
	res, err := h.Instantiate(th.ctx, th.env(), MessageInfo{Sender: owner, Funds: funds}, InstantiateMsg{
		EpochPeriod:         30,
		UnderlyingCoinDenom: denom,
		UnbondingPeriod:     2,
		PegRecoveryFee:      opts.pegRecoveryFee,
		ErThreshold:         opts.erThreshold,
		RewardDenom:         "uusd",
		Validator:           val1,
	})
	require.NoError(t, err)
	chain.apply(t, res.Messages)
	chain.supply[blunaToken] = sdkmath.NewInt(opts.deposit)

	th.mustExecute(owner, nil, ExecuteMsg{UpdateConfig: &UpdateConfig{
		RewardsDispatcherContract:  strPtr(dispatcher),
		ValidatorsRegistryContract: strPtr(registry),
		BLunaTokenContract:         strPtr(blunaToken),
		StLunaTokenContract:        strPtr(stlunaToken),
		AirdropRegistryContract:    strPtr(airdrops),
	}})
	return th
}

func strPtr(s string) *string { return &s }

func (th *testHub) env() Env {
	return Env{
		Block:    BlockInfo{Height: th.now - startTime + 1, Time: th.now},
		Contract: ContractInfo{Address: hubAddr},
	}
}

func (th *testHub) advance(seconds uint64) {
	th.now += seconds
}

func (th *testHub) execute(sender string, funds Coins, msg ExecuteMsg) (*Response, error) {
	return th.hub.Execute(th.ctx, th.env(), MessageInfo{Sender: sender, Funds: funds}, msg)
}

// mustExecute runs msg, expects success and plays its messages back on the chain.
func (th *testHub) mustExecute(sender string, funds Coins, msg ExecuteMsg) *Response {
	th.t.Helper()
	res, err := th.execute(sender, funds, msg)
	require.NoError(th.t, err)
	th.chain.apply(th.t, res.Messages)
	return res
}

func (th *testHub) bond(sender string, amount int64) *Response {
	th.t.Helper()
	return th.mustExecute(sender, Coins{NewCoin(denom, sdkmath.NewInt(amount))}, ExecuteMsg{Bond: &Bond{Validator: val1}})
}

func hook(t *testing.T, msg Cw20HookMsg) []byte {
	t.Helper()
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return raw
}

func (th *testHub) receive(token, sender string, amount int64, h Cw20HookMsg) (*Response, error) {
	return th.execute(token, nil, ExecuteMsg{Receive: &Cw20ReceiveMsg{
		Sender: sender,
		Amount: sdkmath.NewInt(amount),
		Msg:    hook(th.t, h),
	}})
}

func (th *testHub) unbond(sender string, amount int64) *Response {
	th.t.Helper()
	res, err := th.receive(blunaToken, sender, amount, Cw20HookMsg{Unbond: &UnbondHook{}})
	require.NoError(th.t, err)
	th.chain.apply(th.t, res.Messages)
	return res
}

func (th *testHub) state() State {
	th.t.Helper()
	state, err := th.hub.QueryState(th.ctx)
	require.NoError(th.t, err)
	require.True(th.t, state.ExchangeRate.IsPositive(), "bLuna exchange rate must stay positive")
	require.True(th.t, state.StLunaExchangeRate.IsPositive(), "stLuna exchange rate must stay positive")
	return state
}

func (th *testHub) batch() CurrentBatch {
	th.t.Helper()
	batch, err := th.hub.QueryCurrentBatch(th.ctx)
	require.NoError(th.t, err)
	return batch
}

func (th *testHub) history(id uint64) UnbondHistory {
	th.t.Helper()
	history, err := th.hub.UnbondHistory.Get(th.ctx, id)
	require.NoError(th.t, err)
	return history
}

// snapshot captures every stored key so tests can assert that a failed
// execution wrote nothing.
func (th *testHub) snapshot() map[string]string {
	th.t.Helper()
	it, err := th.kv.Iterator(nil, nil)
	require.NoError(th.t, err)
	defer it.Close()
	out := map[string]string{}
	for ; it.Valid(); it.Next() {
		out[string(it.Key())] = string(it.Value())
	}
	return out
}

func decodeCw20(t *testing.T, msg CosmosMsg) (string, Cw20ExecuteMsg) {
	t.Helper()
	require.NotNil(t, msg.Wasm)
	require.NotNil(t, msg.Wasm.Execute)
	var cw20 Cw20ExecuteMsg
	require.NoError(t, json.Unmarshal(msg.Wasm.Execute.Msg, &cw20))
	return msg.Wasm.Execute.ContractAddr, cw20
}
