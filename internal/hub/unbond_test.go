package hub

import (
	"testing"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbond_Batching(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.bond(userA, 10000)

	th.advance(1)
	res := th.unbond(userA, 1)
	require.Len(t, res.Messages, 1)
	contract, cw20 := decodeCw20(t, res.Messages[0])
	assert.Equal(t, blunaToken, contract)
	assert.Equal(t, int64(1), cw20.Burn.Amount.Int64())

	res = th.unbond(userA, 5)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, int64(6), th.batch().RequestedWithFee.Int64())

	entry, err := th.hub.UnbondWaitList.Get(th.ctx, collections.Join(userA, uint64(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(6), entry.BLunaAmount.Int64())

	th.advance(30)
	closeTime := th.now
	res = th.unbond(userA, 2)
	require.Len(t, res.Messages, 2)
	require.NotNil(t, res.Messages[0].Staking)
	assert.Equal(t, &StakingUndelegate{Validator: val1, Amount: NewCoin(denom, sdkmath.NewInt(8))}, res.Messages[0].Staking.Undelegate)
	_, cw20 = decodeCw20(t, res.Messages[1])
	assert.Equal(t, int64(2), cw20.Burn.Amount.Int64())

	batch := th.batch()
	assert.Equal(t, uint64(2), batch.ID)
	assert.True(t, batch.RequestedWithFee.IsZero())

	history := th.history(1)
	assert.False(t, history.Released)
	assert.Equal(t, int64(8), history.Amount.Int64())
	assert.Equal(t, closeTime, history.Time)
	assert.True(t, history.AppliedExchangeRate.Equal(history.WithdrawRate))

	state := th.state()
	assert.Equal(t, int64(10992), state.TotalBondAmount.Int64())
	assert.Equal(t, closeTime, state.LastUnbondedTime)
}

func TestUnbond_PegRecoveryFee(t *testing.T) {
	opts := defaultSetup()
	opts.pegRecoveryFee = sdkmath.LegacyMustNewDecFromStr("0.005")
	th := newTestHub(t, opts)
	th.chain.delegations[val1] = sdkmath.NewInt(900)

	th.advance(1)
	th.unbond(userA, 1000)

	// fee = min(floor(1000*0.005), 1000-900) = 5
	requests, err := th.hub.QueryUnbondRequests(th.ctx, userA)
	require.NoError(t, err)
	require.Len(t, requests.Requests, 1)
	assert.Equal(t, int64(995), requests.Requests[0].BLunaAmount.Int64())
}

func TestUnbond_DegenerateUndelegationAborts(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.bond(userA, 10000)
	th.advance(31)
	before := th.snapshot()

	res, err := th.receive(blunaToken, userA, 1, Cw20HookMsg{Unbond: &UnbondHook{}})
	require.ErrorIs(t, err, ErrDegenerateUndelegation)
	assert.Nil(t, res)
	assert.Equal(t, before, th.snapshot())
}

func TestUnbond_RejectsUnknownToken(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	_, err := th.receive("fake_token", userA, 10, Cw20HookMsg{Unbond: &UnbondHook{}})
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = th.execute(blunaToken, nil, ExecuteMsg{Receive: &Cw20ReceiveMsg{
		Sender: userA, Amount: sdkmath.NewInt(10), Msg: []byte(`{"unknown":{}}`),
	}})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUnbond_StLunaSharesTheBatch(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.bond(userA, 1000)
	th.mustExecute(userB, Coins{NewCoin(denom, sdkmath.NewInt(1000))}, ExecuteMsg{BondForStLuna: &BondForStLuna{}})

	th.advance(1)
	th.unbond(userA, 100)
	res, err := th.receive(stlunaToken, userB, 400, Cw20HookMsg{Unbond: &UnbondHook{}})
	require.NoError(t, err)
	th.chain.apply(t, res.Messages)

	batch := th.batch()
	assert.Equal(t, int64(100), batch.RequestedWithFee.Int64())
	assert.Equal(t, int64(400), batch.RequestedStLuna.Int64())

	th.advance(30)
	res = th.unbond(userA, 100)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, int64(600), res.Messages[0].Staking.Undelegate.Amount.Amount.Int64())

	history := th.history(1)
	assert.Equal(t, int64(200), history.Amount.Int64())
	assert.Equal(t, int64(400), history.StLunaAmount.Int64())

	state := th.state()
	assert.Equal(t, int64(1800), state.TotalBondAmount.Int64())
	assert.Equal(t, int64(600), state.TotalBondStLunaAmount.Int64())
}

// A bond immediately unbonded never gets back more than it put in.
func TestBondUnbondRoundTrip(t *testing.T) {
	t.Run("at peg", func(t *testing.T) {
		th := newTestHub(t, defaultSetup())
		res := th.bond(userA, 1000)
		_, cw20 := decodeCw20(t, res.Messages[1])

		th.advance(31)
		res = th.unbond(userA, cw20.Mint.Amount.Int64())
		assert.Equal(t, int64(1000), res.Messages[0].Staking.Undelegate.Amount.Amount.Int64())
	})

	t.Run("below peg with fee", func(t *testing.T) {
		opts := defaultSetup()
		opts.pegRecoveryFee = sdkmath.LegacyMustNewDecFromStr("0.005")
		th := newTestHub(t, opts)
		th.chain.delegations[val1] = sdkmath.NewInt(900)

		res := th.bond(userA, 1000)
		_, cw20 := decodeCw20(t, res.Messages[1])

		th.advance(31)
		res = th.unbond(userA, cw20.Mint.Amount.Int64())
		undelegated := res.Messages[0].Staking.Undelegate.Amount.Amount
		assert.True(t, undelegated.LT(sdkmath.NewInt(1000)), undelegated.String())
	})
}

func TestConvert(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.bond(userA, 1000)
	th.mustExecute(userB, Coins{NewCoin(denom, sdkmath.NewInt(1000))}, ExecuteMsg{BondForStLuna: &BondForStLuna{}})

	res, err := th.receive(blunaToken, userA, 500, Cw20HookMsg{Convert: &ConvertHook{}})
	require.NoError(t, err)
	th.chain.apply(t, res.Messages)
	require.Len(t, res.Messages, 2)
	contract, cw20 := decodeCw20(t, res.Messages[0])
	assert.Equal(t, stlunaToken, contract)
	assert.Equal(t, int64(500), cw20.Mint.Amount.Int64())
	contract, cw20 = decodeCw20(t, res.Messages[1])
	assert.Equal(t, blunaToken, contract)
	assert.Equal(t, int64(500), cw20.Burn.Amount.Int64())

	state := th.state()
	assert.Equal(t, int64(1500), state.TotalBondAmount.Int64())
	assert.Equal(t, int64(1500), state.TotalBondStLunaAmount.Int64())
	assert.True(t, state.ExchangeRate.Equal(sdkmath.LegacyOneDec()))
	assert.True(t, state.StLunaExchangeRate.Equal(sdkmath.LegacyOneDec()))

	th.mustExecute(dispatcher, Coins{NewCoin(denom, sdkmath.NewInt(150))}, ExecuteMsg{BondRewards: &BondRewards{}})
	res, err = th.receive(stlunaToken, userB, 100, Cw20HookMsg{Convert: &ConvertHook{}})
	require.NoError(t, err)
	_, cw20 = decodeCw20(t, res.Messages[0])
	assert.Equal(t, int64(110), cw20.Mint.Amount.Int64())
}
