package hub

import (
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBond(t *testing.T) {
	th := newTestHub(t, defaultSetup())

	res := th.bond(userA, 10000)

	require.Len(t, res.Messages, 2)
	require.NotNil(t, res.Messages[0].Staking)
	assert.Equal(t, &StakingDelegate{Validator: val1, Amount: NewCoin(denom, sdkmath.NewInt(10000))}, res.Messages[0].Staking.Delegate)

	contract, cw20 := decodeCw20(t, res.Messages[1])
	assert.Equal(t, blunaToken, contract)
	require.NotNil(t, cw20.Mint)
	assert.Equal(t, userA, cw20.Mint.Recipient)
	assert.Equal(t, int64(10000), cw20.Mint.Amount.Int64())

	state := th.state()
	assert.Equal(t, int64(11000), state.TotalBondAmount.Int64())
	assert.True(t, state.ExchangeRate.Equal(sdkmath.LegacyOneDec()), state.ExchangeRate.String())
}

func TestBond_AfterSlashing(t *testing.T) {
	th := newTestHub(t, defaultSetup())

	th.chain.delegations[val1] = sdkmath.NewInt(900)
	th.mustExecute(userB, nil, ExecuteMsg{CheckSlashing: &CheckSlashing{}})
	state := th.state()
	assert.True(t, state.ExchangeRate.Equal(sdkmath.LegacyMustNewDecFromStr("0.9")), state.ExchangeRate.String())
	assert.Equal(t, int64(900), state.TotalBondAmount.Int64())

	res := th.bond(userA, 1000)
	_, cw20 := decodeCw20(t, res.Messages[1])
	assert.Equal(t, int64(1111), cw20.Mint.Amount.Int64())

	state = th.state()
	expected := sdkmath.LegacyNewDec(1900).QuoInt64(2111)
	assert.True(t, state.ExchangeRate.Equal(expected), "got %s want %s", state.ExchangeRate, expected)
}

func TestBond_PegRecoveryFee(t *testing.T) {
	opts := defaultSetup()
	opts.pegRecoveryFee = sdkmath.LegacyMustNewDecFromStr("0.005")
	th := newTestHub(t, opts)

	th.chain.delegations[val1] = sdkmath.NewInt(900)
	res := th.bond(userA, 1000)

	// 1111 minted at 0.9, fee = min(floor(1111*0.005), 2111-1900) = 5
	_, cw20 := decodeCw20(t, res.Messages[1])
	assert.Equal(t, int64(1106), cw20.Mint.Amount.Int64())
}

func TestBond_RejectsInvalidFunds(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	before := th.snapshot()

	tests := []struct {
		name  string
		funds Coins
		valid string
		err   error
	}{
		{"no funds", nil, val1, ErrInvalidFunds},
		{"wrong denom", Coins{NewCoin("uusd", sdkmath.NewInt(10))}, val1, ErrInvalidFunds},
		{"zero amount", Coins{NewCoin(denom, sdkmath.ZeroInt())}, val1, ErrInvalidFunds},
		{"two coins", Coins{NewCoin(denom, sdkmath.NewInt(10)), NewCoin("uusd", sdkmath.NewInt(10))}, val1, ErrInvalidFunds},
		{"unknown validator", Coins{NewCoin(denom, sdkmath.NewInt(10))}, "val9", ErrUnknownValidator},
		{"overflow", Coins{NewCoin(denom, sdkmath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 128)))}, val1, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := th.execute(userA, tt.funds, ExecuteMsg{Bond: &Bond{Validator: tt.valid}})
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
			assert.Equal(t, before, th.snapshot())
		})
	}
}

func TestBond_SpreadsOverWhitelist(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.mustExecute(owner, nil, ExecuteMsg{RegisterValidator: &RegisterValidator{Validator: val2}})
	th.mustExecute(owner, nil, ExecuteMsg{RegisterValidator: &RegisterValidator{Validator: val3}})

	res := th.mustExecute(userA, Coins{NewCoin(denom, sdkmath.NewInt(2000))}, ExecuteMsg{Bond: &Bond{}})

	require.Len(t, res.Messages, 3)
	assert.Equal(t, val2, res.Messages[0].Staking.Delegate.Validator)
	assert.Equal(t, int64(1000), res.Messages[0].Staking.Delegate.Amount.Amount.Int64())
	assert.Equal(t, val3, res.Messages[1].Staking.Delegate.Validator)
	assert.Equal(t, int64(1000), res.Messages[1].Staking.Delegate.Amount.Amount.Int64())

	validators, err := th.hub.QueryWhitelistedValidators(th.ctx)
	require.NoError(t, err)
	for _, v := range validators.Validators {
		assert.Equal(t, int64(1000), v.TotalDelegated.Int64(), v.Address)
	}
}

func TestBond_FirstBondRegistersValidator(t *testing.T) {
	opts := defaultSetup()
	opts.deposit = 0
	th := newTestHub(t, opts)

	res := th.bond(userA, 500)
	require.Len(t, res.Messages, 3)
	require.NotNil(t, res.Messages[2].Wasm)
	assert.Equal(t, registry, res.Messages[2].Wasm.Execute.ContractAddr)
	assert.JSONEq(t, `{"add_validator":{"validator":{"address":"val1"}}}`, string(res.Messages[2].Wasm.Execute.Msg))

	res = th.bond(userA, 500)
	assert.Len(t, res.Messages, 2)
}

func TestBondForStLunaAndRewards(t *testing.T) {
	th := newTestHub(t, defaultSetup())

	res := th.mustExecute(userB, Coins{NewCoin(denom, sdkmath.NewInt(1000))}, ExecuteMsg{BondForStLuna: &BondForStLuna{}})
	contract, cw20 := decodeCw20(t, res.Messages[len(res.Messages)-1])
	assert.Equal(t, stlunaToken, contract)
	assert.Equal(t, int64(1000), cw20.Mint.Amount.Int64())

	_, err := th.execute(userB, Coins{NewCoin(denom, sdkmath.NewInt(100))}, ExecuteMsg{BondRewards: &BondRewards{}})
	require.ErrorIs(t, err, ErrUnauthorized)

	res = th.mustExecute(dispatcher, Coins{NewCoin(denom, sdkmath.NewInt(100))}, ExecuteMsg{BondRewards: &BondRewards{}})
	for _, msg := range res.Messages {
		assert.NotNil(t, msg.Staking, "bond rewards only delegates")
	}

	state := th.state()
	assert.Equal(t, int64(1100), state.TotalBondStLunaAmount.Int64())
	assert.True(t, state.StLunaExchangeRate.Equal(sdkmath.LegacyMustNewDecFromStr("1.1")), state.StLunaExchangeRate.String())
	assert.True(t, state.ExchangeRate.Equal(sdkmath.LegacyOneDec()))
}

func TestCheckSlashing_SplitsLossPerSide(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.mustExecute(userB, Coins{NewCoin(denom, sdkmath.NewInt(1000))}, ExecuteMsg{BondForStLuna: &BondForStLuna{}})

	th.chain.delegations[val1] = sdkmath.NewInt(1500)
	th.mustExecute(userB, nil, ExecuteMsg{CheckSlashing: &CheckSlashing{}})

	state := th.state()
	assert.Equal(t, int64(750), state.TotalBondAmount.Int64())
	assert.Equal(t, int64(750), state.TotalBondStLunaAmount.Int64())
	assert.True(t, state.ExchangeRate.Equal(sdkmath.LegacyMustNewDecFromStr("0.75")))
	assert.True(t, state.StLunaExchangeRate.Equal(sdkmath.LegacyMustNewDecFromStr("0.75")))

	// rewards compounding into delegations never raises the believed total
	th.chain.delegations[val1] = sdkmath.NewInt(2000)
	th.mustExecute(userB, nil, ExecuteMsg{CheckSlashing: &CheckSlashing{}})
	assert.Equal(t, int64(750), th.state().TotalBondAmount.Int64())
}

func TestCheckSlashing_NoDelegationsLeft(t *testing.T) {
	th := newTestHub(t, defaultSetup())
	th.bond(userA, 1000)

	delete(th.chain.delegations, val1)
	th.mustExecute(userB, nil, ExecuteMsg{CheckSlashing: &CheckSlashing{}})

	state := th.state()
	assert.True(t, state.TotalBondAmount.IsZero(), state.TotalBondAmount.String())
	assert.True(t, state.TotalBondStLunaAmount.IsZero())
}
