package chain

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler) *ChainClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewChainClient(&config.ChainConfig{
		LcdURL:       server.URL,
		Timeout:      1000,
		MaxRetries:   2,
		Bech32Prefix: "terra",
		HubAddress:   "terra1hub",
	})
}

func TestAllDelegations_FollowsPagination(t *testing.T) {
	nextKey := base64.StdEncoding.EncodeToString([]byte{0x01, 0xfe})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/staking/v1beta1/delegations/terra1hub", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pagination.key") == "" {
			_, _ = w.Write([]byte(`{"delegation_responses":[{"delegation":{"delegator_address":"terra1hub","validator_address":"val1","shares":"100.0"},"balance":{"denom":"uluna","amount":"100"}}],"pagination":{"next_key":"` + nextKey + `","total":"2"}}`))
			return
		}
		assert.Equal(t, nextKey, r.URL.Query().Get("pagination.key"))
		_, _ = w.Write([]byte(`{"delegation_responses":[{"delegation":{"delegator_address":"terra1hub","validator_address":"val2","shares":"50.0"},"balance":{"denom":"uluna","amount":"50"}}],"pagination":{"next_key":null,"total":"0"}}`))
	}))

	delegations, err := client.AllDelegations(context.Background(), "terra1hub")
	require.NoError(t, err)
	require.Len(t, delegations, 2)
	assert.Equal(t, "val1", delegations[0].Validator)
	assert.Equal(t, int64(100), delegations[0].Amount.Amount.Int64())
	assert.Equal(t, "val2", delegations[1].Validator)
	assert.Equal(t, "uluna", delegations[1].Amount.Denom)
}

func TestDelegation_NotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cosmos/staking/v1beta1/validators/val9/delegations/terra1hub" {
			http.Error(w, `{"code":5,"message":"not found"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"delegation_response":{"delegation":{"delegator_address":"terra1hub","validator_address":"val1"},"balance":{"denom":"uluna","amount":"7"}}}`))
	}))

	d, err := client.Delegation(context.Background(), "terra1hub", "val9")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = client.Delegation(context.Background(), "terra1hub", "val1")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, int64(7), d.Amount.Amount.Int64())
}

func TestBalance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cosmos/bank/v1beta1/balances/terra1hub/by_denom", r.URL.Path)
		assert.Equal(t, "uluna", r.URL.Query().Get("denom"))
		_, _ = w.Write([]byte(`{"balance":{"denom":"uluna","amount":"12345"}}`))
	}))

	coin, err := client.Balance(context.Background(), "terra1hub", "uluna")
	require.NoError(t, err)
	assert.Equal(t, "uluna", coin.Denom)
	assert.Equal(t, int64(12345), coin.Amount.Int64())
}

func TestTokenInfo(t *testing.T) {
	query := base64.URLEncoding.EncodeToString([]byte(`{"token_info":{}}`))
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cosmwasm/wasm/v1/contract/terra1token/smart/"+query, r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"name":"bLuna","symbol":"BLUNA","decimals":6,"total_supply":"1000000"}}`))
	}))

	info, err := client.TokenInfo(context.Background(), "terra1token")
	require.NoError(t, err)
	assert.Equal(t, "BLUNA", info.Symbol)
	assert.Equal(t, uint8(6), info.Decimals)
	assert.Equal(t, int64(1000000), info.TotalSupply.Int64())
}

func TestLatestBlock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"block":{"header":{"chain_id":"columbus-5","height":"4200","time":"2024-03-01T10:00:00.5Z"}}}`))
	}))

	block, err := client.LatestBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4200), block.Height)
	assert.Equal(t, uint64(1709287200), block.Time)
	assert.Equal(t, "columbus-5", block.ChainID)
}

func TestRetriesServerErrorsOnly(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"balance":{"denom":"uluna","amount":"1"}}`))
	}))

	_, err := client.Balance(context.Background(), "terra1hub", "uluna")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	calls.Store(0)
	badRequest := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	_, err = badRequest.Balance(context.Background(), "terra1hub", "uluna")
	require.Error(t, err)
	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}
