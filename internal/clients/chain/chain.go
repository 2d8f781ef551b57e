package chain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	baseclient "github.com/babylonchain/liquid-staking-hub/internal/clients/base"
	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

const tokenInfoQuery = `{"token_info":{}}`

// ChainClient answers the hub's chain queries from a Cosmos LCD endpoint.
type ChainClient struct {
	config     *config.ChainConfig
	httpClient *http.Client
}

var _ ChainClientInterface = (*ChainClient)(nil)

func NewChainClient(config *config.ChainConfig) *ChainClient {
	httpClient := &http.Client{}
	return &ChainClient{
		config,
		httpClient,
	}
}

// Necessary for the BaseClient interface
func (c *ChainClient) GetBaseURL() string {
	return c.config.LcdURL
}

func (c *ChainClient) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *ChainClient) GetHttpClient() *http.Client {
	return c.httpClient
}

// get retries transient failures. Client errors are returned at once.
func get[R any](ctx context.Context, c *ChainClient, path string) (*R, *types.Error) {
	opts := &baseclient.BaseClientOptions{
		Path:    path,
		Headers: map[string]string{"Accept": "application/json"},
	}

	var (
		out     *R
		lastErr *types.Error
	)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.config.MaxRetries), ctx,
	)
	err := backoff.RetryNotify(func() error {
		out, lastErr = baseclient.SendRequest[any, R](ctx, c, http.MethodGet, opts, nil)
		if lastErr == nil {
			return nil
		}
		if lastErr.StatusCode >= http.StatusBadRequest && lastErr.StatusCode < http.StatusInternalServerError &&
			lastErr.StatusCode != http.StatusRequestTimeout {
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}, policy, func(err error, next time.Duration) {
		log.Ctx(ctx).Warn().Err(err).Str("path", path).Dur("retry_in", next).Msg("chain query failed, retrying")
	})
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, types.NewInternalServiceError(err)
	}
	return out, nil
}

func (c *ChainClient) AllDelegations(ctx context.Context, delegator string) ([]hub.Delegation, error) {
	var (
		delegations []hub.Delegation
		nextKey     []byte
	)
	for {
		path := fmt.Sprintf("/cosmos/staking/v1beta1/delegations/%s", url.PathEscape(delegator))
		if len(nextKey) > 0 {
			path += "?pagination.key=" + url.QueryEscape(base64.StdEncoding.EncodeToString(nextKey))
		}
		page, err := get[delegatorDelegationsResponse](ctx, c, path)
		if err != nil {
			return nil, err
		}
		for _, d := range page.DelegationResponses {
			delegations = append(delegations, toDelegation(d))
		}
		if len(page.Pagination.NextKey) == 0 {
			return delegations, nil
		}
		nextKey = page.Pagination.NextKey
	}
}

// Delegation returns nil when delegator has nothing staked with validator.
func (c *ChainClient) Delegation(ctx context.Context, delegator, validator string) (*hub.Delegation, error) {
	path := fmt.Sprintf("/cosmos/staking/v1beta1/validators/%s/delegations/%s",
		url.PathEscape(validator), url.PathEscape(delegator))
	res, err := get[delegationQueryResponse](ctx, c, path)
	if err != nil {
		if err.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if res.DelegationResponse == nil {
		return nil, nil
	}
	d := toDelegation(*res.DelegationResponse)
	return &d, nil
}

func (c *ChainClient) Balance(ctx context.Context, address, denom string) (hub.Coin, error) {
	path := fmt.Sprintf("/cosmos/bank/v1beta1/balances/%s/by_denom?denom=%s",
		url.PathEscape(address), url.QueryEscape(denom))
	res, err := get[balanceResponse](ctx, c, path)
	if err != nil {
		return hub.Coin{}, err
	}
	if res.Balance.Amount.IsNil() {
		return hub.NewCoin(denom, sdkmath.ZeroInt()), nil
	}
	return hub.NewCoin(denom, res.Balance.Amount), nil
}

func (c *ChainClient) TokenInfo(ctx context.Context, contract string) (hub.TokenInfo, error) {
	path := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s",
		url.PathEscape(contract), base64.URLEncoding.EncodeToString([]byte(tokenInfoQuery)))
	res, err := get[smartQueryResponse](ctx, c, path)
	if err != nil {
		return hub.TokenInfo{}, err
	}
	var info tokenInfoResponse
	if decodeErr := json.Unmarshal(res.Data, &info); decodeErr != nil {
		return hub.TokenInfo{}, fmt.Errorf("failed to decode token_info of %s: %w", contract, decodeErr)
	}
	if info.TotalSupply.IsNil() {
		return hub.TokenInfo{}, errors.New("token_info without total_supply from " + contract)
	}
	return hub.TokenInfo{
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    info.Decimals,
		TotalSupply: info.TotalSupply,
	}, nil
}

// LatestBlock returns the header of the latest committed block.
func (c *ChainClient) LatestBlock(ctx context.Context) (hub.BlockInfo, error) {
	res, err := get[latestBlockResponse](ctx, c, "/cosmos/base/tendermint/v1beta1/blocks/latest")
	if err != nil {
		return hub.BlockInfo{}, err
	}
	header := res.Block.Header
	height, parseErr := strconv.ParseUint(header.Height, 10, 64)
	if parseErr != nil {
		return hub.BlockInfo{}, fmt.Errorf("invalid block height %q: %w", header.Height, parseErr)
	}
	return hub.BlockInfo{
		Height:  height,
		Time:    uint64(header.Time.Unix()),
		ChainID: header.ChainID,
	}, nil
}

func toDelegation(d delegationResponse) hub.Delegation {
	amount := d.Balance.Amount
	if amount.IsNil() {
		amount = sdkmath.ZeroInt()
	}
	return hub.Delegation{
		Delegator: d.Delegation.DelegatorAddress,
		Validator: d.Delegation.ValidatorAddress,
		Amount:    hub.NewCoin(d.Balance.Denom, amount),
	}
}
