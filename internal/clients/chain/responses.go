package chain

import (
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"
)

type coinResponse struct {
	Denom  string      `json:"denom"`
	Amount sdkmath.Int `json:"amount"`
}

type paginationResponse struct {
	NextKey []byte `json:"next_key"`
	Total   string `json:"total"`
}

type delegationInfo struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
	Shares           string `json:"shares"`
}

type delegationResponse struct {
	Delegation delegationInfo `json:"delegation"`
	Balance    coinResponse   `json:"balance"`
}

type delegatorDelegationsResponse struct {
	DelegationResponses []delegationResponse `json:"delegation_responses"`
	Pagination          paginationResponse   `json:"pagination"`
}

type delegationQueryResponse struct {
	DelegationResponse *delegationResponse `json:"delegation_response"`
}

type balanceResponse struct {
	Balance coinResponse `json:"balance"`
}

type smartQueryResponse struct {
	Data json.RawMessage `json:"data"`
}

type tokenInfoResponse struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint8       `json:"decimals"`
	TotalSupply sdkmath.Int `json:"total_supply"`
}

type blockHeader struct {
	ChainID string    `json:"chain_id"`
	Height  string    `json:"height"`
	Time    time.Time `json:"time"`
}

type latestBlockResponse struct {
	Block struct {
		Header blockHeader `json:"header"`
	} `json:"block"`
}
