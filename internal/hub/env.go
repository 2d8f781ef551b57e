package hub

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

type BlockInfo struct {
	Height uint64 `json:"height"`
	// Time is in unix seconds.
	Time    uint64 `json:"time"`
	ChainID string `json:"chain_id,omitempty"`
}

type ContractInfo struct {
	Address string `json:"address"`
}

// Env describes the block an execution runs in.
type Env struct {
	Block    BlockInfo    `json:"block"`
	Contract ContractInfo `json:"contract"`
}

type MessageInfo struct {
	Sender string `json:"sender"`
	Funds  Coins  `json:"funds"`
}

type Delegation struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type TokenInfo struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint8       `json:"decimals"`
	TotalSupply sdkmath.Int `json:"total_supply"`
}

// Querier reads chain state at the block the execution runs in.
type Querier interface {
	AllDelegations(ctx context.Context, delegator string) ([]Delegation, error)
	Delegation(ctx context.Context, delegator, validator string) (*Delegation, error)
	Balance(ctx context.Context, address, denom string) (Coin, error)
	TokenInfo(ctx context.Context, contract string) (TokenInfo, error)
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response carries the messages an execution emits, in execution order.
type Response struct {
	Messages   []CosmosMsg `json:"messages"`
	Attributes []Attribute `json:"attributes"`
}

func newResponse(action string) *Response {
	return &Response{
		Messages:   []CosmosMsg{},
		Attributes: []Attribute{{Key: "action", Value: action}},
	}
}

func (r *Response) addMessages(msgs ...CosmosMsg) *Response {
	r.Messages = append(r.Messages, msgs...)
	return r
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}
