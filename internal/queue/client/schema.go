package client

import (
	"encoding/json"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
)

// ExecuteEvent asks the hub to run Msg on behalf of Sender. When the block
// fields are zero the latest block of the chain is used.
type ExecuteEvent struct {
	Sender      string          `json:"sender"`
	Funds       hub.Coins       `json:"funds,omitempty"`
	Msg         json.RawMessage `json:"msg"`
	BlockHeight uint64          `json:"block_height,omitempty"`
	BlockTime   uint64          `json:"block_time,omitempty"`
}

// OutboundMessageEvent carries one message emitted by a committed execution.
// Messages of an execution share ExecutionID and are ordered by Index.
type OutboundMessageEvent struct {
	MessageID   string          `json:"message_id"`
	ExecutionID string          `json:"execution_id"`
	Index       int             `json:"index"`
	Kind        string          `json:"kind"`
	Msg         json.RawMessage `json:"msg"`
}
