package model

import "github.com/babylonchain/liquid-staking-hub/internal/types"

const ExecutionCollection = "executions"

type ExecutionAttribute struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// ExecutionDocument records one message run against the hub, whether it
// committed or not.
type ExecutionDocument struct {
	ExecutionID string                 `bson:"_id" json:"execution_id"`
	Sequence    int64                  `bson:"sequence" json:"sequence"`
	MsgName     string                 `bson:"msg_name" json:"msg_name"`
	Sender      string                 `bson:"sender" json:"sender"`
	Funds       string                 `bson:"funds" json:"funds"`
	Msg         string                 `bson:"msg" json:"msg"`
	BlockHeight uint64                 `bson:"block_height" json:"block_height"`
	BlockTime   uint64                 `bson:"block_time" json:"block_time"`
	Outcome     types.ExecutionOutcome `bson:"outcome" json:"outcome"`
	Error       string                 `bson:"error,omitempty" json:"error,omitempty"`
	Attributes  []ExecutionAttribute   `bson:"attributes" json:"attributes"`
	MessageIDs  []string               `bson:"message_ids" json:"message_ids"`
}

type ExecutionPagination struct {
	Sequence int64 `json:"sequence"`
}

func BuildExecutionPaginationToken(d ExecutionDocument) (string, error) {
	return GetPaginationToken(ExecutionPagination{Sequence: d.Sequence})
}
