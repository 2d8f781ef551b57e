package model

const OutboxCollection = "outbox"

// OutboxDocument is a message emitted by a committed execution, waiting to be
// published for the relayer. Sequence and Index give the emission order.
type OutboxDocument struct {
	MessageID   string `bson:"_id"`
	ExecutionID string `bson:"execution_id"`
	Sequence    int64  `bson:"sequence"`
	Index       int    `bson:"index"`
	Kind        string `bson:"kind"`
	Body        string `bson:"body"`
	Published   bool   `bson:"published"`
}
