package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const UnprocessableMsgCollection = "unprocessable_messages"

// UnprocessableMessageDocument keeps a queue message the hub could not apply,
// together with the reason, until it is replayed.
type UnprocessableMessageDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	MessageBody string             `bson:"message_body"`
	Receipt     string             `bson:"receipt"`
	Reason      string             `bson:"reason"`
}

func NewUnprocessableMessageDocument(messageBody, receipt, reason string) *UnprocessableMessageDocument {
	return &UnprocessableMessageDocument{
		MessageBody: messageBody,
		Receipt:     receipt,
		Reason:      reason,
	}
}
