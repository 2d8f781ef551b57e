package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
)

func (db *Database) SaveUnprocessableMessage(ctx context.Context, messageBody, receipt, reason string) error {
	unprocessableMsgClient := db.collection(model.UnprocessableMsgCollection)

	_, err := unprocessableMsgClient.InsertOne(ctx, model.NewUnprocessableMessageDocument(messageBody, receipt, reason))
	if err != nil {
		return err
	}

	return nil
}

func (db *Database) FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error) {
	client := db.collection(model.UnprocessableMsgCollection)
	filter := bson.M{}
	options := options.FindOptions{}

	cursor, err := client.Find(ctx, filter, &options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var unprocessableMessages []model.UnprocessableMessageDocument
	if err = cursor.All(ctx, &unprocessableMessages); err != nil {
		return nil, err
	}

	return unprocessableMessages, nil
}

// DeleteUnprocessableMessage removes the document with the given _id. Receipts
// are delivery tags and repeat across broker connections, so they cannot
// identify a document.
func (db *Database) DeleteUnprocessableMessage(ctx context.Context, id interface{}) error {
	unprocessableMsgClient := db.collection(model.UnprocessableMsgCollection)
	filter := bson.M{"_id": id}
	_, err := unprocessableMsgClient.DeleteOne(ctx, filter)
	return err
}
