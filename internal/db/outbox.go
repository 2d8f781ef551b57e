package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
)

// FindPendingOutbox returns unpublished messages in emission order.
func (db *Database) FindPendingOutbox(ctx context.Context, limit int64) ([]model.OutboxDocument, error) {
	client := db.collection(model.OutboxCollection)
	options := options.Find().
		SetSort(bson.D{{Key: "sequence", Value: 1}, {Key: "index", Value: 1}}).
		SetLimit(limit)

	cursor, err := client.Find(ctx, bson.M{"published": false}, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []model.OutboxDocument
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (db *Database) MarkOutboxPublished(ctx context.Context, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": messageIDs}}
	update := bson.M{"$set": bson.M{"published": true}}
	_, err := db.collection(model.OutboxCollection).UpdateMany(ctx, filter, update)
	return err
}
