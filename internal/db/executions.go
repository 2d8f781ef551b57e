package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

func (db *Database) CommitExecution(
	ctx context.Context, execution *model.ExecutionDocument, changes []store.Change, outbox []model.OutboxDocument,
) error {
	storeClient := db.collection(model.ContractStoreCollection)
	executionClient := db.collection(model.ExecutionCollection)
	outboxClient := db.collection(model.OutboxCollection)

	writes := storeWrites(changes)
	transactionWork := func(sessCtx mongo.SessionContext) (interface{}, error) {
		if len(writes) > 0 {
			if _, err := storeClient.BulkWrite(sessCtx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
				return nil, err
			}
		}

		if _, err := executionClient.InsertOne(sessCtx, execution); err != nil {
			return nil, wrapDuplicateKey(err, execution.ExecutionID, "execution already recorded")
		}

		if len(outbox) > 0 {
			docs := make([]interface{}, len(outbox))
			for i := range outbox {
				docs[i] = outbox[i]
			}
			if _, err := outboxClient.InsertMany(sessCtx, docs); err != nil {
				return nil, wrapDuplicateKey(err, execution.ExecutionID, "outbound message already recorded")
			}
		}
		return nil, nil
	}

	_, err := TxWithRetries(ctx, db.transactionClient(), transactionWork)
	return err
}

// SaveExecution records an execution that changed nothing, such as a
// rejected message.
func (db *Database) SaveExecution(ctx context.Context, execution *model.ExecutionDocument) error {
	_, err := db.collection(model.ExecutionCollection).InsertOne(ctx, execution)
	if err != nil {
		return wrapDuplicateKey(err, execution.ExecutionID, "execution already recorded")
	}
	return nil
}

func (db *Database) FindExecutionByID(ctx context.Context, executionID string) (*model.ExecutionDocument, error) {
	var execution model.ExecutionDocument
	err := db.collection(model.ExecutionCollection).FindOne(ctx, bson.M{"_id": executionID}).Decode(&execution)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     executionID,
				Message: "Execution not found",
			}
		}
		return nil, err
	}
	return &execution, nil
}

// FindExecutions lists executions newest first, optionally for one sender.
func (db *Database) FindExecutions(
	ctx context.Context, sender string, paginationToken string,
) (*DbResultMap[model.ExecutionDocument], error) {
	client := db.collection(model.ExecutionCollection)

	filter := bson.M{}
	if sender != "" {
		filter["sender"] = sender
	}
	options := options.Find().SetSort(bson.M{"sequence": -1})
	options.SetLimit(db.cfg.MaxPaginationLimit)

	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.ExecutionPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter["sequence"] = bson.M{"$lt": decodedToken.Sequence}
	}

	cursor, err := client.Find(ctx, filter, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var executions []model.ExecutionDocument
	if err = cursor.All(ctx, &executions); err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(db.cfg, executions, model.BuildExecutionPaginationToken)
}

// LastExecutionSequence returns the highest recorded sequence, 0 when none.
func (db *Database) LastExecutionSequence(ctx context.Context) (int64, error) {
	var execution model.ExecutionDocument
	err := db.collection(model.ExecutionCollection).
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"sequence": -1})).
		Decode(&execution)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return execution.Sequence, nil
}
