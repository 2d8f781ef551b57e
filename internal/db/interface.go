package db

import (
	"context"

	corestore "cosmossdk.io/core/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

type DBClient interface {
	Ping(ctx context.Context) error
	// ContractStore returns the committed hub store. Reads go straight to the
	// database, writes are applied by CommitExecution only.
	ContractStore(ctx context.Context) corestore.KVStore
	// CommitExecution persists the changes of a successful execution, its
	// record and its outbound messages in one transaction.
	CommitExecution(
		ctx context.Context, execution *model.ExecutionDocument, changes []store.Change, outbox []model.OutboxDocument,
	) error
	SaveExecution(ctx context.Context, execution *model.ExecutionDocument) error
	FindExecutionByID(ctx context.Context, executionID string) (*model.ExecutionDocument, error)
	FindExecutions(ctx context.Context, sender string, paginationToken string) (*DbResultMap[model.ExecutionDocument], error)
	LastExecutionSequence(ctx context.Context) (int64, error)
	FindPendingOutbox(ctx context.Context, limit int64) ([]model.OutboxDocument, error)
	MarkOutboxPublished(ctx context.Context, messageIDs []string) error
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt, reason string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, id interface{}) error
}

type DBTransactionClient interface {
	StartSession(opts ...*options.SessionOptions) (DBSession, error)
}

type DBSession interface {
	EndSession(ctx context.Context)
	WithTransaction(
		ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error), opts ...*options.TransactionOptions,
	) (interface{}, error)
}
