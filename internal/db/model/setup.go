package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
)

// index keys are ordered, compound indexes depend on it.
type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	ContractStoreCollection: nil,
	ExecutionCollection: {
		{Keys: bson.D{{Key: "sequence", Value: -1}}, Unique: true},
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "sequence", Value: -1}}},
	},
	OutboxCollection: {
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "sequence", Value: 1}, {Key: "index", Value: 1}}},
	},
	UnprocessableMsgCollection: nil,
}

func Setup(ctx context.Context, cfg *config.Config) error {
	clientOps := options.Client().ApplyURI(cfg.Db.Address)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database := client.Database(cfg.Db.DbName)

	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			createIndex(ctx, database, name, idx)
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	names, err := database.ListCollectionNames(ctx, bson.M{"name": collectionName})
	if err == nil && len(names) > 0 {
		log.Debug().Msg("Collection already exists: " + collectionName)
		return
	}

	// CommitExecution writes inside a transaction, collections must exist first.
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to create collection: " + collectionName)
		return
	}

	log.Debug().Msg("Collection created successfully: " + collectionName)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) {
	if len(idx.Keys) == 0 {
		return
	}

	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Debug().Msg(fmt.Sprintf("Failed to create index on collection '%s': %v", collectionName, err))
		return
	}

	log.Debug().Msg("Index created successfully on collection: " + collectionName)
}
