package db

import (
	"context"
	"errors"

	corestore "cosmossdk.io/core/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/store"
)

var errReadOnlyStore = errors.New("contract store is read only outside of CommitExecution")

// contractStore reads the committed hub store. It is bound to the context it
// was opened with.
type contractStore struct {
	ctx        context.Context
	collection *mongo.Collection
}

var _ corestore.KVStore = (*contractStore)(nil)

func (db *Database) ContractStore(ctx context.Context) corestore.KVStore {
	return &contractStore{ctx: ctx, collection: db.collection(model.ContractStoreCollection)}
}

func (s *contractStore) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, store.ErrEmptyKey
	}
	var doc model.ContractStoreDocument
	err := s.collection.FindOne(s.ctx, bson.M{"_id": model.EncodeStoreKey(key)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if doc.Value == nil {
		return []byte{}, nil
	}
	return doc.Value, nil
}

func (s *contractStore) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, store.ErrEmptyKey
	}
	count, err := s.collection.CountDocuments(s.ctx, bson.M{"_id": model.EncodeStoreKey(key)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *contractStore) Set([]byte, []byte) error { return errReadOnlyStore }
func (s *contractStore) Delete([]byte) error      { return errReadOnlyStore }

func (s *contractStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return s.iterate(start, end, 1)
}

func (s *contractStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return s.iterate(start, end, -1)
}

// storeIteratorBatchSize bounds how many documents a range read pulls from
// the server at a time. Walks that stop early never fetch the rest.
const storeIteratorBatchSize = 32

func (s *contractStore) iterate(start, end []byte, order int) (corestore.Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, store.ErrEmptyKey
	}

	bounds := bson.M{}
	if start != nil {
		bounds["$gte"] = model.EncodeStoreKey(start)
	}
	if end != nil {
		bounds["$lt"] = model.EncodeStoreKey(end)
	}
	filter := bson.M{}
	if len(bounds) > 0 {
		filter["_id"] = bounds
	}

	options := options.Find().
		SetSort(bson.M{"_id": order}).
		SetBatchSize(storeIteratorBatchSize)
	cursor, err := s.collection.Find(s.ctx, filter, options)
	if err != nil {
		return nil, err
	}
	return newCursorIterator(s.ctx, cursor, start, end), nil
}

// documentCursor is the part of *mongo.Cursor the store iterator uses.
type documentCursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

var errInvalidIterator = errors.New("iterator is not valid")

// cursorIterator decodes contract store documents one at a time as the
// caller advances.
type cursorIterator struct {
	ctx        context.Context
	cursor     documentCursor
	start, end []byte
	key, value []byte
	valid      bool
	err        error
}

var _ corestore.Iterator = (*cursorIterator)(nil)

func newCursorIterator(ctx context.Context, cursor documentCursor, start, end []byte) *cursorIterator {
	it := &cursorIterator{ctx: ctx, cursor: cursor, start: start, end: end}
	it.advance()
	return it
}

func (it *cursorIterator) advance() {
	it.valid = false
	if it.err != nil || !it.cursor.Next(it.ctx) {
		if it.err == nil {
			it.err = it.cursor.Err()
		}
		return
	}
	var doc model.ContractStoreDocument
	if err := it.cursor.Decode(&doc); err != nil {
		it.err = err
		return
	}
	key, err := model.DecodeStoreKey(doc.Key)
	if err != nil {
		it.err = err
		return
	}
	it.key, it.value, it.valid = key, doc.Value, true
	if it.value == nil {
		it.value = []byte{}
	}
}

func (it *cursorIterator) Domain() ([]byte, []byte) { return it.start, it.end }
func (it *cursorIterator) Valid() bool              { return it.valid }

func (it *cursorIterator) Next() {
	if it.valid {
		it.advance()
	}
}

func (it *cursorIterator) Key() []byte {
	if !it.valid {
		panic(errInvalidIterator)
	}
	return it.key
}

func (it *cursorIterator) Value() []byte {
	if !it.valid {
		panic(errInvalidIterator)
	}
	return it.value
}

func (it *cursorIterator) Error() error { return it.err }

func (it *cursorIterator) Close() error {
	it.valid = false
	return it.cursor.Close(it.ctx)
}

// storeWrites converts buffered changes into bulk write models.
func storeWrites(changes []store.Change) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(changes))
	for _, change := range changes {
		id := model.EncodeStoreKey(change.Key)
		if change.Delete {
			writes = append(writes, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": id}))
			continue
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(model.ContractStoreDocument{Key: id, Value: change.Value}).
			SetUpsert(true))
	}
	return writes
}
