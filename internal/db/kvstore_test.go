package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
)

// countingCursor records how many documents were decoded.
type countingCursor struct {
	*mongo.Cursor
	decoded int
	closed  bool
}

func (c *countingCursor) Decode(val interface{}) error {
	c.decoded++
	return c.Cursor.Decode(val)
}

func (c *countingCursor) Close(ctx context.Context) error {
	c.closed = true
	return c.Cursor.Close(ctx)
}

func storeCursor(t *testing.T, keys ...string) *countingCursor {
	t.Helper()
	docs := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, model.ContractStoreDocument{
			Key:   model.EncodeStoreKey([]byte(key)),
			Value: []byte("v-" + key),
		})
	}
	cursor, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	return &countingCursor{Cursor: cursor}
}

func TestCursorIterator(t *testing.T) {
	ctx := context.Background()
	cursor := storeCursor(t, "a", "b", "c")
	it := newCursorIterator(ctx, cursor, []byte("a"), []byte("d"))

	var keys, values []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []string{"v-a", "v-b", "v-c"}, values)

	start, end := it.Domain()
	assert.Equal(t, []byte("a"), start)
	assert.Equal(t, []byte("d"), end)

	require.NoError(t, it.Close())
	assert.True(t, cursor.closed)
	assert.Panics(t, func() { it.Key() })
}

func TestCursorIterator_DecodesOnlyWhatIsWalked(t *testing.T) {
	cursor := storeCursor(t, "a", "b", "c", "d", "e", "f")
	it := newCursorIterator(context.Background(), cursor, nil, nil)

	for i := 0; i < 2 && it.Valid(); i++ {
		it.Next()
	}
	require.NoError(t, it.Close())
	assert.Equal(t, 3, cursor.decoded)
}

func TestCursorIterator_Empty(t *testing.T) {
	it := newCursorIterator(context.Background(), storeCursor(t), nil, nil)
	assert.False(t, it.Valid())
	assert.NoError(t, it.Error())
	assert.NoError(t, it.Close())
}

type failingCursor struct {
	countingCursor
}

func (c *failingCursor) Next(context.Context) bool { return false }
func (c *failingCursor) Err() error                { return errors.New("cursor killed") }

func TestCursorIterator_SurfacesCursorError(t *testing.T) {
	cursor := &failingCursor{countingCursor: *storeCursor(t, "a")}
	it := newCursorIterator(context.Background(), cursor, nil, nil)
	assert.False(t, it.Valid())
	assert.EqualError(t, it.Error(), "cursor killed")
}

func TestCursorIterator_RejectsMalformedKey(t *testing.T) {
	cursor, err := mongo.NewCursorFromDocuments([]interface{}{
		model.ContractStoreDocument{Key: "not-hex", Value: []byte("v")},
	}, nil, nil)
	require.NoError(t, err)

	it := newCursorIterator(context.Background(), &countingCursor{Cursor: cursor}, nil, nil)
	assert.False(t, it.Valid())
	assert.Error(t, it.Error())
}
