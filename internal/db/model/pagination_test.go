package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionPaginationToken(t *testing.T) {
	token, err := BuildExecutionPaginationToken(ExecutionDocument{ExecutionID: "id", Sequence: 42})
	require.NoError(t, err)

	decoded, err := DecodePaginationToken[ExecutionPagination](token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), decoded.Sequence)

	_, err = DecodePaginationToken[ExecutionPagination]("%%%")
	require.Error(t, err)
}

func TestStoreKeyOrder(t *testing.T) {
	keys := [][]byte{{0x01}, {0x01, 0x00}, {0x01, 0xff}, {0x02}, {0x11, 0x00, 0x05}}
	for i := 1; i < len(keys); i++ {
		assert.Less(t, EncodeStoreKey(keys[i-1]), EncodeStoreKey(keys[i]))
	}

	decoded, err := DecodeStoreKey(EncodeStoreKey(keys[4]))
	require.NoError(t, err)
	assert.Equal(t, keys[4], decoded)
}
