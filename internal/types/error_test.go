package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_Defaults(t *testing.T) {
	err := NewError(UninitializedStatusCode, "", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, InternalServiceError, err.ErrorCode)
	assert.Equal(t, "boom", err.Error())

	err = NewErrorWithMsg(http.StatusRequestTimeout, RequestTimeout, "slow")
	assert.Equal(t, http.StatusRequestTimeout, err.StatusCode)
	assert.Equal(t, "REQUEST_TIMEOUT", err.ErrorCode.String())
}

func TestFromStringToExecutionOutcome(t *testing.T) {
	for _, o := range []ExecutionOutcome{Committed, Rejected, Failed} {
		got, err := FromStringToExecutionOutcome(o.ToString())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := FromStringToExecutionOutcome("pending")
	require.Error(t, err)
}
