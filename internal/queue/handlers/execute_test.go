package handlers

import (
	"context"
	"net/http"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/liquid-staking-hub/internal/hub"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

type fakeHubService struct {
	requests []services.ExecuteRequest
	err      *types.Error
	saved    []string
}

func (f *fakeHubService) Execute(_ context.Context, req services.ExecuteRequest) (*services.ExecutionResult, *types.Error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &services.ExecutionResult{ExecutionID: "e1", Sequence: int64(len(f.requests))}, nil
}

func (f *fakeHubService) SaveUnprocessableMessages(_ context.Context, body, receipt, reason string) *types.Error {
	f.saved = append(f.saved, body+"|"+receipt+"|"+reason)
	return nil
}

func TestExecuteHandler(t *testing.T) {
	svc := &fakeHubService{}
	h := NewQueueHandler(svc)

	err := h.ExecuteHandler(context.Background(),
		`{"sender":"alice","funds":[{"denom":"uluna","amount":"10"}],"msg":{"bond":{}}}`)
	require.Nil(t, err)
	require.Len(t, svc.requests, 1)
	req := svc.requests[0]
	assert.Equal(t, "alice", req.Sender)
	assert.Equal(t, "10uluna", req.Funds.String())
	assert.True(t, req.Funds.AmountOf("uluna").Equal(sdkmath.NewInt(10)))
	assert.JSONEq(t, `{"bond":{}}`, string(req.Msg))
	assert.Nil(t, req.Block)
}

func TestExecuteHandler_PinnedBlock(t *testing.T) {
	svc := &fakeHubService{}
	h := NewQueueHandler(svc)

	err := h.ExecuteHandler(context.Background(),
		`{"sender":"alice","msg":{"check_slashing":{}},"block_height":12,"block_time":1700000000}`)
	require.Nil(t, err)
	require.NotNil(t, svc.requests[0].Block)
	assert.Equal(t, hub.BlockInfo{Height: 12, Time: 1700000000}, *svc.requests[0].Block)
}

func TestExecuteHandler_BadEvents(t *testing.T) {
	svc := &fakeHubService{}
	h := NewQueueHandler(svc)

	for _, body := range []string{`not json`, `{"msg":{"bond":{}}}`} {
		err := h.ExecuteHandler(context.Background(), body)
		require.NotNil(t, err, body)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	}
	assert.Empty(t, svc.requests)
}

func TestExecuteHandler_PassesServiceErrors(t *testing.T) {
	svc := &fakeHubService{err: types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "lcd")}
	h := NewQueueHandler(svc)

	err := h.ExecuteHandler(context.Background(), `{"sender":"alice","msg":{"check_slashing":{}}}`)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
}

func TestHandleUnprocessedMessage(t *testing.T) {
	svc := &fakeHubService{}
	h := NewQueueHandler(svc)
	require.Nil(t, h.HandleUnprocessedMessage(context.Background(), "body", "9", "rejected"))
	assert.Equal(t, []string{"body|9|rejected"}, svc.saved)
}
