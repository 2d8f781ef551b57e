package jobs

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/liquid-staking-hub/internal/config"
	"github.com/babylonchain/liquid-staking-hub/internal/services"
	"github.com/babylonchain/liquid-staking-hub/internal/types"
)

type fakeExecutor struct {
	mu       sync.Mutex
	requests []services.ExecuteRequest
	err      *types.Error
}

func (f *fakeExecutor) Execute(ctx context.Context, req services.ExecuteRequest) (*services.ExecutionResult, *types.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return nil, types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "no deadline")
	}
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &services.ExecutionResult{ExecutionID: "e1"}, nil
}

func TestRunKeeperJob(t *testing.T) {
	executor := &fakeExecutor{}
	ok := runKeeperJob(context.Background(), executor, "keeper", "check_slashing", checkSlashingMsg, time.Second)
	assert.True(t, ok)
	require.Len(t, executor.requests, 1)
	assert.Equal(t, "keeper", executor.requests[0].Sender)
	assert.JSONEq(t, `{"check_slashing":{}}`, string(executor.requests[0].Msg))
	assert.Nil(t, executor.requests[0].Block)

	executor.err = types.NewErrorWithMsg(http.StatusConflict, types.Conflict, "hub is paused")
	assert.False(t, runKeeperJob(context.Background(), executor, "keeper", "update_global_index", updateGlobalIndexMsg, time.Second))
	assert.JSONEq(t, `{"update_global_index":{}}`, string(executor.requests[1].Msg))
}

func TestStartKeeperCron(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executor := &fakeExecutor{}
	require.NoError(t, StartKeeperCron(ctx, config.KeeperConfig{Enabled: false}, executor, time.Second))

	cfg := config.KeeperConfig{
		Enabled:                   true,
		Sender:                    "keeper",
		CheckSlashingInterval:     time.Second,
		UpdateGlobalIndexInterval: time.Second,
	}
	require.NoError(t, StartKeeperCron(ctx, cfg, executor, time.Second))

	assert.Eventually(t, func() bool {
		executor.mu.Lock()
		defer executor.mu.Unlock()
		seen := map[string]bool{}
		for _, req := range executor.requests {
			seen[string(req.Msg)] = true
		}
		return seen[string(checkSlashingMsg)] && seen[string(updateGlobalIndexMsg)]
	}, 5*time.Second, 50*time.Millisecond)
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakePublisher) PublishOutbox(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 1, f.err
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStartOutboxPublisher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	publisher := &fakePublisher{err: errors.New("broker down")}
	notifications := make(chan struct{}, 1)

	done, err := StartOutboxPublisher(ctx, time.Hour, notifications, publisher)
	require.NoError(t, err)

	// once at start, even though it fails
	assert.Eventually(t, func() bool { return publisher.count() == 1 }, time.Second, 10*time.Millisecond)

	notifications <- struct{}{}
	assert.Eventually(t, func() bool { return publisher.count() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
