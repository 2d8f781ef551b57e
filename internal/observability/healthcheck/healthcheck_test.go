package healthcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHealthChecks(t *testing.T) {
	exited := 0
	original := exit
	exit = func() { exited++ }
	t.Cleanup(func() { exit = original })

	calls := 0
	healthy := CheckerFunc(func() error { calls++; return nil })
	broken := CheckerFunc(func() error { return errors.New("connection closed") })

	assert.True(t, runHealthChecks([]Checker{healthy, healthy}))
	assert.Equal(t, 2, calls)
	assert.Zero(t, exited)

	assert.False(t, runHealthChecks([]Checker{broken, healthy}))
	assert.Equal(t, 1, exited)
	assert.Equal(t, 2, calls, "checks stop at the first failure")
}

func TestStartHealthCheckCron(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, StartHealthCheckCron(ctx, 0, CheckerFunc(func() error { return nil })))
}
