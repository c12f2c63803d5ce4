package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUntilSignalReturnsServiceError(t *testing.T) {
	err := runUntilSignal(context.Background(), func(ctx context.Context) error {
		return errors.New("dial failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial failed")
}

func TestRunUntilSignalStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- runUntilSignal(ctx, func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return nil
		})
	}()
	<-started
	cancel()
	assert.NoError(t, <-done)
}

func TestRunUntilSignalCompletes(t *testing.T) {
	assert.NoError(t, runUntilSignal(context.Background(), func(context.Context) error { return nil }))
}
