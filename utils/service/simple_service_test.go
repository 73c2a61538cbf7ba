package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockCallback struct {
	startErr error
	started  int
	stopped  int
}

func (c *mockCallback) OnStart(ctx context.Context) error {
	c.started++
	return c.startErr
}

func (c *mockCallback) OnStop() {
	c.stopped++
}

func TestSimpleServiceLifecycle(t *testing.T) {
	cb := &mockCallback{}
	s := NewSimpleService(cb)
	require.False(t, s.IsRunning())
	require.Nil(t, s.Start(context.Background()))
	require.True(t, s.IsRunning())
	require.Equal(t, 1, cb.started)
	require.Equal(t, ErrServiceAlreadyStarted, s.Start(context.Background()))
	s.Stop()
	s.Serve()
	require.False(t, s.IsRunning())
	require.Equal(t, 1, cb.stopped)
	// stopping again is a no-op
	s.Stop()
	require.Equal(t, 1, cb.stopped)
	require.Equal(t, ErrServiceAlreadyStopped, s.Start(context.Background()))
}

func TestSimpleServiceStartFailure(t *testing.T) {
	wantErr := errors.New("boom")
	cb := &mockCallback{startErr: wantErr}
	s := NewSimpleService(cb)
	require.Equal(t, wantErr, s.Start(context.Background()))
	require.False(t, s.IsRunning())
}

func TestSimpleServiceStopsOnContextCancel(t *testing.T) {
	cb := &mockCallback{}
	s := NewSimpleService(cb)
	ctx, cancel := context.WithCancel(context.Background())
	require.Nil(t, s.Start(ctx))
	cancel()
	s.Serve()
	require.False(t, s.IsRunning())
	require.Equal(t, 1, cb.stopped)
}
