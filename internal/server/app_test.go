package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/logging"
	"github.com/dmitrijs2005/yogatrack/internal/server/config"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepExpired(context.Context) (int, error) {
	s.calls.Add(1)
	return 0, s.err
}

func TestRunSweeper(t *testing.T) {
	s := &countingSweeper{err: errors.New("store down")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runSweeper(ctx, s, 10*time.Millisecond, logging.Nop()) }()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRunSweeper_Disabled(t *testing.T) {
	s := &countingSweeper{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, runSweeper(ctx, s, 0, logging.Nop()))
	assert.Zero(t, s.calls.Load())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.StorageBackend = config.StorageMemory

	app := newApp(c, logging.Nop(), repomanager.NewInMemory())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunFailsOnBadAddress(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app := newApp(c, logging.Nop(), repomanager.NewInMemory())
	require.Error(t, app.Run(context.Background()))
}

func TestNewApp_Memory(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.StorageMemory

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.NotNil(t, app.identity)
	require.NoError(t, app.repomanager.Close())
}
