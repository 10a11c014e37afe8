package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/repomanager"
)

// testZone is east of UTC so that calendar days differ from UTC days.
var testZone = time.FixedZone("test", 3*60*60)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, testZone)
}

type fixture struct {
	backend  recordstore.Backend
	rm       *repomanager.StoreRepositoryManager
	clock    *fakeClock
	identity *IdentityService
	engine   *ProgressEngine
	tracker  *Tracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithBackend(t, recordstore.NewMemoryBackend())
}

func newFixtureWithBackend(t *testing.T, b recordstore.Backend) *fixture {
	t.Helper()
	f := &fixture{
		backend: b,
		rm:      repomanager.NewStoreRepositoryManager(recordstore.New(b)),
		clock:   newClock(day(2025, time.March, 10, 9, 0)),
	}
	f.identity = NewIdentityService(f.rm, "pepper", WithClock(f.clock.Now))
	f.engine = NewProgressEngine(f.rm, WithClock(f.clock.Now))
	f.tracker = NewTracker(f.engine, f.identity)
	return f
}

// failingBackend fails reads or writes of the named collections.
type failingBackend struct {
	*recordstore.MemoryBackend
	failRead  string
	failWrite string
	err       error
}

func (b *failingBackend) Write(ctx context.Context, collection string, doc []byte) error {
	if collection == b.failWrite {
		return b.err
	}
	return b.MemoryBackend.Write(ctx, collection, doc)
}

func (b *failingBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	if collection == b.failRead {
		return nil, b.err
	}
	return b.MemoryBackend.Read(ctx, collection)
}
