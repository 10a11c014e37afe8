package redisbackend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
	setErr error
	closed bool
}

func newFake() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	f := newFake()
	b := New(f, "yoga:")

	doc, err := b.Read(ctx, "sessions")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, b.Write(ctx, "sessions", []byte(`{}`)))
	assert.Equal(t, `{}`, f.data["yoga:sessions"])

	doc, err = b.Read(ctx, "sessions")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(doc))

	require.NoError(t, b.Close())
	assert.True(t, f.closed)
}

func TestBackend_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFake()
	f.getErr = errors.New("i/o timeout")
	f.setErr = errors.New("READONLY")
	b := New(f, "")

	_, err := b.Read(ctx, "sessions")
	require.ErrorContains(t, err, "i/o timeout")
	require.ErrorContains(t, b.Write(ctx, "sessions", []byte("x")), "READONLY")
}

func TestBackend_TransactFallback(t *testing.T) {
	ctx := context.Background()
	f := newFake()
	b := New(f, "")

	require.NoError(t, b.Transact(ctx, "progress", func(doc []byte) ([]byte, error) {
		assert.Nil(t, doc)
		return []byte("v1"), nil
	}))
	assert.Equal(t, "v1", f.data["progress"])

	boom := errors.New("boom")
	err := b.Transact(ctx, "progress", func(doc []byte) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "v1", f.data["progress"])
}

func TestBackend_WithStore(t *testing.T) {
	ctx := context.Background()
	b := New(newFake(), "yoga:")

	type rec struct {
		Token string `json:"token"`
	}
	c := recordstore.NewCollection[rec](recordstore.New(b), recordstore.Sessions)
	require.NoError(t, c.Update(ctx, func(m map[string]rec) error {
		m["abc"] = rec{Token: "abc"}
		return nil
	}))

	got, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", got.Token)
}
