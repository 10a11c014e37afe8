package filebackend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	b, err := New(dir)
	require.NoError(t, err)

	doc, err := b.Read(ctx, "accounts")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, b.Write(ctx, "accounts", []byte(`{"a":1}`)))

	raw, err := os.ReadFile(filepath.Join(dir, "accounts.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))

	doc, err = b.Read(ctx, "accounts")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(doc))
}

func TestBackend_CancelledContext(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Read(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, b.Write(ctx, "x", nil), context.Canceled)
}

func TestBackend_WithStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := New(dir)
	require.NoError(t, err)

	type rec struct {
		Name string `json:"name"`
	}
	c := recordstore.NewCollection[rec](recordstore.New(b), recordstore.Accounts)
	require.NoError(t, c.Update(ctx, func(m map[string]rec) error {
		m["u1"] = rec{Name: "alice"}
		return nil
	}))

	// a second store over the same directory sees the write
	b2, err := New(dir)
	require.NoError(t, err)
	got, ok, err := recordstore.NewCollection[rec](recordstore.New(b2), recordstore.Accounts).Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)
}
