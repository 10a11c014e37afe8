// Package redisbackend stores each collection as one string key in Redis.
package redisbackend

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const maxAttempts = 5

var ErrTooManyConflicts = errors.New("redisbackend: too many concurrent writers")

// kv is the part of *goredis.Client used for plain reads and writes.
type kv interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Close() error
}

// watcher is implemented by *goredis.Client; with it Transact uses
// WATCH/MULTI/EXEC.
type watcher interface {
	Watch(ctx context.Context, fn func(*goredis.Tx) error, keys ...string) error
}

type Backend struct {
	rdb    kv
	prefix string
}

// Open connects to addr and pings the server.
func Open(ctx context.Context, addr, password, prefix string) (*Backend, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, prefix), nil
}

func New(rdb kv, prefix string) *Backend {
	return &Backend{rdb: rdb, prefix: prefix}
}

func (b *Backend) key(collection string) string {
	return b.prefix + collection
}

func (b *Backend) Close() error {
	return b.rdb.Close()
}

func (b *Backend) Read(ctx context.Context, collection string) ([]byte, error) {
	doc, err := b.rdb.Get(ctx, b.key(collection)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", b.key(collection), err)
	}
	return doc, nil
}

func (b *Backend) Write(ctx context.Context, collection string, doc []byte) error {
	if err := b.rdb.Set(ctx, b.key(collection), doc, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key(collection), err)
	}
	return nil
}

// Transact retries the cycle when the key changes between GET and EXEC.
// Clients that cannot WATCH fall back to an unguarded read and write.
func (b *Backend) Transact(ctx context.Context, collection string, fn func(doc []byte) ([]byte, error)) error {
	w, ok := b.rdb.(watcher)
	if !ok {
		doc, err := b.Read(ctx, collection)
		if err != nil {
			return err
		}
		out, err := fn(doc)
		if err != nil {
			return err
		}
		return b.Write(ctx, collection, out)
	}

	key := b.key(collection)
	var fnErr error
	txf := func(tx *goredis.Tx) error {
		doc, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		out, err := fn(doc)
		if err != nil {
			fnErr = err
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := w.Watch(ctx, txf, key)
		if fnErr != nil {
			return fnErr
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis transact %s: %w", key, err)
		}
		return nil
	}
	return ErrTooManyConflicts
}
