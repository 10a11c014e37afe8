package recordstore

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/yogatrack/internal/common"
)

// Store binds a Backend and a Codec and hands out per-collection locks.
type Store struct {
	backend Backend
	codec   Codec

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Store)

// WithCodec overrides the default JSONCodec.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

func New(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, codec: JSONCodec{}, locks: make(map[string]*sync.Mutex)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Close releases the backend's resources if it holds any.
func (s *Store) Close() error {
	if c, ok := s.backend.(Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Collection is a typed view over one named collection: a mapping of
// record id to T.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// Load returns every record of the collection; an empty map if the collection
// has never been written.
func (c *Collection[T]) Load(ctx context.Context) (map[string]T, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	doc, err := c.store.backend.Read(ctx, c.name)
	if err != nil {
		return nil, common.StoreError("read", c.name, err)
	}
	return c.decode(doc)
}

// Get returns a single record.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	records, err := c.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	r, ok := records[id]
	return r, ok, nil
}

// Save overwrites the whole collection.
func (c *Collection[T]) Save(ctx context.Context, records map[string]T) error {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	return c.write(ctx, records)
}

// Update runs a read-modify-write cycle under the collection lock. fn may
// mutate records freely; if it returns an error the mutation is discarded
// and the error is returned (ErrSkip is swallowed).
func (c *Collection[T]) Update(ctx context.Context, fn func(records map[string]T) error) error {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	var err error
	if tr, ok := c.store.backend.(Transactor); ok {
		err = c.transact(ctx, tr, fn)
	} else {
		err = c.readModifyWrite(ctx, fn)
	}

	if errors.Is(err, ErrSkip) {
		return nil
	}
	return err
}

func (c *Collection[T]) readModifyWrite(ctx context.Context, fn func(map[string]T) error) error {
	doc, err := c.store.backend.Read(ctx, c.name)
	if err != nil {
		return common.StoreError("read", c.name, err)
	}
	records, err := c.decode(doc)
	if err != nil {
		return err
	}
	if err := fn(records); err != nil {
		return err
	}
	return c.write(ctx, records)
}

func (c *Collection[T]) transact(ctx context.Context, tr Transactor, fn func(map[string]T) error) error {
	var inner error

	err := tr.Transact(ctx, c.name, func(doc []byte) ([]byte, error) {
		records, err := c.decode(doc)
		if err != nil {
			inner = err
			return nil, err
		}
		if err := fn(records); err != nil {
			inner = err
			return nil, err
		}
		out, err := c.store.codec.Marshal(records)
		if err != nil {
			inner = common.StoreError("encode", c.name, err)
			return nil, inner
		}
		return out, nil
	})

	if inner != nil {
		return inner
	}
	if err != nil {
		return common.StoreError("transact", c.name, err)
	}
	return nil
}

func (c *Collection[T]) write(ctx context.Context, records map[string]T) error {
	doc, err := c.store.codec.Marshal(records)
	if err != nil {
		return common.StoreError("encode", c.name, err)
	}
	if err := c.store.backend.Write(ctx, c.name, doc); err != nil {
		return common.StoreError("write", c.name, err)
	}
	return nil
}

func (c *Collection[T]) decode(doc []byte) (map[string]T, error) {
	records := make(map[string]T)
	if len(doc) == 0 {
		return records, nil
	}
	if err := c.store.codec.Unmarshal(doc, &records); err != nil {
		return nil, common.StoreError("decode", c.name, err)
	}
	if records == nil {
		// a literal "null" document
		records = make(map[string]T)
	}
	return records, nil
}
