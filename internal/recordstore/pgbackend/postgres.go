// Package pgbackend keeps every collection as one row of the "collections"
// table in PostgreSQL. Read-modify-write cycles take a transaction-scoped
// advisory lock keyed by the collection name, so several server processes
// can share one database.
package pgbackend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogatrack/internal/dbx"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/pgbackend/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Backend struct {
	db *sql.DB
}

// Open connects to dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Backend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

func New(db *sql.DB) *Backend {
	return &Backend{db: db}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) Read(ctx context.Context, collection string) ([]byte, error) {
	return read(ctx, b.db, collection)
}

func (b *Backend) Write(ctx context.Context, collection string, doc []byte) error {
	return write(ctx, b.db, collection, doc)
}

func (b *Backend) Transact(ctx context.Context, collection string, fn func(doc []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, collection); err != nil {
			return fmt.Errorf("lock collection: %w", err)
		}
		doc, err := read(ctx, tx, collection)
		if err != nil {
			return err
		}
		out, err := fn(doc)
		if err != nil {
			return err
		}
		return write(ctx, tx, collection, out)
	})
}

func read(ctx context.Context, db dbx.DBTX, collection string) ([]byte, error) {
	var doc []byte
	err := db.QueryRowContext(ctx, `SELECT document FROM collections WHERE name = $1`, collection).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func write(ctx context.Context, db dbx.DBTX, collection string, doc []byte) error {
	query := `INSERT INTO collections (name, document, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	if _, err := db.ExecContext(ctx, query, collection, doc); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
