// Package sqlitebackend keeps every collection as one row of the
// "collections" table in an SQLite database.
package sqlitebackend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogatrack/internal/dbx"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/sqlitebackend/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Backend struct {
	db *sql.DB
}

// Open opens the database at dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Backend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Backend {
	return &Backend{db: db}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
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

// Transact runs the read-modify-write cycle in one transaction.
func (b *Backend) Transact(ctx context.Context, collection string, fn func(doc []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
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
	err := db.QueryRowContext(ctx, `SELECT document FROM collections WHERE name = ?`, collection).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select collection: %w", err)
	}
	return doc, nil
}

func write(ctx context.Context, db dbx.DBTX, collection string, doc []byte) error {
	query := `INSERT INTO collections (name, document, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(name) DO UPDATE SET document = excluded.document,
				updated_at = excluded.updated_at`
	if _, err := db.ExecContext(ctx, query, collection, doc); err != nil {
		return fmt.Errorf("upsert collection: %w", err)
	}
	return nil
}
