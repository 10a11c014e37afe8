package repomanager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/yogatrack/internal/filex"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/filebackend"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/pgbackend"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/redisbackend"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/s3backend"
	"github.com/dmitrijs2005/yogatrack/internal/recordstore/sqlitebackend"
	"github.com/dmitrijs2005/yogatrack/internal/server/config"
)

const sqliteFileName = "yogatrack.db"

// OpenBackend opens the backend named by cfg.StorageBackend.
func OpenBackend(ctx context.Context, cfg *config.Config) (recordstore.Backend, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return recordstore.NewMemoryBackend(), nil
	case config.StorageFile:
		return filebackend.New(cfg.DataDir)
	case config.StorageSQLite:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return sqlitebackend.Open(ctx, filepath.Join(dir, sqliteFileName))
	case config.StoragePostgres:
		return pgbackend.Open(ctx, cfg.DatabaseDSN)
	case config.StorageS3:
		return s3backend.Open(ctx, s3backend.Options{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case config.StorageRedis:
		return redisbackend.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKeyPrefix)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// Open builds a manager over the configured backend, sealing documents when
// an encryption key is set.
func Open(ctx context.Context, cfg *config.Config) (*StoreRepositoryManager, error) {
	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		return nil, err
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.StorageBackend, err)
	}

	var opts []recordstore.Option
	if key != nil {
		opts = append(opts, recordstore.WithCodec(recordstore.NewSealedCodec(key)))
	}
	return NewStoreRepositoryManager(recordstore.New(backend, opts...)), nil
}
