package snapshot

import (
	"context"
	"fmt"

	"card-manager/core/storage"

	"gorm.io/gorm"
)

// Open builds the store selected by cfg. db and client may be nil when the selected
// backend does not need them.
func Open(ctx context.Context, cfg Config, db *gorm.DB, client storage.Client, bucket string) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Dir), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendDatabase:
		if db == nil {
			return nil, fmt.Errorf("snapshot backend %q needs a database connection", cfg.Backend)
		}
		s := NewDBStore(db, cfg.Table)
		if err := s.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
		}
		return s, nil
	case BackendObject:
		if client == nil {
			return nil, fmt.Errorf("snapshot backend %q needs a storage client", cfg.Backend)
		}
		s := NewObjectStore(client, bucket, cfg.Prefix)
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
