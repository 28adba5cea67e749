package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"chatops.app/courier/core/kv"
	"chatops.app/courier/internal/model"
)

// DirectoryStore owns the directory record: one well-known key holding the
// whole serialized contact set. There is no partial update; callers
// read-modify-write and the last save wins. Two racing imports can lose an
// update — that limitation is documented, not corrected here.
type DirectoryStore interface {
	Load(ctx context.Context) (model.Directory, error)
	Save(ctx context.Context, dir model.Directory) error
	Remove(ctx context.Context, contactID string) error
}

const directoryKeySuffix = "contacts"

type redisDirectoryStore struct {
	kv *kv.KV
}

func NewDirectoryStore(handle *kv.KV) DirectoryStore {
	return &redisDirectoryStore{kv: handle}
}

func (s *redisDirectoryStore) key() string {
	return s.kv.Key(directoryKeySuffix)
}

// Load returns the persisted directory, or an empty one when no record
// exists yet. Absence is success; only transport failures are errors.
func (s *redisDirectoryStore) Load(ctx context.Context) (model.Directory, error) {
	raw, err := s.kv.Client().Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Directory{}, nil
		}
		return nil, unavailable("loading directory", err)
	}

	var dir model.Directory
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		return nil, fmt.Errorf("decoding directory record: %w", err)
	}
	return dir, nil
}

func (s *redisDirectoryStore) Save(ctx context.Context, dir model.Directory) error {
	if dir == nil {
		dir = model.Directory{}
	}
	raw, err := json.Marshal(dir)
	if err != nil {
		return fmt.Errorf("encoding directory record: %w", err)
	}

	if err := s.kv.Client().Set(ctx, s.key(), raw, 0).Err(); err != nil {
		return unavailable("saving directory", err)
	}

	slog.DebugContext(ctx, "directory saved", "contacts", len(dir))
	return nil
}

// Remove recomputes the whole set without the given contact. A missing
// contact is a no-op, not an error.
func (s *redisDirectoryStore) Remove(ctx context.Context, contactID string) error {
	dir, err := s.Load(ctx)
	if err != nil {
		return err
	}

	filtered := make(model.Directory, 0, len(dir))
	for _, c := range dir {
		if c.ID != contactID {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == len(dir) {
		return nil
	}
	return s.Save(ctx, filtered)
}
