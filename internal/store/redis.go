package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// blobKey is the fixed namespaced key the ledger blob lives under.
// It carries a version suffix so a future incompatible shape can move to a
// new key instead of corrupting old data in place.
const blobKey = "carl:app-data:v1"

// NewRedisStore returns a Store that keeps the ledger blob under a single
// key in redis. Used when the driver points the app at a shared local
// key-value server instead of a file.
func NewRedisStore(client *redis.Client, log *slog.Logger) Store {
	return newBlobStore(&redisBlob{client: client}, log)
}

type redisBlob struct {
	client *redis.Client
}

func (r *redisBlob) read(ctx context.Context) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, blobKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisBlob) write(ctx context.Context, data []byte) error {
	// No TTL: the ledger is durable state, not a cache entry.
	return r.client.Set(ctx, blobKey, data, 0).Err()
}
