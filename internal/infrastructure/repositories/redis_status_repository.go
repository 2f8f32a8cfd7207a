package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"media-uploader/internal/domain/entities"

	"github.com/go-redis/redis/v8"
)

const statusKeyPrefix = "operation:"

// RedisStatusStore operasyon snapshot'larını TTL ile tutar.
// Terminal sonuç event kanalından bağımsız olarak buradan da sorgulanabilir;
// kayıtlar süresi dolunca kendiliğinden düşer.
type RedisStatusStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusStore(rdb *redis.Client, ttl time.Duration) *RedisStatusStore {
	return &RedisStatusStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStatusStore) SaveSnapshot(ctx context.Context, snap entities.OperationSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot serialize edilemedi: %w", err)
	}
	return s.rdb.Set(ctx, statusKeyPrefix+snap.ID, data, s.ttl).Err()
}

func (s *RedisStatusStore) GetSnapshot(ctx context.Context, id string) (*entities.OperationSnapshot, error) {
	val, err := s.rdb.Get(ctx, statusKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("operation not found")
	}
	if err != nil {
		return nil, err
	}

	var snap entities.OperationSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("snapshot deserialize edilemedi: %w", err)
	}
	return &snap, nil
}
