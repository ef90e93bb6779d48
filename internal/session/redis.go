package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

const redisKeyPrefix = "sesion:"

// RedisStore keeps sessions in redis so multiple instances can share them.
// Records are JSON with a TTL; redis handles expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Guardar(ctx context.Context, id string, s model.Sesion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return r.rdb.Set(ctx, redisKeyPrefix+id, data, r.ttl).Err()
}

func (r *RedisStore) Leer(ctx context.Context, id string) (*model.Sesion, error) {
	data, err := r.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apierror.ErrSinSesion
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var s model.Sesion
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt record — clear and treat as absent.
		_ = r.rdb.Del(ctx, redisKeyPrefix+id).Err()
		return nil, apierror.ErrSinSesion
	}
	if err := validar(&s); err != nil {
		_ = r.rdb.Del(ctx, redisKeyPrefix+id).Err()
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Limpiar(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, redisKeyPrefix+id).Err()
}

var _ Store = (*RedisStore)(nil)
