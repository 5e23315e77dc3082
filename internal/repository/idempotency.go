package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// DefaultIdempotencyTTL is how long a cached response can be replayed
const DefaultIdempotencyTTL = 24 * time.Hour

func idempotencyKey(key, route, userID string) string {
	return "idem:" + userID + ":" + route + ":" + key
}

type memoryIdempotencyRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]models.IdempotencyRecord
	now     func() time.Time
}

// NewMemoryIdempotencyRepository creates an in-process idempotency cache.
// Expired records are dropped lazily on lookup.
func NewMemoryIdempotencyRepository(ttl time.Duration) IdempotencyRepository {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &memoryIdempotencyRepository{
		ttl:     ttl,
		records: make(map[string]models.IdempotencyRecord),
		now:     time.Now,
	}
}

func (r *memoryIdempotencyRepository) Get(ctx context.Context, key, route, userID string) (*models.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyKey(key, route, userID)
	rec, ok := r.records[k]
	if !ok {
		return nil, nil
	}
	if r.now().Sub(rec.CreatedAt) > r.ttl {
		delete(r.records, k)
		return nil, nil
	}
	return &rec, nil
}

func (r *memoryIdempotencyRepository) Store(ctx context.Context, record *models.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *record
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}
	k := idempotencyKey(rec.Key, rec.Route, rec.UserID)
	if prev, exists := r.records[k]; exists && r.now().Sub(prev.CreatedAt) <= r.ttl {
		// first writer wins
		return nil
	}
	r.records[k] = rec
	return nil
}

type redisIdempotencyRepository struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisIdempotencyRepository creates an idempotency cache shared between
// API instances through redis.
func NewRedisIdempotencyRepository(rdb *goredis.Client, ttl time.Duration) IdempotencyRepository {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &redisIdempotencyRepository{rdb: rdb, ttl: ttl}
}

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (r *redisIdempotencyRepository) Get(ctx context.Context, key, route, userID string) (*models.IdempotencyRecord, error) {
	raw, err := r.rdb.Get(ctx, idempotencyKey(key, route, userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query idempotency key: %w", err)
	}

	var rec models.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}
	return &rec, nil
}

func (r *redisIdempotencyRepository) Store(ctx context.Context, record *models.IdempotencyRecord) error {
	rec := *record
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	if err := r.rdb.SetNX(ctx, idempotencyKey(rec.Key, rec.Route, rec.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}
