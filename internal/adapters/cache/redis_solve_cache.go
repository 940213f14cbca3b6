package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scout-route-service/internal/domain"
	"scout-route-service/internal/platform/obs"
	"scout-route-service/internal/platform/retry"
)

// RedisSolveCache is a Redis-backed cache for solve results, used instead
// of the SQLite/Postgres caches (not layered in front of them) by
// deployments that want a fast, shared, cross-instance hit path. Keys are namespaced solve:<event_id>:<fingerprint>
// and carry a TTL, unlike the durable SQL-backed caches.
type RedisSolveCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSolveCache(client *redis.Client, ttl time.Duration) *RedisSolveCache {
	return &RedisSolveCache{Client: client, TTL: ttl}
}

type redisSolveRecord struct {
	Count      int       `json:"count"`
	Route      []int     `json:"route"`
	FinishTime float64   `json:"finish_time"`
	SolvedAt   time.Time `json:"solved_at"`
}

func (c *RedisSolveCache) Get(ctx context.Context, eventID, fingerprint string) (_ *domain.SolveRecord, err error) {
	defer obs.Time(ctx, "solve.cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, errors.New("solve cache: redis client is nil")
	}
	if eventID == "" || fingerprint == "" {
		return nil, errors.New("get solve cache: event_id and fingerprint must not be empty")
	}

	var raw []byte
	var miss bool
	err = retry.Do(ctx, retry.Network, func() error {
		var getErr error
		raw, getErr = c.Client.Get(ctx, redisSolveKey(eventID, fingerprint)).Bytes()
		if errors.Is(getErr, redis.Nil) {
			miss = true
			return nil
		}
		return getErr
	})
	if err != nil {
		return nil, fmt.Errorf("get solve cache: redis get: %w", err)
	}
	if miss {
		return nil, nil
	}

	var rec redisSolveRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("get solve cache: unmarshal: %w", err)
	}

	return &domain.SolveRecord{
		EventID:          eventID,
		InputFingerprint: fingerprint,
		Count:            rec.Count,
		Route:            rec.Route,
		FinishTime:       rec.FinishTime,
		SolvedAt:         rec.SolvedAt,
	}, nil
}

func (c *RedisSolveCache) Put(ctx context.Context, record domain.SolveRecord) (err error) {
	defer obs.Time(ctx, "solve.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("solve cache: redis client is nil")
	}
	if record.EventID == "" || record.InputFingerprint == "" {
		return errors.New("put solve cache: event_id and fingerprint must not be empty")
	}

	raw, err := json.Marshal(redisSolveRecord{
		Count:      record.Count,
		Route:      record.Route,
		FinishTime: record.FinishTime,
		SolvedAt:   record.SolvedAt,
	})
	if err != nil {
		return fmt.Errorf("put solve cache: marshal: %w", err)
	}

	err = retry.Do(ctx, retry.Network, func() error {
		return c.Client.Set(ctx, redisSolveKey(record.EventID, record.InputFingerprint), raw, c.TTL).Err()
	})
	if err != nil {
		return fmt.Errorf("put solve cache: redis set: %w", err)
	}

	return nil
}

func redisSolveKey(eventID, fingerprint string) string {
	return fmt.Sprintf("solve:%s:%s", eventID, fingerprint)
}
