package render

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
)

var (
	getDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "name_combo_render_cache_get_duration_ms",
		Help:    "Latency of render cache lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "name_combo_render_cache_hits_total",
		Help: "Total render cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "name_combo_render_cache_misses_total",
		Help: "Total render cache misses",
	})
)

const (
	// Redis key prefixes for renderings and the per-person key index.
	renderKeyPrefix = "render:val:"
	indexKeyPrefix  = "render:idx:"
)

// Redis is a Redis-backed Cache for distributed deployments where multiple
// instances share rendered names.
//
// Alongside each rendering, the key is tracked in a per-person set so
// Invalidate can drop every rendering for a person without scanning.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key Key) (string, error) {
	start := time.Now()
	defer func() {
		getDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	val, err := r.client.Get(ctx, renderKeyPrefix+key.String()).Result()
	if errors.Is(err, redis.Nil) {
		cacheMisses.Inc()
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	cacheHits.Inc()
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key Key, rendered string) error {
	idxKey := indexKeyPrefix + key.PersonID.String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, renderKeyPrefix+key.String(), rendered, r.ttl)
	pipe.SAdd(ctx, idxKey, key.String())
	// The index lives slightly longer than the values it tracks.
	pipe.Expire(ctx, idxKey, r.ttl+time.Minute)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) Invalidate(ctx context.Context, personID domain.PersonID) error {
	idxKey := indexKeyPrefix + personID.String()
	members, err := r.client.SMembers(ctx, idxKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := r.client.Pipeline()
	for _, member := range members {
		pipe.Del(ctx, renderKeyPrefix+member)
	}
	pipe.Del(ctx, idxKey)
	_, err = pipe.Exec(ctx)
	return err
}
