package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis implementa Cache sobre un redis compartido. Permite que varias réplicas
// del API vean las mismas entradas e invalidaciones.
// Hits/misses se cuentan por proceso; entries se consulta con DBSIZE.
type Redis struct {
	client *redis.Client

	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		atomic.AddInt64(&r.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&r.hits, 1)
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err == nil {
		atomic.AddInt64(&r.sets, 1)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	if n, err := r.client.Del(ctx, key).Result(); err == nil && n > 0 {
		atomic.AddInt64(&r.deletes, n)
	}
}

func (r *Redis) DeletePattern(ctx context.Context, pattern string) int {
	deleted := 0
	iter := r.client.Scan(ctx, 0, "*"+pattern+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err == nil {
			deleted++
		}
	}
	atomic.AddInt64(&r.deletes, int64(deleted))
	return deleted
}

func (r *Redis) Stats(ctx context.Context) Stats {
	s := Stats{
		Hits:    atomic.LoadInt64(&r.hits),
		Misses:  atomic.LoadInt64(&r.misses),
		Sets:    atomic.LoadInt64(&r.sets),
		Deletes: atomic.LoadInt64(&r.deletes),
	}
	if size, err := r.client.DBSize(ctx).Result(); err == nil {
		s.Entries = int(size)
	}
	return s.withHitRate()
}
