package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Cache es la abstracción de caché de resultados que se inyecta en los handlers.
// Los valores se guardan serializados para que memoria y redis sean intercambiables.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)

	// DeletePattern elimina todas las entradas cuya clave contenga el substring.
	// Se usa para invalidar las listas de una entidad después de una escritura.
	DeletePattern(ctx context.Context, pattern string) int

	Stats(ctx context.Context) Stats
}

// Stats expone contadores del caché (se publican en /health y /metrics).
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Deletes int64   `json:"deletes"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}

func (s Stats) withHitRate() Stats {
	total := s.Hits + s.Misses
	if total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}
	return s
}

// Key construye una clave estable: prefijo de entidad + hash de los componentes.
// El prefijo queda en claro para que DeletePattern pueda invalidar por entidad.
func Key(prefix string, parts ...string) string {
	sorted := append([]string(nil), parts...)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(strings.Join(sorted, "|")))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
