// Package httpcache implementa el caché de listados y las respuestas
// condicionales (ETag / If-None-Match) de los endpoints GET de colección.
package httpcache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"livestock-api/internal/platform/cache"
	"livestock-api/internal/platform/logger"
)

// LastModifiedFunc devuelve el último cambio conocido de una tabla.
// Si es nil, el ETag se calcula solo con el hash del cuerpo.
type LastModifiedFunc func(ctx context.Context, table string) (time.Time, error)

type Manager struct {
	cache        cache.Cache
	ttl          time.Duration
	lastModified LastModifiedFunc
	log          logger.Logger
}

func NewManager(c cache.Cache, ttl time.Duration, lastMod LastModifiedFunc, log logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{cache: c, ttl: ttl, lastModified: lastMod, log: log}
}

// List envuelve un endpoint de listado: sirve del caché cuando puede y
// responde 304 si el ETag del cliente sigue vigente.
func (m *Manager) List(table string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := listKey(table, r)

			body, ok := m.cache.Get(r.Context(), key)
			if !ok {
				rec := newRecorder()
				next.ServeHTTP(rec, r)

				if rec.status != http.StatusOK {
					rec.flushTo(w)
					return
				}
				body = rec.buf.Bytes()
				m.cache.Set(r.Context(), key, body, m.ttl)
			}

			etag := m.etagFor(r.Context(), table, body)
			w.Header().Set("ETag", etag)
			w.Header().Set("Cache-Control", "private, must-revalidate")

			if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		})
	}
}

// Invalidate envuelve un endpoint de escritura: si el handler respondió 2xx,
// borra del caché todas las entradas de las tablas afectadas.
func (m *Manager) Invalidate(tables ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() >= 400 {
				return
			}
			for _, t := range tables {
				if n := m.cache.DeletePattern(r.Context(), t); n > 0 {
					m.log.Debug("caché invalidado", map[string]any{"table": t, "entries": n})
				}
			}
		})
	}
}

// listKey arma la clave del caché con los pares del query string sueltos:
// cache.Key los ordena, así que el mismo filtro en otro orden da la misma entrada.
func listKey(table string, r *http.Request) string {
	parts := []string{r.URL.Path}
	for k, vs := range r.URL.Query() {
		for _, v := range vs {
			parts = append(parts, k+"="+v)
		}
	}
	return cache.Key(table, parts...)
}

func (m *Manager) etagFor(ctx context.Context, table string, body []byte) string {
	h := sha1.New()
	h.Write([]byte(table))

	if m.lastModified != nil {
		if ts, err := m.lastModified(ctx, table); err == nil {
			h.Write([]byte(ts.UTC().Format(time.RFC3339Nano)))
		}
	}

	bodySum := sha1.Sum(body)
	h.Write(bodySum[:])

	return `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}

// recorder captura la respuesta del handler para poder cachearla.
type recorder struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(b []byte) (int, error) { return r.buf.Write(b) }

func (r *recorder) flushTo(w http.ResponseWriter) {
	for k, vs := range r.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.status)
	_, _ = w.Write(r.buf.Bytes())
}
