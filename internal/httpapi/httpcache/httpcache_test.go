package httpcache

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-api/internal/platform/cache"
)

func TestList_SameEntryRegardlessOfQueryOrder(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	m := NewManager(cache.NewMemory(), time.Minute, nil, nil)
	wrapped := m.List("animals")(handler)

	for _, target := range []string{
		"/api/v1/animals/?sex=Hembra&status=Vivo",
		"/api/v1/animals/?status=Vivo&sex=Hembra",
	} {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", target, w.Code)
		}
	}

	if calls != 1 {
		t.Fatalf("el mismo filtro en otro orden debía servirse del caché; el handler corrió %d veces", calls)
	}
}

func TestList_DistinctFiltersDistinctEntries(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	m := NewManager(cache.NewMemory(), time.Minute, nil, nil)
	wrapped := m.List("animals")(handler)

	for _, target := range []string{
		"/api/v1/animals/?sex=Hembra",
		"/api/v1/animals/?sex=Macho",
	} {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	}

	if calls != 2 {
		t.Fatalf("filtros distintos no deben compartir entrada; el handler corrió %d veces", calls)
	}
}

func TestList_ErrorsNotCached(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	})

	m := NewManager(cache.NewMemory(), time.Minute, nil, nil)
	wrapped := m.List("animals")(handler)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/animals/?page=0", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d", w.Code)
		}
	}

	if calls != 2 {
		t.Fatalf("las respuestas de error no deben cachearse; el handler corrió %d veces", calls)
	}
}
