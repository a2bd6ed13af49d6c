package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	srv := miniredis.RunT(t)

	r, err := NewRedis(srv.Addr())
	if err != nil {
		t.Fatalf("conectando a miniredis: %v", err)
	}
	return r
}

func TestRedis_SetGet(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	r.Set(ctx, "animals:abc", []byte("hato"), time.Minute)

	got, ok := r.Get(ctx, "animals:abc")
	if !ok || string(got) != "hato" {
		t.Fatalf("get: ok=%v val=%q", ok, got)
	}

	if _, ok := r.Get(ctx, "no-existe"); ok {
		t.Fatal("una clave inexistente no debía dar hit")
	}
}

func TestRedis_Delete(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	r.Set(ctx, "k", []byte("v"), time.Minute)
	r.Delete(ctx, "k")

	if _, ok := r.Get(ctx, "k"); ok {
		t.Fatal("la clave borrada no debía devolverse")
	}
}

func TestRedis_DeletePattern(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	r.Set(ctx, "animals:aaa", []byte("1"), time.Minute)
	r.Set(ctx, "animals:bbb", []byte("2"), time.Minute)
	r.Set(ctx, "users:ccc", []byte("3"), time.Minute)

	if n := r.DeletePattern(ctx, "animals"); n != 2 {
		t.Fatalf("se esperaban 2 borrados, llegaron %d", n)
	}
	if _, ok := r.Get(ctx, "users:ccc"); !ok {
		t.Fatal("la entrada de otra entidad no debía borrarse")
	}
}

func TestRedis_Stats(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	r.Set(ctx, "k", []byte("v"), time.Minute)
	r.Get(ctx, "k")
	r.Get(ctx, "no-existe")

	s := r.Stats(ctx)
	if s.Hits != 1 || s.Misses != 1 || s.Sets != 1 {
		t.Fatalf("contadores inesperados: %+v", s)
	}
	if s.Entries != 1 {
		t.Errorf("entries inesperado: %d", s.Entries)
	}
}
