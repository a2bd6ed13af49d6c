package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "animals:abc", []byte("hato"), time.Minute)

	got, ok := m.Get(ctx, "animals:abc")
	if !ok || string(got) != "hato" {
		t.Fatalf("get: ok=%v val=%q", ok, got)
	}

	if _, ok := m.Get(ctx, "no-existe"); ok {
		t.Fatal("una clave inexistente no debía dar hit")
	}
}

func TestMemory_Expiration(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m.Set(ctx, "k", []byte("v"), time.Minute)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("la entrada vencida no debía devolverse")
	}
}

func TestMemory_DeletePattern(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "animals:aaa", []byte("1"), time.Minute)
	m.Set(ctx, "animals:bbb", []byte("2"), time.Minute)
	m.Set(ctx, "users:ccc", []byte("3"), time.Minute)

	if n := m.DeletePattern(ctx, "animals"); n != 2 {
		t.Fatalf("se esperaban 2 borrados, llegaron %d", n)
	}
	if _, ok := m.Get(ctx, "users:ccc"); !ok {
		t.Fatal("la entrada de otra entidad no debía borrarse")
	}
}

func TestMemory_Sweep(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m.Set(ctx, "viva", []byte("1"), time.Hour)
	m.Set(ctx, "vencida", []byte("2"), time.Minute)

	m.now = func() time.Time { return base.Add(10 * time.Minute) }
	if n := m.Sweep(); n != 1 {
		t.Fatalf("se esperaba 1 barrido, llegaron %d", n)
	}
	if _, ok := m.Get(ctx, "viva"); !ok {
		t.Fatal("la entrada vigente debía sobrevivir al barrido")
	}
}

func TestMemory_Stats(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	m.Get(ctx, "k")
	m.Get(ctx, "k")
	m.Get(ctx, "no-existe")

	s := m.Stats(ctx)
	if s.Hits != 2 || s.Misses != 1 || s.Sets != 1 {
		t.Fatalf("contadores inesperados: %+v", s)
	}
	if s.Entries != 1 {
		t.Errorf("entries inesperado: %d", s.Entries)
	}
	want := float64(2) / 3 * 100
	if s.HitRate < want-0.01 || s.HitRate > want+0.01 {
		t.Errorf("hit_rate inesperado: %f", s.HitRate)
	}
}

func TestKey_StableAcrossOrder(t *testing.T) {
	a := Key("animals", "page=1", "sex=Hembra")
	b := Key("animals", "sex=Hembra", "page=1")
	if a != b {
		t.Fatalf("la clave debe ser estable: %q vs %q", a, b)
	}
	if a[:8] != "animals:" {
		t.Fatalf("la clave debe conservar el prefijo en claro: %q", a)
	}
}
