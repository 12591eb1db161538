package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)

	value, ok := store.Get(ctx, "k")
	if !ok || value != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", value, ok)
	}
}

func TestMemoryStoreMissOnUnknownKey(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get(context.Background(), "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "v", -time.Second)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss for expired key")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	store.Delete(ctx, "k")

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}
