package store

import (
	"context"
	"testing"
	"time"

	"github.com/Sanandrew123/AICommerce/core"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	_, err := ms.Get(context.Background(), "nope")
	if !core.IsStoreNotFound(err) {
		t.Errorf("missing key: err = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k", []byte("v"), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := ms.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("expired key: err = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	_ = ms.Set(ctx, "k", []byte("v"))
	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("deleted key: err = %v, want ErrStoreNotFound", err)
	}
}
