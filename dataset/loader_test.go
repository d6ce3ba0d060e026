package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/core"
)

func TestLoadFallbackToSample(t *testing.T) {
	snap, err := Load("", "", zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Products) == 0 || len(snap.Events) == 0 {
		t.Errorf("sample snapshot: products=%d events=%d", len(snap.Products), len(snap.Events))
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	eventsPath := filepath.Join(dir, "events.json")

	// tags 两种形态混用：数组与 JSON 数组字面量字符串
	products := `[
		{"id": 1, "name": "Laptop", "brand": "Acme", "tags": ["laptop", "work"], "rating": 4.5, "review_count": 10},
		{"id": 2, "name": "Phone", "brand": "Acme", "tags": "[\"phone\", \"5g\"]", "rating": 4.2, "review_count": 5},
		{"id": 3, "name": "Desk", "brand": "Acme", "tags": "not-json", "rating": 4.0, "review_count": 3}
	]`
	events := `[
		{"user_id": 1, "product_id": 1, "behavior_type": "VIEW"},
		{"user_id": 1, "product_id": 2, "behavior_type": "PURCHASE"}
	]`
	if err := os.WriteFile(productsPath, []byte(products), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(eventsPath, []byte(events), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(productsPath, eventsPath, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Products) != 3 || len(snap.Events) != 2 {
		t.Fatalf("products=%d events=%d", len(snap.Products), len(snap.Events))
	}
	if got := snap.Products[0].Tags; len(got) != 2 || got[0] != "laptop" {
		t.Errorf("array tags = %v", got)
	}
	if got := snap.Products[1].Tags; len(got) != 2 || got[0] != "phone" {
		t.Errorf("literal tags = %v", got)
	}
	// 坏标签丢弃，商品其余字段保留
	if got := snap.Products[2].Tags; got != nil {
		t.Errorf("malformed tags = %v, want nil", got)
	}
	if snap.Events[1].Behavior != core.BehaviorPurchase {
		t.Errorf("behavior = %q", snap.Events[1].Behavior)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.json", "", zap.NewNop()); err == nil {
		t.Error("missing products file must error")
	}
}

func TestLoadMalformedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path, "", zap.NewNop())
	if err == nil {
		t.Fatal("malformed snapshot must error")
	}
	if !core.IsMalformedInput(err) {
		t.Errorf("err = %v, want malformed-input domain error", err)
	}
}
