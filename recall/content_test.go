package recall

import (
	"context"
	"testing"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/text"
)

func buildTestSpace(t *testing.T) *text.Space {
	t.Helper()
	space, err := text.NewSpace(
		[]int64{1, 2, 3},
		[]string{
			"wireless bluetooth headphones audio",
			"wireless bluetooth speaker audio",
			"cotton running shoes sport",
		},
		0, 0,
	)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return space
}

func TestContentRecall(t *testing.T) {
	src := &Content{Space: buildTestSpace(t), TopK: 2}
	rctx := &core.RecommendContext{
		Params: map[string]any{core.ParamCurrentProductID: int64(1)},
	}
	items, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected similar products")
	}
	if items[0].ID != 2 {
		t.Errorf("most similar = %d, want 2", items[0].ID)
	}
	for _, it := range items {
		if it.ID == 1 {
			t.Error("reference product must not recommend itself")
		}
	}
	if lbl, ok := items[0].GetLabel(LabelReason); !ok || lbl.Value != string(core.ReasonSimilarContent) {
		t.Errorf("reason label = %+v", lbl)
	}
}

func TestContentNoReference(t *testing.T) {
	src := &Content{Space: buildTestSpace(t), TopK: 2}
	items, err := src.Recall(context.Background(), &core.RecommendContext{})
	if err != nil || len(items) != 0 {
		t.Errorf("no current_product_id: items=%v err=%v", items, err)
	}
}

func TestContentUnknownReference(t *testing.T) {
	src := &Content{Space: buildTestSpace(t), TopK: 2}
	rctx := &core.RecommendContext{
		Params: map[string]any{core.ParamCurrentProductID: int64(999)},
	}
	items, err := src.Recall(context.Background(), rctx)
	if err != nil || len(items) != 0 {
		t.Errorf("unknown reference: items=%v err=%v", items, err)
	}
}
