package recall

import (
	"context"
	"testing"

	"github.com/Sanandrew123/AICommerce/behavior"
	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/factor"
)

func fitTestModel(t *testing.T, events []core.BehaviorEvent) (*factor.Model, *behavior.Matrix) {
	t.Helper()
	m := behavior.Build(events)
	model, err := factor.Fit(m, 0)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return model, m
}

func TestCollaborativeExcludesInteracted(t *testing.T) {
	events := []core.BehaviorEvent{
		{UserID: 1, ProductID: 1, Behavior: core.BehaviorPurchase},
		{UserID: 1, ProductID: 2, Behavior: core.BehaviorClick},
		{UserID: 2, ProductID: 2, Behavior: core.BehaviorView},
		{UserID: 2, ProductID: 3, Behavior: core.BehaviorPurchase},
	}
	model, matrix := fitTestModel(t, events)

	src := &Collaborative{Model: model, Matrix: matrix, TopK: 10}
	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 1})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	for _, it := range items {
		if it.ID == 1 || it.ID == 2 {
			t.Errorf("product %d already interacted, must be excluded", it.ID)
		}
		if lbl, ok := it.GetLabel(LabelReason); !ok || lbl.Value != string(core.ReasonSimilarUser) {
			t.Errorf("reason label = %+v", lbl)
		}
		if _, ok := it.GetLabel(LabelDegradedFrom); ok {
			t.Error("non-degraded path must not carry degraded_from")
		}
	}
}

func TestCollaborativeDegradeNoModel(t *testing.T) {
	src := &Collaborative{
		Model:    nil,
		Fallback: &Popular{Products: testProducts(), TopK: 3},
		TopK:     3,
	}
	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 1})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want popular fallback of 3", len(items))
	}
	if items[0].ID != 2 {
		t.Errorf("fallback must keep popular ordering, first = %d", items[0].ID)
	}
	for _, it := range items {
		lbl, ok := it.GetLabel(LabelDegradedFrom)
		if !ok || lbl.Value != string(core.SourceCollaborative) {
			t.Errorf("item %d degraded_from = %+v", it.ID, lbl)
		}
	}
}

func TestCollaborativeDegradeUnknownUser(t *testing.T) {
	events := []core.BehaviorEvent{
		{UserID: 1, ProductID: 1, Behavior: core.BehaviorView},
		{UserID: 2, ProductID: 2, Behavior: core.BehaviorView},
	}
	model, matrix := fitTestModel(t, events)

	src := &Collaborative{
		Model:    model,
		Matrix:   matrix,
		Fallback: &Popular{Products: testProducts(), TopK: 2},
		TopK:     2,
	}
	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 999})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if _, ok := items[0].GetLabel(LabelDegradedFrom); !ok {
		t.Error("cold-start user must degrade with degraded_from label")
	}
}

func TestCollaborativeDegradeNoFallback(t *testing.T) {
	src := &Collaborative{Model: nil, TopK: 5}
	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 1})
	if err != nil || len(items) != 0 {
		t.Errorf("no fallback: items=%v err=%v", items, err)
	}
}
