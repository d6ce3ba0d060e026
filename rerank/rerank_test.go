package rerank

import (
	"context"
	"testing"

	"github.com/Sanandrew123/AICommerce/core"
)

func scoredItems(scores ...float64) []*core.Item {
	items := make([]*core.Item, len(scores))
	for i, s := range scores {
		items[i] = core.NewItem(int64(i + 1))
		items[i].Score = s
	}
	return items
}

func TestScoreSortDescending(t *testing.T) {
	items := scoredItems(0.2, 0.9, 0.5)
	out, err := (&ScoreSortNode{}).Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []int64{2, 3, 1}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("out[%d] = %d, want %d", i, out[i].ID, id)
		}
	}
}

func TestScoreSortStableOnTies(t *testing.T) {
	items := scoredItems(0.5, 0.5, 0.5)
	out, _ := (&ScoreSortNode{}).Process(context.Background(), nil, items)
	for i := range out {
		if out[i].ID != int64(i+1) {
			t.Errorf("ties must keep input order, out[%d] = %d", i, out[i].ID)
		}
	}
}

func TestTopN(t *testing.T) {
	tests := []struct {
		n    int
		in   int
		want int
	}{
		{2, 5, 2},
		{10, 3, 3}, // 候选不足时原样返回
		{0, 3, 3},  // 0 不截断
	}
	for _, tt := range tests {
		out, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, scoredItems(make([]float64, tt.in)...))
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(out) != tt.want {
			t.Errorf("N=%d in=%d: len = %d, want %d", tt.n, tt.in, len(out), tt.want)
		}
	}
}
