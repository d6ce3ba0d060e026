package recall

import (
	"context"
	"sort"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pkg/utils"
)

// Popular 是热门策略：按（平均评分降序，评价数降序）排序全部商品取 TopK。
//
// 它是整个引擎的冷启动兜底：协同/内容策略产不出结果时用它，
// 混排补足缺口时也用它。分数直接取商品评分。
type Popular struct {
	// Products 商品快照表，顺序即平分时的稳定次序
	Products []core.Product

	// TopK 返回的商品数量
	TopK int
}

func (r *Popular) Name() string { return "recall.popular" }

func (r *Popular) Recall(
	_ context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if len(r.Products) == 0 || r.TopK <= 0 {
		return nil, nil
	}

	order := make([]int, len(r.Products))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := r.Products[order[i]], r.Products[order[j]]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ReviewCount > b.ReviewCount
	})

	topK := r.TopK
	if topK > len(order) {
		topK = len(order)
	}

	out := make([]*core.Item, 0, topK)
	for _, idx := range order[:topK] {
		p := r.Products[idx]
		it := core.NewItem(p.ID)
		it.Score = p.Rating
		it.Meta = p.Meta()
		it.PutLabel(LabelReason, utils.Label{Value: string(core.ReasonPopular), Source: "recall"})
		it.PutLabel(LabelRecallSource, utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
