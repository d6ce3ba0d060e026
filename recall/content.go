package recall

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pkg/utils"
	"github.com/Sanandrew123/AICommerce/text"
)

// Content 是基于内容的策略："我看了这个，还可能看什么"。
//
// 以请求上下文里的 current_product_id 为参照物，在内容相似度空间
// 做余弦近邻查询。没带参照商品、或参照商品对空间未知时返回空——
// 这条策略没有降级，缺口由混排阶段的热门补足。
type Content struct {
	// Space 内容相似度空间
	Space *text.Space

	// TopK 返回的商品数量
	TopK int
}

func (r *Content) Name() string { return "recall.content" }

func (r *Content) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Space == nil || r.TopK <= 0 || rctx == nil {
		return nil, nil
	}
	refID, ok := rctx.CurrentProductID()
	if !ok {
		return nil, nil
	}

	scored := r.Space.Similarity(refID, r.TopK)
	out := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		it := core.NewItem(s.ProductID)
		it.Score = s.Score
		it.PutLabel(LabelReason, utils.Label{Value: string(core.ReasonSimilarContent), Source: "recall"})
		it.PutLabel(LabelRecallSource, utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
