package filter

import (
	"context"

	"github.com/Sanandrew123/AICommerce/behavior"
	"github.com/Sanandrew123/AICommerce/core"
)

// Interacted 剔除请求用户已经交互过的商品（交互矩阵中权重 > 0）。
// 协同策略用它保证"推没看过的"，避免把用户刚买的东西再推一遍。
type Interacted struct {
	Matrix *behavior.Matrix
}

func (f *Interacted) Name() string { return "filter.interacted" }

func (f *Interacted) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Matrix == nil || rctx == nil || item == nil {
		return false, nil
	}
	return f.Matrix.Score(rctx.UserID, item.ID) > 0, nil
}
