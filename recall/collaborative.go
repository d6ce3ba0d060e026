package recall

import (
	"context"
	"sort"

	"github.com/Sanandrew123/AICommerce/behavior"
	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/factor"
	"github.com/Sanandrew123/AICommerce/filter"
	"github.com/Sanandrew123/AICommerce/pkg/utils"
)

// Collaborative 是协同过滤策略：用隐因子模型预测用户对全部商品的分数。
//
// 核心思想："兴趣相似的用户，喜欢相似的商品"——低秩分解后，
// 预测分 = 用户因子 · 商品因子，已交互过的商品从候选中剔除。
//
// 降级路径（不是错误）：
//   - 模型不可用（用户数不足没拟合成）→ 走 Fallback
//   - 请求用户不在交互矩阵里（冷启动）→ 走 Fallback
//
// 降级产出的候选会带上 degraded_from=collaborative 标签，
// 让上层和测试能断言走了哪条路径。
type Collaborative struct {
	// Model 隐因子模型，不可用时为 nil
	Model *factor.Model

	// Matrix 交互矩阵，用于剔除已交互商品
	Matrix *behavior.Matrix

	// Fallback 降级目标，通常是 Popular
	Fallback Source

	// TopK 返回的商品数量
	TopK int
}

func (r *Collaborative) Name() string { return "recall.collaborative" }

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.TopK <= 0 {
		return nil, nil
	}
	if rctx == nil || r.Model == nil || !r.Model.HasUser(rctx.UserID) {
		return r.degrade(ctx, rctx)
	}

	preds, ok := r.Model.Predict(rctx.UserID)
	if !ok {
		return r.degrade(ctx, rctx)
	}

	interacted := &filter.Interacted{Matrix: r.Matrix}

	candidates := make([]*core.Item, 0, len(preds))
	for i, pid := range r.Model.ProductIDs() {
		it := core.NewItem(pid)
		it.Score = preds[i]
		if skip, err := interacted.ShouldFilter(ctx, rctx, it); err == nil && skip {
			continue
		}
		candidates = append(candidates, it)
	}

	// 预测分降序；平分保持矩阵列序（稳定）
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > r.TopK {
		candidates = candidates[:r.TopK]
	}

	for _, it := range candidates {
		it.PutLabel(LabelReason, utils.Label{Value: string(core.ReasonSimilarUser), Source: "recall"})
		it.PutLabel(LabelRecallSource, utils.Label{Value: r.Name(), Source: "recall"})
	}
	return candidates, nil
}

func (r *Collaborative) degrade(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Fallback == nil {
		return nil, nil
	}
	items, err := r.Fallback.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.PutLabel(LabelDegradedFrom, utils.Label{
			Value:  string(core.SourceCollaborative),
			Source: "recall",
		})
	}
	return items, nil
}
