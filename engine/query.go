package engine

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/filter"
	"github.com/Sanandrew123/AICommerce/pipeline"
	"github.com/Sanandrew123/AICommerce/pkg/utils"
	"github.com/Sanandrew123/AICommerce/recall"
	"github.com/Sanandrew123/AICommerce/rerank"
)

// Popular 返回热门推荐：评分降序、评价数次序，冷启动兜底策略。
func (e *Engine) Popular(ctx context.Context, limit int) *core.Result {
	rctx := &core.RecommendContext{}
	items := e.runSource(ctx, rctx, e.popularSource(limit), core.SourcePopular)
	items = e.finish(ctx, rctx, items, limit)
	return &core.Result{Items: e.toRecommendations(items), Source: core.SourcePopular}
}

// Collaborative 返回协同过滤推荐。模型不可用或用户未知时降级为热门：
// 输出与 Popular 逐条一致（含 source 标记），Result.Degraded 显式
// 标记降级路径，让调用方和测试能区分"主动降级"与正常服务。
func (e *Engine) Collaborative(ctx context.Context, userID int64, limit int) *core.Result {
	degraded := e.model == nil || !e.model.HasUser(userID)
	tag := core.SourceCollaborative
	if degraded {
		// 降级产出就是热门策略的输出，条目按热门归属
		tag = core.SourcePopular
	}

	rctx := &core.RecommendContext{UserID: userID}
	items := e.runSource(ctx, rctx, e.collaborativeSource(limit), tag)
	items = e.finish(ctx, rctx, items, limit)

	res := &core.Result{Items: e.toRecommendations(items), Source: core.SourceCollaborative}
	if degraded {
		res.Degraded = true
		res.DegradedFrom = core.SourceCollaborative
	}
	return res
}

// ContentBased 返回与参照商品内容相似的推荐。
// 参照商品未知时返回空列表，不是错误。
func (e *Engine) ContentBased(ctx context.Context, productID int64, limit int) *core.Result {
	rctx := &core.RecommendContext{
		Params: map[string]any{core.ParamCurrentProductID: productID},
	}
	items := e.runSource(ctx, rctx, e.contentSource(limit), core.SourceContent)
	items = e.finish(ctx, rctx, items, limit)
	return &core.Result{Items: e.toRecommendations(items), Source: core.SourceContent}
}

// Hybrid 是混合推荐：
//  1. 有 userID 时并发跑协同策略（source 标记 collaborative）
//  2. 上下文携带 current_product_id 时并发跑内容策略（source 标记 content）
//  3. 累计数量不足 limit 时用热门补足缺口（source 标记 popular）。
//     缺口按去重前的累计数量计量：协同与内容重叠时补足不扩大，
//     最终数量可以低于 limit
//  4. 按商品去重，首见保留——协同压内容、内容压热门，刻意的步序策略
//  5. 分数降序稳定排序（不同策略分数不同标度，按设计不归一化）
//  6. 截断到 limit
//
// userID 与上下文都可缺省：两者都不给时退化为纯热门列表。
func (e *Engine) Hybrid(ctx context.Context, userID int64, params map[string]any, limit int) *core.Result {
	if limit <= 0 {
		return &core.Result{Items: []core.Recommendation{}, Source: core.SourceHybrid}
	}
	rctx := &core.RecommendContext{UserID: userID, Params: params}

	var sources []recall.Source
	if userID != 0 {
		sources = append(sources, &taggedSource{
			inner: e.collaborativeSource(limit), tag: core.SourceCollaborative,
		})
	}
	if _, ok := rctx.CurrentProductID(); ok {
		sources = append(sources, &taggedSource{
			inner: e.contentSource(limit), tag: core.SourceContent,
		})
	}

	var lists [][]*core.Item
	if len(sources) > 0 {
		fanout := &recall.Fanout{Sources: sources}
		collected, err := fanout.Collect(ctx, rctx)
		if err == nil {
			lists = collected
		}
	}

	// 缺口按去重前的累计数量计量，补足后统一做一次首见去重
	var total int
	for _, l := range lists {
		total += len(l)
	}
	if total < limit {
		pop := &taggedSource{inner: e.popularSource(limit - total), tag: core.SourcePopular}
		popItems, err := pop.Recall(ctx, rctx)
		if err == nil {
			lists = append(lists, popItems)
		}
	}
	merged := recall.MergeFirst(lists...)

	merged = e.finish(ctx, rctx, merged, limit)
	return &core.Result{Items: e.toRecommendations(merged), Source: core.SourceHybrid}
}

// ---- 内部装配 ----

func (e *Engine) popularSource(topK int) recall.Source {
	return &recall.Popular{Products: e.products, TopK: topK}
}

func (e *Engine) collaborativeSource(topK int) recall.Source {
	return &recall.Collaborative{
		Model:    e.model,
		Matrix:   e.matrix,
		Fallback: e.popularSource(topK),
		TopK:     topK,
	}
}

func (e *Engine) contentSource(topK int) recall.Source {
	return &recall.Content{Space: e.space, TopK: topK}
}

// taggedSource 给内层策略的产出强制盖上混排步序对应的 source 标签。
// 协同降级产出的热门候选也归属 collaborative——归属看步序，不看产地。
type taggedSource struct {
	inner recall.Source
	tag   core.SourceTag
}

func (s *taggedSource) Name() string { return s.inner.Name() }

func (s *taggedSource) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	items, err := s.inner.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.SetLabel(recall.LabelSource, utils.Label{Value: string(s.tag), Source: "blend"})
	}
	return items, nil
}

// runSource 执行单个策略并盖上 source 标签。
func (e *Engine) runSource(
	ctx context.Context,
	rctx *core.RecommendContext,
	src recall.Source,
	tag core.SourceTag,
) []*core.Item {
	items, err := (&taggedSource{inner: src, tag: tag}).Recall(ctx, rctx)
	if err != nil {
		return nil
	}
	return items
}

// finish 是每条查询路径共享的尾段 Pipeline：
// 补全商品快照 → 规则过滤 → 分数降序 → 截断。
func (e *Engine) finish(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
	limit int,
) []*core.Item {
	items = e.decorate(items)

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.Node{Filters: e.filters},
		&rerank.ScoreSortNode{},
		&rerank.TopNNode{N: limit},
	}}
	out, err := p.Run(ctx, rctx, items)
	if err != nil {
		return nil
	}
	return out
}

// decorate 给候选补全商品属性快照；快照表里查不到的 id
// 无法产出完整 Recommendation，静默剔除而不是报错。
func (e *Engine) decorate(items []*core.Item) []*core.Item {
	out := items[:0]
	for _, it := range items {
		if it == nil {
			continue
		}
		idx, ok := e.byID[it.ID]
		if !ok {
			continue
		}
		it.Meta = e.products[idx].Meta()
		out = append(out, it)
	}
	return out
}

func (e *Engine) toRecommendations(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		rec := core.Recommendation{
			ProductID: it.ID,
			Score:     it.Score,
			Product:   it.Meta,
		}
		if lbl, ok := it.GetLabel(recall.LabelReason); ok {
			rec.Reason = core.Reason(lbl.Value)
		}
		if lbl, ok := it.GetLabel(recall.LabelSource); ok {
			rec.Source = core.SourceTag(lbl.Value)
		}
		out = append(out, rec)
	}
	return out
}
