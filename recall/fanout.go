package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个策略源，按源顺序合并结果。
//
// 合并规则是"首见保留"：同一商品出现在多个策略时，保留排在前面的
// 策略产出的那份（协同 > 内容 > 热门）。这是刻意的步序策略，
// 不是实现巧合——结果归属决定了对外暴露的 source 标签。
//
// 并发安全与确定性：各源结果先按源下标落位，Wait 之后再顺序合并，
// 完成先后不影响最终顺序；相同输入必然产出相同结果。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 单个策略源的超时时间，0 表示不限制
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	lists, err := n.Collect(ctx, rctx)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		return nil, nil
	}
	return MergeFirst(lists...), nil
}

// Collect 并发执行全部策略源，按源下标返回各自的原始候选列表，
// 不做去重。混排阶段按去重前的累计数量计量热门补足的缺口，
// 所以需要拿到每个源的原始产出。
func (n *Fanout) Collect(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([][]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	results := make([][]*core.Item, len(n.Sources))
	eg, egctx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := egctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egctx, n.Timeout)
				defer cancel()
			}
			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单个策略失败不拖垮整次请求，缺口留给热门补足
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MergeFirst 按传入顺序合并多份候选，同 id 首见保留。
func MergeFirst(lists ...[]*core.Item) []*core.Item {
	var total int
	for _, l := range lists {
		total += len(l)
	}
	seen := make(map[int64]struct{}, total)
	out := make([]*core.Item, 0, total)
	for _, l := range lists {
		for _, it := range l {
			if it == nil {
				continue
			}
			if _, ok := seen[it.ID]; ok {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}
