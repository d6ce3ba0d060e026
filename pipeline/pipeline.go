package pipeline

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
)

// Pipeline 把一次查询拆成可组合的 Node 链：
// 策略 fan-out → 过滤 → 分数排序 → TopN 截断。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
