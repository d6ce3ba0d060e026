package filter

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pipeline"
	"github.com/Sanandrew123/AICommerce/pkg/utils"
)

// Node 是过滤 Node，可以组合多个过滤器依次过滤候选。
// 任何一个过滤器命中，该候选就被剔除；过滤器自身出错时跳过该过滤器，
// 不中断整次请求。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		dropped := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				dropped = true
				// 记录过滤原因，便于 explain / 调试
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				break
			}
		}
		if !dropped {
			out = append(out, item)
		}
	}
	return out, nil
}
