package rerank

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pipeline"
)

// TopNNode 是 Top-N 截断节点，在排序之后把候选截到请求的数量。
//
// N <= 0 时不截断；候选少于 N 时原样返回（不足是正常情况，
// 缺口是否补足由混排阶段在截断前决定）。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
