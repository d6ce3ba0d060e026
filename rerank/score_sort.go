package rerank

import (
	"context"
	"sort"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pipeline"
)

// ScoreSortNode 按分数降序做稳定排序。
//
// 已知局限（设计上接受，不做"修正"）：混排进来的分数来自不同标度——
// 协同是预测分、内容是余弦相似度、热门是原始评分——
// 这里不做归一化，直接在同一数轴上比较。稳定排序保证
// 平分时保留混排步序，整体输出对相同输入字节一致。
type ScoreSortNode struct{}

func (n *ScoreSortNode) Name() string        { return "rerank.score_sort" }
func (n *ScoreSortNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *ScoreSortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}
