package recall

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
)

// Source 表示一个可复用的推荐策略单元（协同/内容/热门）。
// 你可以把它理解为"可并发 fan-out 的策略单元"：
// 每个策略独立产出一份按分数降序的候选列表，混排阶段再合并。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Label key 约定：全链路统一，观测与测试都依赖它们。
const (
	// LabelReason 推荐理由（core.Reason 封闭集合）
	LabelReason = "reason"
	// LabelSource 策略来源（core.SourceTag 封闭集合），混排时按步序覆盖
	LabelSource = "source"
	// LabelRecallSource 产出该候选的召回源名称，仅用于 explain
	LabelRecallSource = "recall_source"
	// LabelDegradedFrom 降级溯源：原本想走、但拿不到结果的策略
	LabelDegradedFrom = "degraded_from"
)
