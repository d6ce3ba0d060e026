package filter

import (
	"context"

	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/pkg/dsl"
)

// Rule 是表达式驱动的过滤器：CEL 规则求值为 false 的候选被剔除。
// 规则在构建期编译，非法表达式当场报错而不是查询期静默放行。
//
// 典型用法（来自运营配置）：
//   - `item.rating >= 3.0`    → 低分商品不出推荐位
//   - `item.review_count > 0` → 零评价商品不出推荐位
type Rule struct {
	rule *dsl.Rule
}

// NewRule 编译规则表达式并构建过滤器。
func NewRule(expr string) (*Rule, error) {
	r, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{rule: r}, nil
}

func (f *Rule) Name() string { return "filter.rule:" + f.rule.Expr() }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	keep, err := f.rule.Eval(item, rctx)
	if err != nil {
		// 求值失败按保留处理，宁可多推不可中断
		return false, err
	}
	return !keep, nil
}
