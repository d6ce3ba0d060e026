// Package dsl 是候选过滤规则的解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，类型安全、线程安全，编译后的 Program 可并发复用。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/Sanandrew123/AICommerce/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译好的过滤规则，Eval 可被多协程并发调用。
//
// 表达式语法（CEL 标准语法），可用变量：
//   - item：商品快照 + 分数，如 item.rating >= 4.0 / item.score > 0.5
//   - label：候选上的标签值，如 label.reason == "popular-item"
//   - rctx：请求上下文，如 rctx.user_id != 0
//
// 示例：
//   - `item.rating >= 3.0`                      → 低分商品不出推荐位
//   - `item.review_count > 10 || item.score > 1.0` → 冷门新品需要高分才放行
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。表达式非法时在构建期报错，而不是查询期静默失效。
func Compile(expr string) (*Rule, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本（用于日志/错误提示）。
func (r *Rule) Expr() string { return r.expr }

// Eval 对单个候选求值，返回布尔结果。空规则恒为 true。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r == nil || r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: non-boolean result %v", r.expr, out.Value())
	}
	return b, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	itemMap := map[string]any{}
	if item != nil {
		for k, v := range item.Meta {
			itemMap[k] = v
		}
		// id/score 以内建字段为准，覆盖同名 Meta
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
	}

	labelMap := map[string]any{}
	if item != nil {
		for k, lbl := range item.Labels {
			labelMap[k] = lbl.Value
		}
	}

	rctxMap := map[string]any{}
	if rctx != nil {
		for k, v := range rctx.Params {
			rctxMap[k] = v
		}
		rctxMap["user_id"] = rctx.UserID
		rctxMap["scene"] = rctx.Scene
	}

	return map[string]any{
		"item":  itemMap,
		"label": labelMap,
		"rctx":  rctxMap,
	}
}
