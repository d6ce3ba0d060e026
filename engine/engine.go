// Package engine 是推荐引擎的装配层：一次构建、只读服务。
//
// Build 把商品/行为快照变成三份拟合状态——内容相似度空间、
// 交互矩阵、隐因子模型——之后的所有查询都是这些状态加请求参数的
// 纯函数。数据快照变化时整体重建新实例并原子替换，从不原地改字段，
// 读方要么看到旧快照要么看到新快照，不会看到半成品。
package engine

import (
	"fmt"
	"strings"

	"github.com/Sanandrew123/AICommerce/behavior"
	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/factor"
	"github.com/Sanandrew123/AICommerce/filter"
	"github.com/Sanandrew123/AICommerce/text"
)

// Options 控制构建参数，零值即默认。
type Options struct {
	// MaxFeatures 内容词表容量上限，默认 1000
	MaxFeatures int
	// NGramMax 词组最大长度，默认 2（单词+二元词组）
	NGramMax int
	// RankCap 因子分解秩上限，默认 50
	RankCap int
	// FilterRules 候选过滤规则（CEL 表达式），表达式非法时构建失败
	FilterRules []string
}

// Option 是构建选项。
type Option func(*Options)

// WithMaxFeatures 设置内容词表容量上限。
func WithMaxFeatures(n int) Option { return func(o *Options) { o.MaxFeatures = n } }

// WithNGramMax 设置词组最大长度。
func WithNGramMax(n int) Option { return func(o *Options) { o.NGramMax = n } }

// WithRankCap 设置因子分解秩上限。
func WithRankCap(n int) Option { return func(o *Options) { o.RankCap = n } }

// WithFilterRules 设置候选过滤规则。
func WithFilterRules(rules ...string) Option {
	return func(o *Options) { o.FilterRules = append(o.FilterRules, rules...) }
}

// ErrNoProducts 快照里一个商品都没有，无法构建任何矩阵，属于结构性失败。
var ErrNoProducts = core.NewDomainError(
	core.ModuleEngine, core.ErrorCodeBuildFailure, "engine: snapshot contains no products")

// Engine 是一份数据快照对应的不可变推荐引擎。
// Build 完成后所有字段只读，查询方法可被多协程并发调用。
type Engine struct {
	products []core.Product
	byID     map[int64]int

	space  *text.Space
	matrix *behavior.Matrix
	model  *factor.Model // 模型不可用时为 nil，协同策略降级

	filters []filter.Filter
}

// Build 从商品/行为快照构建引擎。
//
// 错误分级：
//   - 无商品、内容空间建不出来 → BUILD_FAILURE，硬上抛
//   - 因子模型拟合不了（用户太少）→ 容忍，协同策略运行期降级
//   - 单条脏数据（重复商品、坏标签）→ 就地跳过
func Build(products []core.Product, events []core.BehaviorEvent, opts ...Option) (*Engine, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	// 商品表去重：同 id 保留首条，保证"一个 id 一行"不变式
	table := make([]core.Product, 0, len(products))
	byID := make(map[int64]int, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; ok {
			continue
		}
		byID[p.ID] = len(table)
		table = append(table, p)
	}
	if len(table) == 0 {
		return nil, ErrNoProducts
	}

	ids := make([]int64, len(table))
	docs := make([]string, len(table))
	for i, p := range table {
		ids[i] = p.ID
		docs[i] = featureDocument(p)
	}
	space, err := text.NewSpace(ids, docs, o.MaxFeatures, o.NGramMax)
	if err != nil {
		return nil, fmt.Errorf("engine: build content space: %w", err)
	}

	matrix := behavior.Build(events)

	var model *factor.Model
	if !matrix.Empty() {
		model, err = factor.Fit(matrix, o.RankCap)
		if err != nil {
			if !core.IsModelUnavailable(err) {
				return nil, fmt.Errorf("engine: fit factor model: %w", err)
			}
			model = nil
		}
	}

	filters := make([]filter.Filter, 0, len(o.FilterRules))
	for _, expr := range o.FilterRules {
		f, err := filter.NewRule(expr)
		if err != nil {
			return nil, fmt.Errorf("engine: filter rule: %w", err)
		}
		filters = append(filters, f)
	}

	return &Engine{
		products: table,
		byID:     byID,
		space:    space,
		matrix:   matrix,
		model:    model,
		filters:  filters,
	}, nil
}

// featureDocument 把商品的文本属性拼成一份特征文档：
// 名称、描述、品牌、标签，以空格连接。标签解析失败时
// 其余字段照常参与，单条脏数据不影响整体。
func featureDocument(p core.Product) string {
	parts := make([]string, 0, 4)
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Brand != "" {
		parts = append(parts, p.Brand)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, " "))
	}
	return strings.Join(parts, " ")
}

// NumProducts 返回快照内商品数。
func (e *Engine) NumProducts() int { return len(e.products) }

// ModelAvailable 返回协同策略的因子模型是否拟合成功。
func (e *Engine) ModelAvailable() bool { return e.model != nil }

// Space 返回内容相似度空间（只读）。
func (e *Engine) Space() *text.Space { return e.space }

// Matrix 返回交互矩阵（只读）。
func (e *Engine) Matrix() *behavior.Matrix { return e.matrix }
