package core

// Reason 是推荐理由的封闭集合，直接暴露给上层展示。
type Reason string

const (
	ReasonSimilarUser    Reason = "similar-user-preference"
	ReasonSimilarContent Reason = "similar-item-content"
	ReasonPopular        Reason = "popular-item"
)

// SourceTag 标记推荐结果来自哪个策略。
type SourceTag string

const (
	SourceCollaborative SourceTag = "collaborative"
	SourceContent       SourceTag = "content"
	SourcePopular       SourceTag = "popular"
	SourceHybrid        SourceTag = "hybrid"
)

// Recommendation 是对外输出的推荐值对象：商品 id、分数、理由、
// 策略来源、商品属性快照。引擎本身不持久化它，缓存归上层。
type Recommendation struct {
	ProductID int64          `json:"product_id"`
	Score     float64        `json:"score"`
	Reason    Reason         `json:"reason"`
	Source    SourceTag      `json:"source"`
	Product   map[string]any `json:"product_info"`
}

// Result 是一次查询的完整返回。Degraded 显式区分"策略主动降级"
// 与正常服务：协同/内容策略拿不到结果时回退热门不是错误，
// 但测试与观测需要能断言走了哪条路径。
type Result struct {
	Items    []Recommendation `json:"items"`
	Source   SourceTag        `json:"source"`
	Degraded bool             `json:"degraded"`
	// DegradedFrom 记录原本想走的策略，仅 Degraded 为 true 时有值。
	DegradedFrom SourceTag `json:"degraded_from,omitempty"`
}
