package core

import "github.com/Sanandrew123/AICommerce/pkg/utils"

// ParamCurrentProductID 是 Params 中引擎唯一解读的 key：
// 用户当前正在浏览的商品 id，内容策略以它为参照物。
const ParamCurrentProductID = "current_product_id"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿各策略透传。
// UserID 为 0 表示匿名请求；Params 是开放的上下文键值对。
type RecommendContext struct {
	UserID int64
	Scene  string

	// Params 请求级上下文参数。引擎只识别 current_product_id，
	// 其余 key 原样透传，便于上层扩展。
	Params map[string]any

	// Labels 是请求级标签，可驱动过滤规则。
	Labels map[string]utils.Label
}

// CurrentProductID 从 Params 提取参照商品 id，兼容 int64/int/float64
//（JSON 解码常得到 float64）。第二返回值为 false 表示未携带。
func (rctx *RecommendContext) CurrentProductID() (int64, bool) {
	if rctx == nil || rctx.Params == nil {
		return 0, false
	}
	v, ok := rctx.Params[ParamCurrentProductID]
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}
