package core

import (
	"encoding/json"
	"strings"

	"github.com/Sanandrew123/AICommerce/pkg/conv"
)

// Product 是商品快照记录，由存储侧整理好后一次性交给引擎。
// 同一个构建周期内视为不可变；Engine 只读，不回写。
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Tags        TagList `json:"tags"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
}

// Meta 导出商品属性快照，挂在推荐结果上返回给上层。
func (p *Product) Meta() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"brand":        p.Brand,
		"tags":         []string(p.Tags),
		"rating":       p.Rating,
		"review_count": p.ReviewCount,
	}
}

// TagList 是商品标签列表。上游的几种形态都要接受：
//   - 已拆分的字符串数组：["laptop", "apple"]
//   - JSON 数组字面量字符串："[\"laptop\", \"apple\"]"
//   - 混合类型数组：["sale", 2024]，数字元素转成字符串
//
// 解析失败时丢弃标签、保留商品其余文本字段，
// 不让单条脏数据中断整次构建。
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = ParseTags(raw)
		return nil
	}
	// 混合类型数组（如 ["sale", 2024]）：逐元素转成字符串，
	// 转不动的元素跳过
	var mixed []any
	if err := json.Unmarshal(data, &mixed); err == nil {
		*t = conv.SliceAnyToString(mixed)
		return nil
	}
	*t = nil
	return nil
}

// ParseTags 解析 JSON 数组字面量形态的标签字符串，失败时返回 nil。
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return arr
	}
	var mixed []any
	if err := json.Unmarshal([]byte(raw), &mixed); err == nil {
		return conv.SliceAnyToString(mixed)
	}
	return nil
}

// BehaviorType 是用户行为类型的封闭枚举。
type BehaviorType string

const (
	BehaviorView      BehaviorType = "VIEW"
	BehaviorClick     BehaviorType = "CLICK"
	BehaviorAddToCart BehaviorType = "ADD_TO_CART"
	BehaviorPurchase  BehaviorType = "PURCHASE"
)

// Weight 返回行为的隐式权重。映射是穷举的：
// VIEW=1、CLICK=2、ADD_TO_CART=4、PURCHASE=10；未知行为一律按 1 计。
func (b BehaviorType) Weight() float64 {
	switch b {
	case BehaviorView:
		return 1
	case BehaviorClick:
		return 2
	case BehaviorAddToCart:
		return 4
	case BehaviorPurchase:
		return 10
	default:
		// 未知行为不丢弃，按最低权重沉底
		return 1
	}
}

// Known 返回该行为是否属于封闭集合。
func (b BehaviorType) Known() bool {
	switch b {
	case BehaviorView, BehaviorClick, BehaviorAddToCart, BehaviorPurchase:
		return true
	}
	return false
}

// BehaviorEvent 是一条追加式的行为事实：谁、对哪个商品、做了什么。
// 引擎只做聚合，从不修改单条事件。
type BehaviorEvent struct {
	UserID    int64        `json:"user_id"`
	ProductID int64        `json:"product_id"`
	Behavior  BehaviorType `json:"behavior_type"`
}
