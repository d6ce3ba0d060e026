package dataset

import "github.com/Sanandrew123/AICommerce/core"

// Sample 返回内置示例快照，用于开发与演示。
// 注意标签的两种形态都覆盖到了：字符串数组与 JSON 数组字面量。
func Sample() *Snapshot {
	return &Snapshot{
		Products: []core.Product{
			{
				ID:          1,
				Name:        "iPhone 15 Pro",
				Description: "苹果最新款智能手机",
				Brand:       "Apple",
				Tags:        core.TagList{"smartphone", "apple", "5g"},
				Rating:      4.8,
				ReviewCount: 150,
			},
			{
				ID:          2,
				Name:        "MacBook Pro M3",
				Description: "苹果笔记本电脑",
				Brand:       "Apple",
				Tags:        core.TagList(core.ParseTags(`["laptop", "apple", "m3"]`)),
				Rating:      4.9,
				ReviewCount: 89,
			},
			{
				ID:          3,
				Name:        "Nike Air Max",
				Description: "经典运动鞋",
				Brand:       "Nike",
				Tags:        core.TagList{"shoes", "sports", "nike"},
				Rating:      4.5,
				ReviewCount: 200,
			},
			{
				ID:          4,
				Name:        "编程珠玑",
				Description: "经典编程书籍",
				Brand:       "机械工业出版社",
				Tags:        core.TagList{"programming", "book", "algorithm"},
				Rating:      4.7,
				ReviewCount: 95,
			},
		},
		Events: []core.BehaviorEvent{
			{UserID: 1, ProductID: 1, Behavior: core.BehaviorView},
			{UserID: 1, ProductID: 2, Behavior: core.BehaviorClick},
			{UserID: 1, ProductID: 3, Behavior: core.BehaviorAddToCart},
			{UserID: 2, ProductID: 1, Behavior: core.BehaviorPurchase},
			{UserID: 2, ProductID: 4, Behavior: core.BehaviorView},
		},
	}
}
