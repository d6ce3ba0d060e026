// Package aicommerce 是商城推荐引擎。
//
// 设计要点：
// - 快照即引擎：每份商品/行为快照构建一个不可变 Engine，查询是纯函数，
//   重建走整体替换（Provider 原子换指针），读请求永远看到完整快照
// - 三策略混排：协同过滤（隐因子）、内容相似（TF-IDF 余弦）、热门兜底，
//   去重按步序首见保留，降级路径显式标记而不是静默吞掉
// - Pipeline 可组合：查询尾段由 Node 串联（过滤 → 排序 → 截断），
//   自定义 Node 即可插拔扩展
package aicommerce

import (
	"github.com/Sanandrew123/AICommerce/engine"
	"github.com/Sanandrew123/AICommerce/pipeline"
)

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Engine = engine.Engine
type Provider = engine.Provider
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// Build 构建引擎，见 engine.Build。
var Build = engine.Build
