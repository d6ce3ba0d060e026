package engine

import "sync/atomic"

// Provider 持有当前生效的引擎实例，实现 copy-on-rebuild：
// 新快照构建出全新的 Engine 后整体原子替换指针，在飞的读请求
// 要么命中旧实例要么命中新实例，绝不会读到替换到一半的状态。
type Provider struct {
	cur atomic.Pointer[Engine]
}

// NewProvider 创建 Provider，初始引擎可以为 nil（尚未完成首次构建）。
func NewProvider(e *Engine) *Provider {
	p := &Provider{}
	if e != nil {
		p.cur.Store(e)
	}
	return p
}

// Current 返回当前生效的引擎，未构建时为 nil。
func (p *Provider) Current() *Engine {
	return p.cur.Load()
}

// Swap 原子替换引擎实例，返回被替换下来的旧实例。
func (p *Provider) Swap(e *Engine) *Engine {
	return p.cur.Swap(e)
}
