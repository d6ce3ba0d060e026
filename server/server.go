// Package server 是推荐引擎的 HTTP 路由层。
//
// 职责边界：解析请求参数、查/写结果缓存、把查询转发给当前生效的
// 引擎实例。排序与降级逻辑全部在引擎内，这里不做任何算法决策。
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/config"
	"github.com/Sanandrew123/AICommerce/core"
	"github.com/Sanandrew123/AICommerce/engine"
)

// RebuildFunc 重新加载快照并构建新引擎，由装配方（cmd）注入。
type RebuildFunc func(ctx context.Context) (*engine.Engine, error)

// Server 持有路由层的全部依赖。
type Server struct {
	log      *zap.Logger
	cache    core.Store
	provider *engine.Provider
	ttl      config.CacheConfig
	rebuild  RebuildFunc
}

func New(
	log *zap.Logger,
	cache core.Store,
	provider *engine.Provider,
	ttl config.CacheConfig,
	rebuild RebuildFunc,
) *Server {
	return &Server{
		log:      log,
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		rebuild:  rebuild,
	}
}

// Routes 装配路由。路径布局沿用既有服务的对外契约。
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/recommendations", func(r chi.Router) {
		r.Get("/user/{userID}", s.handleUser)
		r.Get("/similar/{productID}", s.handleSimilar)
		r.Get("/popular", s.handlePopular)
		r.Post("/context", s.handleContext)
		r.Post("/rebuild", s.handleRebuild)
	})
	return r
}

// response 是统一的响应信封。
type response struct {
	Success         bool                  `json:"success"`
	Recommendations []core.Recommendation `json:"recommendations,omitempty"`
	Strategy        string                `json:"strategy,omitempty"`
	Cached          bool                  `json:"cached"`
	Degraded        bool                  `json:"degraded,omitempty"`
	Message         string                `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("server: write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, response{Success: false, Message: msg})
}

// currentEngine 取当前生效引擎；首次构建未完成时对外 503。
func (s *Server) currentEngine(w http.ResponseWriter) *engine.Engine {
	eng := s.provider.Current()
	if eng == nil {
		s.writeError(w, http.StatusServiceUnavailable, "recommendation engine not ready")
		return nil
	}
	return eng
}

// fromCache 读缓存；miss 或解码失败都按 miss 处理。
func (s *Server) fromCache(ctx context.Context, key string) ([]core.Recommendation, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var recs []core.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, false
	}
	return recs, true
}

// toCache 写缓存；缓存故障只记日志，不影响本次响应。
func (s *Server) toCache(ctx context.Context, key string, recs []core.Recommendation, ttl int) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("server: cache set failed", zap.String("key", key), zap.Error(err))
	}
}
