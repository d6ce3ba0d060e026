package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sanandrew123/AICommerce/core"
)

const defaultLimit = 10

func parseLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultLimit
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if s.provider.Current() == nil {
		status = "building"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// handleUser 个性化推荐：?limit=10&strategy=hybrid|collaborative|content&product_id=...
// content 策略需要参照商品；没带 product_id 时回落到 hybrid（沿用既有契约）。
func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limit := parseLimit(r)
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "hybrid"
	}
	productID, _ := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)

	key := fmt.Sprintf("rec:user:%d:%s:%d:%d", userID, strategy, limit, productID)
	if recs, ok := s.fromCache(r.Context(), key); ok {
		s.writeJSON(w, http.StatusOK, response{
			Success: true, Recommendations: recs, Strategy: strategy, Cached: true,
		})
		return
	}

	eng := s.currentEngine(w)
	if eng == nil {
		return
	}

	var res *core.Result
	switch strategy {
	case "collaborative":
		res = eng.Collaborative(r.Context(), userID, limit)
	case "content":
		if productID != 0 {
			res = eng.ContentBased(r.Context(), productID, limit)
		} else {
			res = eng.Hybrid(r.Context(), userID, nil, limit)
		}
	default:
		strategy = "hybrid"
		var params map[string]any
		if productID != 0 {
			params = map[string]any{core.ParamCurrentProductID: productID}
		}
		res = eng.Hybrid(r.Context(), userID, params, limit)
	}

	if res.Degraded {
		s.log.Info("server: strategy degraded",
			zap.Int64("user_id", userID),
			zap.String("from", string(res.DegradedFrom)),
		)
	}

	s.toCache(r.Context(), key, res.Items, s.ttl.UserTTL)
	s.writeJSON(w, http.StatusOK, response{
		Success: true, Recommendations: res.Items, Strategy: strategy,
		Degraded: res.Degraded,
	})
}

// handleSimilar 相似商品：参照商品未知时返回空列表，不是 404。
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	limit := parseLimit(r)

	key := fmt.Sprintf("rec:similar:%d:%d", productID, limit)
	if recs, ok := s.fromCache(r.Context(), key); ok {
		s.writeJSON(w, http.StatusOK, response{Success: true, Recommendations: recs, Cached: true})
		return
	}

	eng := s.currentEngine(w)
	if eng == nil {
		return
	}
	res := eng.ContentBased(r.Context(), productID, limit)

	s.toCache(r.Context(), key, res.Items, s.ttl.SimilarTTL)
	s.writeJSON(w, http.StatusOK, response{Success: true, Recommendations: res.Items})
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	key := fmt.Sprintf("rec:popular:%d", limit)
	if recs, ok := s.fromCache(r.Context(), key); ok {
		s.writeJSON(w, http.StatusOK, response{Success: true, Recommendations: recs, Cached: true})
		return
	}

	eng := s.currentEngine(w)
	if eng == nil {
		return
	}
	res := eng.Popular(r.Context(), limit)

	s.toCache(r.Context(), key, res.Items, s.ttl.PopularTTL)
	s.writeJSON(w, http.StatusOK, response{Success: true, Recommendations: res.Items})
}

// contextRequest 是 POST /recommendations/context 的请求体。
// Context 是开放键值对，引擎只解读 current_product_id。
type contextRequest struct {
	UserID  int64          `json:"user_id"`
	Context map[string]any `json:"context"`
	Limit   int            `json:"limit"`
}

// handleContext 上下文混合推荐。上下文组合空间太大，不走缓存。
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}

	eng := s.currentEngine(w)
	if eng == nil {
		return
	}
	res := eng.Hybrid(r.Context(), req.UserID, req.Context, req.Limit)
	s.writeJSON(w, http.StatusOK, response{
		Success: true, Recommendations: res.Items, Strategy: "hybrid",
	})
}

// handleRebuild 重新加载快照、构建新引擎并原子替换。
// 构建失败时旧引擎继续服务，这次替换整体作废。
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	if s.rebuild == nil {
		s.writeError(w, http.StatusNotImplemented, "rebuild not configured")
		return
	}
	eng, err := s.rebuild(r.Context())
	if err != nil {
		s.log.Error("server: rebuild failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "rebuild failed")
		return
	}
	s.provider.Swap(eng)
	s.log.Info("server: engine rebuilt",
		zap.Int("products", eng.NumProducts()),
		zap.Bool("model_available", eng.ModelAvailable()),
	)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": eng.NumProducts(),
	})
}
