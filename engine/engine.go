// Package engine 把数据层、策略层与 Pipeline 组装为完整的推荐引擎。
//
// 链路：score.fanout（四策略并发打分）→ fusion（加权融合）→
// rerank.diversity（多样性重排）→ postprocess.explain（解释生成）。
// 截断在响应阶段进行，整体置信度与多样性在截断前的完整候选集上
// 计算。所有推荐均按请求现算，不落盘。
package engine

import (
	"context"
	"time"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/explain"
	"github.com/rushteam/hoodkit/feature"
	"github.com/rushteam/hoodkit/filter"
	"github.com/rushteam/hoodkit/fusion"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/rerank"
	"github.com/rushteam/hoodkit/strategy"
)

// MetadataAlgorithm 是响应元信息中的算法标识。
const MetadataAlgorithm = "hybrid-ml"

// 分类榜单名称。
const (
	CategoryBudget   = "budget"
	CategorySafety   = "safety"
	CategoryTrending = "trending"
	CategoryFamily   = "family"
)

// Engine 是推荐引擎。Users 与 Catalog 必填；
// Interactions 与 Features 可选，缺省时行为信号由收藏合成。
type Engine struct {
	Users   core.UserStore
	Catalog core.CatalogStore

	// Interactions 交互日志，可选；读失败只降级不报错
	Interactions core.InteractionStore

	// Features 在线特征服务（Feast），可选；
	// 拉到的行为统计会合成为交互记录补充行为信号
	Features feature.Service

	// Config 引擎配置；nil 时使用 DefaultEngineConfig
	Config *core.EngineConfig
}

func New(users core.UserStore, catalog core.CatalogStore) *Engine {
	return &Engine{Users: users, Catalog: catalog}
}

func (e *Engine) config() *core.EngineConfig {
	if e.Config != nil {
		return e.Config
	}
	return core.DefaultEngineConfig()
}

// GenerateRecommendations 为用户生成个性化推荐。
//
// 用户不存在时返回 ErrUserNotFound；社区目录不可用时返回
// UNAVAILABLE 级 DomainError。策略失败、交互日志/特征服务失败
// 只降质量不降可用性（空贡献 + 请求级标签）。
//
// 多样性重排可能使返回条数少于 limit，调用方不应假定条数。
func (e *Engine) GenerateRecommendations(ctx context.Context, userID string, opts core.Options) (*core.Response, error) {
	cfg := e.config()
	limit := opts.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	candidates, _, err := e.generate(ctx, userID, opts.Type)
	if err != nil {
		return nil, err
	}
	return e.respond(candidates, limit, cfg), nil
}

// Explain 解释某个社区为什么会（或不会）被推荐给该用户。
// 在更宽的候选窗口（ExplainLimit）内重新生成并查找该社区；
// 窗口内不存在时返回 ErrNeighborhoodNotFound。
func (e *Engine) Explain(ctx context.Context, userID, neighborhoodID string) (*core.Recommendation, error) {
	cfg := e.config()
	candidates, _, err := e.generate(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	if len(candidates) > cfg.ExplainLimit {
		candidates = candidates[:cfg.ExplainLimit]
	}
	for _, c := range candidates {
		if c.ID == neighborhoodID {
			return toRecommendation(c), nil
		}
	}
	return nil, core.ErrNeighborhoodNotFound
}

// CategoryRecommendations 生成分类榜单（budget / safety / trending / family）。
// 在 limit*2 的候选窗口上套用分类专属的过滤与排序，再截断到 limit。
func (e *Engine) CategoryRecommendations(ctx context.Context, userID, category string, limit int) (*core.Response, error) {
	cfg := e.config()
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	var nodes []pipeline.Node
	switch category {
	case CategoryBudget:
		nodes = []pipeline.Node{&rerank.SortBy{Field: "average_rent", Ascending: true}}
	case CategorySafety:
		nodes = []pipeline.Node{
			&filter.Node{Filters: []filter.Filter{&filter.ExprFilter{Expr: `item.safety_score >= 7.0`}}},
			&rerank.SortBy{Field: "safety_score"},
		}
	case CategoryTrending:
		nodes = []pipeline.Node{&rerank.SortBy{Field: "average_rating"}}
	case CategoryFamily:
		nodes = []pipeline.Node{
			&filter.Node{Filters: []filter.Filter{&filter.ExprFilter{
				Expr: `"Schools" in item.amenities || "Parks" in item.amenities`,
			}}},
		}
	default:
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: unknown category: "+category)
	}

	candidates, rctx, err := e.generate(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	// 候选窗口是 limit*2，榜单过滤与排序在窗口内进行
	if len(candidates) > limit*2 {
		candidates = candidates[:limit*2]
	}
	p := &pipeline.Pipeline{Nodes: nodes}
	candidates, err = p.Run(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}
	return e.respond(candidates, limit, cfg), nil
}

// TrackInteraction 记录一条用户行为。
// favorite 行为同步写入收藏（数据层支持时），rating 行为
// 同步并入社区评分聚合，Weight 即评分值。
func (e *Engine) TrackInteraction(ctx context.Context, userID string, in core.Interaction) error {
	if in.Weight == 0 {
		in.Weight = 1
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	if e.Interactions != nil {
		if err := e.Interactions.AddInteraction(ctx, userID, in); err != nil {
			return err
		}
	}

	switch in.Type {
	case core.InteractionFavorite:
		if w, ok := e.Users.(core.FavoriteWriter); ok {
			return w.AddFavorite(ctx, userID, in.NeighborhoodID)
		}
	case core.InteractionRating:
		if w, ok := e.Catalog.(core.RatingWriter); ok {
			return w.AddRating(ctx, in.NeighborhoodID, in.Weight)
		}
	}
	return nil
}

// generate 跑完整链路，返回未截断的候选与请求上下文。
func (e *Engine) generate(ctx context.Context, userID, reqType string) ([]*core.Candidate, *core.RecommendContext, error) {
	cfg := e.config()

	user, err := e.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile := user.Hydrate()

	rctx := &core.RecommendContext{
		UserID:       userID,
		Profile:      profile,
		Interactions: e.loadInteractions(ctx, userID, profile),
		Params:       map[string]any{"type": reqType},
	}

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&strategy.Fanout{
			Catalog: e.Catalog,
			Strategies: []strategy.Strategy{
				&strategy.Collaborative{Users: e.Users, Config: cfg},
				&strategy.ContentBased{Config: cfg},
				&strategy.Hybrid{Config: cfg},
				&strategy.Popularity{Config: cfg},
			},
		},
		&fusion.Node{Config: cfg},
		&rerank.Diversity{Config: cfg},
		&explain.Node{Config: cfg},
	}}

	candidates, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return candidates, rctx, nil
}

// loadInteractions 加载用户行为信号。交互日志为空时用收藏合成，
// 保证 hybrid 始终有社区级信号；在线特征统计不带社区 ID，只作为
// 用户级信号追加，不会抵消收藏合成。日志与特征失败只降级不报错。
func (e *Engine) loadInteractions(ctx context.Context, userID string, profile *core.PreferenceProfile) []core.Interaction {
	var out []core.Interaction

	if e.Interactions != nil {
		ins, err := e.Interactions.GetInteractions(ctx, userID)
		if err == nil {
			out = append(out, ins...)
		}
	}
	if len(out) == 0 {
		out = core.SyntheticFavorites(profile.FavoriteNeighborhoods)
	}

	if e.Features != nil {
		stats, err := e.Features.UserStats(ctx, userID)
		if err == nil {
			out = append(out, stats.Interactions()...)
		}
	}
	return out
}

// respond 在截断前的完整候选集上计算整体置信度与多样性，
// 再截断到 limit 产出推荐列表。
func (e *Engine) respond(candidates []*core.Candidate, limit int, cfg *core.EngineConfig) *core.Response {
	confidence := explain.OverallConfidence(candidates)
	diversity := explain.DiversityScore(candidates, cfg.PriceBucketSize)

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	recs := make([]*core.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, toRecommendation(c))
	}
	return &core.Response{
		Recommendations: recs,
		Metadata: core.Metadata{
			Algorithm:  MetadataAlgorithm,
			Confidence: confidence,
			Diversity:  diversity,
			Timestamp:  time.Now(),
		},
	}
}

func toRecommendation(c *core.Candidate) *core.Recommendation {
	return &core.Recommendation{
		Neighborhood:    c.Neighborhood,
		FinalScore:      c.Score,
		Confidence:      c.Confidence,
		Algorithms:      c.Algorithms,
		MatchedFeatures: c.MatchedFeatures,
		Explanations:    c.Explanations,
		Reason:          c.Reason,
	}
}
