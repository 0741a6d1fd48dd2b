package strategy

import (
	"context"
	"math"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Hybrid 是混合打分策略：隐式交互信号 + 偏好匹配 + 情境因子加权混合。
//
// 分数 = InteractionBlend*交互分 + PreferenceBlend*偏好分 + ContextBlend*情境分
//
// 三个子分：
//   - 交互分：Σ behaviorWeight(type) * weight，遍历用户与该社区的交互记录。
//     没有真实交互日志时，引擎用收藏合成 favorite 型交互。
//   - 偏好分：只取预算命中项（租金在区间内 +BudgetMatchBonus）
//   - 情境分：年龄条件启发——年轻用户看 lifestyleScore，年长用户看 safetyScore
//
// 这是简化的、可解释的启发式版本，不是矩阵分解。
type Hybrid struct {
	Config *core.EngineConfig
}

func (s *Hybrid) Name() string { return "strategy.hybrid" }

func (s *Hybrid) Score(
	_ context.Context,
	rctx *core.RecommendContext,
	catalog []*core.Neighborhood,
) ([]*core.Candidate, error) {
	cfg := engineConfig(s.Config)
	profile := rctx.GetProfile()

	out := make([]*core.Candidate, 0, len(catalog))
	for _, n := range catalog {
		if n == nil {
			continue
		}

		interaction := s.interactionScore(rctx, n.ID, cfg)
		preference := s.preferenceScore(profile, n, cfg)
		contextual := s.contextualScore(profile, n, cfg)

		score := interaction*cfg.InteractionBlend +
			preference*cfg.PreferenceBlend +
			contextual*cfg.ContextBlend

		c := core.NewCandidate(n.ID, n)
		c.Score = score
		c.Algorithm = core.AlgorithmHybrid
		c.Confidence = math.Min(score/cfg.HybridConfidenceDivisor, 1)
		c.PutLabel("strategy", utils.Label{Value: core.AlgorithmHybrid, Source: "strategy"})
		out = append(out, c)
	}

	sortByScore(out)
	return out, nil
}

// interactionScore 累加用户与该社区的交互：Σ behaviorWeight(type) * weight。
// 不带社区 ID 的记录是用户级统计（特征平台合成），对所有社区生效。
func (s *Hybrid) interactionScore(rctx *core.RecommendContext, neighborhoodID string, cfg *core.EngineConfig) float64 {
	var sum float64
	for _, in := range rctx.Interactions {
		if in.NeighborhoodID != "" && in.NeighborhoodID != neighborhoodID {
			continue
		}
		sum += cfg.BehaviorWeight(in.Type) * in.Weight
	}
	return sum
}

// preferenceScore 只复用预算命中项：租金在区间内加 BudgetMatchBonus。
func (s *Hybrid) preferenceScore(p *core.PreferenceProfile, n *core.Neighborhood, cfg *core.EngineConfig) float64 {
	if p.InBudget(n.AverageRent) {
		return cfg.BudgetMatchBonus
	}
	return 0
}

// contextualScore 年龄条件启发：
// age < YoungAgeLimit 且 lifestyleScore 达标 +ContextBonus；
// age >= YoungAgeLimit 且 safetyScore 达标 +ContextBonus。
func (s *Hybrid) contextualScore(p *core.PreferenceProfile, n *core.Neighborhood, cfg *core.EngineConfig) float64 {
	if p.Age < cfg.YoungAgeLimit {
		if n.LifestyleScore > cfg.ContextScoreBar {
			return cfg.ContextBonus
		}
		return 0
	}
	if n.SafetyScore > cfg.ContextScoreBar {
		return cfg.ContextBonus
	}
	return 0
}
