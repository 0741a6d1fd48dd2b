package strategy

import (
	"context"
	"math"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Popularity 是热度打分策略：只看社区自身的聚合质量信号，与用户偏好无关。
//
// 分数 = averageRating*10 + numRatings*2 + safetyScore*3 + lifestyleScore*2 + transportScore*2
// （权重可经 EngineConfig 覆盖）
//
// 工程特征：
//  - 冷启动：最好（对零收藏零交互的新用户也有完整输出）
//  - 个性化：无
//
// 分数对每个输入量单调不减。
type Popularity struct {
	Config *core.EngineConfig
}

func (s *Popularity) Name() string { return "strategy.popularity" }

func (s *Popularity) Score(
	_ context.Context,
	_ *core.RecommendContext,
	catalog []*core.Neighborhood,
) ([]*core.Candidate, error) {
	cfg := engineConfig(s.Config)

	out := make([]*core.Candidate, 0, len(catalog))
	for _, n := range catalog {
		if n == nil {
			continue
		}

		score := n.AverageRating*cfg.PopularityRatingWeight +
			float64(n.NumRatings)*cfg.PopularityNumRatingsWeight +
			n.SafetyScore*cfg.PopularitySafetyWeight +
			n.LifestyleScore*cfg.PopularityLifestyleWeight +
			n.TransportScore*cfg.PopularityTransportWeight

		c := core.NewCandidate(n.ID, n)
		c.Score = score
		c.Algorithm = core.AlgorithmPopularity
		c.Confidence = math.Min(score/cfg.PopularityConfidenceDivisor, 1)
		c.PutLabel("strategy", utils.Label{Value: core.AlgorithmPopularity, Source: "strategy"})
		out = append(out, c)
	}

	sortByScore(out)
	return out, nil
}
