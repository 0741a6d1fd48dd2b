package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
)

// SortBy 按社区属性重排候选，用于分类榜单（低价优先、评分优先等）。
//
// 支持的字段：
//   - "score"（默认）：当前候选分
//   - "average_rent" / "average_rating" / "safety_score" / "transport_score"
//
// 同值时按社区 ID 升序保证确定性。
type SortBy struct {
	Field     string
	Ascending bool
}

func (n *SortBy) Name() string        { return "rerank.sortby" }
func (n *SortBy) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SortBy) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	key := func(c *core.Candidate) float64 {
		if c == nil {
			return 0
		}
		switch n.Field {
		case "average_rent":
			if c.Neighborhood != nil {
				return c.Neighborhood.AverageRent
			}
		case "average_rating":
			if c.Neighborhood != nil {
				return c.Neighborhood.AverageRating
			}
		case "safety_score":
			if c.Neighborhood != nil {
				return c.Neighborhood.SafetyScore
			}
		case "transport_score":
			if c.Neighborhood != nil {
				return c.Neighborhood.TransportScore
			}
		default:
			return c.Score
		}
		return 0
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ki, kj := key(candidates[i]), key(candidates[j])
		if ki != kj {
			if n.Ascending {
				return ki < kj
			}
			return ki > kj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates, nil
}
