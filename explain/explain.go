// Package explain 为重排后的候选生成人可读解释与响应级指标。
package explain

import (
	"context"
	"math"
	"strings"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Node 是解释节点。对每个候选按固定顺序生成解释：
//  1. "Matches your preferences: ..."（内容策略有命中特征时）
//  2. "Users with similar preferences also liked this"（协同策略有贡献时）
//  3. "Highly recommended based on your profile"（融合分超过阈值时）
//
// Reason 取首条解释；一条都没有时使用兜底文案。
type Node struct {
	Config *core.EngineConfig
}

func (n *Node) Name() string        { return "postprocess.explain" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Node) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cfg := n.Config
	if cfg == nil {
		cfg = core.DefaultEngineConfig()
	}

	for _, c := range candidates {
		if c == nil {
			continue
		}

		var explanations []string
		if len(c.MatchedFeatures) > 0 {
			explanations = append(explanations,
				"Matches your preferences: "+strings.Join(c.MatchedFeatures, ", "))
		}
		if c.HasAlgorithm(core.AlgorithmCollaborative) {
			explanations = append(explanations, "Users with similar preferences also liked this")
		}
		if c.Score > cfg.HighScoreThreshold {
			explanations = append(explanations, "Highly recommended based on your profile")
		}

		c.Explanations = explanations
		if len(explanations) > 0 {
			c.Reason = explanations[0]
		} else {
			c.Reason = cfg.FallbackReason
		}
		c.PutLabel("explained", utils.Label{Value: "true", Source: "explain"})
	}

	return candidates, nil
}

// OverallConfidence 计算响应级置信度：各候选置信度的均值，钳制到 [0,1]。
// 空列表返回 0。
func OverallConfidence(candidates []*core.Candidate) float64 {
	if len(candidates) == 0 {
		return 0
	}
	var sum float64
	for _, c := range candidates {
		if c != nil {
			sum += c.Confidence
		}
	}
	avg := sum / float64(len(candidates))
	return math.Max(0, math.Min(avg, 1))
}

// DiversityScore 计算响应级多样性：
// (不同城市数 / 条数) * (不同价格档数 / 条数)。空列表返回 0。
func DiversityScore(candidates []*core.Candidate, bucketSize float64) float64 {
	if len(candidates) == 0 {
		return 0
	}
	cities := make(map[string]struct{})
	buckets := make(map[int]struct{})
	for _, c := range candidates {
		if c == nil || c.Neighborhood == nil {
			continue
		}
		cities[c.Neighborhood.City] = struct{}{}
		buckets[c.Neighborhood.PriceBucket(bucketSize)] = struct{}{}
	}
	n := float64(len(candidates))
	return (float64(len(cities)) / n) * (float64(len(buckets)) / n)
}
