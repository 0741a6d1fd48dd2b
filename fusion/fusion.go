// Package fusion 把四个策略的候选合并为一份融合排名。
package fusion

import (
	"context"
	"sort"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// algorithmOrder 是固定的策略遍历顺序（与权重表一致）。
// 合并后的 Algorithms、置信度取值都按此顺序，保证结果确定性。
var algorithmOrder = []string{
	core.AlgorithmCollaborative,
	core.AlgorithmContentBased,
	core.AlgorithmHybrid,
	core.AlgorithmPopularity,
}

// Node 是融合节点：对每个在任一策略输出中出现过的社区，
//
//	finalScore = Σ strategyWeight(algorithm) * 策略分（缺失按 0 计）
//
// 融合是加权和，对策略贡献可交换：打乱输入顺序不改变任何社区的融合分。
// 合并规则：
//   - Algorithms：按固定顺序记录贡献过的策略标签
//   - Confidence：取固定顺序下第一个贡献策略的置信度
//   - MatchedFeatures：并集（只有内容策略产出）
//   - 排序：分数降序，同分按社区 ID 升序
type Node struct {
	Config *core.EngineConfig
}

func (n *Node) Name() string        { return "fusion" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFusion }

func (n *Node) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cfg := n.Config
	if cfg == nil {
		cfg = core.DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// 按 (社区, 策略) 归组；同一策略对同一社区只取首个（策略约定至多产出一个）
	type group struct {
		neighborhood *core.Neighborhood
		byAlgorithm  map[string]*core.Candidate
	}
	groups := make(map[string]*group, len(candidates))
	order := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || c.Algorithm == "" {
			continue
		}
		g, ok := groups[c.ID]
		if !ok {
			g = &group{byAlgorithm: make(map[string]*core.Candidate, 4)}
			groups[c.ID] = g
			order = append(order, c.ID)
		}
		if g.neighborhood == nil {
			g.neighborhood = c.Neighborhood
		}
		if _, exists := g.byAlgorithm[c.Algorithm]; !exists {
			g.byAlgorithm[c.Algorithm] = c
		}
	}

	out := make([]*core.Candidate, 0, len(groups))
	for _, id := range order {
		g := groups[id]
		fused := core.NewCandidate(id, g.neighborhood)

		var finalScore float64
		for _, algo := range algorithmOrder {
			c, ok := g.byAlgorithm[algo]
			if !ok {
				continue // 缺失的策略按 0 分计
			}
			finalScore += cfg.StrategyWeight(algo) * c.Score
			fused.Algorithms = append(fused.Algorithms, algo)
			if len(fused.Algorithms) == 1 {
				fused.Confidence = c.Confidence
			}
			fused.MatchedFeatures = append(fused.MatchedFeatures, c.MatchedFeatures...)
			for k, v := range c.Labels {
				fused.PutLabel(k, v)
			}
		}

		fused.Score = finalScore
		fused.PutLabel("fused", utils.Label{Value: "true", Source: "fusion"})
		out = append(out, fused)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
