package core

import "github.com/rushteam/hoodkit/pkg/utils"

// 四个打分策略的标签常量。
// 融合权重表（EngineConfig.StrategyWeights）以这些标签为 key。
const (
	AlgorithmCollaborative = "collaborative"
	AlgorithmContentBased  = "content-based"
	AlgorithmHybrid        = "hybrid"
	AlgorithmPopularity    = "popularity"
)

// Candidate 是推荐链路中的统一承载结构。
// 每个请求内临时创建，响应后丢弃：
//   - 策略阶段：每个 (策略, 社区) 产出一个 Candidate，Score 为策略分
//   - 融合阶段：同一社区的多个 Candidate 合并为一个，Score 变为加权融合分
//   - 重排阶段：多样性惩罚直接从 Score 上扣
//
// Labels 用于解释与观测；MatchedFeatures 记录内容策略命中的偏好规则。
type Candidate struct {
	ID           string
	Neighborhood *Neighborhood

	// Score 当前阶段分数：策略分 → 融合分 → 惩罚后分
	Score float64

	// Algorithm 产出该候选的策略标签（融合前有效）
	Algorithm string

	// Algorithms 融合后记录所有贡献过分数的策略标签（按固定权重表顺序）
	Algorithms []string

	// Confidence 策略给出的置信度 [0,1]，不是统计概率
	Confidence float64

	// MatchedFeatures 内容策略命中的偏好规则（人可读标签），用于解释
	MatchedFeatures []string

	// Explanations 解释阶段填充的完整解释列表；Reason 为首条（或兜底文案）
	Explanations []string
	Reason       string

	Labels map[string]utils.Label
}

// NewCandidate 创建一个候选。n 可以为 nil（如协同信号指向目录外的社区），
// 融合前会按目录过滤。
func NewCandidate(id string, n *Neighborhood) *Candidate {
	return &Candidate{
		ID:           id,
		Neighborhood: n,
		Labels:       make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// HasAlgorithm 判断融合后的候选是否包含指定策略的贡献。
func (c *Candidate) HasAlgorithm(algorithm string) bool {
	for _, a := range c.Algorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}
