package core

import "time"

// Recommendation 是最终输出单元：社区 + 融合分 + 置信度 + 解释。
// 每个请求现算，不落盘。
type Recommendation struct {
	Neighborhood *Neighborhood `json:"neighborhood"`
	FinalScore   float64       `json:"final_score"`
	Confidence   float64       `json:"confidence"`

	// Algorithms 贡献过分数的策略标签
	Algorithms []string `json:"algorithms"`

	// MatchedFeatures 内容策略命中的偏好规则
	MatchedFeatures []string `json:"matched_features,omitempty"`

	// Explanations 按固定顺序生成的解释；Reason 为首条或兜底文案
	Explanations []string `json:"explanations"`
	Reason       string   `json:"reason"`
}

// Metadata 是整个响应的元信息。
type Metadata struct {
	Algorithm  string    `json:"algorithm"`  // 固定 "hybrid-ml"
	Confidence float64   `json:"confidence"` // 各候选置信度均值，[0,1]
	Diversity  float64   `json:"diversity"`  // (城市数/条数) * (价格档数/条数)
	Timestamp  time.Time `json:"timestamp"`
}

// Response 是一次推荐请求的完整结果。
type Response struct {
	Recommendations []*Recommendation `json:"recommendations"`
	Metadata        Metadata          `json:"metadata"`
}

// Options 是推荐请求的参数。
type Options struct {
	// Limit 返回条数上限；多样性重排可能使实际条数少于 Limit。
	// 0 表示使用 EngineConfig.DefaultLimit。
	Limit int

	// Type 请求类型（"all" 或分类名），透传给 Params
	Type string
}
