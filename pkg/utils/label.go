package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 候选在各阶段被打标（策略来源、命中的偏好特征、过滤原因），
// 最终的推荐解释完全由 Label 拼装而来。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // strategy / fusion / rerank / filter / explain ...
}

// MergeLabel 用于合并同名 Label，遵循"保留历史、可追踪"的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 例如候选先后被 collaborative 与 content 两个策略产出时，
// strategy 标签合并为 "collaborative|content"。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
