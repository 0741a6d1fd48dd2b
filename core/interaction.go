package core

import "time"

// 行为类型常量。行为权重表见 EngineConfig.BehaviorWeights。
const (
	InteractionView      = "view"
	InteractionFavorite  = "favorite"
	InteractionRating    = "rating"
	InteractionTimeSpent = "time_spent"
	InteractionSearch    = "search"
)

// Interaction 是一条用户-社区交互记录（隐式反馈）。
// Weight 是该条记录自身的权重（例如浏览时长折算），
// 混合策略的交互分 = Σ behaviorWeight(Type) * Weight。
type Interaction struct {
	NeighborhoodID string    `json:"neighborhood_id"`
	Type           string    `json:"type"`
	Weight         float64   `json:"weight"`
	Timestamp      time.Time `json:"timestamp"`
}

// SyntheticFavorites 把收藏列表合成为 favorite 型交互（权重 1）。
// 在没有真实交互日志时，收藏是唯一可用的隐式信号。
func SyntheticFavorites(favoriteIDs []string) []Interaction {
	if len(favoriteIDs) == 0 {
		return nil
	}
	now := time.Now()
	out := make([]Interaction, 0, len(favoriteIDs))
	for _, id := range favoriteIDs {
		out = append(out, Interaction{
			NeighborhoodID: id,
			Type:           InteractionFavorite,
			Weight:         1,
			Timestamp:      now,
		})
	}
	return out
}
