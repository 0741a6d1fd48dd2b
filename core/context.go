package core

import "github.com/rushteam/hoodkit/pkg/utils"

// RecommendContext 承载单次推荐请求的用户信息，贯穿整个 Pipeline 透传。
// 引擎在入口处构造：画像已 Hydrate、交互日志已加载（或由收藏合成），
// 各 Node 只读，不做二次兜底。
type RecommendContext struct {
	UserID string

	// Profile 是 Hydrate 后的强类型偏好画像
	Profile *PreferenceProfile

	// Interactions 是用户的交互日志；没有日志时由收藏合成 favorite 型交互
	Interactions []Interaction

	// Labels 是请求级标签，记录链路事件（策略降级、过滤原因等），
	// 可用于 explain / 观测
	Labels map[string]utils.Label

	// Params 请求级上下文参数（category、realtime_ 前缀的实时特征等）
	Params map[string]any
}

// GetProfile 返回画像；未设置时返回空画像的 Hydrate 结果，调用方无需判空。
func (rctx *RecommendContext) GetProfile() *PreferenceProfile {
	if rctx.Profile != nil {
		return rctx.Profile
	}
	empty := &PreferenceProfile{UserID: rctx.UserID}
	return empty.Hydrate()
}

// InteractionsFor 返回用户与指定社区的交互记录。
func (rctx *RecommendContext) InteractionsFor(neighborhoodID string) []Interaction {
	var out []Interaction
	for _, in := range rctx.Interactions {
		if in.NeighborhoodID == neighborhoodID {
			out = append(out, in)
		}
	}
	return out
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
