package core

import "context"

// UserStore 是用户群数据的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 实现：
//   - store.MemoryStore 实现此接口
//   - 业务方可基于自己的用户库实现
type UserStore interface {
	// GetUser 获取用户的偏好画像；不存在时返回 NOT_FOUND 领域错误
	GetUser(ctx context.Context, userID string) (*PreferenceProfile, error)

	// ListUsers 返回有界的用户样本（按存储返回顺序取前 limit 个），
	// 用于协同打分的相似用户查找
	ListUsers(ctx context.Context, limit int) ([]*PreferenceProfile, error)

	// GetFavorites 获取用户收藏的社区 ID 集合
	GetFavorites(ctx context.Context, userID string) ([]string, error)
}

// FavoriteWriter 是 UserStore 的可选扩展：支持写入收藏。
// 引擎在 TrackInteraction 收到 favorite 型交互时通过类型断言使用。
type FavoriteWriter interface {
	AddFavorite(ctx context.Context, userID, neighborhoodID string) error
}

// CatalogStore 是社区目录的领域接口。
// 目录对引擎只读，评分聚合是唯一的写路径。
type CatalogStore interface {
	// ListNeighborhoods 返回完整候选目录
	ListNeighborhoods(ctx context.Context) ([]*Neighborhood, error)

	// GetNeighborhood 按 ID 获取社区；不存在时返回 NOT_FOUND 领域错误
	GetNeighborhood(ctx context.Context, id string) (*Neighborhood, error)
}

// RatingWriter 是 CatalogStore 的可选扩展：并入一条评分并重算聚合。
type RatingWriter interface {
	AddRating(ctx context.Context, neighborhoodID string, rating float64) error
}

// InteractionStore 是交互日志的领域接口。
//
// 实现：
//   - store.MemoryStore 实现此接口
//   - store.KVInteractionLog 基于 KeyValueStore（如 Redis）实现此接口
type InteractionStore interface {
	// GetInteractions 获取用户的全部交互记录
	GetInteractions(ctx context.Context, userID string) ([]Interaction, error)

	// AddInteraction 追加一条交互记录
	AddInteraction(ctx context.Context, userID string, in Interaction) error
}
