// Package feature 提供在线特征获取能力。
//
// 推荐引擎对交互日志的依赖是可选的：从特征平台（Feast）拉取的
// 用户行为统计会合成为用户级交互记录，叠加在交互日志或收藏
// 信号之上供 hybrid 策略消费。
package feature

import (
	"context"

	"github.com/rushteam/hoodkit/core"
)

// UserStats 是特征平台回传的用户行为统计。
// 各计数对应行为类型的累计次数，TimeSpent 为累计停留分钟数。
type UserStats struct {
	ViewCount     float64
	FavoriteCount float64
	SearchCount   float64
	TimeSpent     float64
}

// Service 是在线特征服务的领域接口。
// 实现方：FeastService（gRPC 在线特征）。
type Service interface {
	// UserStats 拉取单个用户的行为统计特征。
	// 用户无特征时返回零值统计而非错误。
	UserStats(ctx context.Context, userID string) (*UserStats, error)
	Close() error
}

// Interactions 把统计特征展开为合成交互记录。
// 计数落在 Weight 上，一类行为一条记录，零计数跳过。
// 合成记录不带社区 ID，作为用户级行为强度对所有候选生效，
// 与收藏合成的社区级信号叠加而非替代。
func (s *UserStats) Interactions() []core.Interaction {
	if s == nil {
		return nil
	}
	out := make([]core.Interaction, 0, 4)
	add := func(typ string, count float64) {
		if count > 0 {
			out = append(out, core.Interaction{Type: typ, Weight: count})
		}
	}
	add(core.InteractionView, s.ViewCount)
	add(core.InteractionFavorite, s.FavoriteCount)
	add(core.InteractionSearch, s.SearchCount)
	add(core.InteractionTimeSpent, s.TimeSpent)
	return out
}
