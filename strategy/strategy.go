package strategy

import (
	"context"
	"sort"

	"github.com/rushteam/hoodkit/core"
)

// Strategy 表示一个可复用的打分策略（协同/内容/混合/热度/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"：
// 对同一份目录独立打分，互不依赖，结果在融合阶段合并。
//
// 约定：
//   - 每个 (策略, 社区) 至多产出一个 Candidate
//   - 没有信号的社区直接缺席（不是 0 分），融合阶段按缺失=0 处理
//   - 数据访问失败时降级为空结果，不中断整个请求
type Strategy interface {
	Name() string
	Score(ctx context.Context, rctx *core.RecommendContext, catalog []*core.Neighborhood) ([]*core.Candidate, error)
}

// sortByScore 按分数降序排序，同分时按社区 ID 升序保证确定性。
func sortByScore(candidates []*core.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})
}

// catalogIndex 构建 ID → 社区的索引，用于把信号映射回目录。
func catalogIndex(catalog []*core.Neighborhood) map[string]*core.Neighborhood {
	idx := make(map[string]*core.Neighborhood, len(catalog))
	for _, n := range catalog {
		if n != nil {
			idx[n.ID] = n
		}
	}
	return idx
}

// engineConfig 返回策略持有的配置；未注入时使用默认配置。
func engineConfig(cfg *core.EngineConfig) *core.EngineConfig {
	if cfg != nil {
		return cfg
	}
	return core.DefaultEngineConfig()
}
