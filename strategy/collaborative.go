package strategy

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Collaborative 是基于用户的协同打分策略（User-based Collaborative Filtering）。
//
// 核心思想："偏好相似的用户，喜欢相似的社区"
//
// 算法流程：
//  1. 取有界用户样本（前 UserSampleLimit 个，按存储返回顺序）
//  2. 画像余弦相似度 > 阈值的用户保留，取 TopK
//  3. 累加相似用户收藏的社区：score[id] += similarity
//
// 工程特征：
//  - 实时性：较差（用户样本遍历）
//  - 冷启动：差（无收藏的用户群没有信号）
//  - 可解释性：强（"相似用户也喜欢"）
//
// 没有协同信号的社区直接缺席输出（不是 0 分）。
// 数据访问失败时降级为空结果并在请求上打 strategy_error 标签，
// 协同信号只影响质量，不影响可用性。
type Collaborative struct {
	Users  core.UserStore
	Config *core.EngineConfig
}

func (s *Collaborative) Name() string { return "strategy.collaborative" }

func (s *Collaborative) Score(
	ctx context.Context,
	rctx *core.RecommendContext,
	catalog []*core.Neighborhood,
) ([]*core.Candidate, error) {
	if s.Users == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	cfg := engineConfig(s.Config)
	target := rctx.GetProfile()

	similar, err := s.similarUsers(ctx, rctx.UserID, target, cfg)
	if err != nil {
		// 相似用户查找失败：降级为空结果，不中断整个推荐
		rctx.PutLabel("strategy_error", utils.Label{Value: s.Name(), Source: "strategy"})
		return nil, nil
	}

	// 累加相似用户的收藏：score[id] += similarity
	scores := make(map[string]float64)
	for _, su := range similar {
		favorites, err := s.Users.GetFavorites(ctx, su.profile.UserID)
		if err != nil {
			continue
		}
		for _, id := range favorites {
			scores[id] += su.similarity
		}
	}

	// 映射回目录；目录外的 ID 丢弃
	idx := catalogIndex(catalog)
	out := make([]*core.Candidate, 0, len(scores))
	for id, score := range scores {
		n, ok := idx[id]
		if !ok {
			continue
		}
		c := core.NewCandidate(id, n)
		c.Score = score
		c.Algorithm = core.AlgorithmCollaborative
		c.Confidence = math.Min(score/cfg.CollaborativeConfidenceDivisor, 1)
		c.PutLabel("strategy", utils.Label{Value: core.AlgorithmCollaborative, Source: "strategy"})
		out = append(out, c)
	}

	sortByScore(out)
	return out, nil
}

type similarUser struct {
	profile    *core.PreferenceProfile
	similarity float64
}

// similarUsers 返回与目标用户相似度超过阈值的 TopK 用户（相似度降序，
// 同分按 UserID 升序保证确定性）。
func (s *Collaborative) similarUsers(
	ctx context.Context,
	targetID string,
	target *core.PreferenceProfile,
	cfg *core.EngineConfig,
) ([]similarUser, error) {
	users, err := s.Users.ListUsers(ctx, cfg.UserSampleLimit)
	if err != nil {
		return nil, err
	}

	similar := make([]similarUser, 0)
	for _, u := range users {
		if u == nil || u.UserID == targetID {
			continue
		}
		sim := Similarity(target, u)
		if sim > cfg.SimilarUserThreshold {
			similar = append(similar, similarUser{profile: u, similarity: sim})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		if similar[i].similarity != similar[j].similarity {
			return similar[i].similarity > similar[j].similarity
		}
		return similar[i].profile.UserID < similar[j].profile.UserID
	})

	if len(similar) > cfg.TopKSimilarUsers {
		similar = similar[:cfg.TopKSimilarUsers]
	}
	return similar, nil
}
