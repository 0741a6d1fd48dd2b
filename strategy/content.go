package strategy

import (
	"context"
	"math"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// ContentBased 是基于内容的打分策略（Content-Based Filtering）。
//
// 核心思想："用户声明了什么偏好，就推荐匹配这些偏好属性的社区"
//
// 算法流程：
//  1. 预算规则：租金落在区间内加分，偏离中点按距离惩罚（有上限）
//  2. 五个重要度维度：权重 = 基础权重 * (重要度/10)，
//     设施维度按关键词交集加分，数值维度按字段值加分
//  3. 生活方式/工作方式/家庭状态：各自的设施关键词表逐项加分
//  4. 总分下限为 0
//
// 工程特征：
//  - 实时性：好（只依赖画像与目录，无需其他用户）
//  - 冷启动：好（新用户只要填了偏好即可用）
//  - 可解释性：强（每条规则命中都产出人可读特征标签）
//
// 每条规则是纯函数 (画像, 社区) → (增量, 特征标签)，可独立单测。
type ContentBased struct {
	Config *core.EngineConfig
}

func (s *ContentBased) Name() string { return "strategy.content" }

func (s *ContentBased) Score(
	_ context.Context,
	rctx *core.RecommendContext,
	catalog []*core.Neighborhood,
) ([]*core.Candidate, error) {
	cfg := engineConfig(s.Config)
	profile := rctx.GetProfile()

	out := make([]*core.Candidate, 0, len(catalog))
	for _, n := range catalog {
		if n == nil {
			continue
		}

		var total float64
		var features []string
		for _, rule := range contentRules(cfg) {
			delta, matched := rule(profile, n)
			total += delta
			features = append(features, matched...)
		}

		// 分数下限为 0：惩罚不至于让候选变成负分
		score := math.Max(total, 0)

		c := core.NewCandidate(n.ID, n)
		c.Score = score
		c.Algorithm = core.AlgorithmContentBased
		c.Confidence = math.Min(score/cfg.ContentConfidenceDivisor, 1)
		c.MatchedFeatures = features
		c.PutLabel("strategy", utils.Label{Value: core.AlgorithmContentBased, Source: "strategy"})
		out = append(out, c)
	}

	sortByScore(out)
	return out, nil
}

// ContentRule 是一条内容打分规则：纯函数，返回分数增量与命中的特征标签。
type ContentRule func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string)

// contentRules 返回配置下的完整规则列表。
func contentRules(cfg *core.EngineConfig) []ContentRule {
	rules := []ContentRule{budgetRule(cfg)}
	for _, pr := range cfg.PreferenceRules {
		rules = append(rules, preferenceRule(cfg, pr))
	}
	rules = append(rules, lifestyleRule(cfg), workStyleRule(cfg), familyRule(cfg))
	return rules
}

// budgetRule：租金在预算内 +BudgetMatchBonus；
// 否则按与预算中点的距离惩罚，上限 BudgetPenaltyCap。
func budgetRule(cfg *core.EngineConfig) ContentRule {
	return func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string) {
		if p.InBudget(n.AverageRent) {
			return cfg.BudgetMatchBonus, []string{"Budget Match"}
		}
		deviation := math.Abs(n.AverageRent - p.BudgetMidpoint())
		penalty := math.Min(deviation/cfg.BudgetPenaltyDivisor, cfg.BudgetPenaltyCap)
		return -penalty, nil
	}
}

// preferenceRule：单个偏好维度的匹配规则。
// 权重 = 基础权重 * (重要度/10)；设施维度命中交集加 weight*AmenityScale，
// 数值维度加 weight*字段值*FieldScale，字段值达标时记一条 "High xx" 特征。
func preferenceRule(cfg *core.EngineConfig, pr core.PreferenceRule) ContentRule {
	return func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string) {
		importance := core.ImportanceOf(p, pr.Dimension)
		weight := pr.BaseWeight * (float64(importance) / 10)

		if len(pr.Amenities) > 0 {
			if n.HasAnyAmenity(pr.Amenities) {
				return weight * cfg.AmenityScale, []string{pr.Dimension + " Match"}
			}
			return 0, nil
		}

		value := pr.FieldValue(n)
		if value == 0 {
			return 0, nil
		}
		var features []string
		if value >= cfg.HighFieldThreshold {
			features = []string{"High " + pr.Field}
		}
		return weight * value * cfg.FieldScale, features
	}
}

// lifestyleRule：生活方式标签 → 设施关键词表，每个命中 +LifestyleBonus。
// 命中两个及以上时记 "Lifestyle Match" 特征。
func lifestyleRule(cfg *core.EngineConfig) ContentRule {
	return func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string) {
		if p.Lifestyle == "" {
			return 0, nil
		}
		score := float64(countAmenityMatches(n, cfg.LifestyleAmenities[p.Lifestyle])) * cfg.LifestyleBonus
		if score > 15 {
			return score, []string{"Lifestyle Match"}
		}
		return score, nil
	}
}

// workStyleRule：工作方式标签 → 设施关键词表，每个命中 +WorkStyleBonus。
func workStyleRule(cfg *core.EngineConfig) ContentRule {
	return func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string) {
		if p.WorkStyle == "" {
			return 0, nil
		}
		score := float64(countAmenityMatches(n, cfg.WorkStyleAmenities[p.WorkStyle])) * cfg.WorkStyleBonus
		if score > 10 {
			return score, []string{"Work Style Match"}
		}
		return score, nil
	}
}

// familyRule：家庭状态 → 特征表。"Safety" 是伪特征（safetyScore 达标 +FamilySafetyBonus），
// 其余按设施命中每个 +FamilyAmenityBonus。
func familyRule(cfg *core.EngineConfig) ContentRule {
	return func(p *core.PreferenceProfile, n *core.Neighborhood) (float64, []string) {
		if p.FamilyStatus == "" {
			return 0, nil
		}
		var score float64
		for _, feature := range cfg.FamilyFeatures[p.FamilyStatus] {
			if feature == "Safety" {
				if n.SafetyScore >= cfg.FamilySafetyScore {
					score += cfg.FamilySafetyBonus
				}
				continue
			}
			if n.HasAmenity(feature) {
				score += cfg.FamilyAmenityBonus
			}
		}
		if score > 10 {
			return score, []string{"Family Friendly"}
		}
		return score, nil
	}
}

func countAmenityMatches(n *core.Neighborhood, amenities []string) int {
	count := 0
	for _, a := range amenities {
		if n.HasAmenity(a) {
			count++
		}
	}
	return count
}
