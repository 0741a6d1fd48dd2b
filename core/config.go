package core

import "math"

// 偏好维度名常量，PreferenceRule 与画像重要度字段以此对应。
const (
	DimensionSafety          = "safety"
	DimensionNightlife       = "nightlife"
	DimensionGreenSpace      = "greenSpace"
	DimensionSchoolQuality   = "schoolQuality"
	DimensionPublicTransport = "publicTransport"
)

// PreferenceRule 描述一个偏好维度如何映射到社区属性：
//   - Field 非空：数值字段匹配，加分 = weight * fieldValue * FieldScale
//   - Amenities 非空：设施关键词匹配，命中任意一个加 weight * AmenityScale
//
// 其中 weight = BaseWeight * (用户重要度 / 10)。
type PreferenceRule struct {
	Dimension  string
	BaseWeight float64
	Field      string   // "safetyScore" / "lifestyleScore" / "transportScore"，空表示设施匹配
	Amenities  []string // 设施关键词列表，Field 为空时生效
}

// EngineConfig 是推荐引擎的全部权重与阈值，构造时注入、运行期只读。
// 所有字段都有默认值（DefaultEngineConfig / normalize），
// 测试可以替换任意权重而不触碰全局状态。
type EngineConfig struct {
	// StrategyWeights 四个策略的融合权重，key 为 Algorithm* 常量，和必须为 1。
	StrategyWeights map[string]float64

	// BehaviorWeights 行为类型权重，key 为 Interaction* 常量；未知类型按 1 计。
	BehaviorWeights map[string]float64

	// PreferenceRules 五个偏好维度的匹配规则（内容策略用）。
	PreferenceRules []PreferenceRule

	// 内容策略的预算规则
	BudgetMatchBonus     float64 // 租金落在预算内的加分
	BudgetPenaltyDivisor float64 // 超预算惩罚 = |rent-mid| / divisor
	BudgetPenaltyCap     float64 // 惩罚上限

	// 内容策略的设施/数值匹配倍率
	AmenityScale       float64 // 设施命中加分倍率
	FieldScale         float64 // 数值字段加分倍率
	HighFieldThreshold float64 // 数值字段达到该值记一条 "High xx" 特征

	// 标签匹配表与加分
	LifestyleAmenities map[string][]string
	WorkStyleAmenities map[string][]string
	FamilyFeatures     map[string][]string
	LifestyleBonus     float64 // 每个命中设施
	WorkStyleBonus     float64 // 每个命中设施
	FamilySafetyBonus  float64 // Safety 伪特征（safetyScore 达标）
	FamilyAmenityBonus float64 // 每个命中设施
	FamilySafetyScore  float64 // Safety 伪特征的达标线

	// 协同策略
	SimilarUserThreshold float64 // 相似度阈值
	TopKSimilarUsers     int     // 保留的相似用户数
	UserSampleLimit      int     // 用户群采样上限（按存储返回顺序取前 N，见 DESIGN.md）

	// 混合策略
	InteractionBlend float64 // 交互分权重
	PreferenceBlend  float64 // 偏好分权重
	ContextBlend     float64 // 情境分权重
	ContextBonus     float64 // 情境命中加分
	YoungAgeLimit    int     // 年龄分界：小于为"年轻"
	ContextScoreBar  float64 // 情境判断的分数门槛

	// 热度策略权重
	PopularityRatingWeight     float64
	PopularityNumRatingsWeight float64
	PopularitySafetyWeight     float64
	PopularityLifestyleWeight  float64
	PopularityTransportWeight  float64

	// 各策略置信度 = min(score / divisor, 1)
	CollaborativeConfidenceDivisor float64
	ContentConfidenceDivisor       float64
	HybridConfidenceDivisor        float64
	PopularityConfidenceDivisor    float64

	// 多样性重排
	CityCap         int     // 同城市最多保留数
	PriceBucketCap  int     // 同价格档最多保留数
	PriceBucketSize float64 // 价格档宽度
	CityPenalty     float64 // 每个已有同城候选的扣分
	PricePenalty    float64 // 每个已有同档候选的扣分

	// 解释
	HighScoreThreshold float64 // finalScore 超过该值追加"强推荐"解释
	FallbackReason     string  // 无解释命中时的兜底文案

	// 引擎
	DefaultLimit int // 默认返回条数
	ExplainLimit int // Explain 重跑生成时的条数
}

// DefaultEngineConfig 返回与线上一致的默认配置。
func DefaultEngineConfig() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.normalize()
	return cfg
}

// normalize 为零值字段填默认值。引擎构造时调用一次，之后配置只读。
func (c *EngineConfig) normalize() {
	if c.StrategyWeights == nil {
		c.StrategyWeights = map[string]float64{
			AlgorithmCollaborative: 0.4,
			AlgorithmContentBased:  0.3,
			AlgorithmHybrid:        0.2,
			AlgorithmPopularity:    0.1,
		}
	}
	if c.BehaviorWeights == nil {
		c.BehaviorWeights = map[string]float64{
			InteractionView:      1,
			InteractionFavorite:  3,
			InteractionRating:    2,
			InteractionTimeSpent: 1.5,
			InteractionSearch:    0.5,
		}
	}
	if c.PreferenceRules == nil {
		c.PreferenceRules = []PreferenceRule{
			{Dimension: DimensionSafety, BaseWeight: 0.25, Field: "safetyScore"},
			{Dimension: DimensionNightlife, BaseWeight: 0.15, Field: "lifestyleScore"},
			{Dimension: DimensionGreenSpace, BaseWeight: 0.20, Amenities: []string{"Parks", "Gardens", "Green Spaces"}},
			{Dimension: DimensionSchoolQuality, BaseWeight: 0.15, Amenities: []string{"Schools", "International Schools", "Colleges"}},
			{Dimension: DimensionPublicTransport, BaseWeight: 0.25, Field: "transportScore"},
		}
	}
	if c.BudgetMatchBonus == 0 {
		c.BudgetMatchBonus = 20
	}
	if c.BudgetPenaltyDivisor == 0 {
		c.BudgetPenaltyDivisor = 10000
	}
	if c.BudgetPenaltyCap == 0 {
		c.BudgetPenaltyCap = 15
	}
	if c.AmenityScale == 0 {
		c.AmenityScale = 30
	}
	if c.FieldScale == 0 {
		c.FieldScale = 3
	}
	if c.HighFieldThreshold == 0 {
		c.HighFieldThreshold = 7
	}
	if c.LifestyleAmenities == nil {
		c.LifestyleAmenities = map[string][]string{
			LifestyleTraditional: {"Temples", "Markets", "Community Centers"},
			LifestyleModern:      {"Shopping Malls", "Restaurants", "Gyms"},
			LifestyleCultural:    {"Art Galleries", "Museums", "Cultural Centers"},
			LifestyleActive:      {"Parks", "Sports Complex", "Gyms"},
			LifestyleSocial:      {"Restaurants", "Cafes", "Community Centers"},
		}
	}
	if c.WorkStyleAmenities == nil {
		c.WorkStyleAmenities = map[string][]string{
			WorkStyleRemote:    {"Coworking Spaces", "Cafes", "High-Speed Internet"},
			WorkStyleHybrid:    {"Metro Access", "Coworking Spaces", "IT Parks"},
			WorkStyleOffice:    {"Metro Access", "Corporate Offices", "Business Districts"},
			WorkStyleFreelance: {"Coworking Spaces", "Cafes", "Libraries"},
		}
	}
	if c.FamilyFeatures == nil {
		c.FamilyFeatures = map[string][]string{
			FamilySingle:  {"Restaurants", "Gyms", "Entertainment"},
			FamilyCouple:  {"Restaurants", "Parks", "Shopping"},
			FamilyNuclear: {"Schools", "Parks", "Hospitals", "Safety"},
			FamilyJoint:   {"Schools", "Hospitals", "Community Centers", "Markets"},
		}
	}
	if c.LifestyleBonus == 0 {
		c.LifestyleBonus = 8
	}
	if c.WorkStyleBonus == 0 {
		c.WorkStyleBonus = 6
	}
	if c.FamilySafetyBonus == 0 {
		c.FamilySafetyBonus = 10
	}
	if c.FamilyAmenityBonus == 0 {
		c.FamilyAmenityBonus = 5
	}
	if c.FamilySafetyScore == 0 {
		c.FamilySafetyScore = 7
	}
	if c.SimilarUserThreshold == 0 {
		c.SimilarUserThreshold = 0.7
	}
	if c.TopKSimilarUsers == 0 {
		c.TopKSimilarUsers = 10
	}
	if c.UserSampleLimit == 0 {
		c.UserSampleLimit = 100
	}
	if c.InteractionBlend == 0 && c.PreferenceBlend == 0 && c.ContextBlend == 0 {
		c.InteractionBlend = 0.4
		c.PreferenceBlend = 0.4
		c.ContextBlend = 0.2
	}
	if c.ContextBonus == 0 {
		c.ContextBonus = 5
	}
	if c.YoungAgeLimit == 0 {
		c.YoungAgeLimit = 30
	}
	if c.ContextScoreBar == 0 {
		c.ContextScoreBar = 7
	}
	if c.PopularityRatingWeight == 0 {
		c.PopularityRatingWeight = 10
	}
	if c.PopularityNumRatingsWeight == 0 {
		c.PopularityNumRatingsWeight = 2
	}
	if c.PopularitySafetyWeight == 0 {
		c.PopularitySafetyWeight = 3
	}
	if c.PopularityLifestyleWeight == 0 {
		c.PopularityLifestyleWeight = 2
	}
	if c.PopularityTransportWeight == 0 {
		c.PopularityTransportWeight = 2
	}
	if c.CollaborativeConfidenceDivisor == 0 {
		c.CollaborativeConfidenceDivisor = 10
	}
	if c.ContentConfidenceDivisor == 0 {
		c.ContentConfidenceDivisor = 100
	}
	if c.HybridConfidenceDivisor == 0 {
		c.HybridConfidenceDivisor = 50
	}
	if c.PopularityConfidenceDivisor == 0 {
		c.PopularityConfidenceDivisor = 100
	}
	if c.CityCap == 0 {
		c.CityCap = 3
	}
	if c.PriceBucketCap == 0 {
		c.PriceBucketCap = 2
	}
	if c.PriceBucketSize == 0 {
		c.PriceBucketSize = 20000
	}
	if c.CityPenalty == 0 {
		c.CityPenalty = 0.1
	}
	if c.PricePenalty == 0 {
		c.PricePenalty = 0.05
	}
	if c.HighScoreThreshold == 0 {
		c.HighScoreThreshold = 80
	}
	if c.FallbackReason == "" {
		c.FallbackReason = "AI recommended based on multiple factors"
	}
	if c.DefaultLimit == 0 {
		c.DefaultLimit = 10
	}
	if c.ExplainLimit == 0 {
		c.ExplainLimit = 50
	}
}

// Normalized 返回填完默认值的配置副本，c 本身不被修改。
func (c *EngineConfig) Normalized() *EngineConfig {
	out := *c
	out.normalize()
	return &out
}

// Validate 校验配置的硬性约束：策略权重和为 1、混合权重和为 1。
func (c *EngineConfig) Validate() error {
	var sum float64
	for _, w := range c.StrategyWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: strategy weights must sum to 1.0")
	}
	blend := c.InteractionBlend + c.PreferenceBlend + c.ContextBlend
	if math.Abs(blend-1.0) > 1e-9 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: hybrid blend weights must sum to 1.0")
	}
	return nil
}

// StrategyWeight 返回指定策略的融合权重，未配置的策略权重为 0。
func (c *EngineConfig) StrategyWeight(algorithm string) float64 {
	return c.StrategyWeights[algorithm]
}

// BehaviorWeight 返回行为类型权重，未知类型按 1 计。
func (c *EngineConfig) BehaviorWeight(behaviorType string) float64 {
	if w, ok := c.BehaviorWeights[behaviorType]; ok {
		return w
	}
	return 1
}

// ImportanceOf 返回画像在指定偏好维度上的重要度（画像需已 Hydrate）。
func ImportanceOf(p *PreferenceProfile, dimension string) int {
	switch dimension {
	case DimensionSafety:
		return p.SafetyImportance
	case DimensionNightlife:
		return p.NightlifeImportance
	case DimensionGreenSpace:
		return p.GreenSpaceImportance
	case DimensionSchoolQuality:
		return p.SchoolQualityImportance
	case DimensionPublicTransport:
		return p.PublicTransportImportance
	default:
		return 0
	}
}

// FieldValue 返回社区在规则数值字段上的取值。
func (r *PreferenceRule) FieldValue(n *Neighborhood) float64 {
	switch r.Field {
	case "safetyScore":
		return n.SafetyScore
	case "lifestyleScore":
		return n.LifestyleScore
	case "transportScore":
		return n.TransportScore
	default:
		return 0
	}
}
