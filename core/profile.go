package core

// 偏好维度的默认值。只在 Hydrate 时解析一次，之后所有策略直接读字段，
// 不再各自兜底（避免默认值散落在每个打分函数里）。
const (
	DefaultSafetyImportance          = 5
	DefaultNightlifeImportance       = 3
	DefaultGreenSpaceImportance      = 4
	DefaultSchoolQualityImportance   = 3
	DefaultPublicTransportImportance = 4

	DefaultBudgetMin = 10000.0
	DefaultBudgetMax = 50000.0
)

// 生活方式枚举（闭集）
const (
	LifestyleTraditional = "traditional"
	LifestyleModern      = "modern"
	LifestyleCultural    = "cultural"
	LifestyleActive      = "active"
	LifestyleSocial      = "social"
)

// 工作方式枚举（闭集）
const (
	WorkStyleRemote    = "remote"
	WorkStyleHybrid    = "hybrid"
	WorkStyleOffice    = "office"
	WorkStyleFreelance = "freelance"
)

// 家庭状态枚举（闭集）
const (
	FamilySingle  = "single"
	FamilyCouple  = "couple"
	FamilyNuclear = "nuclear-family"
	FamilyJoint   = "joint-family"
)

// PreferenceProfile 是用户住区偏好的强类型画像。
//
// 一句话定义：偏好画像 = 推荐 Pipeline 的"全局上下文 + 特征源 + 决策信号"
//
// 设计要点：
//  维度          作用
//  预算区间      内容打分核心 / 相似度特征
//  重要度(1..10) 内容打分权重调制 / 相似度特征
//  生活方式标签  设施关键词匹配
//  收藏列表      协同信号 / 隐式交互合成
//
// 默认值统一在 Hydrate 中解析，打分策略不做二次兜底。
type PreferenceProfile struct {
	UserID string

	// 静态属性（情境打分用）
	Age int

	// 预算区间，约定 BudgetMin <= BudgetMax
	BudgetMin float64
	BudgetMax float64

	// 五个偏好重要度，取值 1..10；0 表示未设置（Hydrate 填默认值）
	SafetyImportance          int
	NightlifeImportance       int
	GreenSpaceImportance      int
	SchoolQualityImportance   int
	PublicTransportImportance int

	// 闭集标签；空串表示未设置（对应打分规则不触发）
	Lifestyle    string
	WorkStyle    string
	FamilyStatus string

	// 收藏的社区 ID 集合（顺序无意义）
	FavoriteNeighborhoods []string
}

// Hydrate 解析默认值并返回补全后的画像副本，原画像不被修改。
// 所有打分策略假定输入画像已经过 Hydrate。
func (p *PreferenceProfile) Hydrate() *PreferenceProfile {
	out := *p

	if out.SafetyImportance == 0 {
		out.SafetyImportance = DefaultSafetyImportance
	}
	if out.NightlifeImportance == 0 {
		out.NightlifeImportance = DefaultNightlifeImportance
	}
	if out.GreenSpaceImportance == 0 {
		out.GreenSpaceImportance = DefaultGreenSpaceImportance
	}
	if out.SchoolQualityImportance == 0 {
		out.SchoolQualityImportance = DefaultSchoolQualityImportance
	}
	if out.PublicTransportImportance == 0 {
		out.PublicTransportImportance = DefaultPublicTransportImportance
	}
	if out.BudgetMin == 0 && out.BudgetMax == 0 {
		out.BudgetMin = DefaultBudgetMin
		out.BudgetMax = DefaultBudgetMax
	}
	if out.FavoriteNeighborhoods == nil {
		out.FavoriteNeighborhoods = []string{}
	}
	return &out
}

// BudgetMidpoint 返回预算区间中点，预算偏离惩罚以此为基准。
func (p *PreferenceProfile) BudgetMidpoint() float64 {
	return (p.BudgetMin + p.BudgetMax) / 2
}

// InBudget 判断租金是否落在预算区间内（闭区间）。
func (p *PreferenceProfile) InBudget(rent float64) bool {
	return rent >= p.BudgetMin && rent <= p.BudgetMax
}

// FeatureVector 返回固定 6 维的数值特征向量，用于用户间余弦相似度：
// [safety, nightlife, greenSpace, schoolQuality, publicTransport, budgetMax]。
// 取该画像 Hydrate 后的值；向量维度与顺序固定，两个画像可直接做点积。
func (p *PreferenceProfile) FeatureVector() []float64 {
	h := p.Hydrate()
	return []float64{
		float64(h.SafetyImportance),
		float64(h.NightlifeImportance),
		float64(h.GreenSpaceImportance),
		float64(h.SchoolQualityImportance),
		float64(h.PublicTransportImportance),
		h.BudgetMax,
	}
}

// HasFavorite 判断社区是否在收藏列表中。
func (p *PreferenceProfile) HasFavorite(neighborhoodID string) bool {
	for _, id := range p.FavoriteNeighborhoods {
		if id == neighborhoodID {
			return true
		}
	}
	return false
}
