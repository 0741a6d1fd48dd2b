package core

// Neighborhood 是候选目录中的一个社区。
// 对推荐引擎只读，唯一的例外是评分聚合（AddRating 维护滚动均值）。
type Neighborhood struct {
	ID   string
	Name string
	City string

	// AverageRent 月租金（>= 0）
	AverageRent float64

	// 三个数值评分，取值 [0,10]
	SafetyScore    float64
	LifestyleScore float64
	TransportScore float64

	// Amenities 设施标签集合（"Parks"、"Metro Access" 等）
	Amenities []string

	// 评分聚合：AverageRating = mean(ratings) ∈ [0,5]，NumRatings = count(ratings)。
	// 二者只通过 AddRating 维护。
	AverageRating float64
	NumRatings    int
}

// HasAmenity 判断社区是否包含指定设施标签。
func (n *Neighborhood) HasAmenity(amenity string) bool {
	for _, a := range n.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}

// HasAnyAmenity 判断社区设施集合与给定关键词列表是否有交集。
func (n *Neighborhood) HasAnyAmenity(amenities []string) bool {
	for _, a := range amenities {
		if n.HasAmenity(a) {
			return true
		}
	}
	return false
}

// AddRating 并入一条新评分并重算滚动均值。
// 不保留单条评分，只维护 (均值, 条数) 聚合。
func (n *Neighborhood) AddRating(rating float64) {
	total := n.AverageRating*float64(n.NumRatings) + rating
	n.NumRatings++
	n.AverageRating = total / float64(n.NumRatings)
}

// PriceBucket 返回租金所在的价格档（每 20000 一档），用于多样性控制。
func (n *Neighborhood) PriceBucket(bucketSize float64) int {
	if bucketSize <= 0 {
		bucketSize = 20000
	}
	return int(n.AverageRent / bucketSize)
}
