package strategy

import (
	"math"

	"github.com/rushteam/hoodkit/core"
)

// Similarity 计算两个偏好画像的余弦相似度。
//
// 特征向量为固定 6 维（五个重要度 + 预算上限，默认值在 Hydrate 解析）：
//
//	sim = dot(A,B) / (|A| * |B|)
//
// 性质：对称；sim(A,A) = 1（浮点误差内）；单调于特征一致性。
// 结果不保证落在 [0,1]（全正向量下为 (0,1]）。
// 任一向量模为 0 时返回 0，不产生 NaN。
func Similarity(a, b *core.PreferenceProfile) float64 {
	if a == nil || b == nil {
		return 0
	}
	return cosine(a.FeatureVector(), b.FeatureVector())
}

// cosine 计算两个等长向量的余弦相似度，零模向量返回 0。
func cosine(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	var dot, normX, normY float64
	for i := range x {
		dot += x[i] * y[i]
		normX += x[i] * x[i]
		normY += y[i] * y[i]
	}

	if normX == 0 || normY == 0 {
		return 0
	}
	return dot / (math.Sqrt(normX) * math.Sqrt(normY))
}
