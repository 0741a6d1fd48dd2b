package strategy

import (
	"math"
	"testing"

	"github.com/rushteam/hoodkit/core"
)

// TestSimilarity 测试画像余弦相似度的基本性质
func TestSimilarity(t *testing.T) {
	a := &core.PreferenceProfile{UserID: "a", SafetyImportance: 8, BudgetMax: 40000}
	b := &core.PreferenceProfile{UserID: "b", SafetyImportance: 3, BudgetMax: 60000}

	t.Run("自相似度为 1", func(t *testing.T) {
		if sim := Similarity(a, a); math.Abs(sim-1) > 1e-9 {
			t.Errorf("sim(a,a) = %v, want 1", sim)
		}
	})

	t.Run("对称性", func(t *testing.T) {
		if Similarity(a, b) != Similarity(b, a) {
			t.Error("相似度应满足 sim(a,b) == sim(b,a)")
		}
	})

	t.Run("相同偏好的两个用户相似度为 1", func(t *testing.T) {
		c := &core.PreferenceProfile{UserID: "c", SafetyImportance: 8, BudgetMax: 40000}
		if sim := Similarity(a, c); math.Abs(sim-1) > 1e-9 {
			t.Errorf("sim = %v, want 1", sim)
		}
	})

	t.Run("nil 画像返回 0", func(t *testing.T) {
		if sim := Similarity(nil, b); sim != 0 {
			t.Errorf("sim(nil,b) = %v, want 0", sim)
		}
	})
}

// TestCosine 测试余弦相似度的边界情况
func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"零模向量", []float64{0, 0}, []float64{1, 2}, 0},
		{"维度不等", []float64{1}, []float64{1, 2}, 0},
		{"空向量", nil, nil, 0},
		{"同向", []float64{1, 2}, []float64{2, 4}, 1},
		{"正交", []float64{1, 0}, []float64{0, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) {
				t.Error("余弦相似度不应产生 NaN")
			}
		})
	}
}
