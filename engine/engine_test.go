package engine

import (
	"context"
	"testing"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/feature"
	"github.com/rushteam/hoodkit/store"
)

// fakeFeatures 返回固定的用户行为统计
type fakeFeatures struct {
	stats map[string]*feature.UserStats
}

func (f *fakeFeatures) UserStats(_ context.Context, userID string) (*feature.UserStats, error) {
	if s, ok := f.stats[userID]; ok {
		return s, nil
	}
	return &feature.UserStats{}, nil
}

func (f *fakeFeatures) Close() error { return nil }

func newTestEngine() (*Engine, *store.MemoryStore) {
	m := store.NewMemoryStore()

	m.AddUser(&core.PreferenceProfile{
		UserID: "me", Age: 28,
		BudgetMin: 20000, BudgetMax: 40000,
		SafetyImportance: 8,
		Lifestyle:        core.LifestyleActive,
	})
	m.AddUser(&core.PreferenceProfile{
		UserID: "twin", Age: 27,
		BudgetMin: 20000, BudgetMax: 40000,
		SafetyImportance:      8,
		FavoriteNeighborhoods: []string{"bandra"},
	})

	m.AddNeighborhood(&core.Neighborhood{
		ID: "bandra", Name: "Bandra", City: "Mumbai",
		AverageRent: 35000, SafetyScore: 8, LifestyleScore: 9, TransportScore: 7,
		Amenities:     []string{"Parks", "Gyms", "Restaurants"},
		AverageRating: 4.5, NumRatings: 30,
	})
	m.AddNeighborhood(&core.Neighborhood{
		ID: "andheri", Name: "Andheri", City: "Mumbai",
		AverageRent: 28000, SafetyScore: 6, LifestyleScore: 7, TransportScore: 9,
		Amenities:     []string{"Metro Access", "Shopping Malls"},
		AverageRating: 4.0, NumRatings: 50,
	})
	m.AddNeighborhood(&core.Neighborhood{
		ID: "koramangala", Name: "Koramangala", City: "Bangalore",
		AverageRent: 45000, SafetyScore: 7, LifestyleScore: 8, TransportScore: 6,
		Amenities:     []string{"Cafes", "Parks", "Schools"},
		AverageRating: 4.2, NumRatings: 40,
	})
	m.AddNeighborhood(&core.Neighborhood{
		ID: "whitefield", Name: "Whitefield", City: "Bangalore",
		AverageRent: 60000, SafetyScore: 9, LifestyleScore: 5, TransportScore: 5,
		Amenities:     []string{"Schools", "Hospitals", "Parks"},
		AverageRating: 3.8, NumRatings: 25,
	})

	e := &Engine{Users: m, Catalog: m, Interactions: m}
	return e, m
}

// TestGenerateRecommendations 测试端到端生成
func TestGenerateRecommendations(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine()

	t.Run("零交互用户也有完整输出", func(t *testing.T) {
		resp, err := e.GenerateRecommendations(ctx, "me", core.Options{Limit: 3})
		if err != nil {
			t.Fatalf("生成失败: %v", err)
		}
		if len(resp.Recommendations) == 0 {
			t.Fatal("冷启动用户不应得到空推荐")
		}
		if len(resp.Recommendations) > 3 {
			t.Errorf("条数 = %d, 超过 limit", len(resp.Recommendations))
		}

		for _, r := range resp.Recommendations {
			if r.Neighborhood == nil {
				t.Fatal("推荐必须携带社区")
			}
			if r.Reason == "" {
				t.Error("Reason 不应为空（有兜底文案）")
			}
			if len(r.Algorithms) == 0 {
				t.Error("Algorithms 不应为空")
			}
		}

		if resp.Metadata.Algorithm != MetadataAlgorithm {
			t.Errorf("Metadata.Algorithm = %q", resp.Metadata.Algorithm)
		}
		if resp.Metadata.Confidence < 0 || resp.Metadata.Confidence > 1 {
			t.Errorf("Metadata.Confidence = %v, 超出 [0,1]", resp.Metadata.Confidence)
		}
		if resp.Metadata.Timestamp.IsZero() {
			t.Error("Metadata.Timestamp 未填充")
		}
	})

	t.Run("结果确定性", func(t *testing.T) {
		a, err := e.GenerateRecommendations(ctx, "me", core.Options{Limit: 5})
		if err != nil {
			t.Fatal(err)
		}
		b, err := e.GenerateRecommendations(ctx, "me", core.Options{Limit: 5})
		if err != nil {
			t.Fatal(err)
		}
		if len(a.Recommendations) != len(b.Recommendations) {
			t.Fatalf("两次生成条数不一致: %d != %d", len(a.Recommendations), len(b.Recommendations))
		}
		for i := range a.Recommendations {
			if a.Recommendations[i].Neighborhood.ID != b.Recommendations[i].Neighborhood.ID {
				t.Errorf("第 %d 位不一致: %s != %s", i,
					a.Recommendations[i].Neighborhood.ID, b.Recommendations[i].Neighborhood.ID)
			}
			if a.Recommendations[i].FinalScore != b.Recommendations[i].FinalScore {
				t.Errorf("第 %d 位分数不一致", i)
			}
		}
	})

	t.Run("用户不存在透传 NOT_FOUND", func(t *testing.T) {
		_, err := e.GenerateRecommendations(ctx, "ghost", core.Options{})
		if !core.IsNotFound(err) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("Limit 为 0 使用默认值", func(t *testing.T) {
		resp, err := e.GenerateRecommendations(ctx, "me", core.Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Recommendations) > 10 {
			t.Errorf("条数 = %d, 超过默认 limit", len(resp.Recommendations))
		}
	})
}

// TestFeatureSignal 测试在线特征信号与收藏合成的叠加关系
func TestFeatureSignal(t *testing.T) {
	ctx := context.Background()

	findScore := func(resp *core.Response, id string) (float64, bool) {
		for _, r := range resp.Recommendations {
			if r.Neighborhood.ID == id {
				return r.FinalScore, true
			}
		}
		return 0, false
	}

	// twin 没有交互日志，行为信号来自收藏合成（bandra）
	plain, _ := newTestEngine()
	before, err := plain.GenerateRecommendations(ctx, "twin", core.Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	rich, _ := newTestEngine()
	rich.Features = &fakeFeatures{stats: map[string]*feature.UserStats{
		"twin": {ViewCount: 5, FavoriteCount: 3},
	}}
	after, err := rich.GenerateRecommendations(ctx, "twin", core.Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("特征统计不抵消收藏合成", func(t *testing.T) {
		b0, ok0 := findScore(before, "bandra")
		b1, ok1 := findScore(after, "bandra")
		if !ok0 || !ok1 {
			t.Fatal("收藏社区应出现在两次推荐中")
		}
		if b1 < b0 {
			t.Errorf("配置特征服务后收藏社区分数下降: %v -> %v", b0, b1)
		}
	})

	t.Run("用户级统计抬升全体候选", func(t *testing.T) {
		for _, r := range before.Recommendations {
			s0 := r.FinalScore
			s1, ok := findScore(after, r.Neighborhood.ID)
			if !ok {
				continue
			}
			if s1 < s0 {
				t.Errorf("%s: 参与度信号不应降低分数: %v -> %v", r.Neighborhood.ID, s0, s1)
			}
		}
	})
}

// TestResponseMetadataWindow 测试整体指标在截断前的完整候选集上计算
func TestResponseMetadataWindow(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine()

	narrow, err := e.GenerateRecommendations(ctx, "me", core.Options{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(narrow.Recommendations) != 1 {
		t.Fatalf("条数 = %d, want 1", len(narrow.Recommendations))
	}
	// 单条候选的多样性恒为 1，整体指标应反映截断前的候选集
	if narrow.Metadata.Diversity >= 1 {
		t.Errorf("Diversity = %v, 未体现完整候选集", narrow.Metadata.Diversity)
	}

	wide, err := e.GenerateRecommendations(ctx, "me", core.Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if narrow.Metadata.Diversity != wide.Metadata.Diversity {
		t.Errorf("不同 limit 下整体多样性不一致: %v != %v",
			narrow.Metadata.Diversity, wide.Metadata.Diversity)
	}
	if narrow.Metadata.Confidence != wide.Metadata.Confidence {
		t.Errorf("不同 limit 下整体置信度不一致: %v != %v",
			narrow.Metadata.Confidence, wide.Metadata.Confidence)
	}
}

// TestExplain 测试单社区解释
func TestExplain(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine()

	t.Run("候选窗口内的社区可解释", func(t *testing.T) {
		rec, err := e.Explain(ctx, "me", "bandra")
		if err != nil {
			t.Fatalf("Explain 失败: %v", err)
		}
		if rec.Neighborhood.ID != "bandra" {
			t.Errorf("Neighborhood.ID = %s", rec.Neighborhood.ID)
		}
		if rec.Reason == "" {
			t.Error("Reason 不应为空")
		}
	})

	t.Run("不存在的社区返回 NOT_FOUND", func(t *testing.T) {
		_, err := e.Explain(ctx, "me", "atlantis")
		if !core.IsNotFound(err) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})
}

// TestCategoryRecommendations 测试分类榜单
func TestCategoryRecommendations(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine()

	t.Run("budget 榜按租金升序", func(t *testing.T) {
		resp, err := e.CategoryRecommendations(ctx, "me", CategoryBudget, 10)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(resp.Recommendations); i++ {
			prev := resp.Recommendations[i-1].Neighborhood.AverageRent
			cur := resp.Recommendations[i].Neighborhood.AverageRent
			if prev > cur {
				t.Errorf("budget 榜应按租金升序: %v > %v", prev, cur)
			}
		}
	})

	t.Run("safety 榜只保留达标社区", func(t *testing.T) {
		resp, err := e.CategoryRecommendations(ctx, "me", CategorySafety, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Recommendations) == 0 {
			t.Fatal("safety 榜不应为空")
		}
		for _, r := range resp.Recommendations {
			if r.Neighborhood.SafetyScore < 7 {
				t.Errorf("%s 安全分 %v 未达标", r.Neighborhood.ID, r.Neighborhood.SafetyScore)
			}
		}
	})

	t.Run("family 榜只保留有学校或公园的社区", func(t *testing.T) {
		resp, err := e.CategoryRecommendations(ctx, "me", CategoryFamily, 10)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range resp.Recommendations {
			n := r.Neighborhood
			if !n.HasAmenity("Schools") && !n.HasAmenity("Parks") {
				t.Errorf("%s 不满足 family 榜条件", n.ID)
			}
		}
	})

	t.Run("未知分类返回 INVALID_INPUT", func(t *testing.T) {
		_, err := e.CategoryRecommendations(ctx, "me", "luxury", 10)
		de := core.GetDomainError(err)
		if de == nil || de.Code != core.ErrorCodeInvalidInput {
			t.Errorf("err = %v, want INVALID_INPUT", err)
		}
	})
}

// TestTrackInteraction 测试行为记录的副作用
func TestTrackInteraction(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()

	t.Run("favorite 同步写收藏", func(t *testing.T) {
		err := e.TrackInteraction(ctx, "me", core.Interaction{
			NeighborhoodID: "bandra", Type: core.InteractionFavorite,
		})
		if err != nil {
			t.Fatal(err)
		}
		favs, _ := m.GetFavorites(ctx, "me")
		if len(favs) != 1 || favs[0] != "bandra" {
			t.Errorf("favs = %v, want [bandra]", favs)
		}
	})

	t.Run("rating 并入评分聚合", func(t *testing.T) {
		n0, _ := m.GetNeighborhood(ctx, "andheri")
		before := n0.NumRatings

		err := e.TrackInteraction(ctx, "me", core.Interaction{
			NeighborhoodID: "andheri", Type: core.InteractionRating, Weight: 5,
		})
		if err != nil {
			t.Fatal(err)
		}
		n, _ := m.GetNeighborhood(ctx, "andheri")
		if n.NumRatings != before+1 {
			t.Errorf("NumRatings = %d, want %d", n.NumRatings, before+1)
		}
	})

	t.Run("交互落入日志影响后续推荐", func(t *testing.T) {
		ins, err := m.GetInteractions(ctx, "me")
		if err != nil {
			t.Fatal(err)
		}
		if len(ins) != 2 {
			t.Errorf("日志条数 = %d, want 2", len(ins))
		}
		// 零权重默认补为 1
		if ins[0].Weight != 1 {
			t.Errorf("Weight = %v, want 1", ins[0].Weight)
		}
		if ins[0].Timestamp.IsZero() {
			t.Error("Timestamp 未填充")
		}
	})
}
