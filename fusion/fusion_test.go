package fusion

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/hoodkit/core"
)

func cand(id, algorithm string, score, confidence float64) *core.Candidate {
	c := core.NewCandidate(id, &core.Neighborhood{ID: id})
	c.Algorithm = algorithm
	c.Score = score
	c.Confidence = confidence
	return c
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestFusionProcess 测试加权融合
func TestFusionProcess(t *testing.T) {
	n := &Node{}

	t.Run("按策略权重加权求和", func(t *testing.T) {
		in := []*core.Candidate{
			cand("n1", core.AlgorithmCollaborative, 5, 0.5),
			cand("n1", core.AlgorithmContentBased, 40, 0.4),
			cand("n1", core.AlgorithmHybrid, 10, 0.2),
			cand("n1", core.AlgorithmPopularity, 60, 0.6),
		}
		out, err := n.Process(context.Background(), nil, in)
		if err != nil {
			t.Fatalf("融合失败: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("候选数 = %d, want 1", len(out))
		}

		want := 0.4*5 + 0.3*40 + 0.2*10 + 0.1*60
		if !almostEqual(out[0].Score, want) {
			t.Errorf("Score = %v, want %v", out[0].Score, want)
		}
		// 置信度取固定顺序下第一个贡献策略（collaborative）
		if out[0].Confidence != 0.5 {
			t.Errorf("Confidence = %v, want 0.5", out[0].Confidence)
		}
		if len(out[0].Algorithms) != 4 {
			t.Errorf("Algorithms = %v, want 4 个", out[0].Algorithms)
		}
		if out[0].Algorithms[0] != core.AlgorithmCollaborative {
			t.Errorf("Algorithms[0] = %q, want collaborative", out[0].Algorithms[0])
		}
	})

	t.Run("缺失策略按 0 分计", func(t *testing.T) {
		in := []*core.Candidate{cand("n1", core.AlgorithmContentBased, 50, 0.5)}
		out, err := n.Process(context.Background(), nil, in)
		if err != nil {
			t.Fatalf("融合失败: %v", err)
		}
		if !almostEqual(out[0].Score, 0.3*50) {
			t.Errorf("Score = %v, want %v", out[0].Score, 0.3*50)
		}
		if out[0].Confidence != 0.5 {
			t.Errorf("Confidence = %v, want 0.5", out[0].Confidence)
		}
	})

	t.Run("打乱输入顺序不改变融合分", func(t *testing.T) {
		forward := []*core.Candidate{
			cand("n1", core.AlgorithmContentBased, 40, 0.4),
			cand("n1", core.AlgorithmPopularity, 60, 0.6),
		}
		backward := []*core.Candidate{
			cand("n1", core.AlgorithmPopularity, 60, 0.6),
			cand("n1", core.AlgorithmContentBased, 40, 0.4),
		}

		a, err := n.Process(context.Background(), nil, forward)
		if err != nil {
			t.Fatal(err)
		}
		b, err := n.Process(context.Background(), nil, backward)
		if err != nil {
			t.Fatal(err)
		}
		if !almostEqual(a[0].Score, b[0].Score) {
			t.Errorf("融合分应与输入顺序无关: %v != %v", a[0].Score, b[0].Score)
		}
		// 置信度也按固定策略顺序取，与输入顺序无关
		if a[0].Confidence != b[0].Confidence {
			t.Errorf("置信度应与输入顺序无关: %v != %v", a[0].Confidence, b[0].Confidence)
		}
	})

	t.Run("分数降序同分按 ID 升序", func(t *testing.T) {
		in := []*core.Candidate{
			cand("b", core.AlgorithmPopularity, 10, 0.1),
			cand("a", core.AlgorithmPopularity, 10, 0.1),
			cand("c", core.AlgorithmPopularity, 99, 0.9),
		}
		out, err := n.Process(context.Background(), nil, in)
		if err != nil {
			t.Fatal(err)
		}
		wantOrder := []string{"c", "a", "b"}
		for i, id := range wantOrder {
			if out[i].ID != id {
				t.Errorf("out[%d] = %s, want %s", i, out[i].ID, id)
			}
		}
	})

	t.Run("命中特征做并集", func(t *testing.T) {
		c1 := cand("n1", core.AlgorithmContentBased, 40, 0.4)
		c1.MatchedFeatures = []string{"Budget Match"}
		c2 := cand("n1", core.AlgorithmHybrid, 10, 0.2)

		out, err := n.Process(context.Background(), nil, []*core.Candidate{c1, c2})
		if err != nil {
			t.Fatal(err)
		}
		if len(out[0].MatchedFeatures) != 1 || out[0].MatchedFeatures[0] != "Budget Match" {
			t.Errorf("MatchedFeatures = %v", out[0].MatchedFeatures)
		}
	})

	t.Run("非法权重配置报错", func(t *testing.T) {
		cfg := core.DefaultEngineConfig()
		cfg.StrategyWeights = map[string]float64{core.AlgorithmPopularity: 0.5}
		bad := &Node{Config: cfg}

		_, err := bad.Process(context.Background(), nil, []*core.Candidate{cand("n1", core.AlgorithmPopularity, 1, 0.1)})
		if err == nil {
			t.Fatal("期望配置校验失败")
		}
	})

	t.Run("空输入返回空", func(t *testing.T) {
		out, err := n.Process(context.Background(), nil, nil)
		if err != nil || out != nil {
			t.Errorf("out = %v, err = %v", out, err)
		}
	})
}
