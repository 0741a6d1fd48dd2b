package pipeline

import (
	"context"
	"testing"

	"github.com/rushteam/hoodkit/core"
)

type noopNode struct{ name string }

func (n *noopNode) Name() string { return n.name }
func (n *noopNode) Kind() Kind   { return KindReRank }
func (n *noopNode) Process(_ context.Context, _ *core.RecommendContext, candidates []*core.Candidate) ([]*core.Candidate, error) {
	return candidates, nil
}

// TestParseYAML 测试 YAML 配置解析与 Pipeline 构建
func TestParseYAML(t *testing.T) {
	data := []byte(`
pipeline:
  name: neighborhood-rec
  nodes:
    - type: score.fanout
      config:
        timeout: 3
    - type: rerank.topn
      config:
        n: 10
`)
	cfg, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if cfg.Pipeline.Name != "neighborhood-rec" {
		t.Errorf("Name = %q", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("节点数 = %d, want 2", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Type != "score.fanout" {
		t.Errorf("Nodes[0].Type = %q", cfg.Pipeline.Nodes[0].Type)
	}
	if n, ok := cfg.Pipeline.Nodes[1].Config["n"]; !ok || n != 10 {
		t.Errorf("Nodes[1].Config[n] = %v, want 10", n)
	}

	t.Run("BuildPipeline 使用注册的构建器", func(t *testing.T) {
		factory := NewNodeFactory()
		factory.Register("score.fanout", func(_ map[string]interface{}) (Node, error) {
			return &noopNode{name: "score.fanout"}, nil
		})
		factory.Register("rerank.topn", func(_ map[string]interface{}) (Node, error) {
			return &noopNode{name: "rerank.topn"}, nil
		})

		p, err := cfg.BuildPipeline(factory)
		if err != nil {
			t.Fatalf("构建失败: %v", err)
		}
		if len(p.Nodes) != 2 {
			t.Errorf("节点数 = %d, want 2", len(p.Nodes))
		}
	})

	t.Run("未注册的类型报错", func(t *testing.T) {
		_, err := cfg.BuildPipeline(NewNodeFactory())
		if err == nil {
			t.Fatal("期望构建失败")
		}
	})
}

// TestPipelineRun 测试节点按顺序串联
func TestPipelineRun(t *testing.T) {
	order := make([]string, 0, 2)
	mk := func(name string) Node {
		return &recordNode{name: name, order: &order}
	}
	p := &Pipeline{Nodes: []Node{mk("first"), mk("second")}}

	_, err := p.Run(context.Background(), &core.RecommendContext{UserID: "u1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("执行顺序 = %v", order)
	}
}

type recordNode struct {
	name  string
	order *[]string
}

func (n *recordNode) Name() string { return n.name }
func (n *recordNode) Kind() Kind   { return KindReRank }
func (n *recordNode) Process(_ context.Context, _ *core.RecommendContext, candidates []*core.Candidate) ([]*core.Candidate, error) {
	*n.order = append(*n.order, n.name)
	return candidates, nil
}
