package pipeline

import (
	"context"

	"github.com/rushteam/hoodkit/core"
)

// Pipeline 是 hoodkit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 标准链路：score(fanout) → fusion → rerank.diversity → postprocess.explain → rerank.topn。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := candidates
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
