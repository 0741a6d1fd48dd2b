package rerank

import (
	"context"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
)

// TopN 是截断节点，保留排名前 N 的候选。
// 通常放在链路末端限制返回条数；多样性重排在前时，
// 实际条数可能已经少于 N——调用方不应假定 len(输出) == N。
type TopN struct {
	// N 要保留的候选数量；N <= 0 时不截断
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 || len(candidates) <= n.N {
		return candidates, nil
	}
	return candidates[:n.N], nil
}
