package filter

import (
	"context"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Node 是过滤节点，可以组合多个过滤器。
// 任何一个过滤器返回 true，该候选就会被移除。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Filters) == 0 || len(candidates) == 0 {
		return candidates, nil
	}

	out := make([]*core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, c)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			c.PutLabel("filtered", utils.Label{Value: "true", Source: filterReason})
			continue
		}
		out = append(out, c)
	}

	return out, nil
}
