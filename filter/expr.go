package filter

import (
	"context"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的过滤器。
// Keep 语义：表达式为 true 的候选保留，false 的被过滤——
// 表达式描述"想要什么"而不是"不要什么"，与分类榜单的配置习惯一致。
//
// 示例：
//
//	// safety 榜：只保留安全分达标的社区
//	f := &filter.ExprFilter{Expr: `item.safety_score >= 7.0`}
//
//	// family 榜：只保留有学校或公园的社区
//	f := &filter.ExprFilter{Expr: `"Schools" in item.amenities || "Parks" in item.amenities`}
type ExprFilter struct {
	Expr string
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(c, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
