package pipeline

import (
	"context"

	"github.com/rushteam/hoodkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindScore       Kind = "score"       // 打分阶段：四个策略并行产出候选
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindFusion      Kind = "fusion"      // 融合阶段：多策略分数加权合并
	KindReRank      Kind = "rerank"      // 重排阶段：多样性/截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：解释与最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 candidates -> 输出 candidates"的形态，
// 方便打分生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		candidates []*core.Candidate,
	) ([]*core.Candidate, error)
}

// NodeBuilder 根据配置构建 Node，供配置驱动的 Pipeline 使用。
type NodeBuilder = func(map[string]interface{}) (Node, error)
