// Package builders 在 init 中注册内置 Node 的配置构建器。
// 配置驱动场景下 import 本包以启用 score.fanout、fusion、
// rerank.diversity、rerank.topn、rerank.sortby、filter、
// postprocess.explain 的按配置构建。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/hoodkit/config"
	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/explain"
	"github.com/rushteam/hoodkit/filter"
	"github.com/rushteam/hoodkit/fusion"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/conv"
	"github.com/rushteam/hoodkit/rerank"
	"github.com/rushteam/hoodkit/strategy"
)

func init() {
	config.Register("score.fanout", BuildFanoutNode)
	config.Register("fusion", BuildFusionNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.sortby", BuildSortByNode)
	config.Register("filter", BuildFilterNode)
	config.Register("postprocess.explain", BuildExplainNode)
}

// BuildFanoutNode 构建多策略扇出节点。
// 支持的策略：content-based / hybrid / popularity。
// collaborative 依赖 UserStore，无法纯配置构建；社区目录（Catalog）
// 同样是运行期依赖，需要调用方在 BuildPipeline 之后注入。
func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	strategiesConfig, ok := cfg["strategies"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("strategies not found or invalid")
	}

	ec := core.DefaultEngineConfig()
	strategies := make([]strategy.Strategy, 0, len(strategiesConfig))
	for _, sc := range strategiesConfig {
		name, ok := sc.(string)
		if !ok {
			continue
		}
		switch name {
		case core.AlgorithmContentBased:
			strategies = append(strategies, &strategy.ContentBased{Config: ec})
		case core.AlgorithmHybrid:
			strategies = append(strategies, &strategy.Hybrid{Config: ec})
		case core.AlgorithmPopularity:
			strategies = append(strategies, &strategy.Popularity{Config: ec})
		case core.AlgorithmCollaborative:
			// collaborative 需 UserStore，暂未从配置构建
		default:
			return nil, fmt.Errorf("unknown strategy: %s", name)
		}
	}

	fanout := &strategy.Fanout{Strategies: strategies}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

// BuildFusionNode 构建策略融合节点，支持覆盖策略权重表。
func BuildFusionNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ec := core.DefaultEngineConfig()
	if weightsMap, ok := cfg["weights"].(map[string]interface{}); ok {
		ec.StrategyWeights = conv.MapToFloat64(weightsMap)
	}
	if err := ec.Validate(); err != nil {
		return nil, err
	}
	return &fusion.Node{Config: ec}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ec := core.DefaultEngineConfig()
	if n := conv.ConfigGetInt64(cfg, "city_cap", 0); n > 0 {
		ec.CityCap = int(n)
	}
	if n := conv.ConfigGetInt64(cfg, "price_bucket_cap", 0); n > 0 {
		ec.PriceBucketCap = int(n)
	}
	if v := conv.ConfigGetFloat(cfg, "price_bucket_size", 0); v > 0 {
		ec.PriceBucketSize = v
	}
	return &rerank.Diversity{Config: ec}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("n not found or invalid")
	}
	return &rerank.TopN{N: int(n)}, nil
}

func BuildSortByNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SortBy{
		Field:     conv.ConfigGet(cfg, "field", "score"),
		Ascending: conv.ConfigGet(cfg, "ascending", false),
	}, nil
}

// BuildFilterNode 构建过滤节点。
// 支持的过滤器类型：expr（CEL 表达式，true 表示保留）。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr not found")
			}
			filters = append(filters, &filter.ExprFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.Node{Filters: filters}, nil
}

func BuildExplainNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ec := core.DefaultEngineConfig()
	if v := conv.ConfigGetFloat(cfg, "high_score_threshold", 0); v > 0 {
		ec.HighScoreThreshold = v
	}
	if s := conv.ConfigGet(cfg, "fallback_reason", ""); s != "" {
		ec.FallbackReason = s
	}
	return &explain.Node{Config: ec}, nil
}
