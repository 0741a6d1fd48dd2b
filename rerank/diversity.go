package rerank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Diversity 是多样性重排节点：压制城市与价格档的过度聚集，避免推荐气泡。
//
// 算法：按融合排名顺序单遍扫描，维护 cityCount 与 priceBucketCount
// （价格档 = floor(租金 / PriceBucketSize)）：
//   - 仅当 cityCount < CityCap 且 bucketCount < PriceBucketCap 时接受
//   - 接受时先扣多样性惩罚 cityCount*CityPenalty + bucketCount*PricePenalty，
//     再递增计数
//   - 被拒绝的候选直接丢弃（不延后），因此输出可能少于请求条数
//
// 扫描后按惩罚后的分数重新排序（同分按 ID 升序）。
type Diversity struct {
	Config *core.EngineConfig
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	cfg := n.Config
	if cfg == nil {
		cfg = core.DefaultEngineConfig()
	}

	cityCount := make(map[string]int)
	bucketCount := make(map[int]int)
	out := make([]*core.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || c.Neighborhood == nil {
			continue
		}
		city := c.Neighborhood.City
		bucket := c.Neighborhood.PriceBucket(cfg.PriceBucketSize)

		if cityCount[city] >= cfg.CityCap || bucketCount[bucket] >= cfg.PriceBucketCap {
			continue
		}

		penalty := float64(cityCount[city])*cfg.CityPenalty +
			float64(bucketCount[bucket])*cfg.PricePenalty
		c.Score -= penalty
		if penalty > 0 {
			c.PutLabel("diversity_penalty", utils.Label{
				Value:  strconv.FormatFloat(penalty, 'f', -1, 64),
				Source: "rerank",
			})
		}

		cityCount[city]++
		bucketCount[bucket]++
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
