package strategy

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hoodkit/core"
	"github.com/rushteam/hoodkit/pipeline"
	"github.com/rushteam/hoodkit/pkg/utils"
)

// Fanout 是一个打分 Node：先取一次完整目录，再并发执行所有策略，合并结果。
//
// 失败语义：
//   - 目录获取失败：整个请求失败（没有候选集就没有推荐），
//     返回 UNAVAILABLE 领域错误
//   - 单个策略失败/超时：该策略贡献空结果，并在请求上打 strategy_error
//     标签，其余策略不受影响——质量降级，可用性不降级
//
// 各策略间无数据依赖，融合对策略贡献可交换，执行顺序无关紧要。
type Fanout struct {
	Catalog    core.CatalogStore
	Strategies []Strategy

	// Timeout 每个策略的超时时间（0 表示不限制）
	Timeout time.Duration

	// MaxConcurrent 最大并发数（0 或负数表示无限制）
	MaxConcurrent int
}

func (n *Fanout) Name() string        { return "score.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Catalog == nil || len(n.Strategies) == 0 {
		return nil, nil
	}

	catalog, err := n.Catalog.ListNeighborhoods(ctx)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable,
			"store: list neighborhoods failed: "+err.Error())
	}

	var (
		mu    sync.Mutex
		all   []*core.Candidate
		eg, _ = errgroup.WithContext(ctx)
	)

	// 限流：使用 semaphore 控制并发数，0 或负数都视为不限制
	maxConcurrent := n.MaxConcurrent
	if maxConcurrent < 0 {
		maxConcurrent = 0
	}
	sem := make(chan struct{}, maxConcurrent)
	if maxConcurrent <= 0 {
		close(sem) // 无限制时直接关闭，避免阻塞
	}

	for _, s := range n.Strategies {
		s := s
		eg.Go(func() error {
			if maxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			scoreCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				scoreCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			candidates, err := s.Score(scoreCtx, rctx, catalog)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// 策略错误降级：空贡献 + 请求级标签，不中断其他策略
				rctx.PutLabel("strategy_error", utils.Label{Value: s.Name(), Source: "score"})
				return nil
			}
			all = append(all, candidates...)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}
