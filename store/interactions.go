package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/hoodkit/core"
)

// 交互日志的 KV key 前缀与热门榜 zset key。
const (
	interactionKeyPrefix = "hoodkit:interactions:"
	popularityZSetKey    = "hoodkit:popular"
)

// KVInteractionLog 把用户交互日志落在任意 KeyValueStore 上
// （Redis 或 MemoryKV），每个用户一个 key，value 为 JSON 数组。
// 写入交互时同步为交互社区的热门榜 zset 累加行为权重，
// ZRange(popularityZSetKey) 即可拿到按热度降序的社区 ID。
type KVInteractionLog struct {
	kv     core.KeyValueStore
	ttl    int // 秒，0 表示不过期
	config *core.EngineConfig
}

func NewKVInteractionLog(kv core.KeyValueStore, ttlSeconds int, cfg *core.EngineConfig) *KVInteractionLog {
	if cfg == nil {
		cfg = core.DefaultEngineConfig()
	}
	return &KVInteractionLog{kv: kv, ttl: ttlSeconds, config: cfg}
}

func (l *KVInteractionLog) GetInteractions(ctx context.Context, userID string) ([]core.Interaction, error) {
	raw, err := l.kv.Get(ctx, interactionKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ins []core.Interaction
	if err := json.Unmarshal(raw, &ins); err != nil {
		return nil, err
	}
	return ins, nil
}

func (l *KVInteractionLog) AddInteraction(ctx context.Context, userID string, in core.Interaction) error {
	ins, err := l.GetInteractions(ctx, userID)
	if err != nil {
		return err
	}
	ins = append(ins, in)

	raw, err := json.Marshal(ins)
	if err != nil {
		return err
	}
	if err := l.kv.Set(ctx, interactionKeyPrefix+userID, raw, l.ttl); err != nil {
		return err
	}

	// 热门榜累加：score 按行为权重加权
	weight := l.config.BehaviorWeight(in.Type) * in.Weight
	if weight <= 0 {
		return nil
	}
	prev, err := l.kv.ZScore(ctx, popularityZSetKey, in.NeighborhoodID)
	if err != nil && !core.IsStoreNotFound(err) {
		return err
	}
	return l.kv.ZAdd(ctx, popularityZSetKey, prev+weight, in.NeighborhoodID)
}

// TrendingIDs 返回按累计行为热度降序的前 n 个社区 ID。
func (l *KVInteractionLog) TrendingIDs(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return l.kv.ZRange(ctx, popularityZSetKey, 0, int64(n-1))
}

var _ core.InteractionStore = (*KVInteractionLog)(nil)
