package store

import (
	"context"
	"sync"

	"github.com/rushteam/hoodkit/core"
)

// MemoryStore 是内存实现的数据层，承载用户群、社区目录与交互日志。
// 用于测试/开发/原型，进程重启后数据丢失。
//
// 实现的领域接口：
//   - core.UserStore / core.FavoriteWriter
//   - core.CatalogStore / core.RatingWriter
//   - core.InteractionStore
//
// 用户按插入顺序保存，ListUsers 返回前 limit 个——与线上数据层
// "按存储返回顺序取样"的行为一致（见 DESIGN.md 的采样说明）。
type MemoryStore struct {
	mu sync.RWMutex

	users     []*core.PreferenceProfile
	userIndex map[string]*core.PreferenceProfile

	neighborhoods []*core.Neighborhood
	catalogIndex  map[string]*core.Neighborhood

	interactions map[string][]core.Interaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		userIndex:    make(map[string]*core.PreferenceProfile),
		catalogIndex: make(map[string]*core.Neighborhood),
		interactions: make(map[string][]core.Interaction),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// ========== 用户群 ==========

// AddUser 写入（或覆盖）一个用户画像。
func (m *MemoryStore) AddUser(p *core.PreferenceProfile) {
	if p == nil || p.UserID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.userIndex[p.UserID]; ok {
		*old = *p
		return
	}
	cp := *p
	m.users = append(m.users, &cp)
	m.userIndex[p.UserID] = &cp
}

func (m *MemoryStore) GetUser(ctx context.Context, userID string) (*core.PreferenceProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.userIndex[userID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListUsers(ctx context.Context, limit int) ([]*core.PreferenceProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.users)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*core.PreferenceProfile, 0, n)
	for _, p := range m.users[:n] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.userIndex[userID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	out := make([]string, len(p.FavoriteNeighborhoods))
	copy(out, p.FavoriteNeighborhoods)
	return out, nil
}

// AddFavorite 把社区加入用户收藏（幂等）。
func (m *MemoryStore) AddFavorite(ctx context.Context, userID, neighborhoodID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.userIndex[userID]
	if !ok {
		return core.ErrUserNotFound
	}
	for _, id := range p.FavoriteNeighborhoods {
		if id == neighborhoodID {
			return nil
		}
	}
	p.FavoriteNeighborhoods = append(p.FavoriteNeighborhoods, neighborhoodID)
	return nil
}

// ========== 社区目录 ==========

// AddNeighborhood 写入（或覆盖）一个社区。
func (m *MemoryStore) AddNeighborhood(n *core.Neighborhood) {
	if n == nil || n.ID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.catalogIndex[n.ID]; ok {
		*old = *n
		return
	}
	cp := *n
	m.neighborhoods = append(m.neighborhoods, &cp)
	m.catalogIndex[n.ID] = &cp
}

func (m *MemoryStore) ListNeighborhoods(ctx context.Context) ([]*core.Neighborhood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Neighborhood, 0, len(m.neighborhoods))
	for _, n := range m.neighborhoods {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) GetNeighborhood(ctx context.Context, id string) (*core.Neighborhood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.catalogIndex[id]
	if !ok {
		return nil, core.ErrNeighborhoodNotFound
	}
	cp := *n
	return &cp, nil
}

// AddRating 并入一条评分并重算社区的滚动均值聚合。
func (m *MemoryStore) AddRating(ctx context.Context, neighborhoodID string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.catalogIndex[neighborhoodID]
	if !ok {
		return core.ErrNeighborhoodNotFound
	}
	n.AddRating(rating)
	return nil
}

// ========== 交互日志 ==========

func (m *MemoryStore) GetInteractions(ctx context.Context, userID string) ([]core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := m.interactions[userID]
	out := make([]core.Interaction, len(ins))
	copy(out, ins)
	return out, nil
}

func (m *MemoryStore) AddInteraction(ctx context.Context, userID string, in core.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.interactions[userID] = append(m.interactions[userID], in)
	return nil
}

// 接口实现断言
var (
	_ core.UserStore        = (*MemoryStore)(nil)
	_ core.FavoriteWriter   = (*MemoryStore)(nil)
	_ core.CatalogStore     = (*MemoryStore)(nil)
	_ core.RatingWriter     = (*MemoryStore)(nil)
	_ core.InteractionStore = (*MemoryStore)(nil)
)
