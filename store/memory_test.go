package store

import (
	"context"
	"testing"

	"github.com/rushteam/hoodkit/core"
)

// TestMemoryStoreUsers 测试用户群的读写与采样顺序
func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.AddUser(&core.PreferenceProfile{UserID: "u1", SafetyImportance: 9})
	m.AddUser(&core.PreferenceProfile{UserID: "u2"})
	m.AddUser(&core.PreferenceProfile{UserID: "u3"})

	t.Run("GetUser 返回副本", func(t *testing.T) {
		u, err := m.GetUser(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		u.SafetyImportance = 1

		again, _ := m.GetUser(ctx, "u1")
		if again.SafetyImportance != 9 {
			t.Error("修改返回值不应影响存储内容")
		}
	})

	t.Run("不存在的用户返回 ErrUserNotFound", func(t *testing.T) {
		_, err := m.GetUser(ctx, "ghost")
		if !core.IsNotFound(err) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("ListUsers 按插入顺序取前 limit", func(t *testing.T) {
		users, err := m.ListUsers(ctx, 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(users) != 2 || users[0].UserID != "u1" || users[1].UserID != "u2" {
			t.Errorf("users = %v", users)
		}
	})

	t.Run("覆盖写不改变插入顺序", func(t *testing.T) {
		m.AddUser(&core.PreferenceProfile{UserID: "u1", Age: 40})
		users, _ := m.ListUsers(ctx, 1)
		if users[0].UserID != "u1" || users[0].Age != 40 {
			t.Errorf("users[0] = %+v", users[0])
		}
	})

	t.Run("收藏写入幂等", func(t *testing.T) {
		if err := m.AddFavorite(ctx, "u2", "n1"); err != nil {
			t.Fatal(err)
		}
		if err := m.AddFavorite(ctx, "u2", "n1"); err != nil {
			t.Fatal(err)
		}
		favs, _ := m.GetFavorites(ctx, "u2")
		if len(favs) != 1 || favs[0] != "n1" {
			t.Errorf("favs = %v, want [n1]", favs)
		}
	})
}

// TestMemoryStoreCatalog 测试社区目录与评分聚合
func TestMemoryStoreCatalog(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	m.AddNeighborhood(&core.Neighborhood{ID: "n1", Name: "Bandra", City: "Mumbai"})

	t.Run("评分聚合维护滚动均值", func(t *testing.T) {
		if err := m.AddRating(ctx, "n1", 4); err != nil {
			t.Fatal(err)
		}
		if err := m.AddRating(ctx, "n1", 5); err != nil {
			t.Fatal(err)
		}
		n, _ := m.GetNeighborhood(ctx, "n1")
		if n.NumRatings != 2 || n.AverageRating != 4.5 {
			t.Errorf("聚合 = (%v, %d), want (4.5, 2)", n.AverageRating, n.NumRatings)
		}
	})

	t.Run("不存在的社区返回 ErrNeighborhoodNotFound", func(t *testing.T) {
		if err := m.AddRating(ctx, "ghost", 5); !core.IsNotFound(err) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("ListNeighborhoods 返回副本", func(t *testing.T) {
		list, _ := m.ListNeighborhoods(ctx)
		list[0].Name = "mutated"
		n, _ := m.GetNeighborhood(ctx, "n1")
		if n.Name != "Bandra" {
			t.Error("修改返回值不应影响存储内容")
		}
	})
}

// TestMemoryKV 测试内存 KV 的 zset 与 hash 操作
func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	t.Run("Get 不存在的 key 返回 ErrStoreNotFound", func(t *testing.T) {
		_, err := kv.Get(ctx, "missing")
		if !core.IsStoreNotFound(err) {
			t.Errorf("err = %v, want ErrStoreNotFound", err)
		}
	})

	t.Run("ZRange 按 score 降序", func(t *testing.T) {
		kv.ZAdd(ctx, "rank", 1, "low")
		kv.ZAdd(ctx, "rank", 3, "high")
		kv.ZAdd(ctx, "rank", 2, "mid")

		members, err := kv.ZRange(ctx, "rank", 0, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 2 || members[0] != "high" || members[1] != "mid" {
			t.Errorf("members = %v, want [high mid]", members)
		}
	})

	t.Run("hash 读写", func(t *testing.T) {
		kv.HSet(ctx, "h", "f1", []byte("v1"))
		v, err := kv.HGet(ctx, "h", "f1")
		if err != nil || string(v) != "v1" {
			t.Errorf("HGet = %q, %v", v, err)
		}
		all, _ := kv.HGetAll(ctx, "h")
		if len(all) != 1 {
			t.Errorf("HGetAll = %v", all)
		}
	})
}

// TestKVInteractionLog 测试 KV 交互日志与热门榜累加
func TestKVInteractionLog(t *testing.T) {
	ctx := context.Background()
	log := NewKVInteractionLog(NewMemoryKV(), 0, nil)

	t.Run("无记录返回空", func(t *testing.T) {
		ins, err := log.GetInteractions(ctx, "u1")
		if err != nil || ins != nil {
			t.Errorf("ins = %v, err = %v", ins, err)
		}
	})

	t.Run("追加并回读", func(t *testing.T) {
		if err := log.AddInteraction(ctx, "u1", core.Interaction{
			NeighborhoodID: "n1", Type: core.InteractionView, Weight: 1,
		}); err != nil {
			t.Fatal(err)
		}
		if err := log.AddInteraction(ctx, "u1", core.Interaction{
			NeighborhoodID: "n1", Type: core.InteractionFavorite, Weight: 1,
		}); err != nil {
			t.Fatal(err)
		}

		ins, err := log.GetInteractions(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(ins) != 2 || ins[0].Type != core.InteractionView {
			t.Errorf("ins = %v", ins)
		}
	})

	t.Run("热门榜按行为权重累加", func(t *testing.T) {
		// view(1) + favorite(3) = 4
		ids, err := log.TrendingIDs(ctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 1 || ids[0] != "n1" {
			t.Errorf("ids = %v, want [n1]", ids)
		}
	})
}
