package core

import "testing"

// TestDefaultEngineConfig 测试默认配置与线上权重一致
func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置应通过校验: %v", err)
	}
	if w := cfg.StrategyWeight(AlgorithmCollaborative); w != 0.4 {
		t.Errorf("collaborative 权重 = %v, want 0.4", w)
	}
	if w := cfg.StrategyWeight(AlgorithmPopularity); w != 0.1 {
		t.Errorf("popularity 权重 = %v, want 0.1", w)
	}
	if w := cfg.BehaviorWeight(InteractionFavorite); w != 3 {
		t.Errorf("favorite 行为权重 = %v, want 3", w)
	}
	if len(cfg.PreferenceRules) != 5 {
		t.Errorf("偏好规则数 = %d, want 5", len(cfg.PreferenceRules))
	}
}

// TestBehaviorWeightUnknown 未知行为类型按 1 计
func TestBehaviorWeightUnknown(t *testing.T) {
	cfg := DefaultEngineConfig()
	if w := cfg.BehaviorWeight("teleport"); w != 1 {
		t.Errorf("未知行为权重 = %v, want 1", w)
	}
}

// TestValidate 测试权重和硬性约束
func TestValidate(t *testing.T) {
	t.Run("策略权重和不为 1", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.StrategyWeights = map[string]float64{
			AlgorithmCollaborative: 0.5,
			AlgorithmContentBased:  0.5,
			AlgorithmHybrid:        0.5,
		}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("期望校验失败")
		}
		de := GetDomainError(err)
		if de == nil || de.Code != ErrorCodeInvalidInput {
			t.Errorf("期望 INVALID_INPUT 级 DomainError, got %v", err)
		}
	})

	t.Run("混合权重和不为 1", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.ContextBlend = 0.5
		if err := cfg.Validate(); err == nil {
			t.Fatal("期望校验失败")
		}
	})
}

// TestNormalizedDoesNotMutate Normalized 不应修改原配置
func TestNormalizedDoesNotMutate(t *testing.T) {
	cfg := &EngineConfig{}
	out := cfg.Normalized()

	if cfg.DefaultLimit != 0 {
		t.Error("Normalized 不应修改原配置")
	}
	if out.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", out.DefaultLimit)
	}
}

func TestImportanceOf(t *testing.T) {
	p := (&PreferenceProfile{SafetyImportance: 9}).Hydrate()

	if got := ImportanceOf(p, DimensionSafety); got != 9 {
		t.Errorf("safety 重要度 = %d, want 9", got)
	}
	if got := ImportanceOf(p, DimensionNightlife); got != DefaultNightlifeImportance {
		t.Errorf("nightlife 重要度 = %d, want 默认值 %d", got, DefaultNightlifeImportance)
	}
	if got := ImportanceOf(p, "unknown"); got != 0 {
		t.Errorf("未知维度重要度 = %d, want 0", got)
	}
}
