// Package dsl 提供基于 CEL 的候选表达式求值，用于配置驱动的过滤与分类榜单。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hoodkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选表达式解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.safety_score >= 7.0 / item.average_rent < 30000.0
//   - 标签：label.strategy.contains("collaborative")
//   - 集合："Schools" in item.amenities || "Parks" in item.amenities
//   - 逻辑：item.safety_score >= 7.0 && item.score > 10.0
//
// 示例（分类榜单的过滤条件）：
//   - safety 榜：`item.safety_score >= 7.0`
//   - family 榜：`"Schools" in item.amenities || "Parks" in item.amenities`
type Eval struct {
	candidate *core.Candidate
	rctx      *core.RecommendContext
	env       *cel.Env
}

// NewEval 创建一个新的表达式解释器。
func NewEval(candidate *core.Candidate, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		candidate: candidate,
		rctx:      rctx,
		env:       env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must evaluate to bool, got %T", out.Value())
	}
	return result, nil
}

// buildInput 把候选与请求上下文展开为 CEL 输入。
func (e *Eval) buildInput() map[string]interface{} {
	item := map[string]interface{}{}
	label := map[string]interface{}{}
	rctx := map[string]interface{}{}

	if c := e.candidate; c != nil {
		item["id"] = c.ID
		item["score"] = c.Score
		item["confidence"] = c.Confidence
		item["algorithms"] = c.Algorithms
		if n := c.Neighborhood; n != nil {
			item["city"] = n.City
			item["average_rent"] = n.AverageRent
			item["average_rating"] = n.AverageRating
			item["num_ratings"] = n.NumRatings
			item["safety_score"] = n.SafetyScore
			item["lifestyle_score"] = n.LifestyleScore
			item["transport_score"] = n.TransportScore
			item["amenities"] = n.Amenities
		}
		for k, v := range c.Labels {
			label[k] = v.Value
		}
	}

	if r := e.rctx; r != nil {
		rctx["user_id"] = r.UserID
		if r.Profile != nil {
			rctx["age"] = r.Profile.Age
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": label,
		"rctx":  rctx,
	}
}
