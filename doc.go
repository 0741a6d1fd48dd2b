// Package hoodkit 是一个社区推荐工具包（Neighborhood Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 所有推荐逻辑通过 Node 串联（Score → Fusion → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - Node 可扩展: 自定义 Node 即可插拔扩展（本地策略或在线特征均可）
package hoodkit

import "github.com/rushteam/hoodkit/pipeline"

// 轻量 facade：便于用户直接 import "hoodkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindScore       = pipeline.KindScore
	KindFilter      = pipeline.KindFilter
	KindFusion      = pipeline.KindFusion
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
