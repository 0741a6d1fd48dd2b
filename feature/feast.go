package feature

import (
	"context"
	"fmt"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// 用户行为统计在 Feast 中的特征引用（featureView:featureName）。
const (
	featUserEntity    = "user_id"
	featViewCount     = "user_stats:view_count"
	featFavoriteCount = "user_stats:favorite_count"
	featSearchCount   = "user_stats:search_count"
	featTimeSpent     = "user_stats:time_spent"
)

// FeastService 是基于官方 Feast Go SDK 的在线特征服务实现。
//
// 使用官方 SDK (github.com/feast-dev/feast/sdk/go) 提供的 gRPC 客户端。
//
// 工程特征：
//   - 实时性：优秀（gRPC 低延迟）
//   - 性能：高（二进制协议、连接复用）
//
// 通过接口抽象（Service），引擎侧可以替换为任意特征来源。
type FeastService struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string

	// Endpoint 服务端点（用于信息展示）
	Endpoint string

	// Timeout 单次拉取特征的超时时间，零值表示不限制
	Timeout time.Duration

	// authToken 静态 Token 认证，空值表示无认证
	authToken string
}

// FeastOption 是 FeastService 的配置选项。
type FeastOption func(*FeastService)

// WithTimeout 设置单次特征拉取的超时时间。
func WithTimeout(d time.Duration) FeastOption {
	return func(s *FeastService) { s.Timeout = d }
}

// WithStaticToken 使用静态 Token 认证连接 Feature Server。
func WithStaticToken(token string) FeastOption {
	return func(s *FeastService) { s.authToken = token }
}

// NewFeastService 创建一个 Feast 在线特征服务。
//
// 参数：
//   - host: Feast Feature Server 主机地址，例如 "localhost"
//   - port: gRPC 端口，0 时使用默认 6565
//   - project: 项目名称
func NewFeastService(host string, port int, project string, opts ...FeastOption) (*FeastService, error) {
	if port == 0 {
		port = 6565 // 默认 gRPC 端口
	}

	s := &FeastService{
		Project:  project,
		Endpoint: fmt.Sprintf("%s:%d", host, port),
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	var client *feastsdk.GrpcClient
	var err error
	if s.authToken != "" {
		credential := feastsdk.NewStaticCredential(s.authToken)
		security := feastsdk.SecurityConfig{
			EnableTLS:  false,
			Credential: credential,
		}
		client, err = feastsdk.NewSecureGrpcClient(host, port, security)
	} else {
		client, err = feastsdk.NewGrpcClient(host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("创建 Feast gRPC 客户端失败: %w", err)
	}

	s.client = client
	return s, nil
}

// UserStats 拉取单个用户的行为统计特征。
// Feature Server 中没有该用户时回传零值统计。
func (s *FeastService) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{featViewCount, featFavoriteCount, featSearchCount, featTimeSpent},
		Entities: []feastsdk.Row{
			{featUserEntity: feastsdk.StrVal(userID)},
		},
		Project: s.Project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feast get online features failed: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return &UserStats{}, nil
	}
	row := rows[0]

	return &UserStats{
		ViewCount:     numericValue(row[featViewCount]),
		FavoriteCount: numericValue(row[featFavoriteCount]),
		SearchCount:   numericValue(row[featSearchCount]),
		TimeSpent:     numericValue(row[featTimeSpent]),
	}, nil
}

// Close 关闭客户端连接。
// 官方 SDK 的连接由 gRPC 库管理，这里只释放引用。
func (s *FeastService) Close() error {
	s.client = nil
	return nil
}

// numericValue 从 SDK 的 proto Value 中提取数值，缺失时为 0。
func numericValue(v *feasttypes.Value) float64 {
	if v == nil {
		return 0
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val)
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val)
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal)
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal
	default:
		return 0
	}
}

// 确保 FeastService 实现了 Service 接口
var _ Service = (*FeastService)(nil)
