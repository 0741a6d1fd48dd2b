package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Engine 错误：用户不存在、数据源不可用
//   - Strategy 错误：单个策略内部失败（可降级）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "engine", "strategy"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 数据源不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore    = "store"    // 存储模块
	ModuleEngine   = "engine"   // 推荐引擎
	ModuleStrategy = "strategy" // 打分策略
	ModuleFeature  = "feature"  // 特征模块
)

// 预定义错误
var (
	// ErrUserNotFound 表示请求的用户不存在。
	// 这是致命错误：没有偏好画像就无法推荐，必须透传给调用方。
	ErrUserNotFound = NewDomainError(ModuleEngine, ErrorCodeNotFound, "engine: user not found")

	// ErrNeighborhoodNotFound 表示请求的社区不存在（或未进入推荐结果）。
	ErrNeighborhoodNotFound = NewDomainError(ModuleEngine, ErrorCodeNotFound, "engine: neighborhood not found")

	// ErrDataAccess 表示目录或用户群数据获取失败。
	// 没有候选集就没有推荐，必须透传给调用方。
	ErrDataAccess = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: data access failed")
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}
