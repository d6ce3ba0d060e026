package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型，携带错误代码与模块名
//   - 错误分级遵循引擎的传播策略：
//     单条脏数据就地跳过；结构性失败（矩阵建不出来）向上抛；
//     查询期 miss（未知 id）静默降级为兜底策略，永不暴露给用户
type DomainError struct {
	Code    string // 错误代码（如 "BUILD_FAILURE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "engine", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量。
// 注意：查询期 miss（未知用户/商品）不产生错误值——按约定直接降级为
// 热门或空列表，这里只枚举真正会被构造出来的代码。
const (
	// ErrorCodeModelUnavailable 因子模型无法拟合（用户数不足），协同策略降级。
	ErrorCodeModelUnavailable = "MODEL_UNAVAILABLE"
	// ErrorCodeMalformedInput 快照文件形状不对（JSON 解析失败），加载失败上抛。
	ErrorCodeMalformedInput = "MALFORMED_INPUT"
	// ErrorCodeBuildFailure 构建矩阵时的结构性失败，向调用方硬上抛。
	ErrorCodeBuildFailure = "BUILD_FAILURE"
	// ErrorCodeNotFound 缓存 key 不存在。
	ErrorCodeNotFound = "NOT_FOUND"
)

// 模块名称常量
const (
	ModuleEngine  = "engine"
	ModuleStore   = "store"
	ModuleText    = "text"
	ModuleFactor  = "factor"
	ModuleDataset = "dataset"
)

func isCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsModelUnavailable 检查错误是否为模型不可用。
func IsModelUnavailable(err error) bool { return isCode(err, ErrorCodeModelUnavailable) }

// IsMalformedInput 检查错误是否为脏数据快照。
func IsMalformedInput(err error) bool { return isCode(err, ErrorCodeMalformedInput) }

// IsBuildFailure 检查错误是否为构建期结构性失败。
func IsBuildFailure(err error) bool { return isCode(err, ErrorCodeBuildFailure) }
