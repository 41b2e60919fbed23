package core

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装
//
// 使用场景：
//   - Table / Split 错误：INVALID_INPUT
//   - Metrics 错误：SHAPE_MISMATCH
//   - Model 错误：FIT_ERROR
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_INPUT", "FIT_ERROR"）
	Message string // 错误消息
	Module  string // 模块名称（如 "split", "metrics", "model"）
	Err     error  // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// IsDomainError 检查错误链中是否存在 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的第一个 DomainError，如果不存在则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
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
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效（表过小、列不存在、参数非法）
	ErrorCodeShapeMismatch = "SHAPE_MISMATCH" // 预测值与真实值长度不一致
	ErrorCodeFitError      = "FIT_ERROR"      // 回归器无法在给定配置下 fit / predict
)

// 模块名称常量
const (
	ModuleTable    = "table"
	ModuleSplit    = "split"
	ModuleMetrics  = "metrics"
	ModuleModel    = "model"
	ModuleSweep    = "sweep"
	ModuleRank     = "rank"
	ModuleStore    = "store"
	ModulePipeline = "pipeline"
	ModuleConfig   = "config"
)

// ErrInvalidInput 构造 INVALID_INPUT 错误。
func ErrInvalidInput(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeInvalidInput, module+": "+fmt.Sprintf(format, args...))
}

// ErrShapeMismatch 构造 SHAPE_MISMATCH 错误。
func ErrShapeMismatch(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeShapeMismatch, module+": "+fmt.Sprintf(format, args...))
}

// ErrFit 构造 FIT_ERROR 错误，供回归器实现使用。
// Sweeper 会把它包装成带 k / 特征子集的 FitError。
func ErrFit(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeFitError, module+": "+fmt.Sprintf(format, args...))
}

// FitError 表示某个 (特征子集, k) trial 无法 fit / predict。
// 它只影响单个 trial：Sweeper 记录后继续执行其余 trial。
type FitError struct {
	Label    string   // trial 所属标签（如 "3 best features" 或特征名）
	K        int      // 近邻数
	Features []string // 特征子集
	Err      error    // 回归器返回的原始错误
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fit %q (k=%d, features=[%s]): %v", e.Label, e.K, strings.Join(e.Features, ","), e.Err)
}

func (e *FitError) Unwrap() error { return e.Err }

// 通用错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsShapeMismatch 检查错误是否为 SHAPE_MISMATCH
func IsShapeMismatch(err error) bool { return hasCode(err, ErrorCodeShapeMismatch) }

// IsFitError 检查错误是否为 FitError，或回归器直接返回的 FIT_ERROR
func IsFitError(err error) bool {
	if err == nil {
		return false
	}
	var fitErr *FitError
	if errors.As(err, &fitErr) {
		return true
	}
	return hasCode(err, ErrorCodeFitError)
}
