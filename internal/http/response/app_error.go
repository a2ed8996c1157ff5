package response

import "errors"

// AppError 处理器错误包装，Key 为对应的 i18n 文案 key
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapKeyedError 包装错误并记录文案 key，便于日志按 key 聚合
func WrapKeyedError(code int, key, message string, err error) *AppError {
	appErr := WrapError(code, message, err)
	appErr.Key = key
	return appErr
}

// CodeOf 取错误链上的业务状态码，非 AppError 时返回 CodeInternal
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != CodeOK {
		return appErr.Code
	}
	return CodeInternal
}
