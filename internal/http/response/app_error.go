package response

// AppError 携带业务码的错误；Message 为对外提示，Err 仅用于日志
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError 创建不带底层错误的业务错误
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WrapError 包装底层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// Internal 是否为服务端错误（需要隐藏细节并记录日志）
func (e *AppError) Internal() bool {
	return e != nil && e.Code >= CodeInternal
}
