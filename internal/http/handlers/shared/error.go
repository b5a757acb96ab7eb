package shared

import (
	"errors"

	"github.com/taazabazaar/internal/http/response"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "something went wrong, please try again"

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// ErrorCode 把业务错误映射为响应码
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return response.CodeOK
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrProductOutOfStock),
		errors.Is(err, service.ErrOrderStatusInvalid):
		return response.CodeBadRequest
	case errors.Is(err, service.ErrNotLoggedIn),
		errors.Is(err, service.ErrSessionNotFound):
		return response.CodeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return response.CodeForbidden
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return response.CodeNotFound
	case errors.Is(err, service.ErrOrderTransitionInvalid):
		return response.CodeConflict
	default:
		return response.CodeInternal
	}
}

// RespondError 按错误类型返回响应；未知错误只记录日志，对外返回通用提示。
func RespondError(c *gin.Context, err error) {
	code := ErrorCode(err)
	msg := internalErrorMessage
	if code != response.CodeInternal && err != nil {
		msg = err.Error()
	}
	appErr := response.WrapError(code, msg, err)
	if appErr.Internal() {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.ErrorFrom(c, appErr)
}

// RespondBadRequest 请求参数错误
func RespondBadRequest(c *gin.Context, msg string) {
	response.BadRequest(c, msg)
}
