package xerr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CodeError 结构体用于在服务层传递带有业务码的错误
type CodeError struct {
	Code int   // 业务错误码
	Err  error // 被包裹的底层错误
}

func (e *CodeError) Error() string {
	return e.Err.Error()
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// NewCodeError 创建一个 CodeError 实例
func NewCodeError(code int, err error) *CodeError {
	return &CodeError{Code: code, Err: err}
}

// mapping 哨兵错误到 (HTTP 状态, 业务码) 的对照表, 按顺序匹配
var mapping = []struct {
	target error
	status int
	code   int
}{
	{ErrInvalidParams, http.StatusBadRequest, InvalidParamsCode},
	{ErrValidation, http.StatusBadRequest, ValidationFailedCode},
	{ErrUnauthorized, http.StatusUnauthorized, UnauthorizedCode},
	{ErrNotFound, http.StatusNotFound, NotFoundCode},
	{ErrInvalidTransition, http.StatusConflict, InvalidTransitionCode},
	{ErrStatusConflict, http.StatusConflict, StatusConflictCode},
	{ErrRestoreWindowExpired, http.StatusGone, RestoreWindowExpiredCode},
	{ErrUploadNotFound, http.StatusPreconditionFailed, UploadNotFoundCode},
	{ErrQuotaExceeded, http.StatusRequestEntityTooLarge, QuotaExceededCode},
	{ErrDatabase, http.StatusInternalServerError, DatabaseErrorCode},
	{ErrStorage, http.StatusBadGateway, StorageErrorCode},
	{ErrDispatch, http.StatusBadGateway, DispatchErrorCode},
}

// Lookup 返回错误对应的 HTTP 状态码和业务码
func Lookup(err error) (int, int) {
	var ce *CodeError
	if errors.As(err, &ce) {
		status, _ := lookupSentinel(ce.Err)
		return status, ce.Code
	}
	return lookupSentinel(err)
}

func lookupSentinel(err error) (int, int) {
	for _, m := range mapping {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, InternalServerErrorCode
}

// Response 是通用 JSON 响应结构
type Response struct {
	Code    int    `json:"code"`    // 业务状态码
	Message string `json:"message"` // 消息
	Data    any    `json:"data"`    // 响应数据
}

// JSONResponse 发送标准 JSON 响应
func JSONResponse(c *gin.Context, httpStatus int, code int, message string, data any) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success 成功响应
func Success(c *gin.Context, httpStatus int, message string, data any) {
	JSONResponse(c, httpStatus, SuccessCode, message, data)
}

// Error 错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	JSONResponse(c, httpStatus, code, message, nil)
}

// Fail 根据错误类型选择状态码并发送错误响应
// 5xx 错误不向客户端暴露内部细节
func Fail(c *gin.Context, err error) {
	status, code := Lookup(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && code != StorageErrorCode && code != DispatchErrorCode {
		message = "internal server error"
	}
	Error(c, status, code, message)
}

// AbortWithError 终止请求并发送错误响应
func AbortWithError(c *gin.Context, httpStatus int, code int, message string) {
	Error(c, httpStatus, code, message)
	c.Abort() // 终止后续的 HandlerFunc
}
