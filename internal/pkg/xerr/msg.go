package xerr

import "errors"

// 每个哨兵错误代表一种错误类型, 服务层通过 fmt.Errorf("...: %w", ErrXxx) 附加上下文
var (
	ErrInvalidParams        = errors.New("invalid request parameters")
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrStatusConflict       = errors.New("file status changed concurrently")
	ErrRestoreWindowExpired = errors.New("restore window expired")
	ErrUploadNotFound       = errors.New("uploaded object not found in storage")
	ErrQuotaExceeded        = errors.New("storage quota exceeded")

	ErrDatabase = errors.New("database operation failed")
	ErrStorage  = errors.New("storage operation failed")
	ErrDispatch = errors.New("job dispatch failed")
)
