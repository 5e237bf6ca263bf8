package xerr

// 定义了统一的业务错误码, 每一种错误类型对应一个独立的码和 HTTP 状态
const (
	SuccessCode = 20000 // 通用成功码

	// --- 客户端请求错误系列 (400xx) ---
	InvalidParamsCode    = 40000 // 无效的请求参数 (请求体无法解析)
	ValidationFailedCode = 40001 // 参数验证失败 (大小、分片数、必填字段)

	// --- 认证错误系列 (401xx) ---
	UnauthorizedCode = 40100 // 通用未授权

	// --- 资源未找到错误系列 (404xx) ---
	NotFoundCode = 40400 // 文件、文件夹、项目或账户不存在

	// --- 状态冲突系列 (409xx) ---
	InvalidTransitionCode = 40910 // 状态机不允许的迁移
	StatusConflictCode    = 40911 // 并发修改导致状态已变化

	// --- 其他业务前置条件 ---
	RestoreWindowExpiredCode = 41000 // 超出回收站恢复期限
	UploadNotFoundCode       = 41200 // 确认上传时对象尚未落盘
	QuotaExceededCode        = 41300 // 账户存储配额不足

	// --- 服务器内部错误系列 (500xx) ---
	InternalServerErrorCode = 50000 // 服务器内部通用错误
	DatabaseErrorCode       = 50001 // 数据库操作失败
	StorageErrorCode        = 50002 // 存储服务操作失败（如MinIO）
	DispatchErrorCode       = 50003 // 消息队列投递失败
)
