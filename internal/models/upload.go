package models

import "time"

// InitiateUploadRequest 单次上传初始化请求体
// FileSizeBytes 使用 int64 接收, 以便拒绝负数而不是在 JSON 解码时静默失败
type InitiateUploadRequest struct {
	Name          string  `json:"name"`
	OriginalName  string  `json:"original_name"`
	MimeType      string  `json:"mime_type"`
	FileSizeBytes *int64  `json:"file_size_bytes"`
	FolderID      *string `json:"folder_id"`
	Checksum      *string `json:"checksum"`
}

// InitiateUploadResponse 单次上传初始化响应体
type InitiateUploadResponse struct {
	File       *File     `json:"file"`
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ChunkSize  uint64    `json:"chunk_size"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// InitMultipartRequest 分片上传初始化请求体
type InitMultipartRequest struct {
	ChunkCount int `json:"chunk_count"`
}

// InitMultipartResponse 分片上传初始化响应体
type InitMultipartResponse struct {
	UploadID   string `json:"upload_id"`
	StorageKey string `json:"storage_key"`
	ChunkSize  uint64 `json:"chunk_size"`
}

// PartURLsRequest 获取分片上传地址请求体
type PartURLsRequest struct {
	ChunkCount int `json:"chunk_count"`
}

// PartURL 单个分片的预签名上传地址
type PartURL struct {
	PartNumber int    `json:"part_number"`
	URL        string `json:"url"`
}

// UploadPartInfo 客户端上传分片后回报的分片信息
type UploadPartInfo struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
}

// CompleteMultipartRequest 完成分片上传请求体
type CompleteMultipartRequest struct {
	Parts []UploadPartInfo `json:"parts"`
}

// MultipartSession 保存在 Redis 中的分片上传会话
type MultipartSession struct {
	UploadID   string    `json:"upload_id"`
	FileID     string    `json:"file_id"`
	StorageKey string    `json:"storage_key"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CopyFileRequest 复制文件请求体, 目标项目为空时复制到源项目
type CopyFileRequest struct {
	DestProjectID *string `json:"dest_project_id"`
}

// MoveFileRequest 移动文件请求体, FolderID 为 null 表示移动到项目根目录
type MoveFileRequest struct {
	FolderID *string `json:"folder_id"`
}

// FrameCaptureRequestBody 视频截帧请求体
type FrameCaptureRequestBody struct {
	Timestamp float64 `json:"timestamp"`
}

// FileDetail 文件详情, 附带解析后的缩略图地址
type FileDetail struct {
	*File
	ThumbnailURL *string `json:"thumbnail_url"`
}

// DownloadURLResponse 预签名下载地址
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FrameCaptureResponse 截帧任务 id
type FrameCaptureResponse struct {
	JobID string `json:"job_id"`
}
