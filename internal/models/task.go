package models

// ProcessingJob 上传确认后发布到处理队列的消息体
type ProcessingJob struct {
	AssetID       string  `json:"asset_id"`
	AccountID     string  `json:"account_id"`
	ProjectID     string  `json:"project_id"`
	StorageKey    string  `json:"storage_key"`
	Name          string  `json:"name"`
	MimeType      string  `json:"mime_type"`
	FileSizeBytes uint64  `json:"file_size_bytes"`
	Checksum      *string `json:"checksum,omitempty"`
	// 生成缩略图应写入的 key
	ThumbnailKey string `json:"thumbnail_key"`
}

// FrameCaptureRequest 视频截帧任务消息体
type FrameCaptureRequest struct {
	JobID     string  `json:"job_id"`
	AssetID   string  `json:"asset_id"`
	AccountID string  `json:"account_id"`
	ProjectID string  `json:"project_id"`
	Timestamp float64 `json:"timestamp"`
	MimeType  string  `json:"mime_type"`
	// 截帧结果写入的自定义缩略图 key
	TargetKey string `json:"target_key"`
}

// 处理结果的类型
const (
	ResultKindProcessing   = "processing"
	ResultKindFrameCapture = "frame_capture"
)

// ProcessingResult 处理流水线回传的结果
type ProcessingResult struct {
	Kind              string            `json:"kind"` // 为空时视为 processing
	AssetID           string            `json:"asset_id"`
	Success           bool              `json:"success"`
	TechnicalMetadata TechnicalMetadata `json:"technical_metadata,omitempty"`
	Error             string            `json:"error,omitempty"`
	// 截帧任务完成时回填
	CustomThumbnailKey *string `json:"custom_thumbnail_key,omitempty"`
}
