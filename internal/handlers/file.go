package handlers

import (
	"net/http"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/utils"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/3Eeeecho/go-mediavault/internal/services/asset"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService asset.FileService
}

func NewFileHandler(fileService asset.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// fileAction 只依赖路径中 file_id 的操作共用的处理流程
func (h *FileHandler) fileAction(message string, op func(c *gin.Context, userID, fileID string) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			return
		}
		data, err := op(c, userID, c.Param("file_id"))
		if err != nil {
			xerr.Fail(c, err)
			return
		}
		xerr.Success(c, http.StatusOK, message, data)
	}
}

// GetFile 获取文件详情
// @Summary 获取文件详情
// @Description 返回文件及其缩略图地址
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "文件详情"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	h.fileAction("File retrieved", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.GetFile(c.Request.Context(), userID, fileID)
	})(c)
}

// GetDownloadURL 获取下载地址
// @Summary 获取下载地址
// @Description 为 ready 的文件签发限时下载地址
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "下载地址"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/download [get]
func (h *FileHandler) GetDownloadURL(c *gin.Context) {
	h.fileAction("Download URL issued", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.GetDownloadURL(c.Request.Context(), userID, fileID)
	})(c)
}

// CopyFile 复制文件
// @Summary 复制文件
// @Description 复制文件到同一项目或同账户下的其他项目, 请求体可以为空
// @Tags 文件管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param request body models.CopyFileRequest false "目标项目"
// @Success 201 {object} xerr.Response "复制成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 413 {object} xerr.Response "超出配额"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/copy [post]
func (h *FileHandler) CopyFile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.CopyFileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
			return
		}
	}

	file, err := h.fileService.CopyFile(c.Request.Context(), userID, c.Param("file_id"), req.DestProjectID)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusCreated, "File copied", file)
}

// Move 移动文件
// @Summary 移动文件
// @Description 把文件移动到同一项目的文件夹, folder_id 为 null 时移动到根目录
// @Tags 文件管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param request body models.MoveFileRequest true "目标文件夹"
// @Success 200 {object} xerr.Response "移动成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/move [put]
func (h *FileHandler) Move(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.MoveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	file, err := h.fileService.Move(c.Request.Context(), userID, c.Param("file_id"), req.FolderID)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "File moved", file)
}

// SoftDelete 删除到回收站
// @Summary 删除到回收站
// @Description 软删除文件, 恢复窗口内可以恢复
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "已移入回收站"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id} [delete]
func (h *FileHandler) SoftDelete(c *gin.Context) {
	h.fileAction("File moved to trash", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.SoftDelete(c.Request.Context(), userID, fileID)
	})(c)
}

// Restore 恢复文件
// @Summary 恢复文件
// @Description 在恢复窗口内恢复软删除的文件
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "恢复成功"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 410 {object} xerr.Response "超出恢复窗口"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/restore [post]
func (h *FileHandler) Restore(c *gin.Context) {
	h.fileAction("File restored", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.Restore(c.Request.Context(), userID, fileID)
	})(c)
}

// Purge 彻底删除文件
// @Summary 彻底删除文件
// @Description 删除文件行和存储对象并释放配额
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "已删除"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/purge [delete]
func (h *FileHandler) Purge(c *gin.Context) {
	h.fileAction("File deleted", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.Purge(c.Request.Context(), userID, fileID)
	})(c)
}

// Reprocess 重新处理文件
// @Summary 重新处理文件
// @Description 让 ready 或 processing_failed 的文件重新进入处理流水线
// @Tags 文件管理
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "已加入处理队列"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/reprocess [post]
func (h *FileHandler) Reprocess(c *gin.Context) {
	h.fileAction("File queued for processing", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.Reprocess(c.Request.Context(), userID, fileID)
	})(c)
}

// SetCustomThumbnail 设置自定义缩略图
// @Summary 设置自定义缩略图
// @Description 上传图片替换文件的缩略图
// @Tags 缩略图
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param thumbnail formData file true "缩略图图片"
// @Success 200 {object} xerr.Response "设置成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/thumbnail [put]
func (h *FileHandler) SetCustomThumbnail(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	header, err := c.FormFile("thumbnail")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Thumbnail file not found")
		return
	}
	content, err := header.Open()
	if err != nil {
		logger.Error("SetCustomThumbnail: Failed to open form file", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "Failed to open thumbnail file")
		return
	}
	defer content.Close()

	file, err := h.fileService.SetCustomThumbnail(c.Request.Context(), userID, c.Param("file_id"),
		header.Filename, content, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Custom thumbnail set", file)
}

// ClearCustomThumbnail 清除自定义缩略图
// @Summary 清除自定义缩略图
// @Description 删除自定义缩略图, 恢复使用生成的缩略图
// @Tags 缩略图
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "已清除"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/thumbnail [delete]
func (h *FileHandler) ClearCustomThumbnail(c *gin.Context) {
	h.fileAction("Custom thumbnail cleared", func(c *gin.Context, userID, fileID string) (any, error) {
		return h.fileService.ClearCustomThumbnail(c.Request.Context(), userID, fileID)
	})(c)
}

// CaptureFrame 视频截帧
// @Summary 视频截帧
// @Description 从 ready 的视频截取一帧作为自定义缩略图, 结果异步写入
// @Tags 缩略图
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param request body models.FrameCaptureRequestBody true "截帧时间点(秒)"
// @Success 202 {object} xerr.Response "截帧任务已提交"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 502 {object} xerr.Response "任务分发失败"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/frame-capture [post]
func (h *FileHandler) CaptureFrame(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.FrameCaptureRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	jobID, err := h.fileService.CaptureFrame(c.Request.Context(), userID, c.Param("file_id"), req.Timestamp)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusAccepted, "Frame capture queued", models.FrameCaptureResponse{JobID: jobID})
}
