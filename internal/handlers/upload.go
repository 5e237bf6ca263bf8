package handlers

import (
	"net/http"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/utils"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/3Eeeecho/go-mediavault/internal/services/asset"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService asset.UploadService
}

func NewUploadHandler(uploadService asset.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// InitiateUpload 初始化文件上传
// @Summary 初始化文件上传
// @Description 预留配额, 创建 uploading 状态的文件并返回直传地址
// @Tags 文件上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project_id path string true "项目ID"
// @Param request body models.InitiateUploadRequest true "上传初始化参数"
// @Success 201 {object} xerr.Response "上传初始化成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 401 {object} xerr.Response "未认证"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 413 {object} xerr.Response "超出配额"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/projects/{project_id}/files [post]
func (h *UploadHandler) InitiateUpload(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.uploadService.InitiateUpload(c.Request.Context(), userID, c.Param("project_id"), &req)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusCreated, "Upload initiated", resp)
}

// ConfirmUpload 确认直传完成
// @Summary 确认直传完成
// @Description 校验存储对象后把文件推进到 processing
// @Tags 文件上传
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Success 200 {object} xerr.Response "确认成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 412 {object} xerr.Response "上传对象或会话不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/confirm [post]
func (h *UploadHandler) ConfirmUpload(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	file, err := h.uploadService.ConfirmUpload(c.Request.Context(), userID, c.Param("file_id"))
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Upload confirmed", file)
}

// InitMultipart 开启分片上传
// @Summary 开启分片上传
// @Description 为 uploading 状态的文件创建分片上传会话
// @Tags 文件上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param request body models.InitMultipartRequest true "分片数"
// @Success 200 {object} xerr.Response "分片上传已开启"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/multipart [post]
func (h *UploadHandler) InitMultipart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.InitMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.uploadService.InitMultipart(c.Request.Context(), userID, c.Param("file_id"), req.ChunkCount)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Multipart upload initiated", resp)
}

// GetPartURLs 获取分片上传地址
// @Summary 获取分片上传地址
// @Description 为分片上传会话签发每个分片的预签名地址, 分片数必须与会话一致
// @Tags 文件上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param upload_id path string true "分片上传ID"
// @Param request body models.PartURLsRequest true "分片数"
// @Success 200 {object} xerr.Response "分片地址"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 412 {object} xerr.Response "上传对象或会话不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/multipart/{upload_id}/parts [post]
func (h *UploadHandler) GetPartURLs(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.PartURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	urls, err := h.uploadService.GetPartURLs(c.Request.Context(), userID, c.Param("file_id"), c.Param("upload_id"), req.ChunkCount)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Part URLs issued", gin.H{"parts": urls})
}

// CompleteMultipart 完成分片上传
// @Summary 完成分片上传
// @Description 合并分片并把文件推进到 processing
// @Tags 文件上传
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param upload_id path string true "分片上传ID"
// @Param request body models.CompleteMultipartRequest true "已上传的分片"
// @Success 200 {object} xerr.Response "上传完成"
// @Failure 400 {object} xerr.Response "参数错误"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 409 {object} xerr.Response "状态冲突"
// @Failure 412 {object} xerr.Response "上传对象或会话不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/multipart/{upload_id}/complete [post]
func (h *UploadHandler) CompleteMultipart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	var req models.CompleteMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "Invalid request body: "+err.Error())
		return
	}

	file, err := h.uploadService.CompleteMultipart(c.Request.Context(), userID, c.Param("file_id"), c.Param("upload_id"), req.Parts)
	if err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Multipart upload completed", file)
}

// AbortMultipart 中止分片上传
// @Summary 中止分片上传
// @Description 中止分片上传, 可重复调用
// @Tags 文件上传
// @Produce json
// @Security BearerAuth
// @Param file_id path string true "文件ID"
// @Param upload_id path string true "分片上传ID"
// @Success 200 {object} xerr.Response "已中止"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "资源不存在"
// @Failure 500 {object} xerr.Response "内部服务器错误"
// @Router /api/v1/files/{file_id}/multipart/{upload_id} [delete]
func (h *UploadHandler) AbortMultipart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if err := h.uploadService.AbortMultipart(c.Request.Context(), userID, c.Param("file_id"), c.Param("upload_id")); err != nil {
		xerr.Fail(c, err)
		return
	}
	xerr.Success(c, http.StatusOK, "Multipart upload aborted", nil)
}
