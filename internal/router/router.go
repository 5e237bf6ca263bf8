package router

import (
	"net/http"

	_ "github.com/3Eeeecho/go-mediavault/docs"
	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/handlers"
	"github.com/3Eeeecho/go-mediavault/internal/middlewares"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func InitRouter(
	uploadHandler *handlers.UploadHandler,
	fileHandler *handlers.FileHandler,
	cfg *config.Config,
) *gin.Engine {
	// 设置 Gin 模式，开发环境为 DebugMode，生产环境为 ReleaseMode
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Health Check 路由
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.AuthMiddleware(&cfg.JWT))
	{
		v1.POST("/projects/:project_id/files", uploadHandler.InitiateUpload)

		fileGroup := v1.Group("/files/:file_id")
		{
			fileGroup.GET("", fileHandler.GetFile)
			fileGroup.DELETE("", fileHandler.SoftDelete)

			// 上传
			fileGroup.POST("/confirm", uploadHandler.ConfirmUpload)
			fileGroup.POST("/multipart", uploadHandler.InitMultipart)
			fileGroup.POST("/multipart/:upload_id/parts", uploadHandler.GetPartURLs)
			fileGroup.POST("/multipart/:upload_id/complete", uploadHandler.CompleteMultipart)
			fileGroup.DELETE("/multipart/:upload_id", uploadHandler.AbortMultipart)

			// 生命周期
			fileGroup.POST("/copy", fileHandler.CopyFile)
			fileGroup.PUT("/move", fileHandler.Move)
			fileGroup.POST("/restore", fileHandler.Restore)
			fileGroup.DELETE("/purge", fileHandler.Purge)
			fileGroup.POST("/reprocess", fileHandler.Reprocess)
			fileGroup.GET("/download", fileHandler.GetDownloadURL)

			// 缩略图
			fileGroup.PUT("/thumbnail", fileHandler.SetCustomThumbnail)
			fileGroup.DELETE("/thumbnail", fileHandler.ClearCustomThumbnail)
			fileGroup.POST("/frame-capture", fileHandler.CaptureFrame)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		xerr.Error(c, http.StatusNotFound, xerr.NotFoundCode, "Route not found")
	})

	return router
}
