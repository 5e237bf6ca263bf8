package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/3Eeeecho/go-mediavault/cmd/server"
	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"go.uber.org/zap"
)

// @title go-mediavault API
// @version 1.0
// @description 媒体资源存储服务: 直传上传, 处理流水线回调, 缩略图和回收站.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: Bearer <token>
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("加载配置出错", zap.Error(err))
	}

	//初始化日志系统
	if err = os.MkdirAll("logs", 0755); err != nil {
		logger.Fatal("初始化日志系统失败", zap.Error(err))
	}
	logger.InitLogger(cfg.Log.OutputPath, cfg.Log.ErrorPath, cfg.Log.Level)
	defer logger.Sync() // 确保在应用退出时刷新所有缓冲的日志条目

	logger.Info("启动媒体资源服务...")

	// 创建并构建应用服务器实例
	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("无法启动应用程序", zap.Error(err))
	}

	// 创建一个通道用于接收停止信号
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	if err := srv.Run(context.Background(), stopChan); err != nil {
		logger.Error("服务运行失败", zap.Error(err))
	}

	logger.Info("媒体资源服务已退出。")
}
