package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/3Eeeecho/go-mediavault/internal/config"
	"github.com/3Eeeecho/go-mediavault/internal/handlers"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/cache"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/logger"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/mq/worker"
	"github.com/3Eeeecho/go-mediavault/internal/repositories"
	"github.com/3Eeeecho/go-mediavault/internal/router"
	"github.com/3Eeeecho/go-mediavault/internal/services/asset"
	"github.com/3Eeeecho/go-mediavault/internal/services/quota"
	"github.com/3Eeeecho/go-mediavault/internal/setup"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	cfg         *config.Config
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	messaging   *setup.Messaging
	effects     *asset.SideEffects
	fileService asset.FileService
}

// NewServer 负责构建所有依赖
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化数据库连接
	db, err := setup.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 初始化 Redis 连接
	redisClient, err := setup.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	gateway, err := setup.InitStorage(cfg)
	if err != nil {
		return nil, err
	}

	indexer, err := setup.InitIndexer(&cfg.Elasticsearch)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Elasticsearch: %w", err)
	}

	messaging, err := setup.InitMessaging(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	//  初始化 Services
	redisCache := cache.NewRedisCache(redisClient)
	effects := asset.NewSideEffects(cfg.Dispatcher.Timeout)
	deps := asset.Deps{
		TM:         asset.NewTransactionManager(db),
		Files:      repositories.NewFileRepository(db),
		Projects:   repositories.NewProjectRepository(db),
		Ledger:     quota.NewLedger(db),
		Gateway:    gateway,
		Sessions:   cache.NewMultipartSessionStore(redisCache, cfg.Upload.MultipartSessionTTL),
		Dispatcher: messaging.Dispatcher,
		Indexer:    indexer,
		Effects:    effects,
		Thumbnails: asset.NewThumbnailResolver(gateway, cache.NewURLCache(redisCache), cfg.Upload.ThumbnailSize, cfg.Upload.DownloadURLTTL),
		Config:     cfg.Upload,
	}
	uploadService := asset.NewUploadService(deps)
	fileService := asset.NewFileService(deps)

	//  初始化 Handlers 和路由
	engine := router.InitRouter(handlers.NewUploadHandler(uploadService), handlers.NewFileHandler(fileService), cfg)

	addr := ":" + cfg.Server.Port
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:          db,
		redisClient: redisClient,
		messaging:   messaging,
		effects:     effects,
		fileService: fileService,
	}, nil
}

// Run 启动服务器和 Worker，并处理优雅关机
func (s *Server) Run(ctx context.Context, stopChan chan os.Signal) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// 启动所有后台 Worker
	err := worker.StartAllWorkers(workerCtx, s.cfg, s.fileService, worker.Transports{
		RabbitMQ: s.messaging.RabbitMQ,
		NATS:     s.messaging.NATS,
	})
	if err != nil {
		return err
	}

	// 启动 HTTP 服务器
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server is running", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// 等待停止信号
	select {
	case <-stopChan:
	case err := <-serveErr:
		logger.Error("Server failed", zap.Error(err))
	}
	logger.Info("Shutting down server...")

	// 优雅关机: 先停止接收请求, 再等待尚未完成的后台副作用
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	stopWorkers()
	s.effects.Wait()

	s.messaging.Close()
	setup.CloseRedis(s.redisClient)
	setup.CloseDatabase(s.db)
	logger.Info("Server exited gracefully")
	return nil
}
