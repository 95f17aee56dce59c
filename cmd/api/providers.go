package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	appbanner "github.com/xiebiao/mall/internal/application/banner"
	appnotification "github.com/xiebiao/mall/internal/application/notification"
	appproduct "github.com/xiebiao/mall/internal/application/product"
	appupload "github.com/xiebiao/mall/internal/application/upload"
	"github.com/xiebiao/mall/internal/domain/banner"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/messaging"
	"github.com/xiebiao/mall/internal/infrastructure/storage"
	"github.com/xiebiao/mall/internal/interface/http/handler"
	"github.com/xiebiao/mall/pkg/jwt"
	"github.com/xiebiao/mall/pkg/mq"
)

// App 启动所需的全部组件
type App struct {
	Server *http.Server
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(jwt.Options{
		Secret:             cfg.JWT.Secret,
		PreviousSecret:     cfg.JWT.PreviousSecret,
		Issuer:             cfg.JWT.Issuer,
		AccessTokenExpire:  cfg.JWT.AccessTokenExpire,
		RefreshTokenExpire: cfg.JWT.RefreshTokenExpire,
	})
}

// providePublisher mq.enabled时发布到RabbitMQ（由worker消费），否则进程内直接写通知
func providePublisher(cfg *config.Config, handler *appnotification.OrderEventHandler, log *zap.Logger) (order.EventPublisher, func(), error) {
	local := messaging.NewLocalPublisher(handler, log)
	if !cfg.MQ.Enabled {
		return local, func() {}, nil
	}

	broker, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	cleanup := func() {
		if err := broker.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return messaging.NewMQPublisher(broker, local, log), cleanup, nil
}

func provideObjectStore(cfg *config.Config, log *zap.Logger) (appupload.ObjectStore, error) {
	return storage.NewS3Store(cfg, log)
}

func provideListProductsUseCase(repo product.Repository, cache application.Cache, cfg *config.Config, log *zap.Logger) *appproduct.ListProductsUseCase {
	return appproduct.NewListProductsUseCase(repo, cache, cfg.Cache.ProductTTL, log)
}

func provideGetProductUseCase(repo product.Repository, cache application.Cache, cfg *config.Config, log *zap.Logger) *appproduct.GetProductUseCase {
	return appproduct.NewGetProductUseCase(repo, cache, cfg.Cache.ProductTTL, log)
}

func provideBannerUseCase(repo banner.Repository, cache application.Cache, cfg *config.Config, log *zap.Logger) *appbanner.BannerUseCase {
	return appbanner.NewBannerUseCase(repo, cache, cfg.Cache.BannerTTL, log)
}

func provideManageProductUseCase(repo product.Repository, cache application.Cache, log *zap.Logger) *appproduct.ManageProductUseCase {
	return appproduct.NewManageProductUseCase(repo, cache, log)
}

func provideUploadUseCase(store appupload.ObjectStore, cfg *config.Config, log *zap.Logger) *appupload.UploadUseCase {
	return appupload.NewUploadUseCase(store, appupload.Limits{
		MaxImageSizeMB: cfg.Storage.MaxImageSizeMB,
		MaxVideoSizeMB: cfg.Storage.MaxVideoSizeMB,
	}, log)
}

// provideUploadHandler 请求体上限为视频上限再加1MB的multipart开销
func provideUploadHandler(uc *appupload.UploadUseCase, cfg *config.Config) *handler.UploadHandler {
	maxMB := cfg.Storage.MaxVideoSizeMB
	if cfg.Storage.MaxImageSizeMB > maxMB {
		maxMB = cfg.Storage.MaxImageSizeMB
	}
	if maxMB <= 0 {
		maxMB = 100
	}
	return handler.NewUploadHandler(uc, (maxMB+1)<<20)
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
