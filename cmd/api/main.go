package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/xiebiao/mall/docs"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/pkg/logger"
	"github.com/xiebiao/mall/pkg/metrics"
	"github.com/xiebiao/mall/pkg/tracing"
)

// @title           Mall API
// @version         1.0
// @description     购物商城后端：商品、购物车、订单、优惠券、收藏、评价、通知、上传
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer {access_token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()
	zap.ReplaceGlobals(zapLog)

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(context.Background(), tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				zapLog.Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
	}

	app, cleanup, err := InitializeApp(cfg, zapLog)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP服务启动",
			zap.String("addr", app.Server.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("mq", cfg.MQ.Enabled))
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zapLog.Info("收到退出信号，正在关闭服务", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		return err
	}
	zapLog.Info("HTTP服务已关闭")
	return nil
}
