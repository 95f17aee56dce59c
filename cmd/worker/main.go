// worker 消费RabbitMQ中的订单事件并写入用户通知
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	appnotification "github.com/xiebiao/mall/internal/application/notification"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/messaging"
	"github.com/xiebiao/mall/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/mall/pkg/logger"
	"github.com/xiebiao/mall/pkg/metrics"
	"github.com/xiebiao/mall/pkg/mq"
)

// 订单相关的全部事件
var routingKeys = []string{"order.*"}

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
		zapLog.Fatal("worker异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	if !cfg.MQ.Enabled {
		zapLog.Warn("mq.enabled=false，API进程内直接处理事件，worker无需运行")
	}
	metrics.InitMetrics()

	db, cleanup, err := mysql.NewDB(cfg, zapLog)
	if err != nil {
		return err
	}
	defer cleanup()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, routingKeys, zapLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			zapLog.Warn("关闭消费者失败", zap.Error(err))
		}
	}()

	handler := appnotification.NewOrderEventHandler(mysql.NewNotificationRepository(db), zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLog.Info("worker启动", zap.String("queue", cfg.MQ.Queue), zap.Strings("routing_keys", routingKeys))
	if err := consumer.Consume(ctx, messaging.ConsumeHandler(handler)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	zapLog.Info("worker已停止")
	return nil
}
