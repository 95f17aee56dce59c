// seed 创建或提升管理员账号
//
//	go run ./cmd/seed --email admin@example.com --password 'change-me-123'
//
// 未传参数时使用配置 admin.email / admin.password / admin.name（可用MALL_ADMIN_*环境变量覆盖）
package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/mall/pkg/logger"
)

func main() {
	email := pflag.String("email", "", "管理员邮箱")
	password := pflag.String("password", "", "管理员密码（至少8位）")
	name := pflag.String("name", "", "显示名称")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *email != "" {
		cfg.Admin.Email = *email
	}
	if *password != "" {
		cfg.Admin.Password = *password
	}
	if *name != "" {
		cfg.Admin.Name = *name
	}

	zapLog, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		zapLog.Fatal("缺少管理员邮箱或密码，请通过 --email/--password 或 admin 配置提供")
	}

	db, cleanup, err := mysql.NewDB(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seed := appuser.NewSeedAdminUseCase(user.NewService(mysql.NewUserRepository(db)), zapLog)
	admin, err := seed.Execute(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		zapLog.Fatal("创建管理员失败", zap.Error(err))
	}
	zapLog.Info("完成", zap.Uint("user_id", admin.ID), zap.Bool("is_admin", admin.IsAdmin))
}
