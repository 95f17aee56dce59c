package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/mall/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. debug模式打印SQL
// 3. database.auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().Truncate(time.Microsecond) },
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName))

	// 生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&CartItemModel{},
		&CouponModel{},
		&UserCouponModel{},
		&FavoriteModel{},
		&ReviewModel{},
		&NotificationModel{},
		&BannerModel{},
		&InquiryModel{},
	)
}
