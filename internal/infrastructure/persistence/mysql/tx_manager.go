package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 通过context传递事务DB，fn内所有Repository操作在同一事务中执行；
// fn返回error时ROLLBACK，返回nil时COMMIT，嵌套调用由GORM使用Savepoint
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := productRepo.DecreaseStock(ctx, id, qty); err != nil {
//	        return err // 回滚
//	    }
//	    return orderRepo.Create(ctx, o)
//	})
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFrom(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
