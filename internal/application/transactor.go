// Package application 用例层公共接口
package application

import (
	"context"
)

// Transactor 事务边界，fn内通过ctx调用的Repository操作在同一事务中执行
// 生产实现为mysql.TxManager
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
