package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNo 生成订单号
// 格式：YYYYMMDD-8位大写随机串，如 20261017-3F9A1C0B
// 唯一性最终由数据库唯一索引保证
func GenerateOrderNo(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return now.Format("20060102") + "-" + strings.ToUpper(suffix)
}
