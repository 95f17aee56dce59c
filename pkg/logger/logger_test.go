package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("写入文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(Options{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		l.Debug("不应输出")
		l.Info("订单已创建", zap.String("order_no", "20240101-ABCDEF12"))
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "20240101-ABCDEF12")
		assert.NotContains(t, string(data), "不应输出")
	})

	t.Run("非法级别", func(t *testing.T) {
		_, err := New(Options{Level: "verbose"})
		assert.Error(t, err)
	})
}
