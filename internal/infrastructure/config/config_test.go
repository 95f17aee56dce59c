package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  dbname: mall_test
  loc: Asia/Seoul
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProductTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.BannerTTL)
	assert.Equal(t, "root:@tcp(localhost:3306)/mall_test?charset=utf8mb4&parseTime=true&loc=Asia%2FSeoul", cfg.Database.DSN())

	login := cfg.RateLimit.Rule("auth_login")
	assert.Equal(t, 5, login.Requests)
	assert.Equal(t, time.Minute, login.Window)

	unknown := cfg.RateLimit.Rule("unknown")
	assert.Equal(t, 200, unknown.Requests)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("MALL_DATABASE_PASSWORD", "s3cret")
	t.Setenv("MALL_JWT_ISSUER", "mall-test")

	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "mall-test", cfg.JWT.Issuer)
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"非法端口", "server:\n  port: 70000\n"},
		{"生产环境默认密钥", "server:\n  mode: release\n"},
		{"旧密钥与新密钥相同", "jwt:\n  secret: abc\n  previous_secret: abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_RepositoryProfiles(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("..", "..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RateLimit.Rule("auth_signup").Requests)
	assert.Equal(t, "mall.events", cfg.MQ.Exchange)

	t.Setenv("MALL_JWT_SECRET", "prod-secret")
	prod, err := LoadFile(filepath.Join("..", "..", "..", "config", "config.prod.yaml"))
	require.NoError(t, err)
	assert.True(t, prod.Server.IsRelease())
	assert.Equal(t, "json", prod.Log.Format)
}
