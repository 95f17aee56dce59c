// Package logger 基于zap构建结构化日志
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 根据配置创建zap Logger
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("无效的日志级别: %s", opts.Level)
		}
	}

	encoding := "json"
	if opts.Format == "console" {
		encoding = "console"
	}

	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: encoding == "console",
	}

	return cfg.Build()
}

// MustNew 创建失败时panic（仅用于main启动阶段）
func MustNew(opts Options) *zap.Logger {
	l, err := New(opts)
	if err != nil {
		panic(err)
	}
	return l
}
