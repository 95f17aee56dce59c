// Package storage 对象存储（S3协议，本地开发使用MinIO）
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/pkg/circuitbreaker"
)

// S3Store 上传文件到S3兼容存储
// 调用经过熔断器保护，存储不可用时快速失败
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	breaker       *circuitbreaker.CircuitBreaker
}

// NewS3Store 根据配置创建S3客户端
// endpoint不为空时使用自定义端点（MinIO、LocalStack）
func NewS3Store(cfg *config.Config, log *zap.Logger) (*S3Store, error) {
	sc := cfg.Storage

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(sc.Region)}
	if sc.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, "")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
		o.UsePathStyle = sc.UsePathStyle
	})

	breaker := circuitbreaker.New("s3", circuitbreaker.Config{
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化", zap.String("name", name),
				zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	return &S3Store{
		client:        client,
		bucket:        sc.Bucket,
		publicBaseURL: publicBaseURL(sc),
		breaker:       breaker,
	}, nil
}

// Put 上传对象并返回可公开访问的URL
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	err := s.breaker.Execute(func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(data))),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("上传文件失败: %w", err)
	}
	return s.URL(key), nil
}

// URL 对象的访问地址
func (s *S3Store) URL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimPrefix(key, "/")
}

// publicBaseURL 未配置时按端点推导：path-style为endpoint/bucket，否则为AWS虚拟主机域名
func publicBaseURL(sc config.StorageConfig) string {
	if sc.PublicBaseURL != "" {
		return strings.TrimSuffix(sc.PublicBaseURL, "/")
	}
	if sc.Endpoint != "" {
		return strings.TrimSuffix(sc.Endpoint, "/") + "/" + sc.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", sc.Bucket, sc.Region)
}
