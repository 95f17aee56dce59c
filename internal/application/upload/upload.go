// Package upload 图片/视频上传
package upload

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// Kind 上传类型
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

const mb = 1 << 20

var (
	ErrEmptyFile       = apperrors.BadRequest("文件不能为空")
	ErrUnsupportedType = apperrors.BadRequest("不支持的文件类型")
	ErrContentMismatch = apperrors.BadRequest("文件内容与扩展名不符")
	ErrFileTooLarge    = apperrors.New(http.StatusRequestEntityTooLarge, apperrors.CodeBadRequest, "文件过大")
)

// ObjectStore 对象存储（S3实现见infrastructure/storage）
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// rule 每种上传类型允许的扩展名及对应MIME
type rule struct {
	dir     string
	maxSize int64
	types   map[string]string
}

// Limits 上传大小上限（MB），0使用默认值
type Limits struct {
	MaxImageSizeMB int64
	MaxVideoSizeMB int64
}

// Request 上传请求
type Request struct {
	Kind     Kind
	Filename string
	Size     int64 // multipart头中的大小，可能为-1
	Body     io.Reader
}

// Response 上传结果
type Response struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// UploadUseCase 上传用例
type UploadUseCase struct {
	store ObjectStore
	rules map[Kind]rule
	log   *zap.Logger
	now   func() time.Time
}

// NewUploadUseCase 创建上传用例
func NewUploadUseCase(store ObjectStore, limits Limits, log *zap.Logger) *UploadUseCase {
	imageMax, videoMax := limits.MaxImageSizeMB, limits.MaxVideoSizeMB
	if imageMax <= 0 {
		imageMax = 10
	}
	if videoMax <= 0 {
		videoMax = 100
	}
	return &UploadUseCase{
		store: store,
		rules: map[Kind]rule{
			KindImage: {
				dir:     "images",
				maxSize: imageMax * mb,
				types: map[string]string{
					".jpg":  "image/jpeg",
					".jpeg": "image/jpeg",
					".png":  "image/png",
					".gif":  "image/gif",
					".webp": "image/webp",
				},
			},
			KindVideo: {
				dir:     "videos",
				maxSize: videoMax * mb,
				types: map[string]string{
					".mp4":  "video/mp4",
					".webm": "video/webm",
					".mov":  "video/quicktime",
				},
			},
		},
		log: log,
		now: time.Now,
	}
}

// Execute 校验后写入对象存储
// Key格式：images|videos/YYYY/MM/<uuid><ext>
func (uc *UploadUseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	r, ok := uc.rules[req.Kind]
	if !ok {
		return nil, ErrUnsupportedType
	}

	name := SanitizeFilename(req.Filename)
	ext := strings.ToLower(path.Ext(name))
	contentType, ok := r.types[ext]
	if !ok {
		return nil, ErrUnsupportedType.WithMessagef("不支持的文件类型%s，允许：%s", ext, allowed(r))
	}
	if req.Size > r.maxSize {
		return nil, ErrFileTooLarge.WithMessagef("文件不能超过%dMB", r.maxSize/mb)
	}

	// 多读1字节判断是否超限
	data, err := io.ReadAll(io.LimitReader(req.Body, r.maxSize+1))
	if err != nil {
		return nil, apperrors.Wrap(err, "读取上传文件失败")
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > r.maxSize {
		return nil, ErrFileTooLarge.WithMessagef("文件不能超过%dMB", r.maxSize/mb)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(contentType) {
		uc.log.Warn("上传文件内容与扩展名不符",
			zap.String("filename", name), zap.String("ext", ext), zap.String("detected", detected.String()))
		return nil, ErrContentMismatch
	}

	key := fmt.Sprintf("%s/%s/%s%s", r.dir, uc.now().Format("2006/01"), uuid.NewString(), ext)
	url, err := uc.store.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	uc.log.Info("文件已上传", zap.String("key", key), zap.Int("size", len(data)))
	return &Response{
		URL:         url,
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// SanitizeFilename 去掉路径部分和控制字符，只保留字母、数字和 . - _
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if runes := []rune(out); len(runes) > 100 {
		ext := path.Ext(out)
		out = string(runes[:100-len([]rune(ext))]) + ext
	}
	if out == "" || out == "." {
		return "file"
	}
	return out
}

func allowed(r rule) string {
	exts := make([]string, 0, len(r.types))
	for _, ext := range slices.Sorted(maps.Keys(r.types)) {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	return strings.Join(exts, ", ")
}
