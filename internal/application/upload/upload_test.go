package upload

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegData  = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifData   = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
	webpData  = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
	mp4Data   = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2\x00\x00\x00\x08free")
	movData   = []byte("\x00\x00\x00\x14ftypqt  \x00\x00\x00\x00qt  \x00\x00\x00\x08wide")
)

type fakeStore struct {
	keys         []string
	contentTypes []string
	err          error
}

func (f *fakeStore) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	return "https://cdn.example.com/" + key, nil
}

func newTestUseCase(store ObjectStore, limits Limits) *UploadUseCase {
	uc := NewUploadUseCase(store, limits, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return uc
}

func TestUpload_Accepts(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		filename    string
		data        []byte
		contentType string
		keyPattern  string
	}{
		{"png", KindImage, "shirt.png", pngHeader, "image/png", `^images/2026/10/[0-9a-f-]{36}\.png$`},
		{"jpg", KindImage, "shirt.JPG", jpegData, "image/jpeg", `^images/2026/10/[0-9a-f-]{36}\.jpg$`},
		{"jpeg", KindImage, "shirt.jpeg", jpegData, "image/jpeg", `^images/2026/10/[0-9a-f-]{36}\.jpeg$`},
		{"gif", KindImage, "a.gif", gifData, "image/gif", `^images/2026/10/[0-9a-f-]{36}\.gif$`},
		{"webp", KindImage, "a.webp", webpData, "image/webp", `^images/2026/10/[0-9a-f-]{36}\.webp$`},
		{"mp4", KindVideo, "clip.mp4", mp4Data, "video/mp4", `^videos/2026/10/[0-9a-f-]{36}\.mp4$`},
		{"mov", KindVideo, "clip.mov", movData, "video/quicktime", `^videos/2026/10/[0-9a-f-]{36}\.mov$`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			uc := newTestUseCase(store, Limits{})

			resp, err := uc.Execute(context.Background(), Request{
				Kind: tt.kind, Filename: tt.filename, Size: int64(len(tt.data)), Body: bytes.NewReader(tt.data),
			})
			require.NoError(t, err)
			require.Len(t, store.keys, 1)
			assert.Regexp(t, regexp.MustCompile(tt.keyPattern), store.keys[0])
			assert.Equal(t, tt.contentType, resp.ContentType)
			assert.Equal(t, tt.contentType, store.contentTypes[0])
			assert.Equal(t, int64(len(tt.data)), resp.Size)
			assert.Equal(t, "https://cdn.example.com/"+store.keys[0], resp.URL)
		})
	}
}

func TestUpload_Rejects(t *testing.T) {
	oversized := append(append([]byte{}, pngHeader...), make([]byte, mb)...)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"扩展名不允许", Request{Kind: KindImage, Filename: "run.exe", Body: bytes.NewReader(pngHeader)}, ErrUnsupportedType},
		{"图片接口传视频", Request{Kind: KindImage, Filename: "clip.mp4", Body: bytes.NewReader(mp4Data)}, ErrUnsupportedType},
		{"未知类型", Request{Kind: "doc", Filename: "a.png", Body: bytes.NewReader(pngHeader)}, ErrUnsupportedType},
		{"内容与扩展名不符", Request{Kind: KindImage, Filename: "fake.jpg", Body: bytes.NewReader(pngHeader)}, ErrContentMismatch},
		{"文本伪装图片", Request{Kind: KindImage, Filename: "x.png", Body: bytes.NewReader([]byte("<script>alert(1)</script>"))}, ErrContentMismatch},
		{"空文件", Request{Kind: KindImage, Filename: "a.png", Body: bytes.NewReader(nil)}, ErrEmptyFile},
		{"声明大小超限", Request{Kind: KindImage, Filename: "a.png", Size: 2 * mb, Body: bytes.NewReader(pngHeader)}, ErrFileTooLarge},
		{"实际大小超限", Request{Kind: KindImage, Filename: "a.png", Size: -1, Body: bytes.NewReader(oversized)}, ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			uc := newTestUseCase(store, Limits{MaxImageSizeMB: 1})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.keys)
		})
	}
}

func TestUpload_StoreError(t *testing.T) {
	storeErr := errors.New("s3 unavailable")
	uc := newTestUseCase(&fakeStore{err: storeErr}, Limits{})

	_, err := uc.Execute(context.Background(), Request{Kind: KindImage, Filename: "a.png", Body: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, storeErr)
}

func TestUpload_DefaultLimits(t *testing.T) {
	uc := NewUploadUseCase(&fakeStore{}, Limits{}, zap.NewNop())
	assert.Equal(t, int64(10*mb), uc.rules[KindImage].maxSize)
	assert.Equal(t, int64(100*mb), uc.rules[KindVideo].maxSize)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"shirt.png":             "shirt.png",
		"../../etc/passwd":      "passwd",
		`C:\Users\me\photo.jpg`: "photo.jpg",
		"my photo (1).png":      "my_photo_1.png",
		"상품 이미지.webp":           "상품_이미지.webp",
		".hidden.png":           "hidden.png",
		"":                      "file",
		"///":                   "file",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}
