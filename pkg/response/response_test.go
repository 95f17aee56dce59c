package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestError(t *testing.T) {
	testCases := []struct {
		name       string
		mode       string
		err        error
		wantStatus int
		wantBody   ErrorBody
	}{
		{
			name:       "业务错误映射HTTP状态码",
			mode:       gin.TestMode,
			err:        apperrors.NotFound("订单不存在"),
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorBody{Error: "订单不存在", Code: "not_found"},
		},
		{
			name:       "未知错误视为500",
			mode:       gin.TestMode,
			err:        errors.New("dial tcp: refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorBody{Error: "服务器内部错误", Code: "internal_error"},
		},
		{
			name:       "生产环境隐藏内部错误信息",
			mode:       gin.ReleaseMode,
			err:        apperrors.Wrap(errors.New("deadlock"), "创建订单失败"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorBody{Error: "服务器内部错误", Code: "internal_error"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(tc.mode)
			defer gin.SetMode(gin.TestMode)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantBody, body)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 5, TotalPages(100, 20))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0, 10, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePage(3, 500, 10, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)
}
