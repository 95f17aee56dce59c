//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		email, auth := RegisterTestUser(t, "signup")
		assert.NotEmpty(t, auth.AccessToken)
		assert.NotEmpty(t, auth.RefreshToken)
		assert.Equal(t, email, auth.User.Email)
		assert.False(t, auth.User.IsAdmin)
	})

	t.Run("重复邮箱", func(t *testing.T) {
		email, _ := RegisterTestUser(t, "dup")
		res := Do(t, http.MethodPost, "/auth/signup", map[string]string{
			"email": email, "password": "Test1234!", "name": "dup",
		}, "")
		assert.Equal(t, http.StatusConflict, res.Status)
		assert.Equal(t, "conflict", res.ErrorCode(t))
	})

	t.Run("参数校验", func(t *testing.T) {
		cases := map[string]map[string]string{
			"密码过短":   {"email": UniqueEmail("short"), "password": "short", "name": "x"},
			"邮箱格式错误": {"email": "not-an-email", "password": "Test1234!", "name": "x"},
			"缺少名称":   {"email": UniqueEmail("noname"), "password": "Test1234!"},
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				res := Do(t, http.MethodPost, "/auth/signup", body, "")
				assert.Equal(t, http.StatusBadRequest, res.Status)
				assert.Equal(t, "validation_error", res.ErrorCode(t))
			})
		}
	})
}

func TestLoginAndSession(t *testing.T) {
	email, _ := RegisterTestUser(t, "login")

	t.Run("密码错误", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "wrong-pass"}, "")
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})

	t.Run("用户不存在", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/auth/login", map[string]string{"email": UniqueEmail("ghost"), "password": "Test1234!"}, "")
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})

	res := Do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "Test1234!"}, "")
	require.Equal(t, http.StatusOK, res.Status)
	var auth AuthData
	res.Decode(t, &auth)

	t.Run("访问受保护接口", func(t *testing.T) {
		res := Do(t, http.MethodGet, "/auth/me", nil, auth.AccessToken)
		require.Equal(t, http.StatusOK, res.Status)
		var me struct {
			Email string `json:"email"`
		}
		res.Decode(t, &me)
		assert.Equal(t, email, me.Email)
	})

	t.Run("无效Token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, Do(t, http.MethodGet, "/auth/me", nil, "invalid.token.value").Status)
		assert.Equal(t, http.StatusUnauthorized, Do(t, http.MethodGet, "/auth/me", nil, auth.RefreshToken).Status)
	})

	t.Run("刷新Token", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": auth.RefreshToken}, "")
		require.Equal(t, http.StatusOK, res.Status)
		var refreshed AuthData
		res.Decode(t, &refreshed)
		assert.NotEmpty(t, refreshed.AccessToken)

		res = Do(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": auth.AccessToken}, "")
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": auth.RefreshToken}, auth.AccessToken)
		require.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, http.StatusUnauthorized, Do(t, http.MethodGet, "/auth/me", nil, auth.AccessToken).Status)
		res = Do(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": auth.RefreshToken}, "")
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})
}
