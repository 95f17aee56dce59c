package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/mall/internal/application/apptest"
	appuser "github.com/xiebiao/mall/internal/application/user"
	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	"github.com/xiebiao/mall/internal/infrastructure/oauth"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/jwt"
)

type authFixture struct {
	store     *apptest.Store
	jwt       *jwt.Manager
	blacklist *apptest.Blacklist
	svc       user.Service
	register  *appuser.RegisterUseCase
	login     *appuser.LoginUseCase
	refresh   *appuser.RefreshTokenUseCase
	logout    *appuser.LogoutUseCase
	profile   *appuser.GetProfileUseCase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := apptest.NewStore()
	manager := jwt.NewManager(jwt.Options{
		Secret:             "test-secret",
		AccessTokenExpire:  time.Hour,
		RefreshTokenExpire: 24 * time.Hour,
	})
	blacklist := apptest.NewBlacklist()
	svc := user.NewServiceWithCost(store.Users(), bcrypt.MinCost)
	log := zap.NewNop()

	return &authFixture{
		store:     store,
		jwt:       manager,
		blacklist: blacklist,
		svc:       svc,
		register:  appuser.NewRegisterUseCase(svc, manager, log),
		login:     appuser.NewLoginUseCase(svc, manager, log),
		refresh:   appuser.NewRefreshTokenUseCase(store.Users(), manager, blacklist),
		logout:    appuser.NewLogoutUseCase(manager, blacklist, log),
		profile:   appuser.NewGetProfileUseCase(store.Users()),
	}
}

func (f *authFixture) signup(t *testing.T, email string) *appuser.AuthResponse {
	t.Helper()
	resp, err := f.register.Execute(context.Background(), appuser.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "김철수",
		Phone:    "010-0000-0000",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.signup(t, "  Buyer@Example.com ")

	assert.Equal(t, "buyer@example.com", resp.User.Email)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.False(t, resp.User.IsAdmin)

	claims, err := f.jwt.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = f.register.Execute(context.Background(), appuser.RegisterRequest{
		Email: "buyer@example.com", Password: "password123", Name: "重复",
	})
	assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	assert.Equal(t, http.StatusConflict, apperrors.GetAppError(err).Status)
}

func TestRegister_Validation(t *testing.T) {
	f := newAuthFixture(t)
	tests := []struct {
		name string
		req  appuser.RegisterRequest
		want error
	}{
		{"邮箱格式错误", appuser.RegisterRequest{Email: "not-an-email", Password: "password123", Name: "a"}, user.ErrInvalidEmail},
		{"密码过短", appuser.RegisterRequest{Email: "a@b.com", Password: "short", Name: "a"}, user.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.register.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "buyer@example.com")
	ctx := context.Background()

	resp, err := f.login.Execute(ctx, appuser.LoginRequest{Email: "BUYER@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err = f.login.Execute(ctx, appuser.LoginRequest{Email: "buyer@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = f.login.Execute(ctx, appuser.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, apperrors.GetAppError(err).Status)
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.signup(t, "buyer@example.com")

	u, err := f.store.Users().FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, f.store.Users().Update(context.Background(), u))

	_, err = f.login.Execute(context.Background(), appuser.LoginRequest{Email: "buyer@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrInactiveUser)

	_, err = f.refresh.Execute(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, user.ErrInactiveUser)
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.signup(t, "buyer@example.com")
	ctx := context.Background()

	refreshed, err := f.refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// 旧Refresh Token只能使用一次
	_, err = f.refresh.Execute(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// 新Token可以继续刷新
	_, err = f.refresh.Execute(ctx, refreshed.RefreshToken)
	require.NoError(t, err)

	// Access Token不能用来刷新
	_, err = f.refresh.Execute(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = f.refresh.Execute(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogout_RevokesTokens(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.signup(t, "buyer@example.com")
	ctx := context.Background()

	require.NoError(t, f.logout.Execute(ctx, appuser.LogoutRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}))

	revoked, err := f.blacklist.IsRevoked(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = f.refresh.Execute(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// 无效Token直接忽略
	assert.NoError(t, f.logout.Execute(ctx, appuser.LogoutRequest{AccessToken: "garbage"}))
}

func TestGetProfile(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.signup(t, "buyer@example.com")

	dto, err := f.profile.Execute(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "김철수", dto.Name)
	assert.Equal(t, user.ProviderLocal, dto.Provider)

	_, err = f.profile.Execute(context.Background(), 9999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSeedAdmin(t *testing.T) {
	f := newAuthFixture(t)
	seed := appuser.NewSeedAdminUseCase(f.svc, zap.NewNop())
	ctx := context.Background()

	admin, err := seed.Execute(ctx, "admin@example.com", "admin-password", "")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "管理员", admin.Name)

	// 已有账号直接提升
	existing := f.signup(t, "staff@example.com")
	promoted, err := seed.Execute(ctx, "staff@example.com", "", "Staff")
	require.NoError(t, err)
	assert.Equal(t, existing.User.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin)

	resp, err := f.login.Execute(ctx, appuser.LoginRequest{Email: "staff@example.com", Password: "password123"})
	require.NoError(t, err)
	claims, err := f.jwt.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func newSocialServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "provider-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":    "google-42",
			"email": "social@example.com",
			"name":  "Social User",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSocialLogin(t *testing.T) {
	f := newAuthFixture(t)
	srv := newSocialServer(t)

	registry := oauth.NewRegistry(&config.Config{})
	registry.Register(oauth.NewGoogle(config.OAuthProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
	}, oauth.Endpoints{
		AuthURL:     srv.URL + "/auth",
		TokenURL:    srv.URL + "/token",
		UserInfoURL: srv.URL + "/userinfo",
	}))
	social := appuser.NewSocialLoginUseCase(registry, f.svc, f.jwt, zap.NewNop())
	ctx := context.Background()

	authURL, err := social.AuthURL(user.ProviderGoogle)
	require.NoError(t, err)
	parsed, err := url.Parse(authURL.URL)
	require.NoError(t, err)
	assert.Equal(t, authURL.State, parsed.Query().Get("state"))
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))

	first, err := social.Callback(ctx, user.ProviderGoogle, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "social@example.com", first.User.Email)
	assert.Equal(t, user.ProviderGoogle, first.User.Provider)

	second, err := social.Callback(ctx, user.ProviderGoogle, "good-code")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID, "同一社交账号不重复创建")

	_, err = social.Callback(ctx, user.ProviderGoogle, "bad-code")
	assert.ErrorIs(t, err, oauth.ErrExchangeFailed)

	_, err = social.Callback(ctx, user.ProviderNaver, "good-code")
	assert.ErrorIs(t, err, oauth.ErrProviderDisabled)

	_, err = social.AuthURL("kakao")
	assert.ErrorIs(t, err, oauth.ErrUnsupportedProvider)

	_, err = social.Callback(ctx, user.ProviderGoogle, " ")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
