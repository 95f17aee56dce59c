package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/mall/internal/infrastructure/config"
)

func newProviderServer(t *testing.T, userInfo string) (*httptest.Server, Endpoints) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "valid-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userInfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, Endpoints{
		AuthURL:     srv.URL + "/authorize",
		TokenURL:    srv.URL + "/token",
		UserInfoURL: srv.URL + "/me",
	}
}

var providerCfg = config.OAuthProviderConfig{
	ClientID:     "client",
	ClientSecret: "secret",
	RedirectURL:  "http://localhost:3000/auth/callback",
}

func TestGoogle_Exchange(t *testing.T) {
	_, ep := newProviderServer(t, `{"id":"g-1","email":"kim@gmail.com","name":"Kim"}`)
	p := NewGoogle(providerCfg, ep)

	profile, err := p.Exchange(context.Background(), "valid-code")
	require.NoError(t, err)
	assert.Equal(t, "google", profile.Provider)
	assert.Equal(t, "g-1", profile.ProviderID)
	assert.Equal(t, "kim@gmail.com", profile.Email)

	_, err = p.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestNaver_Exchange(t *testing.T) {
	_, ep := newProviderServer(t, `{"resultcode":"00","message":"success","response":{"id":"n-1","email":"lee@naver.com","name":"Lee"}}`)
	profile, err := NewNaver(providerCfg, ep).Exchange(context.Background(), "valid-code")
	require.NoError(t, err)
	assert.Equal(t, "naver", profile.Provider)
	assert.Equal(t, "n-1", profile.ProviderID)

	_, ep = newProviderServer(t, `{"resultcode":"024","message":"Authentication failed"}`)
	_, err = NewNaver(providerCfg, ep).Exchange(context.Background(), "valid-code")
	assert.ErrorIs(t, err, ErrExchangeFailed)
}

func TestProvider_AuthCodeURL(t *testing.T) {
	p := NewGoogle(providerCfg, GoogleEndpoints)
	u, err := url.Parse(p.AuthCodeURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, providerCfg.RedirectURL, u.Query().Get("redirect_uri"))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(&config.Config{OAuth: config.OAuthConfig{Google: providerCfg}})

	p, err := r.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	_, err = r.Get("naver")
	assert.ErrorIs(t, err, ErrProviderDisabled)

	_, err = r.Get("kakao")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
