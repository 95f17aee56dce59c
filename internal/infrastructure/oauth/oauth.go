// Package oauth Google/Naver授权码登录
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/internal/infrastructure/config"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

var (
	ErrUnsupportedProvider = apperrors.BadRequest("不支持的登录方式")
	ErrProviderDisabled    = apperrors.BadRequest("该登录方式未启用")
	ErrExchangeFailed      = apperrors.Unauthorized("第三方登录失败，请重试")
)

// Provider 一个OAuth2登录平台
type Provider struct {
	name        string
	conf        *oauth2.Config
	userInfoURL string
	parse       func(body []byte) (user.SocialProfile, error)
}

// Name 平台名称
func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL 授权页地址
func (p *Provider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// Exchange 授权码换Token后拉取用户信息
func (p *Provider) Exchange(ctx context.Context, code string) (user.SocialProfile, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return user.SocialProfile{}, ErrExchangeFailed.WithMessagef("%s授权码无效或已过期", p.name)
	}

	resp, err := p.conf.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return user.SocialProfile{}, apperrors.Wrapf(err, "获取%s用户信息失败", p.name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.SocialProfile{}, apperrors.Wrapf(err, "读取%s用户信息失败", p.name)
	}
	if resp.StatusCode != http.StatusOK {
		return user.SocialProfile{}, ErrExchangeFailed.WithMessagef("获取%s用户信息失败(%d)", p.name, resp.StatusCode)
	}

	profile, err := p.parse(body)
	if err != nil {
		return user.SocialProfile{}, err
	}
	profile.Provider = p.name
	return profile, nil
}

// Registry 已配置的登录平台
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry 只注册配置了client_id的平台
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{providers: make(map[string]*Provider)}
	if cfg.OAuth.Google.ClientID != "" {
		r.Register(NewGoogle(cfg.OAuth.Google, GoogleEndpoints))
	}
	if cfg.OAuth.Naver.ClientID != "" {
		r.Register(NewNaver(cfg.OAuth.Naver, NaverEndpoints))
	}
	return r
}

// Register 注册平台
func (r *Registry) Register(p *Provider) {
	r.providers[p.name] = p
}

// Get 按名称获取平台
func (r *Registry) Get(name string) (*Provider, error) {
	switch name {
	case user.ProviderGoogle, user.ProviderNaver:
	default:
		return nil, ErrUnsupportedProvider
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrProviderDisabled
	}
	return p, nil
}

// Endpoints 平台的OAuth地址
type Endpoints struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

var GoogleEndpoints = Endpoints{
	AuthURL:     "https://accounts.google.com/o/oauth2/auth",
	TokenURL:    "https://oauth2.googleapis.com/token",
	UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
}

var NaverEndpoints = Endpoints{
	AuthURL:     "https://nid.naver.com/oauth2.0/authorize",
	TokenURL:    "https://nid.naver.com/oauth2.0/token",
	UserInfoURL: "https://openapi.naver.com/v1/nid/me",
}

// NewGoogle 创建Google登录
func NewGoogle(pc config.OAuthProviderConfig, ep Endpoints) *Provider {
	return &Provider{
		name:        user.ProviderGoogle,
		conf:        newOAuth2Config(pc, ep, "openid", "email", "profile"),
		userInfoURL: ep.UserInfoURL,
		parse: func(body []byte) (user.SocialProfile, error) {
			var info struct {
				ID    string `json:"id"`
				Email string `json:"email"`
				Name  string `json:"name"`
			}
			if err := json.Unmarshal(body, &info); err != nil {
				return user.SocialProfile{}, apperrors.Wrap(err, "解析Google用户信息失败")
			}
			return user.SocialProfile{ProviderID: info.ID, Email: info.Email, Name: info.Name}, nil
		},
	}
}

// NewNaver 创建Naver登录
// 用户信息格式：{"resultcode":"00","message":"success","response":{"id":...}}
func NewNaver(pc config.OAuthProviderConfig, ep Endpoints) *Provider {
	return &Provider{
		name:        user.ProviderNaver,
		conf:        newOAuth2Config(pc, ep),
		userInfoURL: ep.UserInfoURL,
		parse: func(body []byte) (user.SocialProfile, error) {
			var info struct {
				ResultCode string `json:"resultcode"`
				Message    string `json:"message"`
				Response   struct {
					ID    string `json:"id"`
					Email string `json:"email"`
					Name  string `json:"name"`
				} `json:"response"`
			}
			if err := json.Unmarshal(body, &info); err != nil {
				return user.SocialProfile{}, apperrors.Wrap(err, "解析Naver用户信息失败")
			}
			if info.ResultCode != "00" {
				return user.SocialProfile{}, ErrExchangeFailed.WithMessage(fmt.Sprintf("Naver用户信息获取失败: %s", info.Message))
			}
			return user.SocialProfile{
				ProviderID: info.Response.ID,
				Email:      info.Response.Email,
				Name:       info.Response.Name,
			}, nil
		},
	}
}

func newOAuth2Config(pc config.OAuthProviderConfig, ep Endpoints, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  pc.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   ep.AuthURL,
			TokenURL:  ep.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
