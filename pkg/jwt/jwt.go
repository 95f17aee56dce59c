package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

// TokenType 区分Access Token与Refresh Token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Options JWT管理器参数
type Options struct {
	Secret             string
	PreviousSecret     string // 密钥轮换期间仍可验证的旧密钥
	Issuer             string
	AccessTokenExpire  time.Duration
	RefreshTokenExpire time.Duration
}

// Manager JWT管理器
// 设计说明：
// 1. 双Token机制：Access Token（短期）+ Refresh Token（长期），通过type声明区分
// 2. 签发只使用当前密钥；验证先用当前密钥，签名不匹配时再尝试旧密钥
// 3. is_admin声明用于管理员接口鉴权
type Manager struct {
	secret             []byte
	previousSecret     []byte
	issuer             string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(opts Options) *Manager {
	m := &Manager{
		secret:             []byte(opts.Secret),
		issuer:             opts.Issuer,
		accessTokenExpire:  opts.AccessTokenExpire,
		refreshTokenExpire: opts.RefreshTokenExpire,
		now:                time.Now,
	}
	if opts.PreviousSecret != "" {
		m.previousSecret = []byte(opts.PreviousSecret)
	}
	if m.issuer == "" {
		m.issuer = "mall"
	}
	return m
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID  uint      `json:"user_id"`
	Email   string    `json:"email,omitempty"`
	IsAdmin bool      `json:"is_admin"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期（秒）
}

// GenerateTokenPair 生成Token对
func (m *Manager) GenerateTokenPair(userID uint, email string, isAdmin bool) (*TokenPair, error) {
	now := m.now()

	accessToken, err := m.sign(Claims{
		UserID:           userID,
		Email:            email,
		IsAdmin:          isAdmin,
		Type:             TokenTypeAccess,
		RegisteredClaims: m.registered(userID, now, m.accessTokenExpire),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	// Refresh Token不携带邮箱，刷新时从数据库重新读取用户
	refreshToken, err := m.sign(Claims{
		UserID:           userID,
		IsAdmin:          isAdmin,
		Type:             TokenTypeRefresh,
		RegisteredClaims: m.registered(userID, now, m.refreshTokenExpire),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token（不区分类型）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims, err := m.parseWith(tokenString, m.secret)
	if err != nil && errors.Is(err, jwt.ErrTokenSignatureInvalid) && m.previousSecret != nil {
		claims, err = m.parseWith(tokenString, m.previousSecret)
	}
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// ParseAccessToken 只接受type=access的Token
func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	return m.parseTyped(tokenString, TokenTypeAccess)
}

// ParseRefreshToken 只接受type=refresh的Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parseTyped(tokenString, TokenTypeRefresh)
}

// AccessTokenExpire Access Token有效期（用于黑名单TTL）
func (m *Manager) AccessTokenExpire() time.Duration {
	return m.accessTokenExpire
}

// RefreshTokenExpire Refresh Token有效期（用于会话TTL）
func (m *Manager) RefreshTokenExpire() time.Duration {
	return m.refreshTokenExpire
}

func (m *Manager) parseTyped(tokenString string, want TokenType) (*Claims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != want {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) parseWith(tokenString string, key []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (m *Manager) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) registered(userID uint, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    m.issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		// 同一秒内签发的Token也互不相同，轮换时不会误注销新Token
		ID: uuid.NewString(),
	}
}
