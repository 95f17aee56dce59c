//go:build integration

// Package integration 针对运行中的API服务的黑盒测试
//
//	MALL_RATE_LIMIT_ENABLED=false go run ./cmd/api
//	go run ./cmd/seed --email admin@example.com --password admin-pass-123
//	MALL_ADMIN_EMAIL=admin@example.com MALL_ADMIN_PASSWORD=admin-pass-123 go test -tags integration ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const timeout = 10 * time.Second

var (
	client  = &http.Client{Timeout: timeout}
	counter atomic.Int64
)

// baseURL 默认本地服务，可用MALL_BASE_URL覆盖
func baseURL() string {
	if u := os.Getenv("MALL_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

// Result 原始响应
type Result struct {
	Status int
	Body   []byte
}

// Decode 解析响应体
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", string(r.Body))
}

// ErrorCode 错误响应中的code
func (r *Result) ErrorCode(t *testing.T) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	r.Decode(t, &body)
	return body.Code
}

// Do 发送JSON请求
func Do(t *testing.T, method, path string, data interface{}, token string) *Result {
	t.Helper()
	var reader io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL()+path, reader)
	require.NoError(t, err)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败，服务是否已启动？")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return &Result{Status: resp.StatusCode, Body: body}
}

// UniqueEmail 每次调用生成不同的邮箱
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), counter.Add(1))
}

// AuthData 注册/登录响应
type AuthData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID      uint   `json:"id"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"user"`
}

// RegisterTestUser 注册新用户并返回Token
func RegisterTestUser(t *testing.T, name string) (email string, auth AuthData) {
	t.Helper()
	email = UniqueEmail(name)
	res := Do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"email":    email,
		"password": "Test1234!",
		"name":     name,
	}, "")
	require.Equal(t, http.StatusOK, res.Status, "注册失败: %s", string(res.Body))
	res.Decode(t, &auth)
	return email, auth
}

// AdminToken 用cmd/seed创建的管理员登录，未配置时跳过测试
func AdminToken(t *testing.T) string {
	t.Helper()
	email, password := os.Getenv("MALL_ADMIN_EMAIL"), os.Getenv("MALL_ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("未设置MALL_ADMIN_EMAIL/MALL_ADMIN_PASSWORD")
	}
	res := Do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, res.Status, "管理员登录失败: %s", string(res.Body))
	var auth AuthData
	res.Decode(t, &auth)
	require.True(t, auth.User.IsAdmin, "账号不是管理员")
	return auth.AccessToken
}

// ProductData 商品响应
type ProductData struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	ViewCount     int64  `json:"viewCount"`
}

// CreateTestProduct 管理员上架商品
func CreateTestProduct(t *testing.T, adminToken, name string, price int64, stock int) ProductData {
	t.Helper()
	res := Do(t, http.MethodPost, "/admin/products", map[string]interface{}{
		"name":          fmt.Sprintf("%s-%d", name, counter.Add(1)),
		"price":         price,
		"stockQuantity": stock,
		"colors":        []string{"블랙"},
		"sizes":         []string{"M"},
	}, adminToken)
	require.Equal(t, http.StatusOK, res.Status, "上架失败: %s", string(res.Body))
	var p ProductData
	res.Decode(t, &p)
	return p
}

// GetProduct 查询商品（会增加浏览量）
func GetProduct(t *testing.T, id uint) ProductData {
	t.Helper()
	res := Do(t, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, "")
	require.Equal(t, http.StatusOK, res.Status)
	var p ProductData
	res.Decode(t, &p)
	return p
}

// OrderRequest 下单请求体
func OrderRequest(productID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": productID, "quantity": quantity, "color": "블랙", "size": "M"},
		},
		"shippingAddress": map[string]string{
			"recipientName": "홍길동",
			"phone":         "010-1234-5678",
			"postalCode":    "06236",
			"address":       "서울특별시 강남구 테헤란로 123",
		},
		"paymentMethod": "card",
	}
}

// OrderData 下单响应
type OrderData struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
}
