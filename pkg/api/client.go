// Package api 是 Buy or Not 后端的 REST 客户端
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout 单次请求的默认超时
const DefaultTimeout = 10 * time.Second

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// Client 后端 REST 客户端
// 可以被多个 goroutine 同时使用
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义 http.Client（测试中传入 httptest 的客户端）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAccessToken 设置 Bearer token
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// NewClient 创建客户端，baseURL 末尾的斜杠会被去掉
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回规范化后的 base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveURL 绝对 URL 原样返回；相对路径与 base URL 之间恰好一个斜杠
func (c *Client) ResolveURL(path string) string {
	if absoluteURL.MatchString(path) {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

// envelope 服务端统一响应结构
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Status    any             `json:"status"`
	ErrorCode string          `json:"errorCode"`
}

// do 发送 JSON 请求并把 data 字段解码到 out
//
// 响应体带有 errorCode 时返回 *APIError（无论 HTTP 状态码）；
// 没有 errorCode 的非 2xx 响应返回普通错误。
func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	// 非 JSON 响应体视为空
	if len(raw) > 0 && json.Unmarshal(raw, &env) != nil {
		env = envelope{}
	}

	if env.ErrorCode != "" {
		msg := env.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return &APIError{Message: msg, ErrorCode: env.ErrorCode, Status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s returned %s", method, path, resp.Status)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// idempotencyHeader 为写请求生成幂等键
func idempotencyHeader() http.Header {
	h := http.Header{}
	h.Set("Idempotency-Key", uuid.NewString())
	return h
}
