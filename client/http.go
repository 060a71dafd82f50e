package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultAPIPrefix 后端 REST 接口前缀
const DefaultAPIPrefix = "/api"

// Client 封装对后端 REST 接口的访问
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	logger     *zap.Logger
}

// Option 配置 Client
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
		}
	}
}

// New 创建 Client，baseURL 为 API 根地址（含 /api 前缀）
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken 返回携带 Bearer token 的副本
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token 当前使用的 token
func (c *Client) Token() string {
	return c.token
}

// BaseURL API 根地址
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body Body) (*http.Request, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		reader, contentType, err = body.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// Do 发送请求，并将 2xx 响应的 JSON 解码到 out（out 可为 nil）
func (c *Client) Do(ctx context.Context, method, path string, body Body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("request rejected",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("field_name", apiErr.FieldName),
				zap.String("error_message", apiErr.ErrorMessage))
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// Get 发送 GET 请求
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post 发送 POST 请求
func (c *Client) Post(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put 发送 PUT 请求
func (c *Client) Put(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete 发送 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string, body Body, out any) error {
	return c.Do(ctx, http.MethodDelete, path, body, out)
}

// Token 登录结果
type Token struct {
	AccessToken string
	ExpiresIn   int
	State       string
}

// Login 提交登录表单，从跳转地址的查询参数中取出 access_token
func (c *Client) Login(ctx context.Context, path string, form Form) (Token, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, form)
	if err != nil {
		return Token{}, err
	}

	hc := *c.httpClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := hc.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	var redirect *url.URL
	switch {
	case resp.StatusCode >= 300 && resp.StatusCode <= 399:
		redirect, err = resp.Location()
		if err != nil {
			return Token{}, fmt.Errorf("login redirect: %w", err)
		}
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		redirect = resp.Request.URL
	default:
		data, _ := io.ReadAll(resp.Body)
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.Warn("login rejected", zap.Int("status", resp.StatusCode), zap.String("error_message", apiErr.ErrorMessage))
		return Token{}, apiErr
	}

	return ParseTokenURL(redirect)
}

// ParseTokenURL 解析跳转地址中的 access_token、expires_in、state
func ParseTokenURL(u *url.URL) (Token, error) {
	if u == nil {
		return Token{}, ErrNoAccessToken
	}
	q := u.Query()
	if u.Fragment != "" && q.Get("access_token") == "" {
		// implicit grant 也可能放在 fragment 里
		if fq, err := url.ParseQuery(u.Fragment); err == nil {
			q = fq
		}
	}
	token := Token{
		AccessToken: q.Get("access_token"),
		State:       q.Get("state"),
	}
	if token.AccessToken == "" {
		return Token{}, ErrNoAccessToken
	}
	if raw := q.Get("expires_in"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Token{}, fmt.Errorf("parse expires_in %q: %w", raw, err)
		}
		token.ExpiresIn = n
	}
	return token, nil
}

// IsNotFound 后端返回 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
