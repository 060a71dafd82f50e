// Package api 每个后端 REST 接口对应一个方法，只做参数编排
package api

import (
	"context"
	"net/url"
	"strconv"

	"go-tania/client"
)

// API 后端接口集合
type API struct {
	c *client.Client
}

// New 基于带 token 的 client 创建 API
func New(c *client.Client) *API {
	return &API{c: c}
}

// Client 底层 client
func (a *API) Client() *client.Client {
	return a.c
}

// envelope 后端统一响应外层
type envelope[T any] struct {
	Data      T   `json:"data"`
	TotalRows int `json:"total_rows"`
	Total     int `json:"total"`
	Page      int `json:"page"`
}

// Page 分页列表结果
type Page[T any] struct {
	Items     []T
	TotalRows int
	Page      int
}

func getData[T any](ctx context.Context, c *client.Client, path string) (T, error) {
	var env envelope[T]
	err := c.Get(ctx, path, &env)
	return env.Data, err
}

func sendData[T any](ctx context.Context, c *client.Client, method, path string, body client.Body) (T, error) {
	var env envelope[T]
	err := c.Do(ctx, method, path, body, &env)
	return env.Data, err
}

func getPage[T any](ctx context.Context, c *client.Client, path string) (Page[T], error) {
	var env envelope[[]T]
	if err := c.Get(ctx, path, &env); err != nil {
		return Page[T]{}, err
	}
	total := env.TotalRows
	if total == 0 {
		total = env.Total
	}
	items := env.Data
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalRows: total, Page: env.Page}, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func pageQuery(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
