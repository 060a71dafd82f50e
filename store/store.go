// Package store 每个用户会话一份的状态容器
//
// 各实体一个 store，动作先调用后端接口，再把响应原样写入状态。
// 读取方法返回副本，store 之间互不加锁。
package store

import (
	"errors"

	"go-tania/api"
	"go-tania/utils"
)

var (
	// ErrFarmNotFound 指定的农场不在当前列表中
	ErrFarmNotFound = errors.New("farm not found")
	// ErrNoCurrentFarm 尚未选择当前农场
	ErrNoCurrentFarm = errors.New("no current farm selected")
)

// Store 聚合全部实体 store
type Store struct {
	Farm      *FarmStore
	Reservoir *ReservoirStore
	Area      *AreaStore
	Crop      *CropStore
	Inventory *InventoryStore
	Task      *TaskStore
	Location  *LocationStore
	User      *UserStore
}

// New 基于已带 token 的 API 创建 Store
func New(a *api.API) *Store {
	farm := &FarmStore{api: a}
	return &Store{
		Farm:      farm,
		Reservoir: &ReservoirStore{api: a},
		Area:      &AreaStore{api: a},
		Crop:      &CropStore{api: a},
		Inventory: &InventoryStore{api: a},
		Task:      &TaskStore{api: a},
		Location:  &LocationStore{api: a},
		User:      &UserStore{api: a, farms: farm},
	}
}

type entity interface {
	GetUID() string
}

// replaceByUID 用 item 替换 uid 相同的元素，返回新切片
func replaceByUID[T entity](items []T, item T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if it.GetUID() == item.GetUID() {
			out[i] = item
			continue
		}
		out[i] = it
	}
	return out
}

func findByUID[T entity](items []T, uid string) (T, bool) {
	for _, it := range items {
		if it.GetUID() == uid {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func clone[T any](items []T) []T {
	return append(make([]T, 0, len(items)), items...)
}

// Paging 列表分页状态
type Paging struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// afterFetch 拉取列表后按后端总数计算页数
func afterFetch(total int) Paging {
	return Paging{Total: total, Pages: utils.CalculateNumberOfPages(total)}
}

// afterCreate 新建后列表窗口前插，页数按窗口长度加一重算
func afterCreate[T any](items []T, item T, p Paging) ([]T, Paging) {
	items = utils.PrependWindow(items, item, utils.PageLength)
	p.Total++
	p.Pages = utils.CalculateNumberOfPages(len(items) + 1)
	return items, p
}
