package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// InventoryStore 物料列表
type InventoryStore struct {
	api *api.API

	mu        sync.RWMutex
	materials []models.Material
	paging    Paging
}

// Materials 当前页物料
func (s *InventoryStore) Materials() []models.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.materials)
}

// Paging 分页状态
func (s *InventoryStore) Paging() Paging {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paging
}

// FetchMaterials 分页拉取物料
func (s *InventoryStore) FetchMaterials(ctx context.Context, page int) (api.Page[models.Material], error) {
	p, err := s.api.FetchMaterials(ctx, page)
	if err != nil {
		return api.Page[models.Material]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = p.Items
	s.paging = afterFetch(p.TotalRows)
	return p, nil
}

// FetchAgrochemicalMaterials 按细分类型拉取农药化肥，不改变列表
func (s *InventoryStore) FetchAgrochemicalMaterials(ctx context.Context, typeDetail string) ([]models.Material, error) {
	return s.api.FetchAgrochemicalMaterials(ctx, typeDetail)
}

// SubmitMaterial uid 为空时创建，否则更新
func (s *InventoryStore) SubmitMaterial(ctx context.Context, m models.Material) (models.Material, error) {
	if !m.IsPersisted() {
		created, err := s.api.CreateMaterial(ctx, m)
		if err != nil {
			return models.Material{}, err
		}
		s.mu.Lock()
		s.materials, s.paging = afterCreate(s.materials, created, s.paging)
		s.mu.Unlock()
		return created, nil
	}
	updated, err := s.api.UpdateMaterial(ctx, m)
	if err != nil {
		return models.Material{}, err
	}
	s.mu.Lock()
	s.materials = replaceByUID(s.materials, updated)
	s.mu.Unlock()
	return updated, nil
}
