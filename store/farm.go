package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// FarmStore 农场列表与当前农场
type FarmStore struct {
	api *api.API

	mu          sync.RWMutex
	farms       []models.Farm
	current     models.Farm
	types       []models.FarmType
	information models.CropInformation
}

// Farms 农场列表
func (s *FarmStore) Farms() []models.Farm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.farms)
}

// Current 当前农场，未选择时 uid 为空
func (s *FarmStore) Current() models.Farm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentID 当前农场 uid
func (s *FarmStore) CurrentID() (string, error) {
	farm := s.Current()
	if !farm.IsPersisted() {
		return "", ErrNoCurrentFarm
	}
	return farm.UID, nil
}

// HaveFarms 是否已有农场
func (s *FarmStore) HaveFarms() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.farms) > 0
}

// Types 农场类型
func (s *FarmStore) Types() []models.FarmType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.types)
}

// Information 当前农场的作物汇总
func (s *FarmStore) Information() models.CropInformation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.information
}

// FetchFarms 拉取农场列表。当前农场仍在列表中时保留，否则选中第一个
func (s *FarmStore) FetchFarms(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.api.FetchFarms(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farms = farms
	if cur, ok := findByUID(farms, s.current.UID); ok && s.current.UID != "" {
		s.current = cur
	} else if len(farms) > 0 {
		s.current = farms[0]
	} else {
		s.current = models.Farm{}
	}
	return clone(farms), nil
}

// SetCurrentFarm 切换当前农场
func (s *FarmStore) SetCurrentFarm(uid string) (models.Farm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	farm, ok := findByUID(s.farms, uid)
	if !ok {
		return models.Farm{}, ErrFarmNotFound
	}
	s.current = farm
	return farm, nil
}

// CreateFarm 创建农场并设为当前农场
func (s *FarmStore) CreateFarm(ctx context.Context, f models.Farm) (models.Farm, error) {
	farm, err := s.api.CreateFarm(ctx, f)
	if err != nil {
		return models.Farm{}, err
	}
	s.AddFarm(farm)
	return farm, nil
}

// AddFarm 直接提交一个已保存的农场
func (s *FarmStore) AddFarm(farm models.Farm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farms = append(s.farms, farm)
	s.current = farm
}

// UpdateFarm 更新农场
func (s *FarmStore) UpdateFarm(ctx context.Context, f models.Farm) (models.Farm, error) {
	farm, err := s.api.UpdateFarm(ctx, f)
	if err != nil {
		return models.Farm{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farms = replaceByUID(s.farms, farm)
	if s.current.UID == farm.UID {
		s.current = farm
	}
	return farm, nil
}

// SubmitFarm uid 为空时创建，否则更新
func (s *FarmStore) SubmitFarm(ctx context.Context, f models.Farm) (models.Farm, error) {
	if f.IsPersisted() {
		return s.UpdateFarm(ctx, f)
	}
	return s.CreateFarm(ctx, f)
}

// FetchFarmTypes 拉取农场类型
func (s *FarmStore) FetchFarmTypes(ctx context.Context) ([]models.FarmType, error) {
	types, err := s.api.FetchFarmTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = types
	return clone(types), nil
}

// FetchCropInformation 拉取当前农场的作物汇总
func (s *FarmStore) FetchCropInformation(ctx context.Context) (models.CropInformation, error) {
	farmID, err := s.CurrentID()
	if err != nil {
		return models.CropInformation{}, err
	}
	info, err := s.api.FetchCropInformation(ctx, farmID)
	if err != nil {
		return models.CropInformation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.information = info
	return info, nil
}

// FetchFarmInventories 可种植的物料
func (s *FarmStore) FetchFarmInventories(ctx context.Context) ([]models.InventoryPlantType, error) {
	return s.api.FetchFarmInventories(ctx)
}
