package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// CropStore 作物批次列表，保持一页窗口
type CropStore struct {
	api *api.API

	mu         sync.RWMutex
	crops      []models.Crop
	paging     Paging
	activities []models.CropActivity
}

// Crops 当前页的作物批次
func (s *CropStore) Crops() []models.Crop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.crops)
}

// Paging 分页状态
func (s *CropStore) Paging() Paging {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paging
}

// Activities 最近拉取的作物活动
func (s *CropStore) Activities() []models.CropActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.activities)
}

func (s *CropStore) setPage(page api.Page[models.Crop]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crops = page.Items
	s.paging = afterFetch(page.TotalRows)
}

// FetchCrops 按状态分页拉取
func (s *CropStore) FetchCrops(ctx context.Context, farmID string, page int, status string) (api.Page[models.Crop], error) {
	p, err := s.api.FetchCrops(ctx, farmID, page, status)
	if err != nil {
		return api.Page[models.Crop]{}, err
	}
	s.setPage(p)
	return p, nil
}

// FetchArchivedCrops 分页拉取已归档批次
func (s *CropStore) FetchArchivedCrops(ctx context.Context, farmID string, page int) (api.Page[models.Crop], error) {
	p, err := s.api.FetchArchivedCrops(ctx, farmID, page)
	if err != nil {
		return api.Page[models.Crop]{}, err
	}
	s.setPage(p)
	return p, nil
}

// FindCrop 获取单个批次，不改变列表
func (s *CropStore) FindCrop(ctx context.Context, uid string) (models.Crop, error) {
	return s.api.FindCropByUID(ctx, uid)
}

// SubmitCrop uid 为空时在 initial_area 中创建，否则更新
func (s *CropStore) SubmitCrop(ctx context.Context, c models.Crop) (models.Crop, error) {
	if !c.IsPersisted() {
		created, err := s.api.CreateCrop(ctx, c)
		if err != nil {
			return models.Crop{}, err
		}
		s.mu.Lock()
		s.crops, s.paging = afterCreate(s.crops, created, s.paging)
		s.mu.Unlock()
		return created, nil
	}
	updated, err := s.api.UpdateCrop(ctx, c)
	if err != nil {
		return models.Crop{}, err
	}
	s.commit(updated)
	return updated, nil
}

func (s *CropStore) commit(c models.Crop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crops = replaceByUID(s.crops, c)
}

// MoveCrop 移栽
func (s *CropStore) MoveCrop(ctx context.Context, uid string, m models.CropMovement) (models.Crop, error) {
	return s.api.MoveCrop(ctx, uid, m)
}

// HarvestCrop 收获
func (s *CropStore) HarvestCrop(ctx context.Context, uid string, h models.CropHarvest) (models.Crop, error) {
	return s.api.HarvestCrop(ctx, uid, h)
}

// DumpCrop 丢弃
func (s *CropStore) DumpCrop(ctx context.Context, uid string, d models.CropDump) (models.Crop, error) {
	return s.api.DumpCrop(ctx, uid, d)
}

// WaterCrop 浇水
func (s *CropStore) WaterCrop(ctx context.Context, uid string, w models.CropWatering) (models.Crop, error) {
	return s.api.WaterCrop(ctx, uid, w)
}

// PhotoCrop 上传批次照片
func (s *CropStore) PhotoCrop(ctx context.Context, uid, description string, photo api.Photo) error {
	return s.api.PhotoCrop(ctx, uid, description, photo)
}

// CreateNote 添加备注
func (s *CropStore) CreateNote(ctx context.Context, n models.Note) (models.Crop, error) {
	c, err := s.api.CreateCropNote(ctx, n)
	if err != nil {
		return models.Crop{}, err
	}
	s.commit(c)
	return c, nil
}

// DeleteNote 删除备注
func (s *CropStore) DeleteNote(ctx context.Context, n models.Note) (models.Crop, error) {
	c, err := s.api.DeleteCropNote(ctx, n)
	if err != nil {
		return models.Crop{}, err
	}
	s.commit(c)
	return c, nil
}

// FetchActivities 拉取批次活动记录
func (s *CropStore) FetchActivities(ctx context.Context, uid string) ([]models.CropActivity, error) {
	activities, err := s.api.FetchActivities(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = activities
	return clone(activities), nil
}
