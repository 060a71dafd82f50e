package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// AreaStore 当前农场的区域
type AreaStore struct {
	api *api.API

	mu      sync.RWMutex
	areas   []models.Area
	current models.Area
}

// Areas 区域列表
func (s *AreaStore) Areas() []models.Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.areas)
}

// Current 最近查看的区域
func (s *AreaStore) Current() models.Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FetchAreas 拉取农场的区域，整体替换
func (s *AreaStore) FetchAreas(ctx context.Context, farmID string) ([]models.Area, error) {
	areas, err := s.api.FetchAreas(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if areas == nil {
		areas = []models.Area{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = areas
	return clone(areas), nil
}

// FindArea 获取单个区域并设为当前
func (s *AreaStore) FindArea(ctx context.Context, farmID, uid string) (models.Area, error) {
	ar, err := s.api.FindAreaByUID(ctx, farmID, uid)
	if err != nil {
		return models.Area{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ar
	return ar, nil
}

// AddArea 直接提交一个已保存的区域
func (s *AreaStore) AddArea(ar models.Area) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = append(s.areas, ar)
}

// SubmitArea uid 为空时创建，否则更新；photo 可为 nil
func (s *AreaStore) SubmitArea(ctx context.Context, farmID string, ar models.Area, photo *api.Photo) (models.Area, error) {
	if !ar.IsPersisted() {
		created, err := s.api.CreateArea(ctx, farmID, ar, photo)
		if err != nil {
			return models.Area{}, err
		}
		s.AddArea(created)
		return created, nil
	}
	updated, err := s.api.UpdateArea(ctx, ar, photo)
	if err != nil {
		return models.Area{}, err
	}
	s.commit(updated)
	return updated, nil
}

// CreateNote 添加备注
func (s *AreaStore) CreateNote(ctx context.Context, n models.Note) (models.Area, error) {
	ar, err := s.api.CreateAreaNote(ctx, n)
	if err != nil {
		return models.Area{}, err
	}
	s.commit(ar)
	return ar, nil
}

// DeleteNote 删除备注
func (s *AreaStore) DeleteNote(ctx context.Context, n models.Note) (models.Area, error) {
	ar, err := s.api.DeleteAreaNote(ctx, n)
	if err != nil {
		return models.Area{}, err
	}
	s.commit(ar)
	return ar, nil
}

func (s *AreaStore) commit(ar models.Area) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = replaceByUID(s.areas, ar)
	if s.current.UID == ar.UID {
		s.current = ar
	}
}
