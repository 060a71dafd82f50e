package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// ReservoirStore 当前农场的水源
type ReservoirStore struct {
	api *api.API

	mu         sync.RWMutex
	reservoirs []models.Reservoir
	current    models.Reservoir
}

// Reservoirs 水源列表
func (s *ReservoirStore) Reservoirs() []models.Reservoir {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.reservoirs)
}

// Current 最近查看的水源
func (s *ReservoirStore) Current() models.Reservoir {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FetchReservoirs 拉取农场的水源，整体替换
func (s *ReservoirStore) FetchReservoirs(ctx context.Context, farmID string) ([]models.Reservoir, error) {
	reservoirs, err := s.api.FetchReservoirs(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if reservoirs == nil {
		reservoirs = []models.Reservoir{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservoirs = reservoirs
	return clone(reservoirs), nil
}

// FindReservoir 获取单个水源并设为当前
func (s *ReservoirStore) FindReservoir(ctx context.Context, farmID, uid string) (models.Reservoir, error) {
	r, err := s.api.FindReservoirByUID(ctx, farmID, uid)
	if err != nil {
		return models.Reservoir{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
	return r, nil
}

// AddReservoir 直接提交一个已保存的水源
func (s *ReservoirStore) AddReservoir(r models.Reservoir) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservoirs = append(s.reservoirs, r)
}

// SubmitReservoir uid 为空时创建，否则更新
func (s *ReservoirStore) SubmitReservoir(ctx context.Context, farmID string, r models.Reservoir) (models.Reservoir, error) {
	if !r.IsPersisted() {
		created, err := s.api.CreateReservoir(ctx, farmID, r)
		if err != nil {
			return models.Reservoir{}, err
		}
		s.AddReservoir(created)
		return created, nil
	}
	updated, err := s.api.UpdateReservoir(ctx, r)
	if err != nil {
		return models.Reservoir{}, err
	}
	s.commit(updated)
	return updated, nil
}

// CreateNote 添加备注，提交后端返回的水源
func (s *ReservoirStore) CreateNote(ctx context.Context, n models.Note) (models.Reservoir, error) {
	r, err := s.api.CreateReservoirNote(ctx, n)
	if err != nil {
		return models.Reservoir{}, err
	}
	s.commit(r)
	return r, nil
}

// DeleteNote 删除备注
func (s *ReservoirStore) DeleteNote(ctx context.Context, n models.Note) (models.Reservoir, error) {
	r, err := s.api.DeleteReservoirNote(ctx, n)
	if err != nil {
		return models.Reservoir{}, err
	}
	s.commit(r)
	return r, nil
}

func (s *ReservoirStore) commit(r models.Reservoir) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservoirs = replaceByUID(s.reservoirs, r)
	if s.current.UID == r.UID {
		s.current = r
	}
}
