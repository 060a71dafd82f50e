package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// TaskStore 任务列表
type TaskStore struct {
	api *api.API

	mu     sync.RWMutex
	tasks  []models.Task
	paging Paging
}

// Tasks 当前页任务
func (s *TaskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tasks)
}

// Paging 分页状态
func (s *TaskStore) Paging() Paging {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paging
}

func (s *TaskStore) setPage(p api.Page[models.Task]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = p.Items
	s.paging = afterFetch(p.TotalRows)
}

// FetchTasks 分页拉取任务
func (s *TaskStore) FetchTasks(ctx context.Context, page int) (api.Page[models.Task], error) {
	p, err := s.api.FetchTasks(ctx, page)
	if err != nil {
		return api.Page[models.Task]{}, err
	}
	s.setPage(p)
	return p, nil
}

// FetchTasksByAsset 拉取某个资产的任务
func (s *TaskStore) FetchTasksByAsset(ctx context.Context, page int, domain, assetID string) (api.Page[models.Task], error) {
	p, err := s.api.FindTasksByDomainAndAssetID(ctx, page, domain, assetID)
	if err != nil {
		return api.Page[models.Task]{}, err
	}
	s.setPage(p)
	return p, nil
}

// FetchTasksByFilter 按分类、优先级、状态筛选
func (s *TaskStore) FetchTasksByFilter(ctx context.Context, page int, f api.TaskFilter) (api.Page[models.Task], error) {
	p, err := s.api.FindTasksByCategoryAndPriorityAndStatus(ctx, page, f)
	if err != nil {
		return api.Page[models.Task]{}, err
	}
	s.setPage(p)
	return p, nil
}

// SubmitTask uid 为空时创建，否则更新
func (s *TaskStore) SubmitTask(ctx context.Context, t models.Task) (models.Task, error) {
	if !t.IsPersisted() {
		created, err := s.api.CreateTask(ctx, t)
		if err != nil {
			return models.Task{}, err
		}
		s.mu.Lock()
		s.tasks, s.paging = afterCreate(s.tasks, created, s.paging)
		s.mu.Unlock()
		return created, nil
	}
	updated, err := s.api.UpdateTask(ctx, t)
	if err != nil {
		return models.Task{}, err
	}
	s.commit(updated)
	return updated, nil
}

func (s *TaskStore) commit(t models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = replaceByUID(s.tasks, t)
}

// SetTaskDue 标记到期
func (s *TaskStore) SetTaskDue(ctx context.Context, uid string) (models.Task, error) {
	t, err := s.api.SetTaskDue(ctx, uid)
	if err != nil {
		return models.Task{}, err
	}
	s.commit(t)
	return t, nil
}

// SetTaskCompleted 标记完成
func (s *TaskStore) SetTaskCompleted(ctx context.Context, uid string) (models.Task, error) {
	t, err := s.api.SetTaskCompleted(ctx, uid)
	if err != nil {
		return models.Task{}, err
	}
	s.commit(t)
	return t, nil
}
