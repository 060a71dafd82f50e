package store

import (
	"context"
	"sync"

	"go-tania/api"
	"go-tania/models"
)

// UserStore 当前用户
type UserStore struct {
	api   *api.API
	farms *FarmStore

	mu      sync.RWMutex
	current models.User
}

// Current 当前用户
func (s *UserStore) Current() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SignIn 登录成功后提交用户，新登录的用户需要走引导流程
func (s *UserStore) SignIn(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u
}

// IsAuthenticated uid 非空即已登录
func (s *UserStore) IsAuthenticated() bool {
	return s.Current().IsAuthenticated()
}

// IsNewUser 还没有任何农场
func (s *UserStore) IsNewUser() bool {
	return !s.farms.HaveFarms()
}

// CanSeeNavigator 已登录且不是新用户
func (s *UserStore) CanSeeNavigator() bool {
	return s.IsAuthenticated() && !s.IsNewUser()
}

// CompletedIntro 标记引导流程已完成
func (s *UserStore) CompletedIntro() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Intro = false
}

// SignOut 清空 uid
func (s *UserStore) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.UID = ""
}

// ChangePassword 修改密码
func (s *UserStore) ChangePassword(ctx context.Context, p api.PasswordChange) error {
	return s.api.ChangePassword(ctx, p)
}
