// Package session 服务端会话：每个登录用户一份 store 和引导流程，
// 后端 token 加密后保存在数据库中
package session

import (
	"sync"
	"time"

	"go-tania/api"
	"go-tania/intro"
	"go-tania/store"
)

// Session 一个登录用户的状态
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	// ExpiresIn 后端 token 的有效秒数，0 表示不限
	ExpiresIn int

	API   *api.API
	Store *store.Store
	Intro *intro.Flow

	mu       sync.Mutex
	lastStep intro.Step
}

// LastStep 最近访问的引导步骤，未访问过时为空
func (s *Session) LastStep() intro.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStep
}

// SetLastStep 记录访问的引导步骤
func (s *Session) SetLastStep(step intro.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStep = step
}
