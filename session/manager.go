package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-tania/api"
	"go-tania/client"
	"go-tania/intro"
	"go-tania/models"
	"go-tania/store"
	"go-tania/utils"
)

// ErrStateMismatch 登录跳转返回的 state 与请求不一致
var ErrStateMismatch = errors.New("session: login state mismatch")

// Options Manager 配置
type Options struct {
	ClientID    string
	RedirectURI string
	TTL         time.Duration
}

// Manager 创建、查找、注销会话
type Manager struct {
	base   *client.Client
	repo   Repository
	box    *Box
	signer *Signer
	opts   Options
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	live map[string]*Session
}

// NewManager 创建 Manager，base 为不带 token 的后端 client
func NewManager(base *client.Client, repo Repository, box *Box, signer *Signer, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		base:   base,
		repo:   repo,
		box:    box,
		signer: signer,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		live:   make(map[string]*Session),
	}
}

func (m *Manager) build(id, username, token string, created time.Time, expiresIn int) *Session {
	a := api.New(m.base.WithToken(token))
	st := store.New(a)
	st.User.SignIn(models.User{UID: username, Username: username, Intro: true})
	return &Session{
		ID:        id,
		Username:  username,
		CreatedAt: created,
		ExpiresIn: expiresIn,
		API:       a,
		Store:     st,
		Intro:     intro.NewFlow(a, st),
	}
}

// Login 向后端登录，成功后创建会话并返回会话 JWT
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, string, error) {
	state, err := utils.GenerateState()
	if err != nil {
		return nil, "", err
	}
	tok, err := api.New(m.base).Login(ctx, api.Credentials{
		Username:    username,
		Password:    password,
		ClientID:    m.opts.ClientID,
		RedirectURI: m.opts.RedirectURI,
		State:       state,
	})
	if err != nil {
		return nil, "", err
	}
	if tok.State != "" && tok.State != state {
		return nil, "", ErrStateMismatch
	}

	id, err := utils.GenerateSessionID()
	if err != nil {
		return nil, "", err
	}
	sealed, err := m.box.Seal(tok.AccessToken)
	if err != nil {
		return nil, "", err
	}
	now := m.now()
	if err := m.repo.Save(ctx, Record{
		ID:        id,
		Username:  username,
		Token:     sealed,
		ExpiresIn: tok.ExpiresIn,
		CreatedAt: now,
	}); err != nil {
		return nil, "", err
	}

	signed, err := m.signer.Sign(id, username)
	if err != nil {
		return nil, "", err
	}

	sess := m.build(id, username, tok.AccessToken, now, tok.ExpiresIn)
	if _, err := sess.Store.Farm.FetchFarms(ctx); err != nil {
		m.logger.Warn("fetch farms after login", zap.String("session_id", id), zap.Error(err))
	}
	m.mu.Lock()
	m.live[id] = sess
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", id), zap.String("username", username))
	return sess, signed, nil
}

// Authenticate 校验会话 JWT 并返回会话
func (m *Manager) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, claims.SessionID)
}

// Get 返回会话，进程重启后从存储中恢复
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if !utils.ValidateSessionID(id) {
		return nil, ErrSessionNotFound
	}
	m.mu.Lock()
	sess, ok := m.live[id]
	if ok && m.expired(sess.CreatedAt, sess.ExpiresIn) {
		delete(m.live, id)
		ok = false
	}
	m.mu.Unlock()
	if ok {
		return sess, nil
	}

	rec, err := m.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.expired(rec.CreatedAt, rec.ExpiresIn) {
		_ = m.repo.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	token, err := m.box.Open(rec.Token)
	if err != nil {
		m.logger.Warn("drop undecryptable session", zap.String("session_id", id), zap.Error(err))
		_ = m.repo.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}

	sess = m.build(rec.ID, rec.Username, token, rec.CreatedAt, rec.ExpiresIn)
	if _, err := sess.Store.Farm.FetchFarms(ctx); err != nil {
		if client.IsUnauthorized(err) {
			_ = m.repo.Delete(ctx, id)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.live[id]; ok {
		return existing, nil
	}
	m.live[id] = sess
	m.logger.Debug("session restored", zap.String("session_id", id))
	return sess, nil
}

// lifetime 会话有效期，不超过后端 token 的 expires_in（秒）
func (m *Manager) lifetime(expiresIn int) time.Duration {
	ttl := m.opts.TTL
	if expiresIn > 0 {
		backend := time.Duration(expiresIn) * time.Second
		if ttl <= 0 || backend < ttl {
			ttl = backend
		}
	}
	return ttl
}

func (m *Manager) expired(created time.Time, expiresIn int) bool {
	ttl := m.lifetime(expiresIn)
	return ttl > 0 && m.now().Sub(created) > ttl
}

// Destroy 注销会话
func (m *Manager) Destroy(ctx context.Context, id string) error {
	m.mu.Lock()
	sess, ok := m.live[id]
	delete(m.live, id)
	m.mu.Unlock()
	if ok {
		sess.Store.User.SignOut()
	}
	return m.repo.Delete(ctx, id)
}

// Purge 清理过期会话。存储中 token 先于 TTL 过期的记录在下次 Get 时删除
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	m.mu.Lock()
	for id, sess := range m.live {
		if m.expired(sess.CreatedAt, sess.ExpiresIn) {
			delete(m.live, id)
		}
	}
	m.mu.Unlock()
	if m.opts.TTL <= 0 {
		return 0, nil
	}
	return m.repo.DeleteBefore(ctx, m.now().Add(-m.opts.TTL))
}
