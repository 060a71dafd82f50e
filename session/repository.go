package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound 会话不存在或已注销
var ErrSessionNotFound = errors.New("session not found")

// Record 持久化的会话，Token 为密文
type Record struct {
	ID        string
	Username  string
	Token     string
	ExpiresIn int
	CreatedAt time.Time
}

// TokenExpired 后端 token 是否已过期，ExpiresIn 为 0 时不过期
func (r Record) TokenExpired(now time.Time) bool {
	return r.ExpiresIn > 0 && now.Sub(r.CreatedAt) > time.Duration(r.ExpiresIn)*time.Second
}

// Repository 会话存储
type Repository interface {
	Save(ctx context.Context, r Record) error
	Find(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
}

// SQLRepository 基于 sessions 表的存储，语句兼容 mysql 和 sqlite
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository 创建存储，表结构由 config.Migrate 创建
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Save 写入会话，id 已存在时覆盖
func (r *SQLRepository) Save(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx,
		"REPLACE INTO sessions (id, username, token, expires_in, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.Username, rec.Token, rec.ExpiresIn, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find 按 id 查询
func (r *SQLRepository) Find(ctx context.Context, id string) (Record, error) {
	var (
		rec     Record
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, token, expires_in, created_at FROM sessions WHERE id = ?", id,
	).Scan(&rec.ID, &rec.Username, &rec.Token, &rec.ExpiresIn, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrSessionNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("find session: %w", err)
	}
	rec.CreatedAt = time.Unix(created, 0)
	return rec, nil
}

// Delete 删除会话，不存在时不报错
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteBefore 删除创建时间早于 t 的会话
func (r *SQLRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE created_at < ?", t.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
