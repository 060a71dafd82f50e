package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// 支持的数据库驱动
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenDB 连接数据库并确认可用
func OpenDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite 只允许一个写连接
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migration 迁移结构
type Migration struct {
	Name string
	SQL  string
}

// Migrate 执行尚未运行的迁移，返回本次执行的迁移名
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) ([]string, error) {
	if err := createMigrationsTable(ctx, db); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	var applied []string
	for _, m := range getMigrations() {
		ran, err := runMigrationIfNotExists(ctx, db, m, logger)
		if err != nil {
			return applied, fmt.Errorf("run migration %s: %w", m.Name, err)
		}
		if ran {
			applied = append(applied, m.Name)
		}
	}
	return applied, nil
}

// createMigrationsTable 创建迁移表，语句同时兼容 mysql 和 sqlite
func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS migrations (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// getMigrations 获取所有迁移
func getMigrations() []Migration {
	return []Migration{
		{
			Name: "001_create_sessions_table",
			SQL: `
			CREATE TABLE IF NOT EXISTS sessions (
				id VARCHAR(64) NOT NULL PRIMARY KEY,
				username VARCHAR(255) NOT NULL,
				token TEXT NOT NULL,
				expires_in INT NOT NULL DEFAULT 0,
				created_at BIGINT NOT NULL
			)`,
		},
		{
			Name: "002_index_sessions_created_at",
			SQL:  `CREATE INDEX idx_sessions_created_at ON sessions (created_at)`,
		},
	}
}

// runMigrationIfNotExists 如果迁移不存在则运行
func runMigrationIfNotExists(ctx context.Context, db *sql.DB, m Migration, logger *zap.Logger) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations WHERE name = ?", m.Name).Scan(&count)
	if err != nil {
		return false, err
	}
	if count > 0 {
		logger.Debug("migration already executed, skipping", zap.String("name", m.Name))
		return false, nil
	}

	logger.Info("running migration", zap.String("name", m.Name))
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (name) VALUES (?)", m.Name); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
