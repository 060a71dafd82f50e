package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const testSecret = "0123456789abcdef0123"

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TANIA_SESSION_SECRET", testSecret)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8081/api", cfg.Backend.APIURL())
	assert.Equal(t, "tania_session", cfg.Session.CookieName)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tania.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
backend:
  base_url: "http://backend:8080/"
  timeout: 5s
session:
  secret: "`+testSecret+`"
  ttl: 1h
database:
  driver: mysql
  dsn: "root:root@tcp(127.0.0.1:3306)/tania?parseTime=true"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "http://backend:8080/api", cfg.Backend.APIURL())
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	// 未出现在文件中的字段保留默认值
	assert.Equal(t, "tania_session", cfg.Session.CookieName)
}

func TestEnvOverrides(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"TANIA_BACKEND_URL": "http://other:1234",
		"TANIA_LOG_LEVEL":   "debug",
		"TANIA_SERVER_ADDR": "",
	}
	cfg.applyEnvOverrides(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "http://other:1234", cfg.Backend.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "empty secret")

	cfg.Session.Secret = testSecret
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(ctx, DatabaseConfig{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "tania.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	applied, err := Migrate(ctx, db, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_sessions_table", "002_index_sessions_created_at"}, applied)

	applied, err = Migrate(ctx, db, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count))
	assert.Zero(t, count)
}
