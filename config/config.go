package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-tania/client"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig HTTP 服务
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Mode gin 运行模式：debug、release、test
	Mode string `yaml:"mode"`
}

// BackendConfig 后端 REST 接口
type BackendConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIPrefix   string        `yaml:"api_prefix"`
	ClientID    string        `yaml:"client_id"`
	RedirectURI string        `yaml:"redirect_uri"`
	Timeout     time.Duration `yaml:"timeout"`
}

// APIURL 带前缀的接口根地址
func (b BackendConfig) APIURL() string {
	return strings.TrimRight(b.BaseURL, "/") + "/" + strings.Trim(b.APIPrefix, "/")
}

// DatabaseConfig 会话存储使用的数据库，driver 为 mysql 或 sqlite
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SessionConfig 会话
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

// LoggingConfig 日志
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8081",
			APIPrefix:   client.DefaultAPIPrefix,
			ClientID:    "f0ecaede-bbc0-4d4b-a6d5-56f8e3f0b1b5",
			RedirectURI: "http://localhost:8080/auth/callback",
			Timeout:     30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "file:tania.db?_pragma=busy_timeout(5000)",
		},
		Session: SessionConfig{
			TTL:        7 * 24 * time.Hour,
			CookieName: "tania_session",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load 读取配置文件，文件不存在时使用默认配置，最后应用环境变量
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("TANIA_SERVER_ADDR", &c.Server.Addr)
	set("TANIA_SERVER_MODE", &c.Server.Mode)
	set("TANIA_BACKEND_URL", &c.Backend.BaseURL)
	set("TANIA_BACKEND_CLIENT_ID", &c.Backend.ClientID)
	set("TANIA_BACKEND_REDIRECT_URI", &c.Backend.RedirectURI)
	set("TANIA_DB_DRIVER", &c.Database.Driver)
	set("TANIA_DB_DSN", &c.Database.DSN)
	set("TANIA_SESSION_SECRET", &c.Session.Secret)
	set("TANIA_LOG_LEVEL", &c.Logging.Level)
}

// Validate 检查必填项
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if len(c.Session.Secret) < 16 {
		return errors.New("session.secret must be at least 16 characters")
	}
	return nil
}
