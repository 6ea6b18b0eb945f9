package config

import (
	"time"

	"github.com/spf13/viper"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory" // In-process TTL cache (default)
	CacheBackendRedis  CacheBackend = "redis"  // Shared Redis-backed cache
)

type (
	Config struct {
		HTTP
		Global
		Database
		QUL
		Cache
		Backup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	QUL struct {
		LayoutPath string // Mushaf page layout database (pages table)
		ScriptPath string // Word script database (words table)
	}
	Cache struct {
		TTL       time.Duration
		Backend   CacheBackend
		RedisAddr string
	}
	Backup struct {
		Dir      string
		Schedule string // Cron format, empty disables scheduled backups
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("layout_database_path", DefaultLayoutDatabasePath)
	v.SetDefault("script_database_path", DefaultScriptDatabasePath)
	v.SetDefault("cache_ttl", "60s")
	v.SetDefault("cache_backend", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_schedule", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		QUL: QUL{
			LayoutPath: v.GetString("LAYOUT_DATABASE_PATH"),
			ScriptPath: v.GetString("SCRIPT_DATABASE_PATH"),
		},
		Cache: Cache{
			TTL:       v.GetDuration("CACHE_TTL"),
			Backend:   CacheBackend(v.GetString("CACHE_BACKEND")),
			RedisAddr: v.GetString("REDIS_ADDR"),
		},
		Backup: Backup{
			Dir:      v.GetString("BACKUP_DIR"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
		},
	}
}
