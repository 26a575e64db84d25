package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the primary entity store. Driver is "sqlite"
// (Path is the database file) or "mysql".
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MirrorConfig locates the secondary snapshot store. Every bucket is a
// directory under Root.
type MirrorConfig struct {
	Root              string `mapstructure:"root"`
	KeysBucket        string `mapstructure:"keys_bucket"`
	PermissionsBucket string `mapstructure:"permissions_bucket"`
}

const (
	GrantLockLocal = "local"
	GrantLockRedis = "redis"
)

type AccessConfig struct {
	// IdempotentRevoke keeps the first revocation timestamp when an
	// already revoked permission is revoked again.
	IdempotentRevoke bool   `mapstructure:"idempotent_revoke"`
	GrantLock        string `mapstructure:"grant_lock"`
	GrantLockTTLMs   int    `mapstructure:"grant_lock_ttl_ms"`
	GrantLockWaitMs  int    `mapstructure:"grant_lock_wait_ms"`
}

func (a *AccessConfig) GrantLockTTL() time.Duration {
	return time.Duration(a.GrantLockTTLMs) * time.Millisecond
}

func (a *AccessConfig) GrantLockWait() time.Duration {
	return time.Duration(a.GrantLockWaitMs) * time.Millisecond
}
