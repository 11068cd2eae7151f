package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Поддерживаемые хранилища.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// ErrUnknownStorage возвращается для неподдерживаемого значения DEVSERVER_STORAGE.
var ErrUnknownStorage = errors.New("unknown storage driver")

// StorageConfig выбирает реализацию репозитория заметок.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DEVSERVER_STORAGE" env-default:"memory"`
}

// Kind возвращает нормализованное имя хранилища.
func (c *StorageConfig) Kind() (string, error) {
	switch kind := strings.ToLower(strings.TrimSpace(c.Driver)); kind {
	case StorageMemory, StorageRedis:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStorage, c.Driver)
	}
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"DEVSERVER_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DEVSERVER_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"DEVSERVER_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"DEVSERVER_REDIS_DB" env-default:"0"`
	KeyPrefix       string        `yaml:"key_prefix" env:"DEVSERVER_REDIS_KEY_PREFIX" env-default:"notesboard"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"DEVSERVER_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"DEVSERVER_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"DEVSERVER_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"DEVSERVER_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"DEVSERVER_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"DEVSERVER_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DEVSERVER_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
