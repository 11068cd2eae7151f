// Package redis создает проверенные подключения к Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notesboard/pkg/logger"
)

// Значения по умолчанию для незаданных полей Config.
const (
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

const (
	logConnected     = "connected to redis"
	errFailedConnect = "failed to connect to redis"
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Addr            string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

func (c Config) options() *redis.Options {
	opts := &redis.Options{
		Addr:            c.Addr,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdleConns,
		DialTimeout:     c.DialTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = DefaultTimeout
	}
	return opts
}

// Connect создает клиент и проверяет соединение командой PING.
// При ошибке клиент закрывается.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, client.Options().DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", errFailedConnect, err)
	}

	logger.Log(ctx).Debug(ctx, logConnected, zap.String("address", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}
