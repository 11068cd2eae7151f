package config

import "time"

// JWTConfig настраивает проверку bearer-токенов. Пустой секрет отключает проверку.
type JWTConfig struct {
	Secret   string        `yaml:"secret" env:"DEVSERVER_JWT_SECRET" env-default:""`
	TokenTTL time.Duration `yaml:"token_ttl" env:"DEVSERVER_JWT_TOKEN_TTL" env-default:"24h"`
}

// Enabled сообщает, включена ли проверка токенов.
func (c *JWTConfig) Enabled() bool {
	return c.Secret != ""
}
