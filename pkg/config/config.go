package config

import "time"

// Config is the complete runtime configuration for the field cache
// engine.
type Config struct {
	SharedCacheTTL			time.Duration `yaml:"shared_cache_ttl" json:"shared_cache_ttl" env:"SHARED_CACHE_TTL" default:"60s" validate:"min=1"`
	SharedCacheAddress		string	`yaml:"shared_cache_address" json:"shared_cache_address" env:"SHARED_CACHE_ADDRESS" default:"redis://localhost:6379/0"`
	StoreAddress			string	`yaml:"store_address" json:"store_address" env:"STORE_ADDRESS" default:"mongodb://localhost:27017"`
	StoreDatabase			string	`yaml:"store_database" json:"store_database" env:"STORE_DATABASE" default:"gameserver" validate:"required"`
	PasswordHashRounds		int	`yaml:"password_hash_rounds" json:"password_hash_rounds" env:"PASSWORD_HASH_ROUNDS" default:"10" validate:"min=4,max=31"`
	RedisEnable			bool	`yaml:"redis_enable" json:"redis_enable" env:"REDIS_ENABLE" default:"true"`
	LocalCacheDefaultEnabled	bool	`yaml:"local_cache_default_enabled" json:"local_cache_default_enabled" env:"LOCAL_CACHE_DEFAULT_ENABLED" default:"true"`
	SharedCacheDefaultEnabled	bool	`yaml:"shared_cache_default_enabled" json:"shared_cache_default_enabled" env:"SHARED_CACHE_DEFAULT_ENABLED" default:"true"`
	HTTPAddress			string	`yaml:"http_address" json:"http_address" env:"HTTP_ADDRESS" default:":8080"`
	LogLevel			string	`yaml:"log_level" json:"log_level" env:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}
