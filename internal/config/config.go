package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }

type UpstreamCfg struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type CacheCfg struct {
	RedisAddr string
	TTL       time.Duration
}

type Cfg struct {
	App      AppCfg
	Upstream UpstreamCfg
	Cache    CacheCfg
}

func Load() Cfg {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("SOLAR_API_BASE_URL", "https://api.le-systeme-solaire.net/rest")
	viper.SetDefault("UPSTREAM_TIMEOUT_SEC", 30)
	viper.SetDefault("CACHE_TTL_SEC", 300)

	cfg := Cfg{
		App: AppCfg{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		Upstream: UpstreamCfg{
			BaseURL: strings.TrimRight(viper.GetString("SOLAR_API_BASE_URL"), "/"),
			Token:   strings.TrimSpace(viper.GetString("SOLAR_API_TOKEN")),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SEC")) * time.Second,
		},
		Cache: CacheCfg{
			RedisAddr: viper.GetString("REDIS_ADDR"),
			TTL:       time.Duration(viper.GetInt("CACHE_TTL_SEC")) * time.Second,
		},
	}

	// Fail fast on settings the upstream client cannot work without
	if cfg.Upstream.BaseURL == "" {
		log.Fatal().Msg("SOLAR_API_BASE_URL is required")
	}
	if cfg.Upstream.Timeout <= 0 {
		log.Fatal().Msg("UPSTREAM_TIMEOUT_SEC must be positive")
	}

	return cfg
}
