package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	Postgres struct {
		DSN         string `mapstructure:"dsn"`
		MaxOpen     int    `mapstructure:"max_open"`
		MaxIdle     int    `mapstructure:"max_idle"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"postgres"`
	Redis struct {
		Addr          string `mapstructure:"addr"`
		Password      string `mapstructure:"password"`
		DB            int    `mapstructure:"db"`
		PingTimeoutMS int    `mapstructure:"ping_timeout_ms"`
	} `mapstructure:"redis"`
	Etcd struct {
		Endpoints []string `mapstructure:"endpoints"`
		TTL       int      `mapstructure:"ttl"`
	} `mapstructure:"etcd"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	AppMeta struct {
		Name    string `mapstructure:"name"`
		Version string `mapstructure:"version"`
		Env     string `mapstructure:"env"`
	} `mapstructure:"app_meta"`
	Cache struct {
		ListTTLSeconds int `mapstructure:"list_ttl_seconds"`
	} `mapstructure:"cache"`
	OTel struct {
		Endpoint     string  `mapstructure:"endpoint"`
		Insecure     bool    `mapstructure:"insecure"`
		SamplerRatio float64 `mapstructure:"sampler_ratio"`
		Enable       bool    `mapstructure:"enable"`
	} `mapstructure:"otel"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	// 默认值
	v.SetDefault("app_meta.name", "go-userapi")
	v.SetDefault("app_meta.version", "v1")
	v.SetDefault("app_meta.env", "dev")
	v.SetDefault("redis.ping_timeout_ms", 500)
	v.SetDefault("cache.list_ttl_seconds", 30)
	v.SetDefault("etcd.ttl", 10)
	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.sampler_ratio", 1.0)
	v.SetDefault("otel.insecure", true)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	// ===== 逻辑校验 =====
	if c.HTTP.Addr == "" {
		return nil, errors.New("http.addr required")
	}
	if c.Postgres.DSN == "" {
		return nil, errors.New("postgres.dsn required")
	}
	if c.OTel.Enable {
		if c.OTel.Endpoint == "" {
			return nil, errors.New("otel.endpoint required when otel.enable=true")
		}
		if c.OTel.SamplerRatio < 0 || c.OTel.SamplerRatio > 1 {
			return nil, errors.New("otel.sampler_ratio must be in [0,1]")
		}
	}
	return &c, nil
}
