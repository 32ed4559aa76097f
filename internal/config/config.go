package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server      ServerConfig
	LLM         LLMConfig
	Forge       ForgeConfig
	RedisConfig RedisConfig
	Log         LogConfig
	CacheEnable bool `env:"CACHE_ENABLE"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"24h"`
}

// ServerConfig zero values for Timeout and ThrottleLimit disable the
// corresponding middleware.
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"0"`
}

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	APIKey   string `env:"LLM_API_KEY,required,notEmpty"`
	BaseURL  string `env:"LLM_BASE_URL"`
	Model    string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
}

// ForgeConfig points at a Stable Diffusion WebUI / Forge instance.
type ForgeConfig struct {
	URL     string        `env:"FORGE_API_URL" envDefault:"http://localhost:7860"`
	Timeout time.Duration `env:"FORGE_TIMEOUT" envDefault:"0s"`
}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.LLM.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c LLMConfig) validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
		return nil
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
}
