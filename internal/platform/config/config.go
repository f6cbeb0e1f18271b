package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	Port       int    `env:"PORT" envDefault:"8000"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Provider credentials. All are optional at startup; a provider with no
	// key reports itself unavailable instead of failing boot.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-5.2"`
	GeminiModel    string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	AnthropicModel string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`

	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Optional Postgres persistence for usage counters. Tracking stays
	// in memory when the DSN is empty.
	PostgresDSN         string        `env:"POSTGRES_DSN"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"2"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Cost alert thresholds in USD.
	CostAlertPerRequest float64 `env:"COST_ALERT_PER_REQUEST" envDefault:"1.0"`
	CostAlertPerHour    float64 `env:"COST_ALERT_PER_HOUR" envDefault:"10.0"`
	CostAlertPerDay     float64 `env:"COST_ALERT_PER_DAY" envDefault:"50.0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}
