package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"skillbanto.db"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	SiteName        string        `env:"SITE_NAME" envDefault:"SkillBanto"`
	SeedPages       bool          `env:"SEED_PAGES" envDefault:"true"`
	SeedSlugs       []string      `env:"SEED_SLUGS" envDefault:"home,courses,products,resources,pricing" envSeparator:","`
	RedisURL        string        `env:"REDIS_URL"`
	CachePrefix     string        `env:"CACHE_PREFIX" envDefault:"skillbanto:"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads a local .env file when present and then parses the environment.
// Variables already set in the process environment win over the file.
func Load() (AppConfig, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// UseRedisCache reports whether rendered pages should be cached in Redis.
func (c AppConfig) UseRedisCache() bool {
	return c.RedisURL != ""
}
