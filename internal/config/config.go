package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	DataSource struct {
		Provider      string        `yaml:"provider" default:"yahoo" validate:"oneof=yahoo rest mock"`
		BaseURL       string        `yaml:"base_url"`
		APIKey        string        `yaml:"api_key"`
		Proxy         string        `yaml:"proxy"`
		DefaultPeriod string        `yaml:"default_period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
		Timeout       time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Indicators struct {
		SupertrendPeriod     int     `yaml:"supertrend_period" default:"10" validate:"gt=0"`
		SupertrendMultiplier float64 `yaml:"supertrend_multiplier" default:"3" validate:"gt=0"`
		MAPeriod             int     `yaml:"ma_period" default:"20" validate:"gt=0"`
		RSIPeriod            int     `yaml:"rsi_period" default:"14" validate:"gt=0"`
	} `yaml:"indicators"`
	Cache struct {
		Backend string        `yaml:"backend" default:"memory" validate:"oneof=memory redis none"`
		TTL     time.Duration `yaml:"ttl" default:"15m" validate:"gt=0"`
		MaxSize int           `yaml:"max_size" default:"256" validate:"gt=0"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db" validate:"gte=0"`
			Prefix   string `yaml:"prefix" default:"pivotboard"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Database struct {
		// Empty disables the local store.
		SQLitePath string `yaml:"sqlite_path" default:"data/stock_data.db"`
	} `yaml:"database"`
	Server struct {
		Addr            string        `yaml:"addr" default:":8080" validate:"required"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Schedule struct {
		RefreshCron    string   `yaml:"refresh_cron" default:"0 30 16 * * 1-5"`
		Watchlist      []string `yaml:"watchlist"`
		RefreshOnStart bool     `yaml:"refresh_on_start"`
	} `yaml:"schedule"`
}

// envOverrides are read from PIVOTBOARD_* variables. Empty values leave the file setting alone.
type envOverrides struct {
	LogLevel      string   `envconfig:"LOG_LEVEL"`
	LogFormat     string   `envconfig:"LOG_FORMAT"`
	Provider      string   `envconfig:"DATA_PROVIDER"`
	BaseURL       string   `envconfig:"DATA_BASE_URL"`
	APIKey        string   `envconfig:"DATA_API_KEY"`
	DefaultPeriod string   `envconfig:"DEFAULT_PERIOD"`
	CacheBackend  string   `envconfig:"CACHE_BACKEND"`
	RedisAddr     string   `envconfig:"REDIS_ADDR"`
	RedisPassword string   `envconfig:"REDIS_PASSWORD"`
	SQLitePath    string   `envconfig:"SQLITE_PATH"`
	ServerAddr    string   `envconfig:"SERVER_ADDR"`
	RefreshCron   string   `envconfig:"REFRESH_CRON"`
	Watchlist     []string `envconfig:"WATCHLIST"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	// .env is optional, for local development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var env envOverrides
	if err := envconfig.Process("PIVOTBOARD", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	cfg.apply(env)

	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.DataSource.Proxy == "" {
		cfg.DataSource.Proxy = v
	}
	return cfg, nil
}

func (c *Config) apply(env envOverrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Log.Level, env.LogLevel)
	set(&c.Log.Format, env.LogFormat)
	set(&c.DataSource.Provider, env.Provider)
	set(&c.DataSource.BaseURL, env.BaseURL)
	set(&c.DataSource.APIKey, env.APIKey)
	set(&c.DataSource.DefaultPeriod, env.DefaultPeriod)
	set(&c.Cache.Backend, env.CacheBackend)
	set(&c.Cache.Redis.Addr, env.RedisAddr)
	set(&c.Cache.Redis.Password, env.RedisPassword)
	set(&c.Database.SQLitePath, env.SQLitePath)
	set(&c.Server.Addr, env.ServerAddr)
	set(&c.Schedule.RefreshCron, env.RefreshCron)
	if len(env.Watchlist) > 0 {
		c.Schedule.Watchlist = env.Watchlist
	}
}

// Validate checks field constraints and returns the first failure.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	if c.DataSource.Provider == "rest" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the rest provider")
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	return nil
}
