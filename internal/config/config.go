package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultLookupAddress is the address the demo looks up when none is configured.
const DefaultLookupAddress = "200 Spectrum Center Dr, Irvine, CA 92618"

// Config holds the application configuration loaded from .env files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIKey         string        `mapstructure:"ziptax_api_key"`
	BaseURL        string        `mapstructure:"ziptax_base_url"`
	TimeoutSeconds int64         `mapstructure:"ziptax_timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	UserAgent      string        `mapstructure:"ziptax_user_agent"`
	LookupAddress  string        `mapstructure:"lookup_address"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from configs/.env and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "salestax-lookup")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("ziptax_api_key", "")
	v.SetDefault("ziptax_base_url", "https://api.zip-tax.com")
	v.SetDefault("ziptax_timeout_seconds", 0) // 0 = no client timeout
	v.SetDefault("ziptax_user_agent", "")
	v.SetDefault("lookup_address", DefaultLookupAddress)
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/lookups.db")
	v.SetDefault("storage_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))
	v.SetDefault("publishers_file", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ziptax_api_key is required (set ZIPTAX_API_KEY)")
	}
	cfg.LookupAddress = strings.TrimSpace(cfg.LookupAddress)
	if cfg.LookupAddress == "" {
		return nil, fmt.Errorf("lookup_address must not be empty")
	}

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid ziptax_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	return c
}
