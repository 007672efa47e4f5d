// Package config loads pandaledger settings from defaults, an optional
// config file, PANDALEDGER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PANDALEDGER"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheConfig selects where computed projections are cached.
type CacheConfig struct {
	Driver    string        `mapstructure:"driver"` // memory or redis
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// StoreConfig selects where projection history is kept.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory or sqlite
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("ratelimit.capacity", 60)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "pandaledger.db")
	v.SetDefault("log.level", "info")
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"cache":      "cache.driver",
	"redis-addr": "cache.redis_addr",
	"store":      "store.driver",
	"db":         "store.path",
	"log-level":  "log.level",
}

// Load builds the configuration. cfgFile may be empty; flags may be nil.
// Only flags present in the set are bound.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("cache.driver must be memory or redis, got %q", c.Cache.Driver))
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("store.driver must be memory or sqlite, got %q", c.Store.Driver))
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required for the sqlite store"))
	}
	if c.RateLimit.Capacity <= 0 {
		errs = append(errs, errors.New("ratelimit.capacity must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("ratelimit.window must be positive"))
	}
	return errors.Join(errs...)
}
