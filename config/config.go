// Package config layers the process configuration: defaults, then an
// optional YAML file, then TELEMSTORE_* environment variables, then
// command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Record kinds a process can front.
const (
	KindMetric = "metric"
	KindLog    = "log"
	KindTrace  = "trace"
)

// Backend implementations.
const (
	BackendBadger  = "badger"
	BackendLevelDB = "leveldb"
)

// Config is the resolved process configuration.
type Config struct {
	DBPath  string `mapstructure:"db_path"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	HTTP    bool   `mapstructure:"http"`
	Kind    string `mapstructure:"kind"`
	Backend string `mapstructure:"backend"`
	Debug   bool   `mapstructure:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:  "./default.db",
		Host:    "127.0.0.1",
		Port:    4040,
		HTTP:    true,
		Kind:    KindMetric,
		Backend: BackendBadger,
	}
}

// Load resolves the configuration. file may be empty; flags may be nil.
// Flag names use dashes (db-path) and map onto the underscored keys.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("http", def.HTTP)
	v.SetDefault("kind", def.Kind)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("debug", def.Debug)

	v.SetEnvPrefix("TELEMSTORE")
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"db_path": "db-path",
			"host":    "host",
			"port":    "port",
			"http":    "http",
			"kind":    "kind",
			"backend": "backend",
			"debug":   "debug",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields and the port range.
func (c Config) Validate() error {
	switch c.Kind {
	case KindMetric, KindLog, KindTrace:
	default:
		return fmt.Errorf("unknown kind %q, want one of %s",
			c.Kind, strings.Join([]string{KindMetric, KindLog, KindTrace}, ", "))
	}
	switch c.Backend {
	case BackendBadger, BackendLevelDB:
	default:
		return fmt.Errorf("unknown backend %q, want one of %s",
			c.Backend, strings.Join([]string{BackendBadger, BackendLevelDB}, ", "))
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
