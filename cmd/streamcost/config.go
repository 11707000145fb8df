package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/rshade/streamcost-estimator/internal/pricing"
	"github.com/rshade/streamcost-estimator/internal/store"
)

// envPrefix scopes environment overrides, e.g. STREAMCOST_STORE_BACKEND.
const envPrefix = "STREAMCOST"

// Store backends selectable through store.backend.
const (
	backendFile   = "file"
	backendRedis  = "redis"
	backendMemory = "memory"
)

// Settings holds the application settings read by viper.
type Settings struct {
	Log   LogSettings   `mapstructure:"log"`
	Store StoreSettings `mapstructure:"store"`
	Rates RatesSettings `mapstructure:"rates"`
}

// LogSettings configures the zerolog logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// StoreSettings selects and configures the persistence backend.
type StoreSettings struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	Key     string        `mapstructure:"key"`
	Redis   RedisSettings `mapstructure:"redis"`
}

// RedisSettings configures the redis backend.
type RedisSettings struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RatesSettings points at an optional rate card replacing the embedded one.
type RatesSettings struct {
	File string `mapstructure:"file"`
}

// Options are the per-invocation command-line flags.
type Options struct {
	ConfigFile  string
	ImportPath  string
	ExportPath  string
	Format      string
	Watch       time.Duration
	MetricsAddr string
}

func parseOptions(fs *flag.FlagSet, args []string) (Options, error) {
	var opts Options

	fs.StringVar(&opts.ConfigFile, "config", "", "Settings file (default: ./streamcost.yaml when present)")
	fs.StringVar(&opts.ImportPath, "import", "", "Configuration file to import (JSON or Hjson)")
	fs.StringVar(&opts.ExportPath, "export", "", "Write the current Configuration here when it validates")
	fs.StringVar(&opts.Format, "format", formatText, "Report format: text or json")
	fs.DurationVar(&opts.Watch, "watch", 0, "Re-evaluate the import file whenever it changes, polling at this interval")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve recompute metrics on this address in watch mode")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if opts.Format != formatText && opts.Format != formatJSON {
		return Options{}, fmt.Errorf("unknown format %q", opts.Format)
	}
	if opts.Watch > 0 && opts.ImportPath == "" {
		return Options{}, errors.New("-watch requires -import")
	}
	return opts, nil
}

// loadSettings reads settings from defaults, the optional settings file and
// STREAMCOST_* environment variables, in increasing precedence. An explicit
// configFile must exist; the implicit ./streamcost.yaml may not.
func loadSettings(v *viper.Viper, configFile string) (Settings, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("streamcost")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("store.backend", backendFile)
	v.SetDefault("store.dir", defaultStoreDir())
	v.SetDefault("store.key", store.DefaultKey)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.timeout", 3*time.Second)

	v.SetDefault("rates.file", "")
}

func defaultStoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".streamcost"
	}
	return filepath.Join(dir, "streamcost")
}

// openStore builds the configured backend. The returned closer releases it.
func openStore(s StoreSettings, logger zerolog.Logger) (store.KV, io.Closer, error) {
	switch s.Backend {
	case backendFile:
		fs, err := store.NewFileStore(s.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noopCloser{}, nil
	case backendRedis:
		rs := store.NewRedisStore(store.RedisOptions{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Timeout:  s.Redis.Timeout,
		})
		return rs, rs, nil
	case backendMemory:
		logger.Warn().Msg("memory store selected, changes will not survive this process")
		return store.NewMemoryStore(), noopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", s.Backend)
	}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// loadRates returns the embedded rate card, or the one at s.File when set.
func loadRates(s RatesSettings, logger zerolog.Logger) (pricing.RateTable, error) {
	if s.File == "" {
		client, err := pricing.NewClient(logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate card %s: %w", s.File, err)
	}
	client, err := pricing.NewClientFromYAML(data, logger)
	if err != nil {
		return nil, fmt.Errorf("rate card %s: %w", s.File, err)
	}
	return client, nil
}
