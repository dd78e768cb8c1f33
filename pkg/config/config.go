// Package config loads bisect settings from a TOML file.
//
// Every field has a default (see [Default]); a file only needs the keys it
// changes. Command-line flags are applied on top by the CLI.
//
//	[optimizer]
//	max_passes = 64
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	bierrors "github.com/matzehuels/bisect/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config is the full configuration.
type Config struct {
	Optimizer Optimizer `toml:"optimizer"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
	Log       Log       `toml:"log"`
}

// Optimizer configures the Kernighan–Lin run.
type Optimizer struct {
	// MaxPasses caps the number of passes. 0 selects the optimizer default.
	MaxPasses int `toml:"max_passes"`
}

// Cache configures result caching.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	// RequestTimeout bounds a single optimization.
	RequestTimeout Duration `toml:"request_timeout"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("168h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{7 * 24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:           ":8080",
			ReadTimeout:    Duration{15 * time.Second},
			WriteTimeout:   Duration{2 * time.Minute},
			RequestTimeout: Duration{time.Minute},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the file at path over the defaults. An empty path means the
// default location, which may be absent. An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, bierrors.Wrap(bierrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, bierrors.Wrap(bierrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, bierrors.New(bierrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, bierrors.Wrap(bierrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, bierrors.New(bierrors.ErrCodeInvalidConfig, "unknown key %q", undec[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Optimizer.MaxPasses < 0 {
		return bierrors.New(bierrors.ErrCodeInvalidConfig, "optimizer.max_passes must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return bierrors.New(bierrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return bierrors.New(bierrors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return bierrors.New(bierrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return bierrors.Wrap(bierrors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// ParseLevel returns the configured log level.
func (l Log) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(l.Level)
}

// Write encodes c as TOML to path, creating parent directories.
func Write(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// DefaultPath returns $XDG_CONFIG_HOME/bisect/config.toml, falling back to
// ~/.config/bisect/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bisect", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bisect", FileName), nil
}
