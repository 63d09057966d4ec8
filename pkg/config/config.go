// Package config loads stepviz settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/stepviz/config.toml (falling back to
// ~/.config/stepviz/config.toml). A missing file is not an error: every key
// has a default, and a file only needs the keys it changes.
//
//	[limits]
//	max_array = 16
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[player]
//	interval = "300ms"
//
//	[server]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
)

const appName = "stepviz"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the full settings tree.
type Config struct {
	Limits catalog.Limits `toml:"limits"`
	Cache  Cache          `toml:"cache"`
	Player Player         `toml:"player"`
	Server Server         `toml:"server"`
}

// Cache selects and configures the trace cache backend.
type Cache struct {
	Backend string        `toml:"backend" validate:"oneof=none file redis mongo"`
	TTL     time.Duration `toml:"ttl" validate:"gte=0"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0,lte=15"`

	MongoURI        string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase   string `toml:"mongo_database" validate:"required_if=Backend mongo"`
	MongoCollection string `toml:"mongo_collection" validate:"required_if=Backend mongo"`
}

// Player configures the interactive player.
type Player struct {
	// Interval is the delay between steps while auto-playing.
	Interval time.Duration `toml:"interval" validate:"gte=10ms,lte=10s"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" validate:"gte=0"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Limits: catalog.DefaultLimits(),
		Cache: Cache{
			Backend:         BackendFile,
			TTL:             7 * 24 * time.Hour,
			RedisAddr:       "localhost:6379",
			MongoDatabase:   appName,
			MongoCollection: "traces",
		},
		Player: Player{Interval: 400 * time.Millisecond},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s fails %q", fieldPath(fe.Namespace()), fe.Tag()))
		}
		return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
}

// fieldPath turns "Config.Cache.RedisAddr" into "cache.RedisAddr".
func fieldPath(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	if head, rest, ok := strings.Cut(ns, "."); ok {
		return strings.ToLower(head) + "." + rest
	}
	return ns
}

// Load reads path on top of the defaults and validates the result. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML over base and validates the result. Unknown keys are
// rejected so typos do not pass silently.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory: Cache.Dir when set, otherwise
// $XDG_CACHE_HOME/stepviz or ~/.cache/stepviz.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Encode writes cfg as TOML, used by "stepviz config".
func Encode(cfg Config) ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
