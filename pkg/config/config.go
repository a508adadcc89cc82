// Package config loads MoodCanvas configuration from TOML files.
//
// Configuration is entirely optional: every field has a working default
// and a missing file is not an error. The CLI looks for the file at
// ~/.config/moodcanvas/config.toml, and flags override whatever the
// file sets.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// Cache backend names accepted in [cache].
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Gallery backend names accepted in [gallery].
const (
	GalleryBackendMongo  = "mongo"
	GalleryBackendMemory = "memory"
	GalleryBackendNone   = "none"
)

// Config is the root configuration structure.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Gallery GalleryConfig `toml:"gallery"`
}

// RenderConfig overrides pipeline defaults. Zero values mean "use the
// built-in default".
type RenderConfig struct {
	Mode        string  `toml:"mode"`
	Scheme      string  `toml:"scheme"`
	PaletteSize int     `toml:"palette_size"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Particles   int     `toml:"particles"`
	Steps       int     `toml:"steps"`
	StepLen     float64 `toml:"step_len"`
	Scale       float64 `toml:"scale"`
	Twist       float64 `toml:"twist"`
	Bounds      string  `toml:"bounds"`
	Seed        int64   `toml:"seed"`
	StrokeWidth float64 `toml:"stroke_width"`
	StrokeAlpha int     `toml:"stroke_alpha"`
	Blur        float64 `toml:"blur"`
	Density     float64 `toml:"density"`
	Background  string  `toml:"background"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // file, redis, none
	Dir     string `toml:"dir"`     // file backend directory

	// Namespace prefixes all cache keys, isolating deployments that
	// share one backend.
	Namespace string `toml:"namespace"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  duration `toml:"read_timeout"`
	WriteTimeout duration `toml:"write_timeout"`
}

// GalleryConfig configures the render gallery store.
type GalleryConfig struct {
	Backend    string `toml:"backend"` // mongo, memory, none
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration wraps time.Duration for TOML strings like "30s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Duration returns the wrapped time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  duration(10 * time.Second),
			WriteTimeout: duration(60 * time.Second),
		},
		Gallery: GalleryConfig{
			Backend:    GalleryBackendNone,
			URI:        "mongodb://localhost:27017",
			Database:   "moodcanvas",
			Collection: "renders",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "moodcanvas", "config.toml"), nil
}

// Load reads a config file, layering it over the defaults. A missing
// file returns the defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.Gallery.Backend {
	case "", GalleryBackendMongo, GalleryBackendMemory, GalleryBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid gallery backend: %q (must be one of: mongo, memory, none)", c.Gallery.Backend)
	}
	return nil
}

// Apply copies the configured render defaults onto opts, leaving fields
// the caller already set untouched. Flags therefore beat config, and
// config beats the built-in defaults.
func (r RenderConfig) Apply(opts *pipeline.Options) {
	if opts.Mode == "" {
		opts.Mode = r.Mode
	}
	if opts.Scheme == "" {
		opts.Scheme = r.Scheme
	}
	if opts.PaletteSize == 0 {
		opts.PaletteSize = r.PaletteSize
	}
	if opts.Width == 0 {
		opts.Width = r.Width
	}
	if opts.Height == 0 {
		opts.Height = r.Height
	}
	if opts.Particles == 0 {
		opts.Particles = r.Particles
	}
	if opts.Steps == 0 {
		opts.Steps = r.Steps
	}
	if opts.StepLen == 0 {
		opts.StepLen = r.StepLen
	}
	if opts.Scale == 0 {
		opts.Scale = r.Scale
	}
	if opts.Twist == 0 {
		opts.Twist = r.Twist
	}
	if opts.Bounds == "" {
		opts.Bounds = r.Bounds
	}
	// For seed and stroke alpha a config value of zero means "unset";
	// explicit zeros are only expressible through flags or the API.
	if opts.Seed == nil && r.Seed != 0 {
		seed := r.Seed
		opts.Seed = &seed
	}
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = r.StrokeWidth
	}
	if opts.StrokeAlpha == nil && r.StrokeAlpha != 0 {
		alpha := r.StrokeAlpha
		opts.StrokeAlpha = &alpha
	}
	if opts.Blur == 0 {
		opts.Blur = r.Blur
	}
	if opts.Density == 0 {
		opts.Density = r.Density
	}
	if opts.Background == "" {
		opts.Background = r.Background
	}
}
