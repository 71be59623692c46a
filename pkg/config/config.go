// Package config loads the repeatmap configuration file.
//
// The file is TOML. Every section is optional:
//
//	[feature]
//	border = "black"
//	label_size = 8
//
//	[track]
//	greytrack = false
//
//	[page]
//	fragments = 2
//
//	[render]
//	width = 1200
//	height = 0.2
//	formats = ["svg", "png"]
//	scale = 2
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
//	ttl = "72h"
//
//	[logo]
//	url = "http://skylign.org"
//	colors = "consensus"
//
// Command-line flags win over the file; the file wins over built-in
// defaults.
package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repeatmap/pkg/cache"
	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/options"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Feature options.FeatureOverrides `toml:"feature"`
	Track   options.TrackOverrides   `toml:"track"`
	Page    options.PageOverrides    `toml:"page"`
	Render  Render                   `toml:"render"`
	Cache   Cache                    `toml:"cache"`
	Logo    Logo                     `toml:"logo"`
}

// Render holds defaults for the render command.
type Render struct {
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	Strand  string   `toml:"strand"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Logo configures the logo service client.
type Logo struct {
	URL     string `toml:"url"`
	PfamURL string `toml:"pfam_url"`
	Colors  string `toml:"colors"`
}

// Duration decodes TOML strings such as "36h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns the configuration file location,
// $XDG_CONFIG_HOME/repeatmap/config.toml or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repeatmap", "config.toml"), nil
}

// Read decodes a configuration from r. Unknown keys are an error.
func Read(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the file at path. A missing file at the default path is not
// an error and yields an empty configuration; a missing file anywhere else
// is FILE_NOT_FOUND. An empty path means the default path.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Validate checks the option sections, the cache backend and the logo
// service URLs.
func (c *Config) Validate() error {
	if err := options.DefaultFeature().Merge(c.Feature).Validate(); err != nil {
		return err
	}
	if err := options.DefaultTrack().Merge(c.Track).Validate(); err != nil {
		return err
	}
	if err := options.DefaultPage().Merge(c.Page).Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis cache needs an addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	for _, u := range []string{c.Logo.URL, c.Logo.PfamURL} {
		if u == "" {
			continue
		}
		if err := errors.ValidateURL(u); err != nil {
			return err
		}
	}
	if c.Render.Width < 0 || c.Render.Height < 0 || c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render sizes must not be negative")
	}
	return nil
}

// OpenCache opens the configured cache backend. The file backend uses
// dir when the configuration names none.
func (c *Config) OpenCache(ctx context.Context, dir string) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Addr,
			Password: c.Cache.Password,
			DB:       c.Cache.DB,
			Prefix:   c.Cache.Prefix,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", c.Cache.Addr)
		}
		return rc, nil
	}
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}
