// Package config resolves runtime settings from defaults, an optional TOML
// file, CABINA_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/cabina/internal/logging"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultKeyPrefix = "cabina_"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultColor     = "auto"

	dirName        = ".cabina"
	configFileName = "config.toml"
)

// Source records where a field's value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir   string `toml:"data_dir"`
	Backend   string `toml:"backend"`
	KeyPrefix string `toml:"key_prefix"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	Color     string `toml:"color"`

	// Sources maps toml field names to the layer that set them.
	Sources map[string]Source `toml:"-"`
}

// envVars maps toml field names to their environment override.
var envVars = map[string]string{
	"data_dir":   "CABINA_DATA_DIR",
	"backend":    "CABINA_BACKEND",
	"key_prefix": "CABINA_KEY_PREFIX",
	"theme":      "CABINA_THEME",
	"log_level":  "CABINA_LOG_LEVEL",
	"color":      "CABINA_COLOR",
}

// HomeDir is ~/.cabina, the default home of the data and config files.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath is ~/.cabina/config.toml.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns built-in settings. DataDir is left empty when the home
// directory cannot be determined.
func Default() Config {
	dir, _ := HomeDir()
	c := Config{
		DataDir:   dir,
		Backend:   BackendJSON,
		KeyPrefix: DefaultKeyPrefix,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		Color:     DefaultColor,
		Sources:   map[string]Source{},
	}
	for _, f := range Fields() {
		c.Sources[f] = SourceDefault
	}
	return c
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path means DefaultPath. A missing file is not an error unless the
// path was given explicitly.
func Load(path string) (Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return c, c.applyEnv()
		}
		path = p
	}
	if err := c.loadFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return c, c.applyEnv()
		}
		return c, err
	}
	return c, c.applyEnv()
}

func (c *Config) loadFile(path string) error {
	var fileCfg Config
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	for _, f := range Fields() {
		if !md.IsDefined(f) {
			continue
		}
		if err := c.Set(f, fileCfg.get(f), SourceFile); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	for _, f := range Fields() {
		v, ok := os.LookupEnv(envVars[f])
		if !ok {
			continue
		}
		if err := c.Set(f, v, SourceEnv); err != nil {
			return fmt.Errorf("%s: %w", envVars[f], err)
		}
	}
	return nil
}

// Fields lists the configurable toml field names in display order.
func Fields() []string {
	return []string{"data_dir", "backend", "key_prefix", "theme", "log_level", "color"}
}

// Set validates and assigns one field, recording its source.
func (c *Config) Set(field, value string, src Source) error {
	v := strings.TrimSpace(value)
	switch field {
	case "data_dir":
		if v == "" {
			return errors.New("data_dir: empty")
		}
		c.DataDir = expandHome(v)
	case "backend":
		v = strings.ToLower(v)
		if v != BackendJSON && v != BackendSQLite {
			return fmt.Errorf("backend: want %s or %s, got %q", BackendJSON, BackendSQLite, value)
		}
		c.Backend = v
	case "key_prefix":
		if strings.ContainsAny(v, `/\`) {
			return fmt.Errorf("key_prefix: must not contain a path separator, got %q", value)
		}
		c.KeyPrefix = v
	case "theme":
		v = strings.ToLower(v)
		switch v {
		case "classic", "neon", "mono":
		default:
			return fmt.Errorf("theme: want classic, neon or mono, got %q", value)
		}
		c.Theme = v
	case "log_level":
		if !logging.ValidLevel(v) {
			return fmt.Errorf("log_level: unknown level %q", value)
		}
		c.LogLevel = strings.ToLower(v)
	case "color":
		v = strings.ToLower(v)
		switch v {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("color: want auto, always or never, got %q", value)
		}
		c.Color = v
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if c.Sources == nil {
		c.Sources = map[string]Source{}
	}
	c.Sources[field] = src
	return nil
}

func (c Config) get(field string) string {
	switch field {
	case "data_dir":
		return c.DataDir
	case "backend":
		return c.Backend
	case "key_prefix":
		return c.KeyPrefix
	case "theme":
		return c.Theme
	case "log_level":
		return c.LogLevel
	case "color":
		return c.Color
	}
	return ""
}

// StorePath is the file or directory the selected backend writes to.
func (c Config) StorePath() string {
	if c.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "cabina.sqlite")
	}
	return c.DataDir
}

// Validate checks settings that only make sense once every layer applied.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir is not set and no home directory was found")
	}
	return nil
}

// Lines renders the config as "field = value (source)" lines.
func (c Config) Lines() []string {
	out := make([]string, 0, len(Fields()))
	for _, f := range Fields() {
		src := c.Sources[f]
		if src == "" {
			src = SourceDefault
		}
		out = append(out, fmt.Sprintf("%-10s = %q (%s)", f, c.get(f), src))
	}
	return out
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
