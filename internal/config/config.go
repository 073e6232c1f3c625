// Package config provides configuration types, defaults and loading for dropsearch.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/dropsearch/internal/log"
	"github.com/zjrosen/dropsearch/internal/search"
	"github.com/zjrosen/dropsearch/internal/ui/styles"
)

// MinWidth is the narrowest widget width accepted in ui.width.
const MinWidth = 16

// EnvPrefix prefixes environment overrides, e.g. DROPSEARCH_UI_WIDTH.
const EnvPrefix = "DROPSEARCH"

// Config holds all configuration options for dropsearch.
type Config struct {
	UI          UIConfig     `mapstructure:"ui" yaml:"ui"`
	Search      SearchConfig `mapstructure:"search" yaml:"search"`
	Theme       ThemeConfig  `mapstructure:"theme" yaml:"theme"`
	WatchConfig bool         `mapstructure:"watch_config" yaml:"watch_config"`
	Debug       bool         `mapstructure:"debug" yaml:"debug"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	Width  int  `mapstructure:"width" yaml:"width"`
	Toasts bool `mapstructure:"toasts" yaml:"toasts"` // toast on selection changes
}

// SearchConfig controls how the search text matches titles.
type SearchConfig struct {
	Mode     string        `mapstructure:"mode" yaml:"mode"` // "substring" (default) or "fuzzy"
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default" or "high-contrast".
	Preset string `mapstructure:"preset" yaml:"preset,omitempty"`

	// Mode forces "light" or "dark". Empty uses terminal detection.
	Mode string `mapstructure:"mode" yaml:"mode,omitempty"`

	// Colors overrides individual tokens. Nested YAML and quoted dot
	// notation are both accepted:
	//   colors:
	//     list:
	//       border: "#FF0000"
	//     "tick": "#00FF00"
	Colors map[string]any `mapstructure:"colors" yaml:"colors,omitempty"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Styles converts the theme section to the form styles.ApplyTheme takes.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		Preset: t.Preset,
		Mode:   t.Mode,
		Colors: t.FlattenedColors(),
	}
}

// Defaults returns a Config with the default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			Width:  30,
			Toasts: true,
		},
		Search: SearchConfig{
			Mode:     string(search.ModeSubstring),
			CacheTTL: 10 * time.Minute,
		},
		WatchConfig: true,
	}
}

// SetDefaults registers Defaults on v so missing keys decode to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("ui.width", d.UI.Width)
	v.SetDefault("ui.toasts", d.UI.Toasts)
	v.SetDefault("search.mode", d.Search.Mode)
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL)
	v.SetDefault("watch_config", d.WatchConfig)
	v.SetDefault("debug", d.Debug)
}

// BindEnv makes DROPSEARCH_* environment variables override file values.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Validate reports every invalid option in cfg.
func Validate(cfg Config) error {
	var errs []error
	if cfg.UI.Width < MinWidth {
		errs = append(errs, fmt.Errorf("ui.width: must be at least %d, got %d", MinWidth, cfg.UI.Width))
	}
	if _, err := search.ParseMode(cfg.Search.Mode); err != nil {
		errs = append(errs, fmt.Errorf("search.mode: %w", err))
	}
	if cfg.Search.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("search.cache_ttl: must not be negative, got %s", cfg.Search.CacheTTL))
	}
	if err := styles.ValidateTheme(cfg.Theme.Styles()); err != nil {
		errs = append(errs, fmt.Errorf("theme: %w", err))
	}
	return errors.Join(errs...)
}

// Load reads path into a fresh viper instance layered over the defaults and
// the environment. It is used for reloads, so it never touches the global
// viper state.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return cfg, nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# dropsearch configuration

ui:
  width: 30        # widget width in columns (minimum 16)
  toasts: true     # show a toast when the selection changes

search:
  mode: substring  # "substring" (case-insensitive) or "fuzzy"
  cache_ttl: 10m   # how long filtered results are cached

# Reload the theme when this file changes
watch_config: true

# Theme customization
# theme:
#   preset: default      # "default" or "high-contrast"
#   mode: ""             # force "light" or "dark"; empty detects the terminal
#   colors:
#     tick: "#6E80D2"
#     list:
#       selected:
#         bg: "#F2F4FF"
`
}

// WriteDefaultConfig creates a config file at configPath with the default
// settings and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
