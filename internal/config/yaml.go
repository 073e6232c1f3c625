package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlSearch spells the TTL the way the config file does ("10m") rather
// than as nanoseconds.
type yamlSearch struct {
	Mode     string `yaml:"mode"`
	CacheTTL string `yaml:"cache_ttl"`
}

type yamlConfig struct {
	UI          UIConfig    `yaml:"ui"`
	Search      yamlSearch  `yaml:"search"`
	Theme       ThemeConfig `yaml:"theme,omitempty"`
	WatchConfig bool        `yaml:"watch_config"`
	Debug       bool        `yaml:"debug,omitempty"`
}

// Marshal renders cfg as YAML. Load reads the result back to an equivalent
// Config; theme colours always come back flattened.
func Marshal(cfg Config) ([]byte, error) {
	out := yamlConfig{
		UI: cfg.UI,
		Search: yamlSearch{
			Mode:     cfg.Search.Mode,
			CacheTTL: cfg.Search.CacheTTL.String(),
		},
		Theme:       cfg.Theme,
		WatchConfig: cfg.WatchConfig,
		Debug:       cfg.Debug,
	}
	if len(cfg.Theme.Colors) > 0 {
		out.Theme.Colors = colorMap(cfg.Theme.FlattenedColors())
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// colorMap writes tokens as quoted dot-notation keys, which FlattenedColors
// accepts unchanged.
func colorMap(flat map[string]string) map[string]any {
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		out[k] = v
	}
	return out
}
