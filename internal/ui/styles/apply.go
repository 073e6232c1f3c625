package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders re-derive styles cached in other packages after a theme change.
var styleRebuilders []func()

// RegisterStyleRebuilder adds fn to run after every ApplyTheme.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid an import cycle.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// Preset is a named set of colour overrides.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets are the built-in themes selectable with theme.preset.
var Presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Soft periwinkle accents",
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "Black and white with a yellow tick",
		Colors: map[ColorToken]string{
			TokenTextPrimary:    "#FFFFFF",
			TokenTextMuted:      "#BBBBBB",
			TokenInputBorder:    "#FFFFFF",
			TokenInputFocus:     "#FFFF00",
			TokenListBorder:     "#FFFFFF",
			TokenListSelectedBg: "#FFFFFF",
			TokenListSelectedFg: "#000000",
			TokenTick:           "#000000",
			TokenTableBorder:    "#FFFFFF",
		},
	},
}

// PresetNames returns the preset names sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

var defaults = snapshot()

type palette map[ColorToken]lipgloss.AdaptiveColor

func snapshot() palette {
	return palette{
		TokenTextPrimary:      TextPrimaryColor,
		TokenTextMuted:        TextMutedColor,
		TokenInputBorder:      InputBorderColor,
		TokenInputFocus:       InputFocusColor,
		TokenInputPlaceholder: InputPlaceholderColor,
		TokenListBorder:       ListBorderColor,
		TokenListSelectedBg:   ListSelectedBgColor,
		TokenListSelectedFg:   ListSelectedFgColor,
		TokenTick:             TickColor,
		TokenTableBorder:      TableBorderColor,
		TokenOverlayTitle:     OverlayTitleColor,
		TokenOverlayBorder:    OverlayBorderColor,
		TokenToastInfo:        ToastInfoColor,
		TokenToastSuccess:     ToastSuccessColor,
		TokenToastWarn:        ToastWarnColor,
		TokenToastError:       ToastErrorColor,
	}
}

// ValidateTheme reports the first problem in cfg without applying it.
func ValidateTheme(cfg ThemeConfig) error {
	if cfg.Preset != "" {
		if _, ok := Presets[cfg.Preset]; !ok {
			return fmt.Errorf("unknown theme preset %q (available: %s)", cfg.Preset, strings.Join(PresetNames(), ", "))
		}
	}
	switch strings.ToLower(cfg.Mode) {
	case "", "light", "dark":
	default:
		return fmt.Errorf("invalid theme mode %q (want light, dark or empty)", cfg.Mode)
	}
	for _, key := range slices.Sorted(maps.Keys(cfg.Colors)) {
		if !isValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(cfg.Colors[key]) {
			return fmt.Errorf("invalid hex color for %s: %s", key, cfg.Colors[key])
		}
	}
	return nil
}

// ApplyTheme resets colours to the defaults, layers the preset and the
// individual overrides on top, and rebuilds every style.
func ApplyTheme(cfg ThemeConfig) error {
	if err := ValidateTheme(cfg); err != nil {
		return err
	}

	switch strings.ToLower(cfg.Mode) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	colors := maps.Clone(defaults)
	if p, ok := Presets[cfg.Preset]; ok {
		for token, hex := range p.Colors {
			colors[token] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
	for key, hex := range cfg.Colors {
		colors[ColorToken(key)] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(c palette) {
	TextPrimaryColor = c[TokenTextPrimary]
	TextMutedColor = c[TokenTextMuted]
	InputBorderColor = c[TokenInputBorder]
	InputFocusColor = c[TokenInputFocus]
	InputPlaceholderColor = c[TokenInputPlaceholder]
	ListBorderColor = c[TokenListBorder]
	ListSelectedBgColor = c[TokenListSelectedBg]
	ListSelectedFgColor = c[TokenListSelectedFg]
	TickColor = c[TokenTick]
	TableBorderColor = c[TokenTableBorder]
	OverlayTitleColor = c[TokenOverlayTitle]
	OverlayBorderColor = c[TokenOverlayBorder]
	ToastInfoColor = c[TokenToastInfo]
	ToastSuccessColor = c[TokenToastSuccess]
	ToastWarnColor = c[TokenToastWarn]
	ToastErrorColor = c[TokenToastError]
}

// isValidHexColor accepts #RGB and #RRGGBB.
func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
