package styles

// ColorToken is a themeable colour name as written in config.
type ColorToken string

// Color tokens. These are the keys accepted under theme.colors.
const (
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	TokenInputBorder      ColorToken = "input.border"
	TokenInputFocus       ColorToken = "input.focus"
	TokenInputPlaceholder ColorToken = "input.placeholder"

	TokenListBorder     ColorToken = "list.border"
	TokenListSelectedBg ColorToken = "list.selected.bg"
	TokenListSelectedFg ColorToken = "list.selected.fg"
	TokenTick           ColorToken = "tick"

	TokenTableBorder ColorToken = "table.border"

	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	TokenToastInfo    ColorToken = "toast.info"
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastWarn    ColorToken = "toast.warn"
	TokenToastError   ColorToken = "toast.error"
)

// AllTokens lists every valid token in display order.
var AllTokens = []ColorToken{
	TokenTextPrimary,
	TokenTextMuted,
	TokenInputBorder,
	TokenInputFocus,
	TokenInputPlaceholder,
	TokenListBorder,
	TokenListSelectedBg,
	TokenListSelectedFg,
	TokenTick,
	TokenTableBorder,
	TokenOverlayTitle,
	TokenOverlayBorder,
	TokenToastInfo,
	TokenToastSuccess,
	TokenToastWarn,
	TokenToastError,
}

func isValidToken(t ColorToken) bool {
	for _, known := range AllTokens {
		if known == t {
			return true
		}
	}
	return false
}
