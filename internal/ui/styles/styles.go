// Package styles contains Lip Gloss colours and styles for the dropdown.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1F2333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#8A8FA3", Dark: "#696969"}

	// Search box
	InputBorderColor      = lipgloss.AdaptiveColor{Light: "#A1ACDA", Dark: "#A1ACDA"}
	InputFocusColor       = lipgloss.AdaptiveColor{Light: "#6E80D2", Dark: "#C3CBEE"}
	InputPlaceholderColor = lipgloss.AdaptiveColor{Light: "#9A9FB5", Dark: "#777777"}

	// Item list
	ListBorderColor     = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#5C5C5C"}
	ListSelectedBgColor = lipgloss.AdaptiveColor{Light: "#F2F4FF", Dark: "#2E3350"}
	ListSelectedFgColor = lipgloss.AdaptiveColor{Light: "#1F2333", Dark: "#FFFFFF"}
	TickColor           = lipgloss.AdaptiveColor{Light: "#6E80D2", Dark: "#8FA0F0"}

	// Detail table
	TableBorderColor = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#5C5C5C"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#A1ACDA", Dark: "#8C8C8C"}

	ToastInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	ToastErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

// Styles built from the colours above. ApplyTheme rebuilds them.
var (
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	PlaceholderStyle  lipgloss.Style

	ListBoxStyle      lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	TickStyle         lipgloss.Style

	MutedStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(InputBorderColor).
		Padding(0, 1)
	InputFocusedStyle = InputStyle.BorderForeground(InputFocusColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(InputPlaceholderColor)

	ListBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ListBorderColor)
	ItemStyle = lipgloss.NewStyle().
		Foreground(TextPrimaryColor).
		Padding(0, 1)
	SelectedItemStyle = ItemStyle.
		Foreground(ListSelectedFgColor).
		Background(ListSelectedBgColor).
		Bold(true)
	TickStyle = lipgloss.NewStyle().
		Foreground(TickColor).
		Background(ListSelectedBgColor).
		Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}
