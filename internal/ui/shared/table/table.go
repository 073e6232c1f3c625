package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/dropsearch/internal/ui/styles"
)

// Model holds table rendering state.
type Model struct {
	config TableConfig
	rows   []any
	width  int
}

// New creates a table. It panics on an invalid config, which is a programming error.
func New(cfg TableConfig) Model {
	if err := ValidateConfig(cfg); err != nil {
		panic(err)
	}
	return Model{config: cfg}
}

// SetRows replaces the row data.
func (m Model) SetRows(rows []any) Model {
	m.rows = rows
	return m
}

// SetWidth sets the total rendered width, borders included.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// RowCount returns the number of rows.
func (m Model) RowCount() int {
	return len(m.rows)
}

// Height returns the number of lines View produces.
func (m Model) Height() int {
	view := m.View()
	if view == "" {
		return 0
	}
	return strings.Count(view, "\n") + 1
}

// View renders the table. It returns "" when the width is too small, or when
// there are no rows and no EmptyMessage.
func (m Model) View() string {
	inner := m.width
	if m.config.ShowBorder {
		inner -= 2
	}
	pad := m.config.CellPadding
	contentWidth := inner - 2*pad
	if contentWidth < 1 {
		return ""
	}

	var lines []string
	widths := columnWidths(m.config.Columns, contentWidth)
	padStr := strings.Repeat(" ", pad)

	rule := lipgloss.NewStyle().Foreground(m.borderColor()).Render(strings.Repeat("─", inner))

	if m.config.ShowHeader {
		cells := make([]string, len(m.config.Columns))
		for i, col := range m.config.Columns {
			cells[i] = fit(col.Header, widths[i], col.Align)
		}
		lines = append(lines, m.config.HeaderStyle.Render(padStr+strings.Join(cells, " ")+padStr))
		if len(m.rows) > 0 {
			lines = append(lines, rule)
		}
	}

	if len(m.rows) == 0 {
		if m.config.EmptyMessage == "" {
			return ""
		}
		lines = append(lines, padStr+fit(styles.MutedStyle.Render(m.config.EmptyMessage), contentWidth, lipgloss.Left)+padStr)
	}

	for r, row := range m.rows {
		if r > 0 && m.config.RowSeparators {
			lines = append(lines, rule)
		}
		cells := make([]string, len(m.config.Columns))
		for i, col := range m.config.Columns {
			cells[i] = fit(safeRender(row, col, widths[i]), widths[i], col.Align)
		}
		lines = append(lines, m.config.RowStyle.Render(padStr+strings.Join(cells, " ")+padStr))
	}

	body := strings.Join(lines, "\n")
	if !m.config.ShowBorder {
		return body
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.borderColor()).
		Render(body)
}

func (m Model) borderColor() lipgloss.TerminalColor {
	if m.config.BorderColor != nil {
		return m.config.BorderColor
	}
	return styles.TableBorderColor
}
