// Package table renders a small bordered table with one line per row and an
// optional rule between rows. It is a pure render component: callers pass
// column configs, rows and a width.
//
//	tbl := table.New(table.TableConfig{
//	    Columns: []table.ColumnConfig{
//	        {Key: "item", Render: func(row any, _ string, _ int) string { return row.(string) }},
//	    },
//	    ShowBorder:    true,
//	    RowSeparators: true,
//	}).SetRows(rows).SetWidth(30)
//	view := tbl.View()
package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColumnConfig defines a single table column.
type ColumnConfig struct {
	Key      string // identifier passed to Render
	Header   string // header text, used when ShowHeader is set
	Width    int    // fixed width; 0 shares the remaining width with other flex columns
	MinWidth int    // lower bound for flex columns
	Align    lipgloss.Position

	// Render returns the cell text for row. The table truncates and pads it.
	Render func(row any, key string, width int) string
}

// TableConfig defines the complete table configuration.
type TableConfig struct {
	Columns       []ColumnConfig
	ShowHeader    bool
	ShowBorder    bool
	RowSeparators bool   // draw a rule between rows
	CellPadding   int    // blank columns on each side of a cell
	EmptyMessage  string // shown when there are no rows; empty renders nothing

	BorderColor lipgloss.TerminalColor // overrides styles.TableBorderColor
	HeaderStyle lipgloss.Style
	RowStyle    lipgloss.Style
}

// ValidateConfig reports configs the table cannot render.
func ValidateConfig(cfg TableConfig) error {
	if len(cfg.Columns) == 0 {
		return errors.New("table config: at least one column is required")
	}
	for i, col := range cfg.Columns {
		if col.Render == nil {
			if col.Key != "" {
				return fmt.Errorf("table config: column %q has nil Render callback", col.Key)
			}
			return fmt.Errorf("table config: column %d has nil Render callback", i)
		}
		if col.Width < 0 || col.MinWidth < 0 {
			return fmt.Errorf("table config: column %d has negative width", i)
		}
	}
	if cfg.CellPadding < 0 {
		return errors.New("table config: negative cell padding")
	}
	return nil
}
