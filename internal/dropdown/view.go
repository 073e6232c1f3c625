package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/search"
	"github.com/zjrosen/dropsearch/internal/ui/overlay"
	"github.com/zjrosen/dropsearch/internal/ui/shared/table"
	"github.com/zjrosen/dropsearch/internal/ui/styles"
)

const tick = "✓"

func newDetailTable() table.Model {
	return table.New(table.TableConfig{
		Columns: []table.ColumnConfig{{
			Key: "sub_item",
			Render: func(row any, _ string, _ int) string {
				return row.(string)
			},
		}},
		ShowBorder:    true,
		RowSeparators: true,
		CellPadding:   1,
	})
}

// View renders the input, the detail table when something is selected, and
// the list on top of the table when open.
func (m Model) View() string {
	input := m.renderInput()
	view := zone.Mark(m.inputZoneID(), input)

	if sel, ok := m.state.Selected(); ok {
		// blank line between input and table
		view += "\n\n" + m.renderTable(sel)
	}

	if !m.state.IsOpen() {
		return view
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   lipgloss.Height(view),
		Position: overlay.Anchor,
		Y:        lipgloss.Height(input),
	}, m.renderList(), view)
}

func (m Model) renderInput() string {
	in := m.input
	in.PlaceholderStyle = styles.PlaceholderStyle

	style := styles.InputStyle
	if in.Focused() {
		style = styles.InputFocusedStyle
	}
	return style.Width(m.width - 2).Render(in.View())
}

func (m Model) renderTable(sel catalog.Category) string {
	rows := make([]any, len(sel.SubItems))
	for i, s := range sel.SubItems {
		rows[i] = s
	}
	return m.table.SetRows(rows).View()
}

func (m Model) renderList() string {
	inner := m.width - 2
	content := inner - styles.ItemStyle.GetHorizontalPadding()

	visible := m.state.visible
	var rows []string
	if len(visible) == 0 {
		rows = m.emptyRows(content)
	}
	for _, c := range visible {
		rows = append(rows, zone.Mark(m.itemZoneID(c.Title), m.renderItem(c, content)))
	}

	return styles.ListBoxStyle.Width(inner).Render(strings.Join(rows, "\n"))
}

// renderItem lays out "Title emoji" on the left and the tick on the right,
// like a space-between flex row.
func (m Model) renderItem(c catalog.Category, width int) string {
	selected := m.state.IsSelected(c.Title)

	label := c.Title + " " + c.Emoji
	reserve := runewidth.StringWidth(tick) + 1
	if runewidth.StringWidth(label) > width-reserve {
		label = runewidth.Truncate(label, width-reserve, "…")
	}
	gap := strings.Repeat(" ", width-runewidth.StringWidth(label)-reserve+1)

	if !selected {
		return styles.ItemStyle.Render(label + gap + " ")
	}
	return styles.SelectedItemStyle.Render(label + gap + styles.TickStyle.Render(tick))
}

func (m Model) emptyRows(width int) []string {
	pad := styles.ItemStyle.UnsetForeground()
	rows := []string{pad.Render(styles.MutedStyle.Render(runewidth.FillRight("No matches", width)))}

	if title, ok := search.Suggest(m.state.ref, m.state.searchText, suggestDistance); ok {
		hint := runewidth.Truncate("did you mean "+title+"?", width, "…")
		rows = append(rows, pad.Render(styles.MutedStyle.Italic(true).Render(runewidth.FillRight(hint, width))))
	}
	return rows
}
