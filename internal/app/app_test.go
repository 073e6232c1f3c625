package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/config"
	"github.com/zjrosen/dropsearch/internal/dropdown"
	"github.com/zjrosen/dropsearch/internal/log"
	"github.com/zjrosen/dropsearch/internal/pubsub"
	"github.com/zjrosen/dropsearch/internal/ui/logoverlay"
	"github.com/zjrosen/dropsearch/internal/ui/styles"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	log.SetDefault(log.New(nil, 100))
	os.Exit(m.Run())
}

func newTestApp(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func defaultOptions() Options {
	return Options{Config: config.Defaults()}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update should return app.Model")
	return out, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func titles(cats []catalog.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Title
	}
	return out
}

func mustCategory(t *testing.T, title string) catalog.Category {
	t.Helper()
	c, ok := catalog.ByTitle(title)
	require.True(t, ok)
	return c
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	require.Equal(t, 30, m.Dropdown().Width())
	require.True(t, m.Dropdown().Focused())
	require.False(t, m.Dropdown().IsOpen())
	require.Equal(t, catalog.Titles(), titles(m.Dropdown().Visible()))
	require.Nil(t, m.logListener, "log listener only exists in debug mode")
	require.Nil(t, m.watcherHandle, "no watcher without a config path")
	require.NotNil(t, m.Init())
}

func TestUpdate_TypingFilters(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	m = typeText(t, m, "sc")

	require.Equal(t, "sc", m.Dropdown().SearchText())
	require.Equal(t, []string{"Science"}, titles(m.Dropdown().Visible()))
	require.Contains(t, m.View(), "sc")
}

func TestUpdate_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(msg.String(), func(t *testing.T) {
			m := newTestApp(t, defaultOptions())
			_, cmd := update(t, m, msg)
			require.NotNil(t, cmd)
			require.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := newTestApp(t, defaultOptions())
	require.False(t, m.help.ShowAll)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.help.ShowAll)
	require.Contains(t, m.View(), "clear search")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.False(t, m.help.ShowAll)
}

func TestUpdate_FocusToggle(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, m.Dropdown().Focused())

	m = typeText(t, m, "x")
	require.Empty(t, m.Dropdown().SearchText(), "blurred input ignores typing")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.Dropdown().Focused())
}

func TestUpdate_ClearText(t *testing.T) {
	m := newTestApp(t, defaultOptions())
	m = typeText(t, m, "art")
	require.Equal(t, []string{"Art"}, titles(m.Dropdown().Visible()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	require.Empty(t, m.Dropdown().SearchText())
	require.Equal(t, catalog.Titles(), titles(m.Dropdown().Visible()))
}

func TestUpdate_WindowSizeNarrowsWidget(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 24, Height: 20})
	require.Equal(t, 20, m.Dropdown().Width(), "window width minus content padding")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 30, m.Dropdown().Width(), "never wider than configured")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 8, Height: 20})
	require.Equal(t, dropdown.MinWidth, m.Dropdown().Width())
}

func TestSelectionChanged_ShowsToast(t *testing.T) {
	m := newTestApp(t, defaultOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := update(t, m, dropdown.SelectionChangedMsg{Category: mustCategory(t, "Art"), Selected: true})

	require.NotNil(t, cmd, "toast schedules its dismissal")
	require.True(t, m.toaster.Visible())
	require.Equal(t, "Selected Art 🎨", m.toaster.Message())
	require.Contains(t, m.View(), "Selected Art")
}

func TestSelectionChanged_ClearedToast(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	m, _ = update(t, m, dropdown.SelectionChangedMsg{Category: mustCategory(t, "Art"), Selected: false})

	require.Equal(t, "Selection cleared", m.toaster.Message())
}

func TestSelectionChanged_ToastsDisabled(t *testing.T) {
	opts := defaultOptions()
	opts.Config.UI.Toasts = false
	m := newTestApp(t, opts)

	m, cmd := update(t, m, dropdown.SelectionChangedMsg{Category: mustCategory(t, "Art"), Selected: true})

	require.Nil(t, cmd)
	require.False(t, m.toaster.Visible())
}

func TestLogOverlay_DisabledWithoutDebug(t *testing.T) {
	m := newTestApp(t, defaultOptions())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	require.False(t, m.logOverlay.Visible())
}

func TestLogOverlay_ToggleCapturesInput(t *testing.T) {
	opts := defaultOptions()
	opts.Debug = true
	m := newTestApp(t, opts)
	require.NotNil(t, m.logListener)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, m.logOverlay.Visible())

	m = typeText(t, m, "art")
	require.Empty(t, m.Dropdown().SearchText(), "keys go to the overlay while it is open")

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.False(t, m.Dropdown().IsOpen())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.False(t, m.logOverlay.Visible())

	m = typeText(t, m, "art")
	require.Equal(t, "art", m.Dropdown().SearchText())
}

func TestLogOverlay_CloseMsgHides(t *testing.T) {
	opts := defaultOptions()
	opts.Debug = true
	m := newTestApp(t, opts)
	m.logOverlay.Show()

	m, _ = update(t, m, logoverlay.CloseMsg{})

	require.False(t, m.logOverlay.Visible())
}

func TestHandleEvent_LogEntryRelistens(t *testing.T) {
	opts := defaultOptions()
	opts.Debug = true
	m := newTestApp(t, opts)

	_, cmd := update(t, m, log.LogEvent{Type: pubsub.AppendedEvent, Payload: "entry"})

	require.NotNil(t, cmd)
}

func TestHandleEvent_WatcherFailureKeepsState(t *testing.T) {
	m := newTestApp(t, defaultOptions())
	m = typeText(t, m, "sp")

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.FailedEvent, Payload: "boom"})

	require.Equal(t, "sp", m.Dropdown().SearchText())
	require.False(t, m.toaster.Visible())
}

func TestReloadConfig_AppliesChanges(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{})) })

	path := writeConfig(t, `ui:
  width: 40
search:
  mode: fuzzy
theme:
  colors:
    tick: "#FF0000"
`)
	m := newTestApp(t, defaultOptions())

	m, cmd := update(t, m, pubsub.Event[string]{Type: pubsub.ChangedEvent, Payload: path})

	require.NotNil(t, cmd)
	require.Equal(t, "Config reloaded", m.toaster.Message())
	require.Equal(t, 40, m.Dropdown().Width())
	require.Equal(t, "fuzzy", m.cfg.Search.Mode)

	m = typeText(t, m, "scne")
	require.Equal(t, []string{"Science"}, titles(m.Dropdown().Visible()), "fuzzy matching after reload")
}

func TestReloadConfig_InvalidKeepsRunningConfig(t *testing.T) {
	path := writeConfig(t, "ui:\n  width: 4\n")
	m := newTestApp(t, defaultOptions())

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.ChangedEvent, Payload: path})

	require.Equal(t, "Config reload failed", m.toaster.Message())
	require.Equal(t, 30, m.Dropdown().Width())
	require.Equal(t, "substring", m.cfg.Search.Mode)
}

func TestWatcher_DeliversReload(t *testing.T) {
	path := writeConfig(t, "ui:\n  width: 30\n")
	opts := defaultOptions()
	opts.ConfigPath = path
	m := newTestApp(t, opts)
	require.NotNil(t, m.watcherHandle)

	listen := m.watcherListener.Listen()
	got := make(chan tea.Msg, 1)
	go func() { got <- listen() }()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  width: 36\n"), 0o600))

	var msg tea.Msg
	select {
	case msg = <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
	ev, ok := msg.(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.ChangedEvent, ev.Type)

	m, _ = update(t, m, ev)
	require.Equal(t, 36, m.Dropdown().Width())
}

func TestWatcher_DisabledByConfig(t *testing.T) {
	opts := defaultOptions()
	opts.ConfigPath = writeConfig(t, "ui:\n  width: 30\n")
	opts.Config.WatchConfig = false

	m := newTestApp(t, opts)

	require.Nil(t, m.watcherHandle)
	require.Nil(t, m.watcherListener)
}

func TestWatcher_MissingDirectoryRunsWithout(t *testing.T) {
	opts := defaultOptions()
	opts.ConfigPath = filepath.Join(t.TempDir(), "missing", "config.yaml")

	m := newTestApp(t, opts)

	require.Nil(t, m.watcherHandle)
	require.Nil(t, m.watcherListener)
}

func TestProgram_TypeAndQuit(t *testing.T) {
	tm := teatest.NewTestModel(t, New(defaultOptions()), teatest.WithInitialTermSize(80, 24))

	tm.Type("sc")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("sc"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	require.Equal(t, "sc", final.Dropdown().SearchText())
	require.Equal(t, []string{"Science"}, titles(final.Dropdown().Visible()))
	require.NoError(t, final.Close())
}

func TestProgram_SelectionToast(t *testing.T) {
	m := newTestApp(t, defaultOptions())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Send(dropdown.SelectionChangedMsg{Category: mustCategory(t, "Art"), Selected: true})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Selected Art"))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	require.NoError(t, tm.Quit())
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
