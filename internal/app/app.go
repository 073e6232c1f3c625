// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dropsearch/internal/cachemanager"
	"github.com/zjrosen/dropsearch/internal/config"
	"github.com/zjrosen/dropsearch/internal/dropdown"
	"github.com/zjrosen/dropsearch/internal/keys"
	"github.com/zjrosen/dropsearch/internal/log"
	"github.com/zjrosen/dropsearch/internal/pubsub"
	"github.com/zjrosen/dropsearch/internal/search"
	"github.com/zjrosen/dropsearch/internal/ui/logoverlay"
	"github.com/zjrosen/dropsearch/internal/ui/styles"
	"github.com/zjrosen/dropsearch/internal/ui/toaster"
	"github.com/zjrosen/dropsearch/internal/watcher"
)

var contentStyle = lipgloss.NewStyle().Padding(1, 2)

// Options configures New.
type Options struct {
	Config     config.Config
	ConfigPath string // watched for theme reloads when Config.WatchConfig is set
	Debug      bool   // enables the log overlay
}

// Model is the root application state.
type Model struct {
	dropdown dropdown.Model
	cfg      config.Config
	keys     keys.KeyMap
	help     help.Model

	width  int
	height int

	toaster toaster.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	searchCache *cachemanager.InMemoryCacheManager[string, []string]
	searcher    *search.Cached

	// Config watcher, nil when watching is off or failed to start
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.Listener[string]

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the application model. Watcher start failures are logged and
// the app runs without reloads.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	cache := cachemanager.NewInMemoryCacheManager[string, []string](
		"search", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	m := Model{
		cfg:         opts.Config,
		keys:        keys.DefaultKeyMap().WithDebug(opts.Debug),
		help:        help.New(),
		toaster:     toaster.New(),
		debugMode:   opts.Debug,
		logOverlay:  logoverlay.New(),
		searchCache: cache,
		ctx:         ctx,
		cancel:      cancel,
	}
	m.searcher = m.newSearcher()
	m.dropdown = dropdown.New(m.searcher.Filter).SetWidth(opts.Config.UI.Width)

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if opts.Config.WatchConfig && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			m.watcherListener = pubsub.NewListener[string](ctx, w)
			if err = w.Start(); err == nil {
				m.watcherHandle = w
			} else {
				_ = w.Stop()
				m.watcherListener = nil
			}
		}
		if err != nil {
			log.Warn(log.CatWatcher, "Config watching disabled", "error", err)
		}
	}

	return m
}

// newSearcher builds the cached matcher for the current search config.
func (m Model) newSearcher() *search.Cached {
	mode, err := search.ParseMode(m.cfg.Search.Mode)
	if err != nil {
		log.Warn(log.CatSearch, "Falling back to substring search", "error", err)
		mode = search.ModeSubstring
	}
	return search.NewCached(search.NewMatcher(mode), m.searchCache, m.cfg.Search.CacheTTL)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dropdown.Init(),
		m.watcherListener.Listen(),
		m.logListener.Listen(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.dropdown = m.dropdown.SetWidth(m.widgetWidth())
		return m, nil

	case pubsub.Event[string]:
		return m.handleEvent(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Logs) {
			m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			return m, nil
		}

	case dropdown.SelectionChangedMsg:
		return m.handleSelectionChanged(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.dropdown, cmd = m.dropdown.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.dropdown.Focused() {
			m.dropdown = m.dropdown.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.dropdown, cmd = m.dropdown.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearText):
		var cmd tea.Cmd
		m.dropdown, cmd = m.dropdown.SetSearchText("")
		return m, cmd
	}

	var cmd tea.Cmd
	m.dropdown, cmd = m.dropdown.Update(msg)
	return m, cmd
}

func (m Model) handleSelectionChanged(msg dropdown.SelectionChangedMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.Toasts {
		return m, nil
	}
	if msg.Selected {
		m.toaster = m.toaster.Show("Selected "+msg.Category.Title+" "+msg.Category.Emoji, toaster.StyleSuccess)
	} else {
		m.toaster = m.toaster.Show("Selection cleared", toaster.StyleInfo)
	}
	return m, m.toaster.ScheduleDismiss(toaster.DefaultDuration)
}

// handleEvent routes log entries to the overlay and config file events to a
// reload. Both streams carry string payloads, so the event type tells them apart.
func (m Model) handleEvent(ev pubsub.Event[string]) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case pubsub.AppendedEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(ev)
		return m, tea.Batch(cmd, m.logListener.Listen())

	case pubsub.ChangedEvent:
		var cmd tea.Cmd
		m, cmd = m.reloadConfig(ev.Payload)
		return m, tea.Batch(cmd, m.watcherListener.Listen())

	case pubsub.FailedEvent:
		log.Warn(log.CatWatcher, "Watcher error received", "error", ev.Payload)
		return m, m.watcherListener.Listen()
	}
	return m, nil
}

// reloadConfig re-reads path and applies the theme, width, search and toast
// settings. A bad file keeps the running config.
func (m Model) reloadConfig(path string) (Model, tea.Cmd) {
	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err == nil {
		err = styles.ApplyTheme(cfg.Theme.Styles())
	}
	if err != nil {
		log.Warn(log.CatConfig, "Config reload failed", "path", path, "error", err)
		m.toaster = m.toaster.Show("Config reload failed", toaster.StyleWarn)
		return m, m.toaster.ScheduleDismiss(toaster.DefaultDuration)
	}

	searchChanged := cfg.Search != m.cfg.Search
	cfg.Debug = m.cfg.Debug
	m.cfg = cfg
	if searchChanged {
		if err := m.searcher.Invalidate(); err != nil {
			log.Warn(log.CatCache, "Failed to invalidate search cache", "error", err)
		}
		m.searcher = m.newSearcher()
		m.dropdown = m.dropdown.SetFilter(m.searcher.Filter)
	}
	m.dropdown = m.dropdown.SetWidth(m.widgetWidth())

	log.Info(log.CatConfig, "Config reloaded", "path", path)
	m.toaster = m.toaster.Show("Config reloaded", toaster.StyleInfo)
	return m, m.toaster.ScheduleDismiss(toaster.DefaultDuration)
}

// widgetWidth is the configured width, narrowed to fit the terminal.
func (m Model) widgetWidth() int {
	w := m.cfg.UI.Width
	if avail := m.width - contentStyle.GetHorizontalPadding(); m.width > 0 && avail < w {
		w = avail
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	view := contentStyle.Render(m.dropdown.View() + "\n\n" + m.help.View(m.keys))

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Dropdown returns the widget model.
func (m Model) Dropdown() dropdown.Model {
	return m.dropdown
}

// Close releases the watcher and stops all listeners.
func (m *Model) Close() error {
	m.cancel()
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
