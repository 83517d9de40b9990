package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mux-launcher/internal/catalog"
	"github.com/atomicstack/mux-launcher/internal/dispatch"
	"github.com/atomicstack/mux-launcher/internal/logging"
	"github.com/atomicstack/mux-launcher/internal/logging/events"
	"github.com/atomicstack/mux-launcher/internal/theme"
	"github.com/atomicstack/mux-launcher/internal/ui/state"
)

const defaultTitle = "Launcher"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// catalogLoadedMsg carries the result of the asynchronous catalog build.
type catalogLoadedMsg struct {
	entries catalog.Catalog
	err     error
}

// Model implements the Bubble Tea model for the launcher overlay.
type Model struct {
	session *state.Session
	loading bool
	errMsg  string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	title  string
	paneID string

	builder   *catalog.Builder
	buildArgs catalog.Args
	notifier  dispatch.Notifier

	dispatched bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state. The catalog is built asynchronously
// from Init; until it arrives the model renders a loading row.
func NewModel(builder *catalog.Builder, notifier dispatch.Notifier, args catalog.Args, title string, width, height int) *Model {
	if title == "" {
		title = defaultTitle
	}
	m := &Model{
		session:   state.NewSession(nil, args.Flags.Has(catalog.Fuzzy)),
		loading:   true,
		title:     title,
		paneID:    args.PaneID,
		builder:   builder,
		buildArgs: args,
		notifier:  notifier,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
		m.session.Resize(height)
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Dispatched reports whether an entry was launched before the program quit.
func (m *Model) Dispatched() bool {
	return m.dispatched
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(m.title),
		m.loadCatalogCmd(),
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(catalogLoadedMsg{}):  m.handleCatalogLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadCatalogCmd() tea.Cmd {
	builder := m.builder
	args := m.buildArgs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entries, err := builder.Build(ctx, args)
		return catalogLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) handleCatalogLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(catalogLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if loaded.err != nil {
		m.errMsg = loaded.err.Error()
		logging.Error(loaded.err)
	}
	alwaysFilter := m.session.AlwaysFilter
	m.session = state.NewSession(loaded.entries, alwaysFilter)
	if m.height > 0 {
		m.session.Resize(m.height)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.session.Resize(m.height)
	events.UI.Resize(m.width, m.height, m.session.VisibleRows)
	return nil
}
