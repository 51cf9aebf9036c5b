package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/inventory"
	"github.com/five82/paintbox/internal/prefs"
	"github.com/five82/paintbox/internal/search"
	"github.com/five82/paintbox/internal/state"
	"github.com/five82/paintbox/internal/transfer"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Catalog    *catalog.Catalog
	Session    *state.Session
	Reconciler *transfer.Reconciler
	Log        *zap.Logger
	ExportDir  string
	Strategy   transfer.MergeStrategy
	Prefs      prefs.Prefs
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	cat        *catalog.Catalog
	colors     []catalog.Color
	codes      []string
	session    *state.Session
	reconciler *transfer.Reconciler
	log        *zap.Logger
	exportDir  string
	strategy   transfer.MergeStrategy
	prefsPath  string
	keys       keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot    inventory.Snapshot
	stats       inventory.Stats
	lastUpdated time.Time

	// Grid state
	query       string
	filter      search.Filter
	visible     []catalog.Color
	filterState search.State
	selectedRow int
	offset      int

	search textinput.Model
	modal  Modal
	menu   dataMenu
	status statusLine
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = transfer.Replace
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "code or name"
	in.CharLimit = SearchCharLimit

	m := Model{
		ctx:        ctx,
		session:    opts.Session,
		reconciler: opts.Reconciler,
		log:        log,
		exportDir:  opts.ExportDir,
		strategy:   strategy,
		prefsPath:  prefsPath,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(opts.Prefs.Theme),
		filter:     search.ParseFilter(opts.Prefs.Filter),
		search:     in,
		menu:       newDataMenu(),
	}
	if opts.Catalog != nil {
		m.cat = opts.Catalog
		m.colors = opts.Catalog.Colors()
		m.codes = opts.Catalog.Codes()
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.menu.resize(m.width, m.height)
		m.ensureVisible()
		return m, nil

	case quantitySubmittedMsg:
		return m, setQuantityCmd(m.ctx, m.session, msg.code, msg.quantity)

	case quantitySavedMsg:
		m.refresh()
		if msg.err != nil {
			m.status = errorStatus(DescribeError(msg.err))
		}
		return m, nil

	case exportDoneMsg, candidateMsg, importDoneMsg, clearDoneMsg:
		return m.handleMenuResult(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.menu.state != menuClosed {
		return m.renderMenu()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to whatever currently has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.menu.state != menuClosed {
		return m.handleMenuKey(msg)
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.filter.Next())
		return m, nil
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(search.FilterAll)
		return m, nil
	case key.Matches(msg, m.keys.FilterInStock):
		m.setFilter(search.FilterInStock)
		return m, nil
	case key.Matches(msg, m.keys.FilterOutOfStock):
		m.setFilter(search.FilterOutOfStock)
		return m, nil
	case key.Matches(msg, m.keys.FilterLowStock):
		m.setFilter(search.FilterLowStock)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.query = ""
		m.search.SetValue("")
		m.setFilter(search.FilterAll)
		m.status = statusLine{}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if c, ok := m.selected(); ok {
			m.modal = newQuantityModal(c, m.snapshot.Get(c.Code))
		}
		return m, nil
	case key.Matches(msg, m.keys.Increment):
		return m, m.adjustSelected(1)
	case key.Matches(msg, m.keys.Decrement):
		return m, m.adjustSelected(-1)

	case key.Matches(msg, m.keys.Menu):
		m.menu.open()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	case key.Matches(msg, m.keys.Import):
		cmd := m.startImport()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		m.startClear()
		return m, nil
	}

	m.handleGridNav(msg)
	return m, nil
}

// handleSearchKey edits the live search query.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.setQuery("")
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setQuery(m.search.Value())
	return m, cmd
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.selectedRow = 0
	m.offset = 0
	m.refilter()
}

func (m *Model) setFilter(f search.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.selectedRow = 0
	m.offset = 0
	m.refilter()
	m.savePrefs()
}

// refresh reloads the live snapshot from the session.
func (m *Model) refresh() {
	if m.session != nil {
		m.snapshot = m.session.Snapshot()
		m.lastUpdated = m.session.LastUpdated()
	}
	if m.snapshot == nil {
		m.snapshot = inventory.Snapshot{}
	}
	m.stats = inventory.StatsFor(m.codes, m.snapshot)
	m.refilter()
}

// refilter recomputes the visible colors, keeping the selected code when it
// is still visible.
func (m *Model) refilter() {
	prev, hadPrev := m.selected()
	m.visible, m.filterState = search.Apply(m.colors, m.snapshot, m.query, m.filter)
	if hadPrev {
		for i, c := range m.visible {
			if c.Code == prev.Code {
				m.selectedRow = i
				break
			}
		}
	}
	if m.selectedRow >= len(m.visible) {
		m.selectedRow = max(len(m.visible)-1, 0)
	}
	m.ensureVisible()
}

func (m Model) selected() (catalog.Color, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return catalog.Color{}, false
	}
	return m.visible[m.selectedRow], true
}

func (m Model) adjustSelected(delta int) tea.Cmd {
	c, ok := m.selected()
	if !ok {
		return nil
	}
	return adjustQuantityCmd(m.ctx, m.session, c.Code, delta)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Filter: m.filter.String(), Strategy: string(m.strategy)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// Messages

type quantitySubmittedMsg struct {
	code     string
	quantity int
}

type quantitySavedMsg struct {
	code     string
	quantity int
	err      error
}

// Commands

func setQuantityCmd(ctx context.Context, session *state.Session, code string, qty int) tea.Cmd {
	return func() tea.Msg {
		got, err := session.Set(ctx, code, qty)
		return quantitySavedMsg{code: code, quantity: got, err: err}
	}
}

func adjustQuantityCmd(ctx context.Context, session *state.Session, code string, delta int) tea.Cmd {
	return func() tea.Msg {
		got, err := session.Adjust(ctx, code, delta)
		return quantitySavedMsg{code: code, quantity: got, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
