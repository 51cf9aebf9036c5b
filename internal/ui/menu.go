package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/paintbox/internal/state"
	"github.com/five82/paintbox/internal/transfer"
)

type menuState int

const (
	menuClosed menuState = iota
	menuOpen
	menuConfirming
)

type menuAction int

const (
	actionNone menuAction = iota
	actionImport
	actionClear
)

type importStep int

const (
	stepChoose importStep = iota
	stepSource
	stepStrategy
)

const menuWidth = 64

// dataMenu drives export, import and clear. Only one operation runs at a
// time; busy blocks every trigger until its result message arrives.
type dataMenu struct {
	state     menuState
	action    menuAction
	step      importStep
	busy      bool
	input     textinput.Model
	candidate *transfer.Candidate
	strategy  transfer.MergeStrategy
	preview   transfer.Preview
	viewport  viewport.Model
}

func newDataMenu() dataMenu {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "path to export file or " + transfer.ShareCodePrefix + " share code"
	in.CharLimit = PathCharLimit
	in.Width = menuWidth - 8
	return dataMenu{input: in, viewport: viewport.New(menuWidth-6, 10)}
}

func (d *dataMenu) open() {
	d.reset()
	d.state = menuOpen
}

func (d *dataMenu) reset() {
	d.state = menuClosed
	d.action = actionNone
	d.step = stepChoose
	d.candidate = nil
	d.preview = transfer.Preview{}
	d.input.Blur()
	d.input.SetValue("")
}

func (d *dataMenu) resize(width, height int) {
	d.viewport.Width = min(menuWidth, max(width-8, 20)) - 6
	d.viewport.Height = max(height-16, 3)
}

// Messages

type exportDoneMsg struct {
	path string
	err  error
}

type candidateMsg struct {
	candidate *transfer.Candidate
	err       error
}

type importDoneMsg struct {
	preview transfer.Preview
	err     error
}

type clearDoneMsg struct {
	err error
}

// Commands

func exportCmd(r *transfer.Reconciler, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := r.ExportFile(dir)
		return exportDoneMsg{path: path, err: err}
	}
}

func loadCandidateCmd(ctx context.Context, r *transfer.Reconciler, src transfer.Source) tea.Cmd {
	return func() tea.Msg {
		c, err := r.Load(ctx, src)
		return candidateMsg{candidate: c, err: err}
	}
}

func commitImportCmd(ctx context.Context, r *transfer.Reconciler, c *transfer.Candidate, strategy transfer.MergeStrategy, preview transfer.Preview) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Commit(ctx, c, strategy)
		return importDoneMsg{preview: preview, err: err}
	}
}

func clearCmd(ctx context.Context, session *state.Session) tea.Cmd {
	return func() tea.Msg {
		return clearDoneMsg{err: session.Clear(ctx)}
	}
}

// sourceFor picks a share code or file source for what the user typed. A
// blank entry is a cancelled selection.
func sourceFor(input string) transfer.Source {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, transfer.ShareCodePrefix) {
		return transfer.ShareCodeSource{Code: input}
	}
	return transfer.FileSource{Path: input}
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.menu.busy || m.reconciler == nil {
		return m, nil
	}
	m.menu.reset()
	m.menu.busy = true
	m.status = infoStatus("Exporting...")
	return m, exportCmd(m.reconciler, m.exportDir)
}

func (m *Model) startImport() tea.Cmd {
	if m.menu.busy || m.reconciler == nil {
		return nil
	}
	m.menu.reset()
	m.menu.state = menuOpen
	m.menu.action = actionImport
	m.menu.step = stepSource
	return m.menu.input.Focus()
}

func (m *Model) startClear() {
	if m.menu.busy || m.session == nil {
		return
	}
	m.menu.reset()
	m.menu.state = menuConfirming
	m.menu.action = actionClear
}

// handleMenuKey handles keys while the data menu is open.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.busy {
		return m, nil
	}

	if m.menu.state == menuConfirming {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.menu.busy = true
			if m.menu.action == actionClear {
				m.status = infoStatus("Clearing inventory...")
				return m, clearCmd(m.ctx, m.session)
			}
			m.status = infoStatus("Importing...")
			return m, commitImportCmd(m.ctx, m.reconciler, m.menu.candidate, m.menu.strategy, m.menu.preview)
		case key.Matches(msg, m.keys.No):
			if m.menu.action == actionClear {
				m.status = infoStatus("Clear cancelled.")
			} else {
				m.status = infoStatus("Import discarded.")
			}
			m.menu.reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.menu.viewport, cmd = m.menu.viewport.Update(msg)
		return m, cmd
	}

	switch m.menu.step {
	case stepSource:
		switch msg.Type {
		case tea.KeyEsc:
			m.menu.reset()
			m.status = infoStatus("Import cancelled.")
			return m, nil
		case tea.KeyEnter:
			src := sourceFor(m.menu.input.Value())
			m.menu.input.Blur()
			m.menu.busy = true
			m.status = infoStatus("Reading " + src.Name() + "...")
			return m, loadCandidateCmd(m.ctx, m.reconciler, src)
		}
		var cmd tea.Cmd
		m.menu.input, cmd = m.menu.input.Update(msg)
		return m, cmd

	case stepStrategy:
		if msg.Type == tea.KeyEsc {
			m.menu.reset()
			m.status = infoStatus("Import discarded.")
			return m, nil
		}
		var strategy transfer.MergeStrategy
		switch msg.String() {
		case "enter":
			strategy = m.strategy
		case "1":
			strategy = transfer.Replace
		case "2":
			strategy = transfer.Merge
		case "3":
			strategy = transfer.SkipExisting
		default:
			s, err := transfer.ParseStrategy(msg.String())
			if err != nil {
				return m, nil
			}
			strategy = s
		}
		m.showPreview(strategy)
		return m, nil
	}

	// stepChoose
	switch msg.String() {
	case "esc", "m", "q":
		m.menu.reset()
		return m, nil
	case "x", "e":
		return m.startExport()
	case "I", "i":
		cmd := m.startImport()
		return m, cmd
	case "C", "c":
		m.startClear()
		return m, nil
	}
	return m, nil
}

// showPreview computes the import preview for strategy and asks for
// confirmation.
func (m *Model) showPreview(strategy transfer.MergeStrategy) {
	m.menu.strategy = strategy
	m.menu.preview = m.reconciler.Preview(m.menu.candidate, strategy)
	m.menu.state = menuConfirming
	m.menu.viewport.SetContent(m.previewListing(m.menu.preview))
	m.menu.viewport.GotoTop()
	if strategy != m.strategy {
		m.strategy = strategy
		m.savePrefs()
	}
}

// handleMenuResult applies the outcome of an asynchronous data operation.
func (m Model) handleMenuResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.menu.busy = false

	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("export failed", zap.Error(msg.err))
			m.status = errorStatus("Export failed: " + DescribeError(msg.err))
			return m, nil
		}
		m.status = successStatus("Exported to " + truncateMiddle(msg.path, 60))

	case candidateMsg:
		switch {
		case msg.err != nil:
			m.menu.reset()
			m.status = errorStatus(DescribeError(msg.err))
		case msg.candidate == nil:
			m.menu.reset()
			m.status = infoStatus("Import cancelled.")
		default:
			m.menu.candidate = msg.candidate
			m.menu.step = stepStrategy
			m.status = infoStatus(fmt.Sprintf("Read %d colors from %s.", len(msg.candidate.Codes), msg.candidate.Source))
		}

	case importDoneMsg:
		m.menu.reset()
		m.refresh()
		if msg.err != nil {
			m.status = errorStatus("Import failed: " + DescribeError(msg.err))
			return m, nil
		}
		m.status = successStatus("Imported. " + msg.preview.Summary())

	case clearDoneMsg:
		m.menu.reset()
		m.refresh()
		if msg.err != nil {
			m.status = errorStatus("Clear failed: " + DescribeError(msg.err))
			return m, nil
		}
		m.status = successStatus("Inventory cleared.")
	}
	return m, nil
}

// previewListing lists the preview entry by entry. Codes outside the
// catalog are imported but only counted.
func (m Model) previewListing(p transfer.Preview) string {
	styles := m.theme.Styles()
	var b strings.Builder
	listed := func(code string) bool { return m.cat == nil || m.cat.Has(code) }
	unlisted := 0

	section := func(title string, n int) {
		b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("%s (%d)", title, n)))
		b.WriteString("\n")
	}

	section("New", len(p.NewColors))
	for _, c := range p.NewColors {
		if !listed(c.Code) {
			unlisted++
			continue
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", c.Code, styles.SuccessText.Render(fmt.Sprintf("+%d", c.Quantity))))
	}
	section("Updated", len(p.UpdatedColors))
	for _, c := range p.UpdatedColors {
		if !listed(c.Code) {
			unlisted++
			continue
		}
		b.WriteString(fmt.Sprintf("  %-10s %d → %s\n", c.Code, c.CurrentQuantity, styles.WarningText.Render(fmt.Sprintf("%d", c.FinalQuantity))))
	}
	section("Unchanged", len(p.UnchangedColors))
	for _, c := range p.UnchangedColors {
		if !listed(c.Code) {
			unlisted++
			continue
		}
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %-10s %d", c.Code, c.Quantity)))
		b.WriteString("\n")
	}
	if unlisted > 0 {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d not in the catalog: kept, not listed", unlisted)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMenu renders the data menu overlay.
func (m Model) renderMenu() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := func(s string) {
		b.WriteString(styles.Text.Bold(true).Render(s))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
		b.WriteString("\n\n")
	}
	option := func(k, desc string) {
		keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(8)
		b.WriteString(keyStyle.Render(k))
		b.WriteString(styles.Text.Render(desc))
		b.WriteString("\n")
	}

	switch {
	case m.menu.action == actionClear:
		st := m.stats
		title("Clear inventory")
		b.WriteString(styles.Text.Render(fmt.Sprintf("%d colors in stock, %d paints in total.", st.InStock, st.TotalQuantity)))
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("Every quantity goes back to zero. This cannot be undone."))
		b.WriteString("\n\n")
		option("y", "Clear everything")
		option("n/esc", "Cancel")

	case m.menu.state == menuConfirming:
		c := m.menu.candidate
		title("Import preview")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · exported %s · %s", c.Source, c.ExportedAt, m.menu.strategy.Label())))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(m.menu.preview.Summary()))
		b.WriteString("\n\n")
		b.WriteString(m.menu.viewport.View())
		b.WriteString("\n\n")
		if m.menu.preview.TotalChanges == 0 {
			option("y", "Apply (nothing changes)")
		} else {
			option("y", "Apply changes")
		}
		option("n/esc", "Discard")

	case m.menu.step == stepSource:
		title("Import")
		b.WriteString(styles.MutedText.Render("File path, or paste a share code. Blank cancels."))
		b.WriteString("\n\n")
		b.WriteString(m.menu.input.View())
		b.WriteString("\n\n")
		option("enter", "Read")
		option("esc", "Cancel")

	case m.menu.step == stepStrategy:
		c := m.menu.candidate
		title("Import strategy")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d colors from %s, exported %s", len(c.Codes), c.Source, c.ExportedAt)))
		b.WriteString("\n\n")
		option("1 / r", transfer.Replace.Label())
		option("2 / m", transfer.Merge.Label())
		option("3 / k", transfer.SkipExisting.Label())
		option("enter", "Use "+m.strategy.Label())
		option("esc", "Discard")

	default:
		title("Data")
		option("x", "Export inventory to "+truncateMiddle(m.exportDir, 36))
		option("I", "Import from file or share code")
		option("C", "Clear inventory")
		option("esc", "Close")
	}

	if m.menu.busy {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Working..."))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(min(menuWidth, max(m.width-4, 20)))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
