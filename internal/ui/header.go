package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paintbox/internal/inventory"
	"github.com/five82/paintbox/internal/transfer"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// statusLine is the one-line message under the grid.
type statusLine struct {
	text string
	kind statusKind
}

func infoStatus(text string) statusLine    { return statusLine{text: text, kind: statusInfo} }
func successStatus(text string) statusLine { return statusLine{text: text, kind: statusSuccess} }
func errorStatus(text string) statusLine   { return statusLine{text: text, kind: statusError} }

// DescribeError turns an import, export or store failure into a message for
// the user.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, transfer.ErrPayloadTooLarge):
		return fmt.Sprintf("File too large (max %d MB).", transfer.MaxPayloadBytes>>20)
	case errors.Is(err, transfer.ErrEmptyPayload):
		return "The file is empty."
	case errors.Is(err, transfer.ErrMalformedPayload):
		return "The file is not valid JSON."
	case errors.Is(err, transfer.ErrSchemaViolation):
		return "Not an inventory export: " + err.Error()
	case errors.Is(err, fs.ErrNotExist):
		return "File not found: " + err.Error()
	case errors.Is(err, inventory.ErrPersistence):
		return "Could not save inventory: " + err.Error()
	default:
		return err.Error()
	}
}

// renderHeader renders the stats bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	var parts []string
	parts = append(parts, bg.Render("paintbox", styles.Logo))

	stat := func(label, short string, n int, style lipgloss.Style) string {
		if compact {
			label = short
		}
		return bg.Render(label, styles.MutedText) + bg.Space() + bg.Render(fmt.Sprintf("%d", n), style)
	}

	st := m.stats
	parts = append(parts,
		stat("Colors:", "C:", st.TotalColors, styles.Text),
		stat("In stock:", "S:", st.InStock, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StockColor(2))).Background(lipgloss.Color(m.theme.Surface))),
		stat("Low:", "L:", st.LowStock, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StockColor(1))).Background(lipgloss.Color(m.theme.Surface))),
		stat("Out:", "O:", st.OutOfStock, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StockColor(0))).Background(lipgloss.Color(m.theme.Surface))),
		stat("Paints:", "P:", st.TotalQuantity, styles.InfoText),
	)

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.session != nil {
		if err := m.session.LastError(); err != nil {
			maxErr := 60
			if compact {
				maxErr = 30
			}
			parts = append(parts,
				bg.Render("UNSAVED", styles.DangerText.Bold(true))+bg.Space()+
					bg.Render(truncate(err.Error(), maxErr), styles.DangerText))
		}
	}

	if m.menu.busy {
		parts = append(parts, bg.Render("Working...", styles.WarningText.Bold(true)))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last change time with a relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	since := time.Since(m.lastUpdated)
	ts := m.lastUpdated.Format("15:04:05")

	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"f", m.filter.Label()},
		{"enter", "Edit"},
		{"+/-", "Adjust"},
		{"m", "Data"},
		{"x", "Export"},
		{"I", "Import"},
		{"?", "More"},
	}
	if m.width < LayoutCompactWidth {
		commands = []cmd{
			{"/", "Search"},
			{"f", m.filter.Label()},
			{"m", "Data"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.query != "" {
		segments = append(segments, bg.Render("/"+truncate(m.query, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderStatusLine renders the search input while searching, otherwise the
// last status message.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	line := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Padding(0, 1)

	if m.search.Focused() {
		return line.Render(m.search.View())
	}

	text := truncate(m.status.text, m.width-2)
	switch m.status.kind {
	case statusSuccess:
		return line.Render(styles.SuccessText.Render(text))
	case statusError:
		return line.Render(styles.DangerText.Render(text))
	default:
		return line.Render(styles.MutedText.Render(text))
	}
}
