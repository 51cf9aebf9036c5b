package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/search"
)

const (
	chipWidth = 4
	qtyWidth  = 4
	hexWidth  = 8
)

// renderMain renders header, command bar, grid and status line.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderContent(),
		m.renderStatusLine(),
	)
}

// renderContent renders the grid and, on wide terminals, the detail pane.
func (m Model) renderContent() string {
	contentHeight := m.contentHeight()

	if len(m.colors) == 0 {
		styles := m.theme.Styles()
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Catalog is empty"))
	}

	if m.width < LayoutCompactWidth {
		return m.renderTitledBox(m.gridTitle(), m.renderGrid(m.width-2), m.width, contentHeight, true)
	}

	// Extra wide (>= 160): 30% detail, default: 40% detail
	detailWidth := m.width * 40 / 100
	if m.width >= LayoutExtraWideWidth {
		detailWidth = m.width * 30 / 100
	}
	gridWidth := m.width - detailWidth

	gridPane := m.renderTitledBox(m.gridTitle(), m.renderGrid(gridWidth-2), gridWidth, contentHeight, true)
	detailPane := m.renderTitledBox("Details", m.renderDetail(detailWidth-4), detailWidth, contentHeight, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, gridPane, detailPane)
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, boxBorderHeight+1)
}

// pageSize is the number of grid rows that fit in the box.
func (m Model) pageSize() int {
	return max(m.contentHeight()-boxBorderHeight, 1)
}

func (m Model) gridTitle() string {
	title := fmt.Sprintf("Colors %d/%d", len(m.visible), len(m.colors))
	if m.filterState.ActiveFilter != search.FilterAll {
		title += " · " + m.filterState.ActiveFilter.Label()
	}
	if m.query != "" {
		title += " · /" + truncate(m.query, 16)
	}
	return title
}

// renderGrid renders the visible rows between offset and offset+pageSize.
func (m Model) renderGrid(width int) string {
	bgColor := m.theme.FocusBg
	if len(m.visible) == 0 {
		msg := "No colors match"
		if m.query != "" {
			msg = fmt.Sprintf("No colors match %q", m.query)
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(bgColor)).
			Render(msg)
	}

	end := min(m.offset+m.pageSize(), len(m.visible))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rowBg := bgColor
		if i == m.selectedRow {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatRow(m.visible[i], width, rowBg, i == m.selectedRow)
		lines = append(lines, NewBgStyle(rowBg).FillLine(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatRow formats one color row.
// Format: "[chip] CODE  Name ............ #hex  qty"
func (m Model) formatRow(c catalog.Color, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	textStyle := styles.Text
	mutedStyle := styles.MutedText
	if selected {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		mutedStyle = textStyle
	}

	qty := m.snapshot.Get(c.Code)
	qtyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StockColor(qty))).Bold(qty > 0)

	codeWidth := 8
	showHex := width >= LayoutHexWidth
	fixed := chipWidth + 1 + codeWidth + 1 + 1 + qtyWidth
	if showHex {
		fixed += hexWidth + 1
	}
	nameWidth := max(width-fixed, 0)

	var b strings.Builder
	b.WriteString(swatch(c.Value, "", chipWidth))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(padRight(truncate(c.Code, codeWidth), codeWidth), textStyle.Bold(true)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(padRight(truncate(c.Name, nameWidth), nameWidth), textStyle))
	b.WriteString(bg.Space())
	if showHex {
		b.WriteString(bg.Render(padRight(strings.ToLower(c.Value), hexWidth), mutedStyle))
		b.WriteString(bg.Space())
	}
	b.WriteString(bg.Render(fmt.Sprintf("%*d", qtyWidth, qty), qtyStyle))
	return b.String()
}

// renderDetail renders the selected color.
func (m Model) renderDetail(width int) string {
	bgColor := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	c, ok := m.selected()
	if !ok {
		return bg.Render("Select a color", styles.MutedText)
	}
	qty := m.snapshot.Get(c.Code)

	chip := swatch(c.Value, c.Code, max(width, 1))
	lines := []string{chip, chip, chip, ""}

	field := func(label, value string, style lipgloss.Style) string {
		return bg.Render(padRight(label, 10), styles.MutedText) + bg.Render(value, style)
	}
	lines = append(lines,
		field("Code", c.Code, styles.Text.Bold(true)),
		field("Name", truncate(c.Name, max(width-10, 1)), styles.Text),
		field("Value", strings.ToLower(c.Value), styles.Text),
		field("Quantity", fmt.Sprintf("%d", qty), lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StockColor(qty))).Bold(true)),
		bg.Render(padRight("Stock", 10), styles.MutedText)+styles.StockStyle(stockLevel(qty)).Render(stockLabel(qty)),
		"",
		bg.Render("enter", styles.AccentText)+bg.Render(" edit  ", styles.FaintText)+
			bg.Render("+/-", styles.AccentText)+bg.Render(" adjust", styles.FaintText),
	)
	return strings.Join(lines, "\n")
}

func stockLabel(qty int) string {
	switch {
	case qty <= 0:
		return "Out of stock"
	case qty == 1:
		return "Low"
	default:
		return "In stock"
	}
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - boxBorderHeight

	paddedLines := make([]string, 0, max(boxHeight, 0))
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// handleGridNav moves the selection.
func (m *Model) handleGridNav(msg tea.KeyMsg) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selectedRow--
	case key.Matches(msg, m.keys.Down):
		m.selectedRow++
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = n - 1
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow -= m.pageSize()
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow += m.pageSize()
	default:
		return
	}
	m.selectedRow = min(max(m.selectedRow, 0), n-1)
	m.ensureVisible()
}

// ensureVisible scrolls so the selected row is on screen.
func (m *Model) ensureVisible() {
	page := m.pageSize()
	if m.selectedRow < m.offset {
		m.offset = m.selectedRow
	}
	if m.selectedRow >= m.offset+page {
		m.offset = m.selectedRow - page + 1
	}
	m.offset = min(m.offset, max(len(m.visible)-page, 0))
	m.offset = max(m.offset, 0)
}
