package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/inventory"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// quantityModal edits the on-hand quantity of one color. Nothing is written
// until the user confirms.
type quantityModal struct {
	color   catalog.Color
	current int
	input   textinput.Model
}

var _ Modal = quantityModal{}

func newQuantityModal(c catalog.Color, current int) quantityModal {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = len(strconv.Itoa(inventory.MaxQuantity))
	in.Width = in.CharLimit + 1
	in.SetValue(strconv.Itoa(current))
	in.CursorEnd()
	in.Focus()
	return quantityModal{color: c, current: current, input: in}
}

// value returns the typed quantity, clamped. An empty field is zero.
func (q quantityModal) value() int {
	n, err := strconv.Atoi(strings.TrimSpace(q.input.Value()))
	if err != nil {
		return 0
	}
	return inventory.Clamp(n)
}

func (q quantityModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil, false
	}

	switch {
	case keyMsg.Type == tea.KeyEsc:
		return q, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		code, qty := q.color.Code, q.value()
		return q, func() tea.Msg { return quantitySubmittedMsg{code: code, quantity: qty} }, true
	case key.Matches(keyMsg, keys.Increment):
		q.input.SetValue(strconv.Itoa(inventory.Clamp(q.value() + 1)))
		q.input.CursorEnd()
		return q, nil, false
	case key.Matches(keyMsg, keys.Decrement):
		q.input.SetValue(strconv.Itoa(inventory.Clamp(q.value() - 1)))
		q.input.CursorEnd()
		return q, nil, false
	}

	if keyMsg.Type == tea.KeyRunes {
		for _, r := range keyMsg.Runes {
			if r < '0' || r > '9' {
				return q, nil, false
			}
		}
	}

	var cmd tea.Cmd
	q.input, cmd = q.input.Update(keyMsg)
	return q, cmd, false
}

func (q quantityModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(swatch(q.color.Value, q.color.Code, 30))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(q.color.Name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("Current: %d", q.current)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("Quantity "))
	b.WriteString(q.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("+/- adjust  0-%d  enter save  esc cancel", inventory.MaxQuantity)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(36)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
