package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Search and filters
	Search           key.Binding
	CycleFilter      key.Binding
	FilterAll        key.Binding
	FilterInStock    key.Binding
	FilterOutOfStock key.Binding
	FilterLowStock   key.Binding

	// Quantities
	Edit      key.Binding
	Increment key.Binding
	Decrement key.Binding

	// Data menu
	Menu   key.Binding
	Export key.Binding
	Import key.Binding
	Clear  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Confirmation and input
	Confirm key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Reset search and filter"),
		),

		// Search and filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search code or name"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "All colors"),
		),
		FilterInStock: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "In stock"),
		),
		FilterOutOfStock: key.NewBinding(
			key.WithKeys("e", "o"),
			key.WithHelp("e/o", "Out of stock"),
		),
		FilterLowStock: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Low stock"),
		),

		// Quantities
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit quantity"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Add one"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Remove one"),
		),

		// Data menu
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Data menu"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export to file"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "Import file or share code"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear inventory"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		// Confirmation and input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleFilter, k.Edit, k.Menu, k.Help, k.Quit}
}

// helpGroup is one titled section of the help overlay.
type helpGroup struct {
	title    string
	bindings []key.Binding
}

// helpGroups returns the help overlay sections in display order.
func (k keyMap) helpGroups() []helpGroup {
	return []helpGroup{
		{"Navigation", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown}},
		{"Search & Filter", []key.Binding{k.Search, k.CycleFilter, k.FilterAll, k.FilterInStock, k.FilterOutOfStock, k.FilterLowStock, k.Escape}},
		{"Quantities", []key.Binding{k.Edit, k.Increment, k.Decrement}},
		{"Data", []key.Binding{k.Menu, k.Export, k.Import, k.Clear}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	groups := k.helpGroups()
	out := make([][]key.Binding, len(groups))
	for i, g := range groups {
		out[i] = g.bindings
	}
	return out
}
