package ui

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/paintbox/internal/search"
)

//go:embed themes.toml
var themesTable []byte

// Theme is one palette from themes.toml.
type Theme struct {
	Name string `toml:"name"`

	// Panels
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	SurfaceAlt string `toml:"surface_alt"`
	FocusBg    string `toml:"focus_bg"`

	// Grid
	SelectionBg   string `toml:"selection_bg"`
	SelectionText string `toml:"selection_text"`
	Border        string `toml:"border"`
	BorderFocus   string `toml:"border_focus"`

	// Text
	Text    string `toml:"text"`
	Muted   string `toml:"muted"`
	Faint   string `toml:"faint"`
	Accent  string `toml:"accent"`
	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Danger  string `toml:"danger"`
	Info    string `toml:"info"`

	// StockColors is keyed by search.Filter names.
	StockColors map[string]string `toml:"stock"`
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	// For stock badges
	stockColors map[string]string
	background  string
	muted       string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    fg(t.Text).Background(lipgloss.Color(t.Surface)),
		SurfaceAlt: fg(t.Text).Background(lipgloss.Color(t.SurfaceAlt)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),

		stockColors: t.StockColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

// StockStyle returns the badge style for a stock level name.
func (s Styles) StockStyle(level string) lipgloss.Style {
	color := s.stockColors[level]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface, &out.SurfaceAlt,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// stockLevel names the stock level of qty using the filter names.
func stockLevel(qty int) string {
	switch {
	case qty <= 0:
		return search.FilterOutOfStock.String()
	case qty == 1:
		return search.FilterLowStock.String()
	default:
		return search.FilterInStock.String()
	}
}

// StockColor returns the theme color for a quantity.
func (t Theme) StockColor(qty int) string {
	if c, ok := t.StockColors[stockLevel(qty)]; ok {
		return c
	}
	return t.Text
}

var themes, themeOrder = mustLoadThemes(themesTable)

// parseThemes decodes a palette table. Themes keep file order and names must
// be unique.
func parseThemes(data []byte) (map[string]Theme, []string, error) {
	var doc struct {
		Theme []Theme `toml:"theme"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse themes: %w", err)
	}
	if len(doc.Theme) == 0 {
		return nil, nil, fmt.Errorf("parse themes: no themes defined")
	}
	byName := make(map[string]Theme, len(doc.Theme))
	order := make([]string, 0, len(doc.Theme))
	for i, t := range doc.Theme {
		if t.Name == "" {
			return nil, nil, fmt.Errorf("parse themes: theme %d has no name", i+1)
		}
		if _, dup := byName[t.Name]; dup {
			return nil, nil, fmt.Errorf("parse themes: duplicate theme %q", t.Name)
		}
		byName[t.Name] = t
		order = append(order, t.Name)
	}
	return byName, order, nil
}

func mustLoadThemes(data []byte) (map[string]Theme, []string) {
	byName, order, err := parseThemes(data)
	if err != nil {
		panic(err)
	}
	return byName, order
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}
