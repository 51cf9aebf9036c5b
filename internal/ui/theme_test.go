package ui

import (
	"strings"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate", "Primer"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames() returned the shared slice")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Primer"); got != "Nightfox" {
		t.Fatalf("NextTheme(Primer) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	slate := GetTheme("Slate")
	if slate.Name != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", slate.Name)
	}

	unknown := GetTheme("Dracula")
	if unknown.Name != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox (fallback)", unknown.Name)
	}
}

func TestBuiltinThemesAreComplete(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"background": th.Background, "surface": th.Surface, "surface_alt": th.SurfaceAlt,
			"focus_bg": th.FocusBg, "selection_bg": th.SelectionBg, "selection_text": th.SelectionText,
			"border": th.Border, "border_focus": th.BorderFocus, "text": th.Text,
			"muted": th.Muted, "faint": th.Faint, "accent": th.Accent,
			"success": th.Success, "warning": th.Warning, "danger": th.Danger, "info": th.Info,
		}
		for key, value := range colors {
			if len(value) != 7 || value[0] != '#' {
				t.Fatalf("%s: %s = %q, want #RRGGBB", name, key, value)
			}
		}
	}
}

func TestParseThemes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "no themes"},
		{"missing name", "[[theme]]\ntext = \"#ffffff\"\n", "has no name"},
		{"duplicate", "[[theme]]\nname = \"A\"\n[[theme]]\nname = \"A\"\n", "duplicate theme"},
		{"bad toml", "[[theme]\n", "parse themes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseThemes([]byte(tc.input))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("parseThemes() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}

	byName, order, err := parseThemes([]byte("[[theme]]\nname = \"B\"\n[theme.stock]\nlow_stock = \"#111111\"\n\n[[theme]]\nname = \"A\"\n"))
	if err != nil {
		t.Fatalf("parseThemes() error = %v", err)
	}
	if strings.Join(order, ",") != "B,A" {
		t.Fatalf("order = %v, want [B A]", order)
	}
	if got := byName["B"].StockColor(1); got != "#111111" {
		t.Fatalf("StockColor(1) = %q, want #111111", got)
	}
}

func TestStockColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		cases := []struct {
			qty  int
			want string
		}{
			{0, th.StockColors["out_of_stock"]},
			{1, th.StockColors["low_stock"]},
			{7, th.StockColors["in_stock"]},
		}
		for _, tc := range cases {
			if tc.want == "" {
				t.Fatalf("%s: missing stock color for qty %d", name, tc.qty)
			}
			if got := th.StockColor(tc.qty); got != tc.want {
				t.Fatalf("%s: StockColor(%d) = %q, want %q", name, tc.qty, got, tc.want)
			}
		}
	}
}
