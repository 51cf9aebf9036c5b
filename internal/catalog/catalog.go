// Package catalog holds the fixed, ordered list of paint colors.
//
// The table is configuration, not code: the default Montana Hardcore range is
// embedded as TOML and a user table (TOML or YAML) can replace it. The rest of
// paintbox only ever sees a *Catalog and never mutates it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed hardcore.toml
var hardcoreTable []byte

// Color is one catalog entry. Code is the identity; Name is not unique.
type Color struct {
	Code  string `toml:"code" yaml:"code"`
	Name  string `toml:"name" yaml:"name"`
	Value string `toml:"value" yaml:"value"`
}

// Catalog is an immutable, ordered set of colors.
type Catalog struct {
	colors []Color
	index  map[string]int
}

type table struct {
	Colors []Color `toml:"colors" yaml:"colors"`
}

// ErrInvalid reports a catalog table that failed validation.
var ErrInvalid = errors.New("invalid catalog")

// Default returns the embedded Montana Hardcore catalog.
func Default() (*Catalog, error) {
	var t table
	if err := toml.Unmarshal(hardcoreTable, &t); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return New(t.Colors)
}

// Load reads a catalog table from path. The format follows the extension:
// .yaml/.yml use YAML, anything else TOML. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var t table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &t)
	default:
		err = toml.Unmarshal(data, &t)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", filepath.Base(path), err)
	}
	return New(t.Colors)
}

// New validates colors and builds a Catalog preserving their order.
func New(colors []Color) (*Catalog, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: no colors", ErrInvalid)
	}
	c := &Catalog{
		colors: make([]Color, 0, len(colors)),
		index:  make(map[string]int, len(colors)),
	}
	for i, col := range colors {
		col.Code = strings.TrimSpace(col.Code)
		col.Name = strings.TrimSpace(col.Name)
		col.Value = strings.TrimSpace(col.Value)
		if col.Code == "" {
			return nil, fmt.Errorf("%w: entry %d has no code", ErrInvalid, i)
		}
		if _, dup := c.index[col.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalid, col.Code)
		}
		if _, err := colorful.Hex(col.Value); err != nil {
			return nil, fmt.Errorf("%w: %s has bad color value %q", ErrInvalid, col.Code, col.Value)
		}
		if col.Name == "" {
			col.Name = col.Code
		}
		c.index[col.Code] = len(c.colors)
		c.colors = append(c.colors, col)
	}
	return c, nil
}

// Colors returns a copy of the catalog in display order.
func (c *Catalog) Colors() []Color {
	out := make([]Color, len(c.colors))
	copy(out, c.colors)
	return out
}

// Codes returns every code in display order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.colors))
	for i, col := range c.colors {
		out[i] = col.Code
	}
	return out
}

// Len returns the number of colors.
func (c *Catalog) Len() int {
	return len(c.colors)
}

// Lookup returns the color with the given code.
func (c *Catalog) Lookup(code string) (Color, bool) {
	i, ok := c.index[code]
	if !ok {
		return Color{}, false
	}
	return c.colors[i], true
}

// Has reports whether code belongs to the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.index[code]
	return ok
}

// TextColor picks black or white text for legibility on a swatch of value.
// Unparseable values get white.
func TextColor(value string) string {
	col, err := colorful.Hex(value)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := col.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
