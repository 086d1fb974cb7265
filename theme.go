package tknz

import (
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Styles groups the colors used by Render.
type Styles struct {
	Type      *color.Color
	Container *color.Color
	Range     *color.Color
	Value     *color.Color
	Attr      *color.Color
}

// Theme provides named styles for token outlines.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition. Nil styles print plain.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// style returns a color that always emits escapes; Render decides whether
// colors are used at all.
func style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: Styles{
		Type:      style(color.FgCyan),
		Container: style(color.FgCyan, color.Bold),
		Range:     style(color.FgHiBlack),
		Value:     style(color.FgGreen),
		Attr:      style(color.FgYellow),
	}},
	"mono": theme{name: "mono", styles: Styles{
		Type:      style(color.Bold),
		Container: style(color.Bold, color.Underline),
		Range:     style(color.Faint),
		Value:     style(),
		Attr:      style(color.Italic),
	}},
	"plain": theme{name: "plain"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
