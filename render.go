package tknz

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// RenderRequest configures Render.
type RenderRequest struct {
	Token   *Token
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

var builderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// Render writes the token tree as an indented outline, one token per line:
//
//	Type [start,end) "value" key=value
//
// Lines are fitted to Width by shortening the quoted value. Width <= 0
// disables fitting.
func Render(req RenderRequest) error {
	if req.Token == nil {
		return fmt.Errorf("render: token is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := defaultRenderConfig()
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	var styles Styles
	if cfg.color {
		th := req.Theme
		if th == nil {
			th = DefaultTheme()
		}
		styles = th.Styles()
	}
	bw := bufio.NewWriter(req.Writer)
	b := builderPool.Get().(*strings.Builder)
	defer builderPool.Put(b)
	var werr error
	Walk(req.Token, func(tok *Token, depth int) bool {
		if werr != nil {
			return false
		}
		b.Reset()
		writeLine(b, tok, depth, req.Width, cfg, styles)
		if _, err := bw.WriteString(b.String()); err != nil {
			werr = err
			return false
		}
		return cfg.maxDepth < 0 || depth < cfg.maxDepth
	})
	if werr != nil {
		return fmt.Errorf("render: %w", werr)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func writeLine(b *strings.Builder, tok *Token, depth, width int, cfg renderConfig, styles Styles) {
	indent := strings.Repeat("  ", depth)
	rng := fmt.Sprintf("[%d,%d)", tok.Start, tok.End)
	attrs := ""
	if cfg.attrs {
		attrs = formatAttrs(tok.Attrs)
	}
	value := strconv.Quote(tok.Value)
	if width > 0 {
		used := ansi.PrintableRuneWidth(indent) + ansi.PrintableRuneWidth(tok.Type) + 1 +
			len(rng) + 1 + ansi.PrintableRuneWidth(attrs)
		value = fitValue(value, width-used)
	}
	typeStyle := styles.Type
	if len(tok.Children) > 0 && styles.Container != nil {
		typeStyle = styles.Container
	}
	b.WriteString(indent)
	b.WriteString(paint(typeStyle, tok.Type))
	b.WriteByte(' ')
	b.WriteString(paint(styles.Range, rng))
	b.WriteByte(' ')
	b.WriteString(paint(styles.Value, value))
	if attrs != "" {
		b.WriteString(paint(styles.Attr, attrs))
	}
	b.WriteByte('\n')
}

func fitValue(value string, limit int) string {
	if ansi.PrintableRuneWidth(value) <= limit {
		return value
	}
	if limit <= 1 {
		return ellipsis
	}
	return truncate.StringWithTail(value, uint(limit), ellipsis)
}

func formatAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		switch v := attrs[k].(type) {
		case string:
			b.WriteString(strconv.Quote(v))
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}
