// Package grammars names the ready-made readers so tools can pick one by
// name or by file extension.
package grammars

import (
	"path/filepath"
	"sort"
	"strings"

	"pkt.systems/tknz"
	"pkt.systems/tknz/code"
	"pkt.systems/tknz/html"
	"pkt.systems/tknz/md"
)

const (
	TypeHTMLDocument = "HtmlDocument"
	TypeHTMLText     = "HtmlText"
)

var builtin = map[string]func() tknz.Reader{
	"md":   md.NewDocumentReader,
	"code": code.NewTextReader,
	"html": newHTMLReader,
}

var extensions = map[string]string{
	".md":       "md",
	".markdown": "md",
	".code":     "code",
	".tpl":      "code",
	".html":     "html",
	".htm":      "html",
	".xml":      "html",
}

// ByName returns a fresh top-level reader for the named grammar.
func ByName(name string) (tknz.Reader, bool) {
	newReader, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return newReader(), true
}

// ForPath returns the grammar name matching the file extension of path.
func ForPath(path string) (string, bool) {
	name, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return name, ok
}

// Names returns the available grammar names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newHTMLReader() tknz.Reader {
	var list tknz.Readers
	text := tknz.NewBlockReader(TypeHTMLText, list.Read)
	list.Append(
		html.NewElementReader(text),
		tknz.ReadWord,
		tknz.ReadSpaces,
		tknz.ReadEol,
		tknz.ReadPunctuation,
	)
	return tknz.NewBlockReader(TypeHTMLDocument, list.Read)
}
