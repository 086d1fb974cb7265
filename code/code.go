// Package code reads "${ ... }" expressions embedded in text.
package code

import "pkt.systems/tknz"

const (
	TypeText      = "Block"
	TypeCode      = "Code"
	TypeCodeStart = "CodeStart"
	TypeCodeEnd   = "CodeEnd"
)

var (
	// ReadCodeStart reads the "${" opening an expression.
	ReadCodeStart = tknz.NewStringReader(TypeCodeStart, "${")
	// ReadCodeEnd reads the "}" closing an expression.
	ReadCodeEnd = tknz.NewStringReader(TypeCodeEnd, "}")
)

// NewCodeReader returns a reader for one expression. Its children are the
// content tokens only; codeStart and codeEnd attrs hold the offsets of the
// expression body. An unterminated expression ends where reading stopped.
func NewCodeReader(content tknz.Reader) tknz.Reader {
	return tknz.NewFencedBlockReader(TypeCode, ReadCodeStart, content, ReadCodeEnd,
		tknz.Finalize(trimDelimiters))
}

// NewTextReader returns a reader for text with nested expressions: words,
// spaces and line breaks, anything else skipped.
func NewTextReader() tknz.Reader {
	var list tknz.Readers
	list.Append(NewCodeReader(list.Read), tknz.ReadWord, tknz.ReadSpaces, tknz.ReadEol)
	return tknz.NewBlockReader(TypeText, list.Read)
}

func trimDelimiters(tok *tknz.Token) *tknz.Token {
	children := tok.Children[1:]
	tok.SetAttr("codeStart", tok.Children[0].End)
	codeEnd := tok.End
	if n := len(children); n > 0 && children[n-1].Type == TypeCodeEnd {
		codeEnd = children[n-1].Start
		children = children[:n-1]
	}
	tok.SetAttr("codeEnd", codeEnd)
	if len(children) == 0 {
		children = nil
	}
	tok.Children = children
	return tok
}
