// Package html reads HTML-like elements: an opening tag, content and a
// closing tag.
package html

import (
	"unicode"

	"pkt.systems/tknz"
)

const (
	TypeName     = "HtmlName"
	TypeTag      = "Tag"
	TypeTagStart = "TagStart"
	TypeTagEnd   = "TagEnd"
)

// ReadName reads a tag name: letters, digits, '-', ':' and '_'.
var ReadName = tknz.NewCharsReader(TypeName, isNameChar)

func isNameChar(r rune) bool {
	return r == '-' || r == ':' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ReadTagStart reads "<name>", allowing whitespace before '>'. The name is
// stored in the name attr.
func ReadTagStart(ctx *tknz.Context) *tknz.Token {
	return readTag(ctx, TypeTagStart, "<")
}

// ReadTagEnd reads "</name>", allowing whitespace before '>'.
func ReadTagEnd(ctx *tknz.Context) *tknz.Token {
	return readTag(ctx, TypeTagEnd, "</")
}

func readTag(ctx *tknz.Context, typ, open string) *tknz.Token {
	return ctx.Guard(func(*tknz.Fences) *tknz.Token {
		start := ctx.Pos()
		if !ctx.HasPrefix(open) {
			return nil
		}
		ctx.SetPos(start + len(open))
		name := ReadName(ctx)
		if name == nil {
			return nil
		}
		ctx.SkipWhile(tknz.IsSpaceOrEol)
		if ctx.Peek(0) != '>' {
			return nil
		}
		ctx.Advance()
		return ctx.NewToken(typ, start, ctx.Pos()).SetAttr("name", name.Value)
	})
}

// NewTagReader returns a reader for elements closed by any end tag.
func NewTagReader(content tknz.Reader) tknz.Reader {
	return tknz.NewFencedBlockReader(TypeTag, ReadTagStart, content, ReadTagEnd,
		tknz.Finalize(copyName))
}

// NewElementReader returns a reader for elements whose end tag must carry
// the name of the start tag. Other end tags are content.
func NewElementReader(content tknz.Reader) tknz.Reader {
	return tknz.NewDynamicFencedBlockReader(TypeTag, ReadTagStart,
		func(*tknz.Token) tknz.Reader { return content },
		func(start *tknz.Token) tknz.Reader { return readNamedTagEnd(start.StringAttr("name")) },
		tknz.Finalize(copyName))
}

func readNamedTagEnd(name string) tknz.Reader {
	return func(ctx *tknz.Context) *tknz.Token {
		return ctx.Guard(func(*tknz.Fences) *tknz.Token {
			tok := ReadTagEnd(ctx)
			if tok == nil || tok.StringAttr("name") != name {
				return nil
			}
			return tok
		})
	}
}

func copyName(tok *tknz.Token) *tknz.Token {
	return tok.SetAttr("name", tok.Children[0].StringAttr("name"))
}
