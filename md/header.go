// Package md reads Markdown documents into nested section trees.
//
// A section starts at a header and runs until the next header of the same
// or a higher rank. Deeper headers open nested sections, so the token tree
// mirrors the document outline.
package md

import "pkt.systems/tknz"

const (
	TypeHeader      = "MdHeader"
	TypeHeaderStart = "MdHeaderStart"
	TypeHeaderEnd   = "MdHeaderEnd"
	TypeSection     = "MdSection"
	TypeSectionEnd  = "MdSectionEnd"
)

const maxHeaderLevel = 6

// ReadHeaderStart reads the opening of an ATX header: the start of a line or
// a line break, any blank lines and indentation, one to six '#' and a space.
// The blank lines are part of the token. The number of '#' is the level attr.
func ReadHeaderStart(ctx *tknz.Context) *tknz.Token {
	return ctx.Guard(func(*tknz.Fences) *tknz.Token {
		start := ctx.Pos()
		if !atLineStart(ctx) && !tknz.IsEol(ctx.Peek(0)) {
			return nil
		}
		ctx.SkipWhile(tknz.IsSpaceOrEol)
		hashes := ctx.Pos()
		level := ctx.SkipWhile(func(r rune) bool { return r == '#' }) - hashes
		if level == 0 || level > maxHeaderLevel || ctx.Peek(0) != ' ' {
			return nil
		}
		ctx.Advance()
		return ctx.NewToken(TypeHeaderStart, start, ctx.Pos()).SetAttr("level", level)
	})
}

// ReadHeaderEnd matches where a header line stops: at a line break or where
// another header starts. The token is empty and nothing is consumed.
func ReadHeaderEnd(ctx *tknz.Context) *tknz.Token {
	pos := ctx.Pos()
	if ReadHeaderStart(ctx) == nil && tknz.ReadEol(ctx) == nil {
		return nil
	}
	ctx.SetPos(pos)
	return ctx.NewToken(TypeHeaderEnd, pos, pos)
}

// NewHeaderReader returns a reader for one header line. content reads the
// header text.
func NewHeaderReader(content tknz.Reader) tknz.Reader {
	return tknz.NewFencedBlockReader(TypeHeader, ReadHeaderStart, content, ReadHeaderEnd,
		tknz.Finalize(copyLevel))
}

// NewSectionReader returns a reader for a header and everything up to the
// next header of the same or a lower level, which is left unread. content
// usually includes the section reader itself to nest deeper sections.
func NewSectionReader(header, content tknz.Reader) tknz.Reader {
	return tknz.NewDynamicFencedBlockReader(TypeSection, header,
		func(*tknz.Token) tknz.Reader { return content },
		func(start *tknz.Token) tknz.Reader { return readSectionEnd(start.IntAttr("level")) },
		tknz.Finalize(copyLevel))
}

func readSectionEnd(level int) tknz.Reader {
	return func(ctx *tknz.Context) *tknz.Token {
		pos := ctx.Pos()
		next := ReadHeaderStart(ctx)
		if next == nil {
			return nil
		}
		ctx.SetPos(pos)
		if next.IntAttr("level") > level {
			return nil
		}
		return ctx.NewToken(TypeSectionEnd, pos, pos)
	}
}

func copyLevel(tok *tknz.Token) *tknz.Token {
	return tok.SetAttr("level", tok.Children[0].IntAttr("level"))
}

func atLineStart(ctx *tknz.Context) bool {
	prev := ctx.Peek(-1)
	return prev == tknz.EOF || tknz.IsEol(prev)
}
