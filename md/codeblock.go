package md

import (
	"strings"

	"pkt.systems/tknz"
)

const (
	TypeCode        = "MdCode"
	TypeCodeFence   = "MdCodeFence"
	TypeCodeContent = "MdCodeContent"
)

const (
	minFenceLength = 3
	maxFenceIndent = 3
)

// NewCodeBlockReader returns a reader for fenced code blocks. A block opens
// at the start of a line, indented by at most three spaces, with three or
// more backticks or tildes and an optional language name. It closes with an
// unnamed fence of the same character that is at least as long. Named fences
// inside the block open nested blocks, which is how a Markdown example can
// carry its own fences.
//
// Code is opaque: a line like "# comment" inside the block never ends an
// enclosing section.
func NewCodeBlockReader() tknz.Reader {
	var nested tknz.Readers
	content := tknz.NewBlockReader(TypeCodeContent, nested.Read)
	nested.Append(newCodeBlockReader(readNamedFence, content))
	return newCodeBlockReader(readFence, content, tknz.Opaque())
}

func newCodeBlockReader(readStart, content tknz.Reader, opts ...tknz.FencedOption) tknz.Reader {
	return tknz.NewDynamicFencedBlockReader(TypeCode, readStart,
		func(*tknz.Token) tknz.Reader { return content },
		readClosingFence,
		opts...)
}

func readFence(ctx *tknz.Context) *tknz.Token {
	return ctx.Guard(func(*tknz.Fences) *tknz.Token {
		start := ctx.Pos()
		if !atLineStart(ctx) {
			return nil
		}
		if ctx.SkipWhile(isIndent)-start > maxFenceIndent {
			return nil
		}
		runStart := ctx.Pos()
		marker := ctx.Peek(0)
		if marker != '`' && marker != '~' {
			return nil
		}
		n := ctx.SkipWhile(func(r rune) bool { return r == marker }) - runStart
		if n < minFenceLength {
			return nil
		}
		runEnd := ctx.Pos()
		if marker == '`' && strings.ContainsRune(restOfLine(ctx.Input()[runEnd:]), '`') {
			// a backtick fence line cannot hold backticks, so this is inline code
			return nil
		}
		ctx.SkipWhile(tknz.IsSpace)
		nameStart := ctx.Pos()
		name := ctx.Substring(nameStart, ctx.SkipWhile(isFenceNameChar))
		if name == "" {
			ctx.SetPos(runEnd)
		}
		return ctx.NewToken(TypeCodeFence, start, ctx.Pos()).
			SetAttr("marker", string(marker)).
			SetAttr("length", n).
			SetAttr("name", name)
	})
}

func readNamedFence(ctx *tknz.Context) *tknz.Token {
	return ctx.Guard(func(*tknz.Fences) *tknz.Token {
		fence := readFence(ctx)
		if fence == nil || fence.StringAttr("name") == "" {
			return nil
		}
		return fence
	})
}

func readClosingFence(open *tknz.Token) tknz.Reader {
	marker, length := open.StringAttr("marker"), open.IntAttr("length")
	return func(ctx *tknz.Context) *tknz.Token {
		return ctx.Guard(func(*tknz.Fences) *tknz.Token {
			fence := readFence(ctx)
			if fence == nil ||
				fence.StringAttr("name") != "" ||
				fence.StringAttr("marker") != marker ||
				fence.IntAttr("length") < length {
				return nil
			}
			return fence
		})
	}
}

func isIndent(r rune) bool { return r == ' ' }

func restOfLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

func isFenceNameChar(r rune) bool {
	return tknz.IsWordChar(r) || r == '-' || r == '+' || r == '.' || r == '#'
}
