package md

import "pkt.systems/tknz"

const (
	TypeInlineCode      = "MdInlineCode"
	TypeInlineCodeTicks = "MdInlineCodeTicks"
)

// NewInlineCodeReader returns a reader for code spans: a run of backticks,
// then anything up to a run of exactly the same length. The closing run is
// part of the span but not a child. An unclosed run is not a code span.
func NewInlineCodeReader() tknz.Reader {
	return tknz.NewDynamicFencedBlockReader(TypeInlineCode, readTicks,
		nil,
		func(open *tknz.Token) tknz.Reader { return readClosingTicks(open.Len()) },
		tknz.Finalize(func(tok *tknz.Token) *tknz.Token {
			last := tok.Last()
			if len(tok.Children) < 2 || last.Type != TypeInlineCodeTicks {
				return nil
			}
			tok.Children = tok.Children[:len(tok.Children)-1]
			return tok.SetAttr("ticks", tok.Children[0].Len())
		}))
}

func isTick(r rune) bool { return r == '`' }

func readTicks(ctx *tknz.Context) *tknz.Token {
	start := ctx.Pos()
	end := ctx.SkipWhile(isTick)
	if end == start {
		return nil
	}
	return ctx.NewToken(TypeInlineCodeTicks, start, end)
}

func readClosingTicks(n int) tknz.Reader {
	return func(ctx *tknz.Context) *tknz.Token {
		pos := ctx.Pos()
		if pos > 0 && ctx.Input()[pos-1] == '`' {
			return nil
		}
		tok := readTicks(ctx)
		if tok == nil {
			return nil
		}
		if tok.Len() != n {
			ctx.SetPos(pos)
			return nil
		}
		return tok
	}
}
