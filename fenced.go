package tknz

// FencedOption configures fenced block readers.
type FencedOption func(*fencedConfig)

type fencedConfig struct {
	includeEnd bool
	opaque     bool
	finalize   func(*Token) *Token
}

// IncludeEndToken controls whether a matched end token is added to the
// children. It is always part of the span. Defaults to true.
func IncludeEndToken(enabled bool) FencedOption {
	return func(cfg *fencedConfig) {
		cfg.includeEnd = enabled
	}
}

// Opaque makes the block ignore the fences of enclosing blocks: only its own
// end, and fences of blocks nested in it, can stop it. Use it for content that
// must be read verbatim, like fenced code.
func Opaque() FencedOption {
	return func(cfg *fencedConfig) {
		cfg.opaque = true
	}
}

// Finalize installs a step run on the produced token before it is returned.
// It may patch derived fields or return nil to reject the block, in which
// case the reader fails and the cursor is restored.
func Finalize(fn func(*Token) *Token) FencedOption {
	return func(cfg *fencedConfig) {
		cfg.finalize = fn
	}
}

// NewFencedBlockReader returns a reader for blocks opened by readStart and
// closed by readEnd. Tokens from readContent become children. While the block
// is open readEnd is an active fence, so nested blocks stop where it matches.
//
// A block whose end never matches still yields a token, ending at the input
// end or where an enclosing fence matches. Both readContent and readEnd may be
// nil.
func NewFencedBlockReader(typ string, readStart, readContent, readEnd Reader, opts ...FencedOption) Reader {
	return NewDynamicFencedBlockReader(typ, readStart,
		func(*Token) Reader { return readContent },
		func(*Token) Reader { return readEnd },
		opts...)
}

// NewDynamicFencedBlockReader is NewFencedBlockReader with content and end
// readers chosen from the start token, e.g. to close a fence with the same
// name or a section with a heading of the same or a higher rank.
func NewDynamicFencedBlockReader(typ string, readStart Reader, contentFor, endFor func(start *Token) Reader, opts ...FencedOption) Reader {
	cfg := fencedConfig{includeEnd: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return func(ctx *Context) *Token {
		return ctx.Guard(func(f *Fences) *Token {
			start := ctx.Pos()
			startTok := readStart(ctx)
			if startTok == nil {
				return nil
			}
			ctx.SetPos(startTok.End)
			children := []*Token{startTok}

			var read, readEnd Reader
			if contentFor != nil {
				read = contentFor(startTok)
			}
			if endFor != nil {
				readEnd = endFor(startTok)
			}
			if cfg.opaque {
				f.Isolate()
			}
			f.AddFence(readEnd)

			for !ctx.AtEnd() {
				if readEnd != nil {
					if end := readEnd(ctx); end != nil {
						if cfg.includeEnd {
							children = append(children, end)
						}
						ctx.SetPos(end.End)
						break
					}
				}
				if ctx.IsFenceBoundary() {
					break
				}
				if tok := readContent(ctx, read); tok != nil {
					children = append(children, tok)
					continue
				}
				ctx.Advance()
			}

			tok := ctx.NewToken(typ, start, ctx.Pos())
			tok.Children = children
			if cfg.finalize != nil {
				return cfg.finalize(tok)
			}
			return tok
		})
	}
}
