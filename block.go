package tknz

// NewBlockReader returns a reader collecting content tokens until the input
// ends or an active fence matches. Characters content does not recognize are
// skipped one at a time and stay part of the block value.
//
// On non-empty input an empty block is not a token. Empty input yields a
// single empty token.
func NewBlockReader(typ string, content Reader) Reader {
	return func(ctx *Context) *Token {
		return ctx.Guard(func(*Fences) *Token {
			start := ctx.Pos()
			var children []*Token
			for !ctx.AtEnd() {
				if ctx.IsFenceBoundary() {
					break
				}
				if tok := readContent(ctx, content); tok != nil {
					children = append(children, tok)
					continue
				}
				ctx.Advance()
			}
			end := ctx.Pos()
			if end == start && ctx.Len() > 0 {
				return nil
			}
			tok := ctx.NewToken(typ, start, end)
			tok.Children = children
			return tok
		})
	}
}

// readContent runs read and leaves the cursor at the end of the token.
// A token that does not move the cursor forward counts as no match.
func readContent(ctx *Context, read Reader) *Token {
	if read == nil {
		return nil
	}
	pos := ctx.Pos()
	tok := read(ctx)
	if tok == nil {
		return nil
	}
	if tok.End <= pos {
		ctx.SetPos(pos)
		return nil
	}
	ctx.SetPos(tok.End)
	return tok
}
