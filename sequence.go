package tknz

// Unbounded lifts the upper limit of NewTokensSequenceReader.
const Unbounded = -1

// NewBlocksSequenceReader returns a reader for blocks separated by tokens of
// readSeparator. The separator is a fence for the whole run, so block content
// never swallows it. Children alternate blocks of blockType and separators;
// nothing is emitted for an empty block between two separators.
func NewBlocksSequenceReader(typ, blockType string, readSeparator, content Reader) Reader {
	readBlock := NewBlockReader(blockType, content)
	return func(ctx *Context) *Token {
		return ctx.Guard(func(f *Fences) *Token {
			f.AddFence(readSeparator)
			start := ctx.Pos()
			var children []*Token
			for {
				if block := readBlock(ctx); block != nil {
					children = append(children, block)
				}
				if ctx.AtEnd() {
					break
				}
				pos := ctx.Pos()
				sep := readSeparator(ctx)
				if sep == nil || sep.End <= pos {
					ctx.SetPos(pos)
					break
				}
				children = append(children, sep)
				ctx.SetPos(sep.End)
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

// NewTokensSequenceReader returns a reader grouping between minCount and
// maxCount consecutive tokens of read into one token. It stops early at
// maxCount or when read stops matching, and fails when fewer than minCount
// tokens, or none at all, were read. Use Unbounded as maxCount to read as many
// as possible.
func NewTokensSequenceReader(typ string, read Reader, minCount, maxCount int) Reader {
	return func(ctx *Context) *Token {
		return ctx.Guard(func(*Fences) *Token {
			start := ctx.Pos()
			var children []*Token
			for (maxCount < 0 || len(children) < maxCount) && !ctx.AtEnd() {
				tok := readContent(ctx, read)
				if tok == nil {
					break
				}
				children = append(children, tok)
			}
			if len(children) == 0 || len(children) < minCount {
				return nil
			}
			tok := ctx.NewToken(typ, start, ctx.Pos())
			tok.Children = children
			return tok
		})
	}
}
