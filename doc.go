// Package tknz builds token trees out of small composable readers.
//
// A Reader looks at a Context (the input plus a cursor) and either returns a
// Token or nil. Readers compose into alternatives (NewCompositeReader),
// repetitions (NewBlockReader, NewTokensSequenceReader) and delimited blocks
// (NewFencedBlockReader, NewDynamicFencedBlockReader). Delimited blocks can
// nest and can be left unterminated: while a block is open its end reader is
// pushed as a fence, and any inner reader stops as soon as an enclosing fence
// matches, innermost first.
//
// Failed attempts never leave a trace. Context.Guard restores the cursor when
// a reader gives up and always drops the fences the reader registered.
//
// Core properties:
//   - Byte offsets, one UTF-8 character per step
//   - Token.Value is always the exact input substring
//   - Children are ordered and never overlap
//   - Unrecognized characters are skipped, not reported
//
// Example:
//
//	word := tknz.ReadWord
//	root, err := tknz.Tokenize(tknz.TokenizeRequest{
//		Input:  "hello world",
//		Reader: tknz.NewBlockReader("Text", tknz.NewCompositeReader(word, tknz.ReadSpaces)),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = tknz.Render(tknz.RenderRequest{Token: root, Writer: os.Stdout, Width: 80})
//
// Ready-made grammars live in the md, code and html subpackages.
package tknz
