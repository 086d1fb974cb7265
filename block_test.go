package tknz

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockReaderEmptyInput(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, NewBlockReader("Block", ReadWord), "")
	want := &Token{Type: "Block", Start: 0, End: 0, Value: ""}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockReaderSkipsUnknownCharacters(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, NewBlockReader("Block", ReadWord), "¿ab, c!")
	want := []string{
		"Block[0,8)",
		" Word[2,4)",
		" Word[6,7)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockReaderEmptySpan(t *testing.T) {
	t.Parallel()
	read := NewBlockReader("Block", ReadWord)
	if tok := read(NewContext("abc", WithStart(3))); tok != nil {
		t.Fatalf("expected nil at the end of a non-empty input, got %v", tok)
	}
	ctx := NewContext("}abc")
	ctx.Guard(func(f *Fences) *Token {
		f.AddFence(readCodeEnd)
		if tok := read(ctx); tok != nil {
			t.Fatalf("expected nil on a fence boundary, got %v", tok)
		}
		return nil
	})
}

func TestBlockReaderIgnoresZeroWidthContent(t *testing.T) {
	t.Parallel()
	empty := func(ctx *Context) *Token {
		return ctx.NewToken("Empty", ctx.Pos(), ctx.Pos())
	}
	root := mustTokenize(t, NewBlockReader("Block", empty), "ab")
	if root.End != 2 || len(root.Children) != 0 {
		t.Fatalf("expected [0,2) without children, got %v with %d children", root, len(root.Children))
	}
}

func TestFencedBlocksNestInnermostFirst(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, newMixedReader(), "${A ${B} C}")
	want := &Token{Type: "Text", Start: 0, End: 11, Value: "${A ${B} C}", Children: []*Token{
		{Type: "Code", Start: 0, End: 11, Value: "${A ${B} C}", Children: []*Token{
			{Type: "CodeStart", Start: 0, End: 2, Value: "${"},
			{Type: "Text", Start: 2, End: 10, Value: "A ${B} C", Children: []*Token{
				{Type: "Word", Start: 2, End: 3, Value: "A"},
				{Type: "Code", Start: 4, End: 8, Value: "${B}", Children: []*Token{
					{Type: "CodeStart", Start: 4, End: 6, Value: "${"},
					{Type: "Text", Start: 6, End: 7, Value: "B", Children: []*Token{
						{Type: "Word", Start: 6, End: 7, Value: "B"},
					}},
					{Type: "CodeEnd", Start: 7, End: 8, Value: "}"},
				}},
				{Type: "Word", Start: 9, End: 10, Value: "C"},
			}},
			{Type: "CodeEnd", Start: 10, End: 11, Value: "}"},
		}},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestHeterogeneousFencedBlocks(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, newMixedReader(), "${before} <code> A ${B} C </code> ${after}")
	want := []string{
		"Text[0,42)",
		" Code[0,9)",
		"  CodeStart[0,2)",
		"  Text[2,8)",
		"   Word[2,8)",
		"  CodeEnd[8,9)",
		" Tag[10,33)",
		"  TagStart[10,16)",
		"  Text[16,26)",
		"   Word[17,18)",
		"   Code[19,23)",
		"    CodeStart[19,21)",
		"    Text[21,22)",
		"     Word[21,22)",
		"    CodeEnd[22,23)",
		"   Word[24,25)",
		"  TagEnd[26,33)",
		" Code[34,42)",
		"  CodeStart[34,36)",
		"  Text[36,41)",
		"   Word[36,41)",
		"  CodeEnd[41,42)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestBrokenFencedBlockStopsAtEnclosingFence(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, newMixedReader(), "${before} <code> A ${B C </code> ${after}")
	want := []string{
		"Text[0,41)",
		" Code[0,9)",
		"  CodeStart[0,2)",
		"  Text[2,8)",
		"   Word[2,8)",
		"  CodeEnd[8,9)",
		" Tag[10,32)",
		"  TagStart[10,16)",
		"  Text[16,25)",
		"   Word[17,18)",
		"   Code[19,25)",
		"    CodeStart[19,21)",
		"    Text[21,25)",
		"     Word[21,22)",
		"     Word[23,24)",
		"  TagEnd[25,32)",
		" Code[33,41)",
		"  CodeStart[33,35)",
		"  Text[35,40)",
		"   Word[35,40)",
		"  CodeEnd[40,41)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestUnterminatedOuterBlockRunsToEnd(t *testing.T) {
	t.Parallel()
	root := mustTokenize(t, newMixedReader(), "before ${X <code> A ${B <code>C</code> } </code> ")
	want := []string{
		"Text[0,49)",
		" Word[0,6)",
		" Code[7,49)",
		"  CodeStart[7,9)",
		"  Text[9,49)",
		"   Word[9,10)",
		"   Tag[11,48)",
		"    TagStart[11,17)",
		"    Text[17,41)",
		"     Word[18,19)",
		"     Code[20,40)",
		"      CodeStart[20,22)",
		"      Text[22,39)",
		"       Word[22,23)",
		"       Tag[24,38)",
		"        TagStart[24,30)",
		"        Text[30,31)",
		"         Word[30,31)",
		"        TagEnd[31,38)",
		"      CodeEnd[39,40)",
		"    TagEnd[41,48)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestSameOpeningAndClosingFence(t *testing.T) {
	t.Parallel()
	input := "\nbefore \n```\nFirst Js Block\n```\nbetween\n```\nSecond Js Block\n```\nafter\n"
	readJsFence := NewStringReader("JsFence", "```")
	newReader := func(words bool) Reader {
		var list Readers
		content := NewBlockReader("Content", list.Read)
		list.Append(NewFencedBlockReader("JsCode", readJsFence, content, readJsFence))
		if words {
			list.Append(ReadWord)
		}
		return content
	}

	root := mustTokenize(t, newReader(true), input)
	want := []string{
		"Content[0,70)",
		" Word[1,7)",
		" JsCode[9,31)",
		"  JsFence[9,12)",
		"  Content[12,28)",
		"   Word[13,18)",
		"   Word[19,21)",
		"   Word[22,27)",
		"  JsFence[28,31)",
		" Word[32,39)",
		" JsCode[40,63)",
		"  JsFence[40,43)",
		"  Content[43,60)",
		"   Word[44,50)",
		"   Word[51,53)",
		"   Word[54,59)",
		"  JsFence[60,63)",
		" Word[64,69)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}

	root = mustTokenize(t, newReader(false), input)
	want = []string{
		"Content[0,70)",
		" JsCode[9,31)",
		"  JsFence[9,12)",
		"  Content[12,28)",
		"  JsFence[28,31)",
		" JsCode[40,63)",
		"  JsFence[40,43)",
		"  Content[43,60)",
		"  JsFence[60,63)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch without words (-want +got):\n%s", diff)
	}
}

func TestFencedBlockOptions(t *testing.T) {
	t.Parallel()
	read := NewFencedBlockReader("Code", readCodeStart, ReadWord, readCodeEnd, IncludeEndToken(false))
	tok := read(NewContext("${a}b"))
	want := []string{
		"Code[0,4)",
		" CodeStart[0,2)",
		" Word[2,3)",
	}
	if diff := cmp.Diff(want, outline(tok)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}

	reject := NewFencedBlockReader("Code", readCodeStart, ReadWord, readCodeEnd,
		Finalize(func(tok *Token) *Token {
			if tok.Last().Type != "CodeEnd" {
				return nil
			}
			return tok.SetAttr("closed", true)
		}))
	ctx := NewContext("x ${a b")
	ctx.Guard(func(f *Fences) *Token {
		f.AddFence(readTagEnd)
		ctx.SetPos(2)
		if tok := reject(ctx); tok != nil {
			t.Fatalf("expected rejection, got %v", tok)
		}
		if ctx.Pos() != 2 || ctx.FenceDepth() != 1 {
			t.Fatalf("expected pos 2 and one fence, got pos %d and %d fences", ctx.Pos(), ctx.FenceDepth())
		}
		return nil
	})
	if ctx.FenceDepth() != 0 {
		t.Fatalf("expected no fences left, got %d", ctx.FenceDepth())
	}
	tok = reject(NewContext("${a}"))
	if v, ok := tok.Attr("closed"); !ok || v != true {
		t.Fatalf("expected closed attr, got %v", tok.Attrs)
	}
}

func TestOpaqueFencedBlockIgnoresEnclosingFences(t *testing.T) {
	t.Parallel()
	newReader := func(opts ...FencedOption) Reader {
		var list Readers
		text := NewBlockReader("Text", list.Read)
		list.Append(
			NewFencedBlockReader("Tag", readTagStart, text, readTagEnd),
			NewFencedBlockReader("Code", readCodeStart, NewBlockReader("Raw", ReadWord), readCodeEnd, opts...),
			ReadWord,
		)
		return text
	}
	input := "<a>${x </a> y}</a>"

	root := mustTokenize(t, newReader(Opaque()), input)
	want := []string{
		"Text[0,18)",
		" Tag[0,18)",
		"  TagStart[0,3)",
		"  Text[3,14)",
		"   Code[3,14)",
		"    CodeStart[3,5)",
		"    Raw[5,13)",
		"     Word[5,6)",
		"     Word[9,10)",
		"     Word[12,13)",
		"    CodeEnd[13,14)",
		"  TagEnd[14,18)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}

	root = mustTokenize(t, newReader(), input)
	codes, err := Select(root, `type == "Code"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(codes) != 1 || codes[0].Value != "${x " {
		t.Fatalf("expected the tag end to cut the code short, got %v", codes)
	}
}

func TestFencedBlockWithoutContentOrEnd(t *testing.T) {
	t.Parallel()
	read := NewFencedBlockReader("Open", readCodeStart, nil, nil)
	tok := read(NewContext("${abc"))
	if tok == nil || tok.End != 5 || len(tok.Children) != 1 {
		t.Fatalf("expected [0,5) with the start token only, got %v", tok)
	}
	if tok := read(NewContext("abc")); tok != nil {
		t.Fatalf("expected nil without a start, got %v", tok)
	}
}

func TestDynamicFencedBlockChoosesEnd(t *testing.T) {
	t.Parallel()
	readOpen := NewCharsReader("Open", func(r rune) bool { return r == '(' })
	read := NewDynamicFencedBlockReader("Group", readOpen,
		func(*Token) Reader { return ReadWord },
		func(open *Token) Reader {
			return NewStringReader("Close", strings.Repeat(")", open.Len()))
		})
	tok := read(NewContext("((a)b))c"))
	if tok == nil || tok.Value != "((a)b))" {
		t.Fatalf("expected ((a)b)), got %v", tok)
	}
	if last := tok.Last(); last.Type != "Close" || last.Start != 5 {
		t.Fatalf("expected close at 5, got %v", last)
	}
}

func TestBlocksSequence(t *testing.T) {
	t.Parallel()
	read := NewBlocksSequenceReader("List", "Item", NewStringReader("Sep", ","),
		NewCompositeReader(ReadWord, ReadPunctuation))
	root := mustTokenize(t, read, "a,b,,c;d,")
	want := []string{
		"List[0,9)",
		" Item[0,1)",
		"  Word[0,1)",
		" Sep[1,2)",
		" Item[2,3)",
		"  Word[2,3)",
		" Sep[3,4)",
		" Sep[4,5)",
		" Item[5,8)",
		"  Word[5,6)",
		"  Punctuation[6,7)",
		"  Word[7,8)",
		" Sep[8,9)",
	}
	if diff := cmp.Diff(want, outline(root)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensSequence(t *testing.T) {
	t.Parallel()
	item := NewCompositeReader(ReadWord, ReadSpaces)
	tests := []struct {
		name     string
		min, max int
		input    string
		end      int
	}{
		{name: "bounded", min: 1, max: 3, input: "a b c d", end: 3},
		{name: "unbounded", min: 1, max: Unbounded, input: "a b c d", end: 7},
		{name: "too few", min: 2, max: Unbounded, input: "a", end: -1},
		{name: "none", min: 0, max: Unbounded, input: "!", end: -1},
	}
	for _, tc := range tests {
		ctx := NewContext(tc.input)
		tok := NewTokensSequenceReader("Seq", item, tc.min, tc.max)(ctx)
		switch {
		case tc.end < 0 && tok != nil:
			t.Fatalf("%s: expected nil, got %v", tc.name, tok)
		case tc.end < 0 && ctx.Pos() != 0:
			t.Fatalf("%s: expected pos 0, got %d", tc.name, ctx.Pos())
		case tc.end >= 0 && (tok == nil || tok.End != tc.end):
			t.Fatalf("%s: expected end %d, got %v", tc.name, tc.end, tok)
		}
	}
}

func TestCompositeOrder(t *testing.T) {
	t.Parallel()
	short := NewStringReader("Short", "a")
	long := NewStringReader("Long", "ab")
	if tok := NewCompositeReader(short, long)(NewContext("ab")); tok.Type != "Short" {
		t.Fatalf("expected the first reader to win, got %v", tok)
	}
	var list Readers
	list.Append(short).Prepend(long, nil, ReadWord)
	if list.Len() != 3 {
		t.Fatalf("expected 3 readers, got %d", list.Len())
	}
	if tok := list.Read(NewContext("ab")); tok.Type != "Long" {
		t.Fatalf("expected prepended reader to win, got %v", tok)
	}
	if tok := list.Read(NewContext("!")); tok != nil {
		t.Fatalf("expected no match, got %v", tok)
	}
}
