package tknz

import "unicode"

// Leaf token types produced by the ready-made character readers.
const (
	TypeWord        = "Word"
	TypeSpaces      = "Spaces"
	TypeEol         = "Eol"
	TypePunctuation = "Punctuation"
)

var (
	// ReadWord reads a run of letters, digits and underscores.
	ReadWord = NewCharsReader(TypeWord, IsWordChar)
	// ReadSpaces reads a run of spaces and tabs.
	ReadSpaces = NewCharsReader(TypeSpaces, IsSpace)
	// ReadEol reads a run of line breaks.
	ReadEol = NewCharsReader(TypeEol, IsEol)
	// ReadPunctuation reads a run of punctuation characters.
	ReadPunctuation = NewCharsReader(TypePunctuation, IsPunctuation)
)

// IsSpace reports whether r is a space or a tab.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsEol reports whether r is a line break character.
func IsEol(r rune) bool {
	return r == '\n' || r == '\r'
}

// IsSpaceOrEol reports whether r is a space, a tab or a line break.
func IsSpaceOrEol(r rune) bool {
	return IsSpace(r) || IsEol(r)
}

// IsWordChar reports whether r can be part of a word.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsPunctuation reports whether r is a Unicode punctuation character.
func IsPunctuation(r rune) bool {
	return unicode.IsPunct(r)
}

// NewCharsReader returns a reader for the longest non-empty run of
// characters matching pred.
func NewCharsReader(typ string, pred func(rune) bool) Reader {
	return func(ctx *Context) *Token {
		start := ctx.Pos()
		end := ctx.SkipWhile(pred)
		if end == start {
			return nil
		}
		return ctx.NewToken(typ, start, end)
	}
}

// NewStringReader returns a reader for the literal s.
func NewStringReader(typ string, s string) Reader {
	return func(ctx *Context) *Token {
		if s == "" || !ctx.HasPrefix(s) {
			return nil
		}
		start := ctx.Pos()
		ctx.SetPos(start + len(s))
		return ctx.NewToken(typ, start, ctx.Pos())
	}
}
