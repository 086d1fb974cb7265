package md

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"pkt.systems/tknz"
)

const (
	TypeFrontMatter      = "MdFrontMatter"
	TypeFrontMatterFence = "MdFrontMatterFence"
	TypeFrontMatterLine  = "MdFrontMatterLine"
)

// ErrUnsupportedFrontMatter is returned by FrontMatterData for formats it
// cannot decode.
var ErrUnsupportedFrontMatter = errors.New("unsupported front matter format")

var frontMatterFormats = map[string]string{
	"---": "yaml",
	"+++": "toml",
	";;;": "json",
}

// NewFrontMatterReader returns a reader for a metadata block at the very
// start of the input, delimited by "---", "+++" or ";;;" lines. The line
// after the opening delimiter must look like metadata. Without a closing
// delimiter there is no front matter.
func NewFrontMatterReader() tknz.Reader {
	readLine := tknz.NewCharsReader(TypeFrontMatterLine, func(r rune) bool { return !tknz.IsEol(r) })
	content := tknz.NewCompositeReader(readLine, tknz.ReadEol)
	return tknz.NewDynamicFencedBlockReader(TypeFrontMatter, readFrontMatterOpen,
		func(*tknz.Token) tknz.Reader { return content },
		func(open *tknz.Token) tknz.Reader { return readFrontMatterClose(open.StringAttr("marker")) },
		tknz.Finalize(func(tok *tknz.Token) *tknz.Token {
			if len(tok.Children) < 2 || tok.Last().Type != TypeFrontMatterFence {
				return nil
			}
			return tok.SetAttr("format", tok.Children[0].StringAttr("format"))
		}))
}

// FrontMatterData decodes the body of a front matter token. YAML and JSON
// bodies are supported.
func FrontMatterData(tok *tknz.Token) (map[string]any, error) {
	if tok == nil || tok.Type != TypeFrontMatter || len(tok.Children) < 2 {
		return nil, fmt.Errorf("front matter: not a front matter token")
	}
	format := tok.StringAttr("format")
	if format != "yaml" && format != "json" {
		return nil, fmt.Errorf("front matter: %w: %s", ErrUnsupportedFrontMatter, format)
	}
	body := tok.Value[tok.Children[0].Len() : tok.Last().Start-tok.Start]
	data := map[string]any{}
	if err := yaml.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	return data, nil
}

func readFrontMatterOpen(ctx *tknz.Context) *tknz.Token {
	if ctx.Pos() != 0 {
		return nil
	}
	input := ctx.Input()
	line, next := nextLine(input, 0)
	delim, ok := parseOpeningDelimiter(line)
	if !ok || next >= len(input) {
		return nil
	}
	second, _ := nextLine(input, next)
	if !metadataLikely(second) {
		return nil
	}
	ctx.SetPos(next)
	return ctx.NewToken(TypeFrontMatterFence, 0, next).
		SetAttr("marker", delim).
		SetAttr("format", frontMatterFormats[delim])
}

func readFrontMatterClose(delim string) tknz.Reader {
	return func(ctx *tknz.Context) *tknz.Token {
		if !atLineStart(ctx) {
			return nil
		}
		start := ctx.Pos()
		line, next := nextLine(ctx.Input(), start)
		if strings.TrimSpace(line) != delim {
			return nil
		}
		ctx.SetPos(next)
		return ctx.NewToken(TypeFrontMatterFence, start, next)
	}
}

func nextLine(src string, start int) (string, int) {
	i := strings.IndexByte(src[start:], '\n')
	if i < 0 {
		return strings.TrimSuffix(src[start:], "\r"), len(src)
	}
	return strings.TrimSuffix(src[start:start+i], "\r"), start + i + 1
}

func parseOpeningDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\uFEFF"))
	if _, ok := frontMatterFormats[trimmed]; ok {
		return trimmed, true
	}
	return "", false
}

func metadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}
