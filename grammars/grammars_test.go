package grammars

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pkt.systems/tknz"
)

func TestGolden(t *testing.T) {
	goldens, err := filepath.Glob(filepath.Join("testdata", "*.golden"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(goldens) == 0 {
		t.Fatalf("no golden files in testdata")
	}
	for _, golden := range goldens {
		golden := golden
		t.Run(filepath.Base(golden), func(t *testing.T) {
			name, width := parseGolden(t, golden)
			inputs, err := filepath.Glob(filepath.Join("testdata", name+".*"))
			if err != nil {
				t.Fatalf("glob: %v", err)
			}
			var input string
			for _, path := range inputs {
				if _, ok := ForPath(path); ok {
					input = path
				}
			}
			if input == "" {
				t.Fatalf("no input for %s", golden)
			}
			got := renderFile(t, input, width)
			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("read golden: %v", err)
			}
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Fatalf("golden mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func parseGolden(t *testing.T, path string) (string, int) {
	t.Helper()
	name := strings.TrimSuffix(filepath.Base(path), ".golden")
	idx := strings.LastIndex(name, ".w")
	if idx == -1 {
		t.Fatalf("golden %s has no width", path)
	}
	width, err := strconv.Atoi(name[idx+2:])
	if err != nil {
		t.Fatalf("golden %s: %v", path, err)
	}
	return name[:idx], width
}

func renderFile(t *testing.T, path string, width int) string {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	grammar, _ := ForPath(path)
	read, _ := ByName(grammar)
	root, err := tknz.Tokenize(tknz.TokenizeRequest{
		Input:   string(src),
		Reader:  read,
		Options: []tknz.Option{tknz.WithValidation(true)},
	})
	if err != nil {
		t.Fatalf("tokenize %s: %v", path, err)
	}
	if err := tknz.Verify(string(src), root); err != nil {
		t.Fatalf("verify %s: %v", path, err)
	}
	var out bytes.Buffer
	if err := tknz.Render(tknz.RenderRequest{Token: root, Writer: &out, Width: width}); err != nil {
		t.Fatalf("render %s: %v", path, err)
	}
	return out.String()
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		read, ok := ByName(name)
		if !ok || read == nil {
			t.Fatalf("expected grammar %q", name)
		}
	}
	if _, ok := ByName("latex"); ok {
		t.Fatalf("expected no latex grammar")
	}
	if diff := cmp.Diff([]string{"code", "html", "md"}, Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	for path, want := range map[string]string{"a/README.MD": "md", "x.htm": "html", "t.tpl": "code"} {
		if got, ok := ForPath(path); !ok || got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
	if _, ok := ForPath("main.go"); ok {
		t.Fatalf("expected no grammar for .go files")
	}
}

func TestHTMLGrammar(t *testing.T) {
	read, _ := ByName("html")
	input := "<p>hi <b>x</b>!</p>\n"
	root, err := tknz.Tokenize(tknz.TokenizeRequest{Input: input, Reader: read})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var lines []string
	tknz.Walk(root, func(tok *tknz.Token, depth int) bool {
		lines = append(lines, fmt.Sprintf("%s%s[%d,%d)", strings.Repeat(" ", depth), tok.Type, tok.Start, tok.End))
		return true
	})
	want := []string{
		"HtmlDocument[0,20)",
		" Tag[0,19)",
		"  TagStart[0,3)",
		"  HtmlText[3,15)",
		"   Word[3,5)",
		"   Spaces[5,6)",
		"   Tag[6,14)",
		"    TagStart[6,9)",
		"    HtmlText[9,10)",
		"     Word[9,10)",
		"    TagEnd[10,14)",
		"   Punctuation[14,15)",
		"  TagEnd[15,19)",
		" Eol[19,20)",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}
