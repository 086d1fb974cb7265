package tknz

import (
	"fmt"
	"strconv"
)

// Token is a recognized span of the input.
//
// Start and End are half-open byte offsets and Value is always
// input[Start:End]. Children, when present, are ordered by Start and never
// overlap; gaps between them are characters no reader recognized.
type Token struct {
	Type     string         `json:"type" yaml:"type"`
	Start    int            `json:"start" yaml:"start"`
	End      int            `json:"end" yaml:"end"`
	Value    string         `json:"value" yaml:"value"`
	Children []*Token       `json:"children,omitempty" yaml:"children,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Len returns the length of the token span in bytes.
func (t *Token) Len() int {
	return t.End - t.Start
}

// Attr returns the named attribute.
func (t *Token) Attr(key string) (any, bool) {
	if t == nil || t.Attrs == nil {
		return nil, false
	}
	v, ok := t.Attrs[key]
	return v, ok
}

// IntAttr returns the named attribute as an int, or 0.
func (t *Token) IntAttr(key string) int {
	v, _ := t.Attr(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// StringAttr returns the named attribute as a string, or "".
func (t *Token) StringAttr(key string) string {
	v, _ := t.Attr(key)
	s, _ := v.(string)
	return s
}

// SetAttr sets an attribute and returns the token. It is meant for the
// reader producing the token, before the token is handed to anyone else.
func (t *Token) SetAttr(key string, value any) *Token {
	if t.Attrs == nil {
		t.Attrs = make(map[string]any, 2)
	}
	t.Attrs[key] = value
	return t
}

// Last returns the last child, or nil.
func (t *Token) Last() *Token {
	if t == nil || len(t.Children) == 0 {
		return nil
	}
	return t.Children[len(t.Children)-1]
}

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[%d,%d) %s", t.Type, t.Start, t.End, strconv.Quote(t.Value))
}
