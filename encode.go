package tknz

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects a serialization for Encode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Encode writes the token tree to w.
func Encode(w io.Writer, tok *Token, format Format) error {
	if tok == nil {
		return fmt.Errorf("encode: token is nil")
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(tok); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		out, err := yaml.Marshal(tok)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("encode: unknown format %q", format)
	}
	return nil
}

// Decode reads a token tree written by Encode. YAML is a superset of the
// JSON output, so one decoder handles both.
func Decode(r io.Reader) (*Token, error) {
	var tok Token
	if err := yaml.NewDecoder(r).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &tok, nil
}
