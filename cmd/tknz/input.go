package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const stdinName = "<stdin>"

// input is one document to tokenize. Exactly one of path and url is set,
// neither for stdin. name is what headers print and what picks the grammar.
type input struct {
	name string
	path string
	url  string
}

func parseInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		return []input{{name: stdinName}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		in, err := parseInput(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func parseInput(arg string) (input, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return input{}, fmt.Errorf("empty input argument")
	case arg == "-":
		return input{name: stdinName}, nil
	}
	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" {
		return input{name: arg, path: arg}, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return input{name: arg, url: arg}, nil
	case "file":
		path := u.Path
		if path == "" {
			path = u.Host
		}
		return input{name: path, path: path}, nil
	}
	return input{name: arg, path: arg}, nil
}

// read returns the whole document.
func (in input) read(ctx context.Context, client *http.Client) ([]byte, error) {
	switch {
	case in.url != "":
		return fetch(ctx, client, in.url)
	case in.path != "":
		return os.ReadFile(expandHome(in.path))
	}
	return io.ReadAll(os.Stdin)
}

func fetch(ctx context.Context, client *http.Client, raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	return body, nil
}

// createOutput opens path for writing, creating missing directories.
func createOutput(path string) (*os.File, error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
