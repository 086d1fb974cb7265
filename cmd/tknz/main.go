package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/tknz"
	"pkt.systems/tknz/grammars"
	"pkt.systems/tknz/internal/debug"
)

const (
	defaultThemeName = "default"
	defaultGrammar   = "md"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/tknz")
}

type options struct {
	grammar    string
	format     string
	selectExpr string
	width      int
	color      string
	themeName  string
	maxDepth   int
	noAttrs    bool
	verify     bool
	validate   bool
	outPath    string
	trace      string
	timeout    time.Duration
}

func main() {
	var (
		opts         options
		listThemes   bool
		listGrammars bool
	)

	flags := pflag.NewFlagSet("tknz", pflag.ExitOnError)
	flags.StringVarP(&opts.grammar, "grammar", "g", "", "Grammar: md|code|html (default from file extension, else md)")
	flags.StringVarP(&opts.format, "format", "f", "tree", "Output format: tree|json|yaml")
	flags.StringVarP(&opts.selectExpr, "select", "s", "", "Only print tokens matching an expression, e.g. 'type == \"MdSection\" && level <= 2'")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.color, "color", "c", "auto", "Colors: auto|on|off")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&opts.maxDepth, "max-depth", "d", -1, "Limit the rendered tree depth (-1 renders everything)")
	flags.BoolVar(&opts.noAttrs, "no-attrs", false, "Hide token attributes in tree output")
	flags.BoolVar(&opts.verify, "verify", false, "Check the token tree invariants and fail on violations")
	flags.BoolVar(&opts.validate, "validate", true, "Reject invalid UTF-8 and binary input")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&opts.trace, "trace", "", "Trace parser internals to stderr: guard,fence")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout for http(s) inputs (0 disables)")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&listGrammars, "list-grammars", false, "List available grammars")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: tknz [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files, file:// or http(s):// URLs. If no input is provided, stdin is read.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listThemes {
		printList(os.Stdout, tknz.AvailableThemes())
		return
	}
	if listGrammars {
		printList(os.Stdout, grammars.Names())
		return
	}

	var writer io.Writer = os.Stdout
	if strings.TrimSpace(opts.outPath) != "" {
		f, err := createOutput(opts.outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, opts, flags.Args(), writer)
	stop()
	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "tknz: %v\n", err)
		os.Exit(1)
	}
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// run tokenizes every input on its own and writes the result to w.
func run(ctx context.Context, opts options, args []string, w io.Writer) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "tree" {
		if _, err := tknz.ParseFormat(format); err != nil {
			return usagef("invalid --format %q: expected tree|json|yaml", opts.format)
		}
	}
	if opts.grammar != "" {
		if _, ok := grammars.ByName(opts.grammar); !ok {
			return usagef("unknown grammar %q (available: %s)", opts.grammar, strings.Join(grammars.Names(), ", "))
		}
	}
	theme, ok := tknz.ThemeByName(opts.themeName)
	if !ok {
		return usagef("unknown theme %q (available: %s)", opts.themeName, strings.Join(tknz.AvailableThemes(), ", "))
	}
	color, err := resolveColor(opts.color, w)
	if err != nil {
		return usagef("invalid --color %q: %v", opts.color, err)
	}

	if opts.trace != "" {
		guard, fence, err := parseTrace(opts.trace)
		if err != nil {
			return usagef("invalid --trace %q: %v", opts.trace, err)
		}
		debug.Set(guard || debug.Guard(), fence || debug.Fence())
	}

	inputs, err := parseInputs(args)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	client := &http.Client{Timeout: opts.timeout}
	for i, in := range inputs {
		if len(inputs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", in.name)
		}
		if err := processInput(ctx, client, opts, format, theme, color, in, w); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	return nil
}

func processInput(ctx context.Context, client *http.Client, opts options, format string, theme tknz.Theme, color bool, in input, w io.Writer) error {
	src, err := in.read(ctx, client)
	if err != nil {
		return err
	}

	grammar := resolveGrammar(opts.grammar, in.name)
	read, _ := grammars.ByName(grammar)
	root, err := tknz.Tokenize(tknz.TokenizeRequest{
		Input:   string(src),
		Reader:  read,
		Options: []tknz.Option{tknz.WithValidation(opts.validate)},
	})
	if err != nil {
		return err
	}
	if opts.verify {
		if err := tknz.Verify(string(src), root); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	tokens := []*tknz.Token{root}
	if opts.selectExpr != "" {
		tokens, err = tknz.Select(root, opts.selectExpr)
		if err != nil {
			return err
		}
	}
	for _, tok := range tokens {
		if err := writeToken(opts, format, theme, color, tok, w); err != nil {
			return err
		}
	}
	return nil
}

func writeToken(opts options, format string, theme tknz.Theme, color bool, tok *tknz.Token, w io.Writer) error {
	if format != "tree" {
		f, _ := tknz.ParseFormat(format)
		return tknz.Encode(w, tok, f)
	}
	return tknz.Render(tknz.RenderRequest{
		Token:  tok,
		Writer: w,
		Width:  resolveWidth(opts.width),
		Theme:  theme,
		Options: []tknz.RenderOption{
			tknz.WithAttrs(!opts.noAttrs),
			tknz.WithMaxDepth(opts.maxDepth),
			tknz.WithColor(color),
		},
	})
}

func resolveGrammar(flagValue, name string) string {
	if flagValue != "" {
		return strings.ToLower(strings.TrimSpace(flagValue))
	}
	if g, ok := grammars.ForPath(name); ok {
		return g
	}
	return defaultGrammar
}

// parseTrace reads a comma separated list of trace switches.
func parseTrace(value string) (guard, fence bool, err error) {
	for _, part := range strings.Split(value, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "guard":
			guard = true
		case "fence":
			fence = true
		case "all":
			guard, fence = true, true
		case "":
		default:
			return false, false, fmt.Errorf("unknown switch %q (expected guard, fence or all)", part)
		}
	}
	return guard, fence, nil
}

func printList(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		f, _ := w.(*os.File)
		return tknz.DetectColorSupport(f), nil
	case "on", "true", "1", "yes", "always":
		return true, nil
	case "off", "false", "0", "no", "never":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}
