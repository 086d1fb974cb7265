package tknz

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DetectColorSupport returns true if f is a terminal that likely shows ANSI
// colors. NO_COLOR disables and FORCE_COLOR enables colors regardless.
func DetectColorSupport(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
