// Package debug holds trace switches read from the environment.
//
//	TKNZ_DEBUG_GUARD=1  log guard rollbacks
//	TKNZ_DEBUG_FENCE=1  log fence boundary hits
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Guard bool
	Fence bool
}

var (
	d   *debug
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Guard = boolEnv("TKNZ_DEBUG_GUARD")
	d.Fence = boolEnv("TKNZ_DEBUG_FENCE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Guard() bool {
	return d.Guard
}

func Fence() bool {
	return d.Fence
}

// Set overrides the switches, e.g. from a CLI flag. It is not safe to call
// while a parse is running.
func Set(guard, fence bool) {
	d.Guard = guard
	d.Fence = fence
}

// SetOutput redirects trace output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func Logf(msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "tknz: "+msg+"\n", args...)
}
