package tknz

import (
	"unicode/utf8"

	"pkt.systems/tknz/internal/debug"
)

// EOF is returned by Peek when the requested position is outside the input.
const EOF rune = -1

// Reader recognizes one token at the current position of a Context.
//
// A Reader returning nil must leave the Context exactly as it found it: the
// same position and the same fences. Readers wrap their attempt in Guard to
// get that for free.
type Reader func(ctx *Context) *Token

// Context is the cursor shared by all readers during one parse. It owns the
// input, the read position and the fence stack.
type Context struct {
	input  string
	i      int
	fences []Reader
	// fences below floor are hidden from IsFenceBoundary
	floor int
}

// NewContext returns a cursor over input. WithStart pre-positions it.
func NewContext(input string, opts ...Option) *Context {
	ctx := &Context{}
	ctx.Reset(input, opts...)
	return ctx
}

// Reset prepares the context for a new parse, keeping its buffers.
func (c *Context) Reset(input string, opts ...Option) {
	cfg := newConfig(opts)
	c.input = input
	c.i = min(max(cfg.start, 0), len(input))
	clear(c.fences)
	c.fences = c.fences[:0]
	c.floor = 0
}

// Input returns the whole input.
func (c *Context) Input() string {
	return c.input
}

// Len returns the input length in bytes.
func (c *Context) Len() int {
	return len(c.input)
}

// Pos returns the current offset.
func (c *Context) Pos() int {
	return c.i
}

// SetPos moves the cursor. Only call it inside a Guard.
func (c *Context) SetPos(i int) {
	c.i = min(max(i, 0), len(c.input))
}

// AtEnd reports whether the cursor reached the end of the input.
func (c *Context) AtEnd() bool {
	return c.i >= len(c.input)
}

// Advance moves the cursor past one character and returns the new position.
func (c *Context) Advance() int {
	if c.i >= len(c.input) {
		return c.i
	}
	_, size := utf8.DecodeRuneInString(c.input[c.i:])
	c.i += size
	return c.i
}

// Peek returns the character offset characters after the cursor, without
// moving it. A negative offset looks behind the cursor, so Peek(-1) is the
// character just before it. It returns EOF outside the input.
func (c *Context) Peek(offset int) rune {
	if offset < 0 {
		i := c.i
		for ; offset < 0 && i > 0; offset++ {
			_, size := utf8.DecodeLastRuneInString(c.input[:i])
			i -= size
		}
		if offset < 0 {
			return EOF
		}
		r, _ := utf8.DecodeRuneInString(c.input[i:])
		return r
	}
	i := c.i
	for ; offset > 0 && i < len(c.input); offset-- {
		_, size := utf8.DecodeRuneInString(c.input[i:])
		i += size
	}
	if offset > 0 || i >= len(c.input) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.input[i:])
	return r
}

// HasPrefix reports whether the input continues with s at the cursor.
func (c *Context) HasPrefix(s string) bool {
	return len(c.input)-c.i >= len(s) && c.input[c.i:c.i+len(s)] == s
}

// Substring returns input[start:end], clamped to the input.
func (c *Context) Substring(start, end int) string {
	start = min(max(start, 0), len(c.input))
	end = min(max(end, start), len(c.input))
	return c.input[start:end]
}

// SkipWhile advances past the longest run of characters matching pred and
// returns the new position. It does not restore anything on its own.
func (c *Context) SkipWhile(pred func(rune) bool) int {
	for c.i < len(c.input) {
		r, size := utf8.DecodeRuneInString(c.input[c.i:])
		if !pred(r) {
			break
		}
		c.i += size
	}
	return c.i
}

// NewToken builds a token of the given type over input[start:end].
func (c *Context) NewToken(typ string, start, end int) *Token {
	return &Token{
		Type:  typ,
		Start: start,
		End:   end,
		Value: c.Substring(start, end),
	}
}

// Guard runs body as one backtracking attempt. Fences added through the
// Fences handle live until Guard returns. When body returns nil the cursor is
// restored to where it was on entry, however deep the failure happened.
func (c *Context) Guard(body func(f *Fences) *Token) *Token {
	pos, depth, floor := c.i, len(c.fences), c.floor
	tok := body(&Fences{ctx: c, depth: depth})
	clear(c.fences[depth:])
	c.fences = c.fences[:depth]
	c.floor = floor
	if tok == nil {
		if debug.Guard() && c.i != pos {
			debug.Logf("guard: rollback %d -> %d", c.i, pos)
		}
		c.i = pos
	}
	return tok
}

// IsFenceBoundary reports whether any active fence matches at the cursor.
// Fences are probed innermost first and probing never consumes input.
// Fences hidden by Fences.Isolate are skipped.
func (c *Context) IsFenceBoundary() bool {
	for k := len(c.fences) - 1; k >= c.floor; k-- {
		if c.probe(c.fences[k]) {
			if debug.Fence() {
				debug.Logf("fence: boundary at %d (fence %d of %d)", c.i, k+1, len(c.fences))
			}
			return true
		}
	}
	return false
}

func (c *Context) probe(read Reader) bool {
	pos, depth, floor := c.i, len(c.fences), c.floor
	tok := read(c)
	c.i = pos
	clear(c.fences[depth:])
	c.fences = c.fences[:depth]
	c.floor = floor
	return tok != nil
}

// Fences is the fence registrar of one Guard scope.
type Fences struct {
	ctx   *Context
	depth int
}

// AddFence registers read as a boundary until the enclosing Guard returns.
func (f *Fences) AddFence(read Reader) {
	if read == nil {
		return
	}
	f.ctx.fences = append(f.ctx.fences, read)
}

// Isolate hides every fence added outside this scope until the enclosing
// Guard returns. Fences added in this scope and below stay active.
func (f *Fences) Isolate() {
	f.ctx.floor = f.depth
}

// IsFenceBoundary is the same probe as Context.IsFenceBoundary.
func (f *Fences) IsFenceBoundary() bool {
	return f.ctx.IsFenceBoundary()
}

// Len returns the number of fences added in this scope.
func (f *Fences) Len() int {
	return len(f.ctx.fences) - f.depth
}

// FenceDepth returns the number of registered fences, hidden ones included.
func (c *Context) FenceDepth() int {
	return len(c.fences)
}
