package tknz

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoReader is returned when a TokenizeRequest has no Reader.
	ErrNoReader = errors.New("no reader")
	// ErrRejected is returned when the top-level reader recognizes nothing
	// of a non-empty input.
	ErrRejected = errors.New("input rejected")
)

var contextPool = sync.Pool{
	New: func() any {
		return &Context{}
	},
}

// TokenizeRequest configures Tokenize.
type TokenizeRequest struct {
	Input   string
	Reader  Reader
	Options []Option
}

// Tokenize runs the top-level reader once over the input and returns the
// root token.
func Tokenize(req TokenizeRequest) (*Token, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("tokenize: %w", ErrNoReader)
	}
	cfg := newConfig(req.Options)
	if cfg.validate {
		if err := ValidateInput(req.Input); err != nil {
			return nil, fmt.Errorf("tokenize: %w", err)
		}
	}
	ctx := contextPool.Get().(*Context)
	ctx.Reset(req.Input, req.Options...)
	tok := req.Reader(ctx)
	ctx.Reset("")
	contextPool.Put(ctx)
	if tok == nil || (tok.Len() == 0 && len(req.Input) > 0) {
		return nil, fmt.Errorf("tokenize: %w", ErrRejected)
	}
	return tok, nil
}
