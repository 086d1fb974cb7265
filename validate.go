package tknz

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// InputError locates a validation failure in the input.
type InputError struct {
	Err    error
	Offset int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Offset)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidateInput returns an *InputError wrapping ErrInvalidUTF8 or
// ErrBinaryInput when src is not valid UTF-8 or looks binary.
func ValidateInput(src string) error {
	var total, control int
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return &InputError{Err: ErrInvalidUTF8, Offset: i}
		}
		if r == 0 {
			return &InputError{Err: ErrBinaryInput, Offset: i}
		}
		total += size
		if isControlRune(r) {
			control++
		}
		i += size
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return &InputError{Err: ErrBinaryInput, Offset: 0}
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}
