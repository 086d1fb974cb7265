package tknz

import (
	"errors"
	"fmt"
)

// TreeError describes a token breaking a structural invariant.
type TreeError struct {
	Token  *Token
	Reason string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Token, e.Reason)
}

// Verify checks that every token of the tree lies inside the input, carries
// the exact substring as value, and that children are ordered,
// non-overlapping and inside their parent. All violations are joined.
func Verify(input string, root *Token) error {
	if root == nil {
		return errors.New("verify: nil token")
	}
	var errs []error
	Walk(root, func(tok *Token, _ int) bool {
		if tok.Start < 0 || tok.Start > tok.End || tok.End > len(input) {
			errs = append(errs, &TreeError{Token: tok, Reason: fmt.Sprintf("span outside input of length %d", len(input))})
			return false
		}
		if tok.Value != input[tok.Start:tok.End] {
			errs = append(errs, &TreeError{Token: tok, Reason: "value differs from input substring"})
		}
		prev := tok.Start
		for i, child := range tok.Children {
			if child == nil {
				errs = append(errs, &TreeError{Token: tok, Reason: fmt.Sprintf("child %d is nil", i)})
				continue
			}
			if child.Start < prev {
				errs = append(errs, &TreeError{Token: child, Reason: fmt.Sprintf("starts before offset %d", prev)})
			}
			if child.End > tok.End {
				errs = append(errs, &TreeError{Token: child, Reason: fmt.Sprintf("ends after parent end %d", tok.End)})
			}
			prev = max(prev, child.End)
		}
		return true
	})
	return errors.Join(errs...)
}
