package tknz

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Walk visits the tree in pre-order. Returning false from fn skips the
// children of the visited token.
func Walk(root *Token, fn func(tok *Token, depth int) bool) {
	walk(root, 0, fn)
}

func walk(tok *Token, depth int, fn func(*Token, int) bool) {
	if tok == nil || !fn(tok, depth) {
		return
	}
	for _, child := range tok.Children {
		walk(child, depth+1, fn)
	}
}

// Select returns the tokens, in pre-order, for which the boolean expression
// holds. The expression sees type, start, end, value, depth, level, name and
// attrs and children (the child count), e.g.
//
//	type == "MdSection" && level <= 2
func Select(root *Token, expression string) ([]*Token, error) {
	program, err := expr.Compile(expression,
		expr.Env(selectEnvTypes),
		expr.AsBool(),
		expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("select: compile: %w", err)
	}
	var (
		out    []*Token
		runErr error
	)
	Walk(root, func(tok *Token, depth int) bool {
		if runErr != nil {
			return false
		}
		res, err := expr.Run(program, selectEnv(tok, depth))
		if err != nil {
			runErr = fmt.Errorf("select: %s: %w", tok, err)
			return false
		}
		if ok, _ := res.(bool); ok {
			out = append(out, tok)
		}
		return true
	})
	if runErr != nil {
		return nil, runErr
	}
	return out, nil
}

// selectEnvTypes declares the variables so that names like type shadow the
// builtins of the same name.
var selectEnvTypes = map[string]any{
	"type":     "",
	"start":    0,
	"end":      0,
	"value":    "",
	"depth":    0,
	"level":    0,
	"name":     "",
	"attrs":    map[string]any{},
	"children": 0,
}

func selectEnv(tok *Token, depth int) map[string]any {
	attrs := tok.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	return map[string]any{
		"type":     tok.Type,
		"start":    tok.Start,
		"end":      tok.End,
		"value":    tok.Value,
		"depth":    depth,
		"level":    tok.IntAttr("level"),
		"name":     tok.StringAttr("name"),
		"attrs":    attrs,
		"children": len(tok.Children),
	}
}
