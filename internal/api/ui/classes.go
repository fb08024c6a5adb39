// Package ui holds helpers shared by the page templates.
package ui

import (
	"fmt"
	"slices"
	"strings"
)

// Classes merges class names into one class attribute value.
//
// Accepted arguments are string (may hold several space separated
// names), []string, map[string]bool (true keys only, sorted), and nil or
// false which contribute nothing. A name given more than once keeps the
// position of its last occurrence, so later arguments override earlier ones.
func Classes(args ...any) string {
	var tokens []string
	for _, arg := range args {
		tokens = appendTokens(tokens, arg)
	}
	return strings.Join(dedupLast(tokens), " ")
}

func appendTokens(tokens []string, arg any) []string {
	switch v := arg.(type) {
	case nil:
	case bool:
		// false is the result of `cond && "x"` style guards
	case string:
		tokens = append(tokens, strings.Fields(v)...)
	case []string:
		for _, s := range v {
			tokens = append(tokens, strings.Fields(s)...)
		}
	case []any:
		for _, s := range v {
			tokens = appendTokens(tokens, s)
		}
	case map[string]bool:
		keys := make([]string, 0, len(v))
		for k, on := range v {
			if on {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			tokens = append(tokens, strings.Fields(k)...)
		}
	case fmt.Stringer:
		tokens = append(tokens, strings.Fields(v.String())...)
	}
	return tokens
}

func dedupLast(tokens []string) []string {
	last := make(map[string]int, len(tokens))
	for i, t := range tokens {
		last[t] = i
	}

	out := make([]string, 0, len(last))
	for i, t := range tokens {
		if last[t] == i {
			out = append(out, t)
		}
	}
	return out
}

// If returns class when cond holds. Templates use it where JSX would write
// `cond && "class"`.
func If(cond bool, class string) any {
	if cond {
		return class
	}
	return false
}
