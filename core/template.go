package core

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches "{{ name }}".
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][-A-Za-z0-9_.]*)\s*\}\}`)

// Placeholders returns the distinct placeholder names in s in order
// of first appearance.
func Placeholders(s string) []string {
	var (
		acc  []string
		seen = make(map[string]bool)
	)
	for _, m := range placeholder.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			acc = append(acc, m[1])
		}
	}
	return acc
}

// RenderPlaceholders replaces each "{{ name }}" in s with f(name).
func RenderPlaceholders(s string, f func(name string) (string, error)) (string, error) {
	var (
		acc  strings.Builder
		last int
	)
	for _, loc := range placeholder.FindAllStringSubmatchIndex(s, -1) {
		acc.WriteString(s[last:loc[0]])
		replacement, err := f(s[loc[2]:loc[3]])
		if err != nil {
			return "", err
		}
		acc.WriteString(replacement)
		last = loc[1]
	}
	acc.WriteString(s[last:])
	return acc.String(), nil
}

// Stringify renders a value for substitution into text.
func Stringify(x interface{}) string {
	switch vv := x.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		if IsIntegral(vv) {
			return fmt.Sprintf("%d", int64(vv))
		}
		return fmt.Sprintf("%v", vv)
	default:
		return fmt.Sprintf("%v", x)
	}
}
