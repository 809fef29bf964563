package canonical

import (
	"regexp"
	"strings"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9\s]`)
	wsRun       = regexp.MustCompile(`\s+`)
	toolsSuffix = regexp.MustCompile(`\s*tools?$`)
	toolsPrefix = regexp.MustCompile(`^tools?\s+`)
)

// NormalizeText canonicalizes a raw category label before matching.
//
// Substitution order is significant and must not be reordered: trim +
// lowercase, strip everything outside [a-z0-9\s], collapse whitespace runs,
// rewrite a trailing "tool"/"tools" to " tools", then a leading
// "tool"/"tools" to "tools ". The suffix rule runs on the already-collapsed
// string, so an input that is only "tool" comes out as " tools".
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "")
	s = wsRun.ReplaceAllString(s, " ")
	s = toolsSuffix.ReplaceAllString(s, " tools")
	s = toolsPrefix.ReplaceAllString(s, "tools ")
	return s
}
