package groupzip

import (
	"fmt"
	"strings"
)

// BaseNameRule decides where a file name is split into base name and extension.
type BaseNameRule string

const (
	// FirstDot splits at the first "." so "report.v2.txt" has base name "report".
	FirstDot BaseNameRule = "first-dot"
	// LastDot strips only the last extension so "report.v2.txt" has base name "report.v2".
	// Hidden files are still excluded from every group, so ".hidden.txt" never
	// joins a ".hidden" group.
	LastDot BaseNameRule = "last-dot"
)

// ParseBaseNameRule returns the rule named by s. Unknown names are an error.
func ParseBaseNameRule(s string) (BaseNameRule, error) {
	switch r := BaseNameRule(strings.ToLower(strings.TrimSpace(s))); r {
	case FirstDot, LastDot:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// BaseName derives the grouping key for a file name. ok is false when the name
// has no extension under the rule or the key would be empty, as for dotfiles.
func BaseName(rule BaseNameRule, name string) (base string, ok bool) {
	var i int
	switch rule {
	case LastDot:
		i = strings.LastIndexByte(name, '.')
	default:
		i = strings.IndexByte(name, '.')
	}
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[:i], true
}

// normalizeExt lowercases ext and gives it a leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// hasExt reports whether name ends in ext, ignoring case.
func hasExt(name, ext string) bool {
	return ext != "" && len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
