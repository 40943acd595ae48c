// Package template performs literal placeholder substitution in rule
// document bodies. The placeholder set is fixed; there are no
// conditionals, loops, or nested expressions, and unknown placeholders
// are left verbatim.
package template

import (
	"strings"

	"github.com/conneroisu/rulekit/internal/rules"
)

// Placeholder names recognized in document bodies, written as
// {detectedVersion} and so on.
const (
	PlaceholderDetectedVersion = "detectedVersion"
	PlaceholderVersionRange    = "versionRange"
	PlaceholderProjectPath     = "projectPath"
	PlaceholderCursorPath      = "cursorPath"
	PlaceholderStack           = "stack"
)

// Substitute replaces every occurrence of each known placeholder with the
// corresponding run value. Placeholders whose value is empty are left
// untouched so a downstream reader can see the template was not filled.
func Substitute(body string, ctx rules.RunContext) string {
	versionRange := ctx.VersionRangeName
	if versionRange == "" {
		versionRange = ctx.VersionRange
	}

	replacements := []struct {
		name  string
		value string
	}{
		{PlaceholderDetectedVersion, ctx.DetectedVersion},
		{PlaceholderVersionRange, versionRange},
		{PlaceholderProjectPath, ctx.ProjectPath},
		{PlaceholderCursorPath, ctx.CursorPath},
		{PlaceholderStack, ctx.Stack},
	}

	for _, r := range replacements {
		if r.value == "" {
			continue
		}
		body = strings.ReplaceAll(body, "{"+r.name+"}", r.value)
	}
	return body
}

// NormalizeProjectPath canonicalizes the project path used as a glob
// prefix: any existing trailing slashes are stripped first, then exactly
// one is appended. An absent path or the literal "." becomes "./".
func NormalizeProjectPath(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" || path == "." {
		return "./"
	}
	return path + "/"
}

// rootPlaceholder is the prefix in configured glob patterns that stands
// for the project path.
const rootPlaceholder = "<root>/"

// ExpandRoot replaces <root>/-prefixed segments in a glob with the
// normalized project path prefix.
func ExpandRoot(glob, projectPath string) string {
	return strings.ReplaceAll(glob, rootPlaceholder, NormalizeProjectPath(projectPath))
}
