package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conneroisu/rulekit/internal/rules"
)

func TestSubstitute(t *testing.T) {
	ctx := rules.RunContext{
		Stack:            "react",
		DetectedVersion:  "18.2.0",
		VersionRange:     "v18",
		VersionRangeName: "React 18",
		ProjectPath:      "./",
		CursorPath:       ".cursor",
	}

	body := "Detected {detectedVersion} of {stack} ({versionRange}) in {projectPath}"
	got := Substitute(body, ctx)
	assert.Equal(t, "Detected 18.2.0 of react (React 18) in ./", got)
}

func TestSubstitute_PrefersRangeNameOverRawRange(t *testing.T) {
	ctx := rules.RunContext{VersionRange: "v18"}
	assert.Equal(t, "v18", Substitute("{versionRange}", ctx))

	ctx.VersionRangeName = "React 18"
	assert.Equal(t, "React 18", Substitute("{versionRange}", ctx))
}

func TestSubstitute_MissingValuesLeftVerbatim(t *testing.T) {
	ctx := rules.RunContext{Stack: "angular"}
	body := "{stack} at {detectedVersion} with {unknownPlaceholder}"
	got := Substitute(body, ctx)
	assert.Equal(t, "angular at {detectedVersion} with {unknownPlaceholder}", got)
}

func TestSubstitute_ReplacesAllOccurrences(t *testing.T) {
	ctx := rules.RunContext{Stack: "vue"}
	got := Substitute("{stack} {stack} {stack}", ctx)
	assert.Equal(t, "vue vue vue", got)
}

func TestNormalizeProjectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "./"},
		{".", "./"},
		{"./", "./"},
		{"api", "api/"},
		{"api/", "api/"},
		{"api//", "api/"},
		{"packages/web", "packages/web/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeProjectPath(tt.in), "input %q", tt.in)
	}
}

func TestExpandRoot(t *testing.T) {
	glob := "<root>/app/Http/Controllers/**/*.php"
	assert.Equal(t, "./app/Http/Controllers/**/*.php", ExpandRoot(glob, "."))
	assert.Equal(t, "api/app/Http/Controllers/**/*.php", ExpandRoot(glob, "api"))
	assert.Equal(t, "src/**/*.ts", ExpandRoot("src/**/*.ts", "api"))
}
