package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NoFrontmatter(t *testing.T) {
	fm, body := Extract("Just a body\nwith two lines")
	assert.Equal(t, 0, fm.Len())
	assert.Equal(t, "Just a body\nwith two lines", body)
}

func TestExtract_Basic(t *testing.T) {
	text := `---
description: React component rules
globs: '**/*.tsx'
alwaysApply: false
---

Use function components.`

	fm, body := Extract(text)
	require.Equal(t, 3, fm.Len())
	assert.Equal(t, "React component rules", fm.GetString("description"))
	assert.Equal(t, "**/*.tsx", fm.GetString("globs"))
	assert.False(t, fm.GetBool("alwaysApply"))
	assert.Equal(t, "Use function components.", body)
}

func TestExtract_ValueKinds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{"raw string", "hello world", String("hello world")},
		{"true literal", "true", Bool(true)},
		{"false literal", "false", Bool(false)},
		{"single quoted", "'quoted value'", String("quoted value")},
		{"double quoted", `"quoted value"`, String("quoted value")},
		{"array", "[ 'a', 'b', 'c' ]", List("a", "b", "c")},
		{"array without quotes", "[a, b]", List("a", "b")},
		{"array mixed quotes", `[ "a", 'b' ]`, List("a", "b")},
		{"empty array", "[]", List()},
		{"quoted boolean stays string", "'true'", String("true")},
		{"mismatched quotes kept raw", `'abc"`, String(`'abc"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, _ := Extract("---\nkey: " + tt.raw + "\n---\nbody")
			got, ok := fm.Get("key")
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "want %+v got %+v", tt.want, got)
		})
	}
}

func TestExtract_MalformedLinesSkipped(t *testing.T) {
	text := `---
description: ok
this line has no colon
globs: '**/*'
---
body`

	fm, body := Extract(text)
	assert.Equal(t, []string{"description", "globs"}, fm.Keys())
	assert.Equal(t, "body", body)
}

func TestExtract_UnterminatedBlock(t *testing.T) {
	text := "---\nkey: value\nno closing delimiter"
	fm, body := Extract(text)
	assert.Equal(t, 0, fm.Len())
	assert.Equal(t, text, body)
}

func TestSerialize(t *testing.T) {
	fm := New()
	fm.SetString("description", "Laravel controllers")
	fm.SetList("globs", "app/**/*.php", "routes/*.php")
	fm.SetBool("alwaysApply", true)

	got := Serialize(fm, "Keep controllers thin.")
	want := `---
description: Laravel controllers
globs: [ 'app/**/*.php', 'routes/*.php' ]
alwaysApply: true
---

Keep controllers thin.`
	assert.Equal(t, want, got)
}

func TestSerialize_QuotesStructuralStrings(t *testing.T) {
	fm := New()
	fm.SetString("globs", "src/**/*.ts")
	fm.SetString("note", "key: value pairs")
	fm.SetString("bool", "true")

	out := Serialize(fm, "")
	assert.Contains(t, out, "globs: src/**/*.ts\n")
	assert.Contains(t, out, "note: 'key: value pairs'\n")
	assert.Contains(t, out, "bool: 'true'\n")
}

func TestRoundTrip_Examples(t *testing.T) {
	fm := New()
	fm.SetString("description", "Version-specific overrides")
	fm.SetList("globs", "<root>/app/**/*.php")
	fm.SetBool("alwaysApply", false)
	fm.SetString("stack", "laravel")
	fm.SetString("tricky", "contains: colon and #hash")
	fm.SetList("empty")

	body := "First paragraph.\n\n## Second\n\nMore text."

	gotFM, gotBody := Extract(Serialize(fm, body))
	assert.True(t, fm.Equal(gotFM), "frontmatter mismatch: %v vs %v", fm.Keys(), gotFM.Keys())
	assert.Equal(t, body, gotBody)
}

func TestDelete_PreservesOrder(t *testing.T) {
	fm := New()
	fm.SetString("a", "1")
	fm.SetString("debug", "transient")
	fm.SetString("b", "2")

	fm.Delete("debug")
	assert.Equal(t, []string{"a", "b"}, fm.Keys())
	assert.False(t, fm.Has("debug"))
}

func TestMerge_LaterWinsPreservingOrder(t *testing.T) {
	base := New()
	base.SetString("stack", "react")
	base.SetBool("alwaysApply", false)

	overlay := New()
	overlay.SetBool("alwaysApply", true)
	overlay.SetString("globs", "src/**")

	base.Merge(overlay)
	assert.Equal(t, []string{"stack", "alwaysApply", "globs"}, base.Keys())
	assert.True(t, base.GetBool("alwaysApply"))
}
