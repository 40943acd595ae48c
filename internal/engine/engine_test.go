package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/rulekit/internal/config"
	"github.com/conneroisu/rulekit/internal/frontmatter"
	"github.com/conneroisu/rulekit/internal/logging"
)

const rulesDocument = `global:
  always:
    - standards.md
react:
  globs:
    - "<root>/src/**/*.tsx"
    - "<root>/src/**/*.ts"
  version_ranges:
    "18":
      range_name: v18
      name: "React 18"
`

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, config.FileName, rulesDocument)
	write(t, dir, "global/standards.md", "House style.")
	write(t, dir, "global/naming.md", "Naming conventions.")
	write(t, dir, "stacks/react/base/components.md", "Components for {stack} {detectedVersion}.")
	write(t, dir, "stacks/react/v18/components.md", "Use the new JSX transform.")
	write(t, dir, "stacks/react/base/hooks.md", "Hooks guidance.")
	return dir
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "package.json", `{"dependencies":{"react":"^18.2.0"}}`)
	return dir
}

func TestGenerate_EndToEnd(t *testing.T) {
	library := newLibrary(t)
	project := newProject(t)

	e := New(library, nil, nil, logging.NewNop())
	report, err := e.Generate(context.Background(), Options{
		Stack:         "react",
		ProjectPath:   project,
		IncludeGlobal: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "18", report.DetectedVersion, "sniffed from package.json")
	assert.Equal(t, "v18", report.VersionRange)
	assert.Equal(t, 4, report.Outputs)
	assert.Equal(t, 4, report.Written)
	assert.Empty(t, report.Errors)

	outRoot := filepath.Join(project, ".cursor", "rules", "rules-kit")

	// Global always-list output.
	data, err := os.ReadFile(filepath.Join(outRoot, "global", "standards.mdc"))
	require.NoError(t, err)
	fm, _ := frontmatter.Extract(string(data))
	assert.True(t, fm.GetBool("alwaysApply"))

	// Base + version tiers merged, substituted, routed by stack globs.
	data, err = os.ReadFile(filepath.Join(outRoot, "react", "components.mdc"))
	require.NoError(t, err)
	fm, body := frontmatter.Extract(string(data))
	assert.Contains(t, body, "Components for react 18.")
	assert.Contains(t, body, "## Version overrides (React 18)")
	assert.Contains(t, body, "Use the new JSX transform.")
	assert.Less(t, strings.Index(body, "Components for"), strings.Index(body, "JSX transform"))
	assert.Equal(t, project+"/src/**/*.tsx,"+project+"/src/**/*.ts", fm.GetString("globs"))
}

func TestGenerate_Idempotent(t *testing.T) {
	library := newLibrary(t)
	project := newProject(t)

	e := New(library, nil, nil, logging.NewNop())
	opts := Options{Stack: "react", ProjectPath: project, IncludeGlobal: true}

	first, err := e.Generate(context.Background(), opts)
	require.NoError(t, err)
	require.NotZero(t, first.Written)

	second, err := e.Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, second.Written, "second identical run performs zero writes")
	assert.Equal(t, first.Outputs, second.Skipped)
}

func TestGenerate_ExplicitVersionSkipsSniffing(t *testing.T) {
	library := newLibrary(t)
	project := t.TempDir() // no manifest

	e := New(library, nil, nil, logging.NewNop())
	report, err := e.Generate(context.Background(), Options{
		Stack:       "react",
		Version:     "18",
		ProjectPath: project,
	})
	require.NoError(t, err)
	assert.Equal(t, "v18", report.VersionRange)
}

func TestGenerate_UnknownVersionMeansNoOverlay(t *testing.T) {
	library := newLibrary(t)
	project := t.TempDir()

	e := New(library, nil, nil, logging.NewNop())
	report, err := e.Generate(context.Background(), Options{
		Stack:       "react",
		Version:     "99",
		ProjectPath: project,
	})
	require.NoError(t, err)
	assert.Empty(t, report.VersionRange)

	data, err := os.ReadFile(filepath.Join(project, ".cursor", "rules", "rules-kit", "react", "components.mdc"))
	require.NoError(t, err)
	_, body := frontmatter.Extract(string(data))
	assert.NotContains(t, body, "JSX transform", "version overlay must not contribute")
}

func TestGenerate_RefreshPicksUpLibraryChanges(t *testing.T) {
	library := newLibrary(t)
	project := t.TempDir()

	e := New(library, nil, nil, logging.NewNop())
	_, err := e.Generate(context.Background(), Options{Stack: "react", ProjectPath: project})
	require.NoError(t, err)

	write(t, library, "stacks/react/base/hooks.md", "Updated hooks guidance.")
	e.Refresh()

	_, err = e.Generate(context.Background(), Options{Stack: "react", ProjectPath: project})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(project, ".cursor", "rules", "rules-kit", "react", "hooks.mdc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Updated hooks guidance.")
}
