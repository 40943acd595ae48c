package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistration(t *testing.T) {
	for _, name := range []string{"generate", "list", "watch", "interactive", "config", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, "command %s should be registered", name)
		assert.Equal(t, name, cmd.Name())
	}

	// Aliases resolve to the same commands.
	gen, _, err := rootCmd.Find([]string{"gen"})
	require.NoError(t, err)
	assert.Equal(t, "generate", gen.Name())
}

func TestSelectionFlagsEngineOptions(t *testing.T) {
	flags := selectionFlags{
		Stack:           "react",
		Version:         "18",
		Architecture:    "atomic",
		StateManagement: "redux",
		Project:         "./apps/web",
		Testing:         true,
		NoGlobal:        true,
	}

	opts := flags.engineOptions()
	assert.Equal(t, "react", opts.Stack)
	assert.Equal(t, "18", opts.Version)
	assert.Equal(t, "atomic", opts.Architecture)
	assert.Equal(t, "redux", opts.StateManagement)
	assert.Equal(t, "./apps/web", opts.ProjectPath)
	assert.True(t, opts.IncludeTesting)
	assert.False(t, opts.IncludeSignals)
	assert.False(t, opts.IncludeGlobal)
}

func TestRunGenerate(t *testing.T) {
	tempDir := t.TempDir()
	templates := filepath.Join(tempDir, "templates")
	project := filepath.Join(tempDir, "project")

	writeFile(t, filepath.Join(templates, "rules.yaml"), `
global:
  always: ["conventions"]
react:
  globs: ["<root>/src/**/*.tsx"]
`)
	writeFile(t, filepath.Join(templates, "global", "conventions.md"), "Use clear names.\n")
	writeFile(t, filepath.Join(templates, "stacks", "react", "base", "components.md"), "Prefer function components.\n")
	require.NoError(t, os.MkdirAll(project, 0o755))

	viper.Set("templates", templates)
	defer viper.Set("templates", "")

	generateFlags = selectionFlags{Stack: "react", Project: project}
	generateBackup = false
	generateDebug = false

	err := runGenerate(&cobra.Command{}, nil)
	require.NoError(t, err)

	outputRoot := filepath.Join(project, ".cursor", "rules", "rules-kit")
	assert.FileExists(t, filepath.Join(outputRoot, "react", "components.mdc"))
	assert.FileExists(t, filepath.Join(outputRoot, "global", "conventions.mdc"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
