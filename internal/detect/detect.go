// Package detect sniffs the installed framework version for a stack by
// reading the project's manifest files. Detection is best-effort: any
// missing or unreadable manifest yields an empty version, never an
// error, and the caller falls back to prompting or skipping the version
// overlay.
package detect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// manifestPackages maps a stack to the manifest dependency that carries
// its version.
var manifestPackages = map[string]struct {
	file string
	pkg  string
}{
	"react":   {"package.json", "react"},
	"angular": {"package.json", "@angular/core"},
	"vue":     {"package.json", "vue"},
	"nestjs":  {"package.json", "@nestjs/core"},
	"laravel": {"composer.json", "laravel/framework"},
}

// packageManifest is the subset of package.json we read.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// composerManifest is the subset of composer.json we read.
type composerManifest struct {
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// Version returns the major version of the stack's framework installed
// under projectPath, or "" when it cannot be determined.
func Version(projectPath, stack string) string {
	target, ok := manifestPackages[stack]
	if !ok {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(projectPath, target.file))
	if err != nil {
		return ""
	}

	var constraint string
	switch target.file {
	case "composer.json":
		var manifest composerManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return ""
		}
		constraint = firstMatch(target.pkg, manifest.Require, manifest.RequireDev)
	default:
		var manifest packageManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return ""
		}
		constraint = firstMatch(target.pkg, manifest.Dependencies, manifest.DevDependencies)
	}

	return MajorVersion(constraint)
}

func firstMatch(pkg string, tables ...map[string]string) string {
	for _, table := range tables {
		if v, ok := table[pkg]; ok {
			return v
		}
	}
	return ""
}

// MajorVersion extracts the leading major version from a dependency
// constraint like "^18.2.0", "~11.0", ">=5.0 <6.0", or "18".
func MajorVersion(constraint string) string {
	constraint = strings.TrimSpace(constraint)
	constraint = strings.TrimLeft(constraint, "^~>=<v ")
	if constraint == "" || constraint == "*" {
		return ""
	}

	end := 0
	for end < len(constraint) && constraint[end] >= '0' && constraint[end] <= '9' {
		end++
	}
	return constraint[:end]
}
