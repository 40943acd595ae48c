// Package config loads and saves the layered rules-definition document
// that drives routing metadata: per-stack default globs, pattern-to-file
// overrides, the global "always apply" list, and architecture/version
// sub-tables.
//
// The store is constructor-injected and owned by the engine instance; it
// memoizes a single configuration per instance (the first Load wins,
// later directory arguments are ignored) and is invalidated only by an
// explicit Invalidate or a successful Save. Absent or malformed
// configuration degrades to a built-in default instead of halting a run.
package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileName is the rules-definition document name, one per template
// library root.
const FileName = "rules.yaml"

// GlobalKey is the reserved top-level entry holding the always-apply
// list.
const GlobalKey = "global"

// RuleConfig is the full rules-definition document: the reserved global
// entry plus one StackConfig per stack name.
type RuleConfig struct {
	Global GlobalConfig
	Stacks map[string]StackConfig
}

// GlobalConfig holds configuration for the global tier.
type GlobalConfig struct {
	Always []string `yaml:"always"`
}

// StackConfig holds the routing configuration for one stack.
type StackConfig struct {
	Globs         []string                      `yaml:"globs"`
	PatternRules  map[string]StringList         `yaml:"pattern_rules"`
	Architectures map[string]ArchitectureConfig `yaml:"architectures"`
	VersionRanges map[string]VersionRange       `yaml:"version_ranges"`
}

// ArchitectureConfig is a nested StackConfig-like override for one
// architecture.
type ArchitectureConfig struct {
	Globs        []string              `yaml:"globs"`
	PatternRules map[string]StringList `yaml:"pattern_rules"`
}

// VersionRange names one version bucket of a stack.
type VersionRange struct {
	RangeName string `yaml:"range_name"`
	Name      string `yaml:"name"`
}

// StringList accepts either a scalar or a sequence in YAML. Any other
// shape decodes to an empty list rather than failing the document.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = StringList{node.Value}
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind == yaml.ScalarNode {
				items = append(items, child.Value)
			}
		}
		*s = items
	default:
		*s = StringList{}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler; single-element lists collapse
// back to a scalar.
func (s StringList) MarshalYAML() (interface{}, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// Contains reports whether the list holds name.
func (s StringList) Contains(name string) bool {
	for _, item := range s {
		if item == name {
			return true
		}
	}
	return false
}

// UnmarshalYAML decodes the document's top level: the reserved global
// entry and one stack entry per remaining key.
func (c *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rules config: expected mapping at top level, got %v", node.Kind)
	}

	c.Stacks = make(map[string]StackConfig)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Value == GlobalKey {
			if err := valueNode.Decode(&c.Global); err != nil {
				return fmt.Errorf("rules config: global entry: %w", err)
			}
			continue
		}
		var stack StackConfig
		if err := valueNode.Decode(&stack); err != nil {
			return fmt.Errorf("rules config: stack %q: %w", keyNode.Value, err)
		}
		c.Stacks[keyNode.Value] = stack
	}
	return nil
}

// MarshalYAML emits the global entry first, then stacks in sorted order
// so saved documents are stable.
func (c RuleConfig) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	appendEntry := func(key string, value interface{}) error {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return err
		}
		root.Content = append(root.Content, keyNode, valueNode)
		return nil
	}

	if err := appendEntry(GlobalKey, c.Global); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(c.Stacks))
	for name := range c.Stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := appendEntry(name, c.Stacks[name]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Stack returns the configuration for a stack name.
func (c *RuleConfig) Stack(name string) (StackConfig, bool) {
	stack, ok := c.Stacks[name]
	return stack, ok
}

// StackNames returns the configured stack names, sorted.
func (c *RuleConfig) StackNames() []string {
	names := make([]string, 0, len(c.Stacks))
	for name := range c.Stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatternFor returns the glob pattern whose mapped file list contains
// fileName, if any. The active architecture's override table is consulted
// before the stack-level table, so the more specific tier wins.
func (sc StackConfig) PatternFor(fileName, architecture string) (string, bool) {
	if architecture != "" {
		if arch, ok := sc.Architectures[architecture]; ok {
			if pattern, ok := lookupPattern(arch.PatternRules, fileName); ok {
				return pattern, true
			}
		}
	}
	return lookupPattern(sc.PatternRules, fileName)
}

func lookupPattern(table map[string]StringList, fileName string) (string, bool) {
	keys := make([]string, 0, len(table))
	for pattern := range table {
		keys = append(keys, pattern)
	}
	// Deterministic when two patterns claim the same file.
	sort.Strings(keys)
	for _, pattern := range keys {
		if table[pattern].Contains(fileName) {
			return pattern, true
		}
	}
	return "", false
}

// DefaultGlobs returns the default glob list for a tier: the
// architecture's globs when set and non-empty, otherwise the stack's.
func (sc StackConfig) DefaultGlobs(architecture string) []string {
	if architecture != "" {
		if arch, ok := sc.Architectures[architecture]; ok && len(arch.Globs) > 0 {
			return arch.Globs
		}
	}
	return sc.Globs
}
