// Package frontmatter implements the metadata block prefixed to rule
// documents: a three-dash delimited sequence of key/value lines where a
// value is a string, a boolean, or a string array. The codec is
// line-oriented with a fixed grammar; malformed lines are skipped, never
// errored, and Extract(Serialize(fm, body)) round-trips for every
// representable value.
package frontmatter

import (
	"strings"
)

// Delimiter separates the frontmatter block from the body.
const Delimiter = "---"

// ValueKind discriminates the three value types the grammar admits.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindList
)

// Value is a tagged union of the representable frontmatter value types.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	List []string
}

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// List constructs an array value.
func List(items ...string) Value { return Value{Kind: KindList, List: items} }

// Equal reports whether two values are identical in kind and content.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == other.Bool
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}
		return true
	default:
		return v.Str == other.Str
	}
}

// FrontMatter is an ordered mapping from keys to values. Key order is
// preserved across extract/serialize so generated documents are stable.
type FrontMatter struct {
	keys   []string
	values map[string]Value
}

// New creates an empty frontmatter mapping.
func New() *FrontMatter {
	return &FrontMatter{values: make(map[string]Value)}
}

// Set stores a value, appending the key if it was not present.
func (fm *FrontMatter) Set(key string, value Value) {
	if _, exists := fm.values[key]; !exists {
		fm.keys = append(fm.keys, key)
	}
	fm.values[key] = value
}

// SetString stores a string value.
func (fm *FrontMatter) SetString(key, value string) { fm.Set(key, String(value)) }

// SetBool stores a boolean value.
func (fm *FrontMatter) SetBool(key string, value bool) { fm.Set(key, Bool(value)) }

// SetList stores an array value.
func (fm *FrontMatter) SetList(key string, items ...string) { fm.Set(key, List(items...)) }

// Get returns the value for key.
func (fm *FrontMatter) Get(key string) (Value, bool) {
	v, ok := fm.values[key]
	return v, ok
}

// GetString returns the string value for key, or "" when absent or not a
// string.
func (fm *FrontMatter) GetString(key string) string {
	if v, ok := fm.values[key]; ok && v.Kind == KindString {
		return v.Str
	}
	return ""
}

// GetBool returns the boolean value for key, or false when absent or not
// a boolean.
func (fm *FrontMatter) GetBool(key string) bool {
	if v, ok := fm.values[key]; ok && v.Kind == KindBool {
		return v.Bool
	}
	return false
}

// Has reports whether key is present.
func (fm *FrontMatter) Has(key string) bool {
	_, ok := fm.values[key]
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (fm *FrontMatter) Delete(key string) {
	if _, ok := fm.values[key]; !ok {
		return
	}
	delete(fm.values, key)
	for i, k := range fm.keys {
		if k == key {
			fm.keys = append(fm.keys[:i], fm.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (fm *FrontMatter) Keys() []string {
	result := make([]string, len(fm.keys))
	copy(result, fm.keys)
	return result
}

// Len returns the number of entries.
func (fm *FrontMatter) Len() int { return len(fm.keys) }

// Merge overwrites fm's entries with other's. Keys new to fm keep other's
// relative order after fm's existing keys.
func (fm *FrontMatter) Merge(other *FrontMatter) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		fm.Set(key, other.values[key])
	}
}

// Clone returns a deep copy.
func (fm *FrontMatter) Clone() *FrontMatter {
	clone := New()
	for _, key := range fm.keys {
		v := fm.values[key]
		if v.Kind == KindList {
			items := make([]string, len(v.List))
			copy(items, v.List)
			v.List = items
		}
		clone.Set(key, v)
	}
	return clone
}

// Equal reports whether two mappings hold the same keys, in the same
// order, with equal values.
func (fm *FrontMatter) Equal(other *FrontMatter) bool {
	if fm.Len() != other.Len() {
		return false
	}
	for i, key := range fm.keys {
		if other.keys[i] != key {
			return false
		}
		if !fm.values[key].Equal(other.values[key]) {
			return false
		}
	}
	return true
}

// Extract splits text into its frontmatter block and body. Text that does
// not begin with the delimiter is returned unchanged with an empty
// mapping. The block runs to the second delimiter occurrence; both block
// and body are trimmed.
func Extract(text string) (*FrontMatter, string) {
	fm := New()
	if !strings.HasPrefix(text, Delimiter) {
		return fm, text
	}

	rest := text[len(Delimiter):]
	end := strings.Index(rest, Delimiter)
	if end < 0 {
		return fm, text
	}

	block := strings.TrimSpace(rest[:end])
	body := strings.TrimSpace(rest[end+len(Delimiter):])

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			// No colon, not a key/value line. Skipped by design.
			continue
		}
		key := strings.TrimSpace(line[:idx])
		raw := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		fm.Set(key, parseValue(raw))
	}

	return fm, body
}

// parseValue applies the value grammar in order: array, boolean, quoted
// string, raw string.
func parseValue(raw string) Value {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return List(parseList(raw[1 : len(raw)-1])...)
	}
	if raw == "true" {
		return Bool(true)
	}
	if raw == "false" {
		return Bool(false)
	}
	return String(unquote(raw))
}

// parseList splits a comma-separated array interior, trimming whitespace
// and quotes off each element. An empty interior is the empty array.
func parseList(inner string) []string {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, unquote(strings.TrimSpace(part)))
	}
	return items
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Serialize renders the frontmatter block followed by a blank line and
// the body. Arrays render as [ 'a', 'b' ], booleans bare, and strings are
// quoted only when they contain structural characters.
func Serialize(fm *FrontMatter, body string) string {
	var sb strings.Builder
	sb.WriteString(Delimiter)
	sb.WriteByte('\n')
	for _, key := range fm.keys {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(renderValue(fm.values[key]))
		sb.WriteByte('\n')
	}
	sb.WriteString(Delimiter)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	return sb.String()
}

func renderValue(v Value) string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindList:
		if len(v.List) == 0 {
			return "[]"
		}
		quoted := make([]string, len(v.List))
		for i, item := range v.List {
			quoted[i] = "'" + item + "'"
		}
		return "[ " + strings.Join(quoted, ", ") + " ]"
	default:
		return renderString(v.Str)
	}
}

// renderString quotes strings that would otherwise parse back as a
// different value kind or lose content: booleans, bracketed text,
// embedded colons or comment markers, surrounding whitespace, or quote
// characters at the edges.
func renderString(s string) string {
	if needsQuoting(s) {
		if !strings.Contains(s, "'") {
			return "'" + s + "'"
		}
		return `"` + s + `"`
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return true
	}
	if strings.ContainsAny(s, ":#[]'\"") {
		return true
	}
	return strings.TrimSpace(s) != s
}
