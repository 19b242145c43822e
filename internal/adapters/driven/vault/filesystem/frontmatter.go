package filesystem

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// noteMeta is the parsed YAML frontmatter of a note.
type noteMeta struct {
	fields map[string]string
	tags   []string
}

// splitFrontmatter separates a note's YAML frontmatter block from its
// body. Notes without a leading "---" fence have no frontmatter. String
// and string-list values are kept; everything else is stringified.
func splitFrontmatter(content string) (noteMeta, string, error) {
	meta := noteMeta{fields: map[string]string{}}

	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return meta, content, nil
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return meta, content, nil
	}

	body := strings.TrimPrefix(parts[2], "\n")

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(parts[1]), &raw); err != nil {
		return meta, body, fmt.Errorf("frontmatter: %w", err)
	}

	for key, value := range raw {
		key = strings.ToLower(key)
		if key == "tags" {
			meta.tags = append(meta.tags, stringList(value)...)
			continue
		}
		meta.fields[key] = stringify(value)
	}
	return meta, body, nil
}

// stringList coerces a YAML value into a list of lowercased strings.
// Accepts a scalar ("tag"), a comma-separated scalar ("a, b") or a
// sequence.
func stringList(value any) []string {
	var out []string
	switch v := value.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			part = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(part, "#")))
			if part != "" {
				out = append(out, part)
			}
		}
	case []any:
		for _, item := range v {
			out = append(out, stringList(item)...)
		}
	}
	return out
}

// stringify renders a YAML scalar or list as one string.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
