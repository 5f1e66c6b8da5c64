package frontmatter

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single YAML scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" || strings.TrimSpace(n.Value) == "" {
			*l = nil
			return nil
		}
		*l = StringList{n.Value}
		return nil
	case yaml.SequenceNode:
		out := make(StringList, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a string, got %s", c.Line, kindName(c.Kind))
			}
			out = append(out, c.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings, got %s", n.Line, kindName(n.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "a scalar"
	}
}

// Fields are the frontmatter keys that shape routes. Unknown keys are ignored.
type Fields struct {
	Title   string     `yaml:"title"`
	Slug    string     `yaml:"slug"`
	Date    *time.Time `yaml:"date"`
	Tags    StringList `yaml:"tags"`
	Authors StringList `yaml:"authors"`
	Author  string     `yaml:"author"`
	Draft   bool       `yaml:"draft"`
}

// AuthorIDs returns the referenced author ids, preferring the authors list.
func (f Fields) AuthorIDs() []string {
	if len(f.Authors) > 0 {
		return f.Authors
	}
	if f.Author != "" {
		return []string{f.Author}
	}
	return nil
}

// Decode parses raw frontmatter into Fields.
func Decode(frontmatter []byte) (Fields, error) {
	var f Fields
	if len(frontmatter) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(frontmatter, &f); err != nil {
		return Fields{}, err
	}
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	return f, nil
}
