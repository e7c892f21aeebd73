// Package frontmatter splits a Markdown document into its YAML front matter
// block and body, and decodes the post metadata it carries.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opens a front matter
// block that is never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter: opening --- found but closing delimiter is missing")

// Meta is the post metadata recognized in front matter.
type Meta struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Date     string `yaml:"date"`
	Summary  string `yaml:"summary"`
	Tags     Tags   `yaml:"tags"`
	Language string `yaml:"language"`
}

// Tags accepts either a YAML sequence or a single comma separated string.
type Tags []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var out []string
		for _, part := range strings.Split(n.Value, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		*t = out
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := n.Decode(&raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, s := range raw {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("frontmatter: tags must be a list or a comma separated string (line %d)", n.Line)
	}
}

// Split separates `---` delimited front matter from the body. When the
// document does not start with a delimiter, had is false and body is the
// whole input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		// A closing delimiter at end of file has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closing):], true, nil
}

// Parse splits content and decodes its front matter into Meta.
func Parse(content []byte) (Meta, []byte, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Meta{}, nil, err
	}
	var meta Meta
	if len(bytes.TrimSpace(fm)) > 0 {
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return Meta{}, nil, fmt.Errorf("frontmatter: %w", err)
		}
	}
	return meta, body, nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
