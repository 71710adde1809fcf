package goldmark

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdrender/pkg/meta"
)

// ErrFrontMatter is returned for front matter that is not a YAML mapping.
var ErrFrontMatter = errors.New("front matter is not a mapping")

// runSeparator joins list values so meta.Runs can split them again.
const runSeparator = "  "

// SplitFrontMatter separates a leading YAML block delimited by "---"
// lines (the closing line may also be "...") from the Markdown body.
// It reports false, returning content unchanged, when there is no such
// block or the block does not parse.
func SplitFrontMatter(content []byte) ([]meta.Entry, []byte, bool) {
	var bodyStart, offset int
	for line := range bytes.Lines(content) {
		fence := string(bytes.TrimRight(line, " \t\r\n"))
		if offset == 0 {
			if fence != "---" {
				return nil, content, false
			}
			bodyStart = len(line)
		} else if fence == "---" || fence == "..." {
			entries, err := ParseFrontMatter(content[bodyStart:offset])
			if err != nil {
				return nil, content, false
			}
			return entries, content[offset+len(line):], true
		}
		offset += len(line)
	}
	return nil, content, false
}

// ParseFrontMatter decodes a YAML mapping into entries in document
// order. Keys are normalized; sequences are joined into runs; nested
// mappings become "key: value" runs.
func ParseFrontMatter(src []byte) ([]meta.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrFrontMatter
	}

	var entries []meta.Entry
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := meta.NormalizeKey(root.Content[i].Value)
		if key == "" {
			continue
		}
		entries = append(entries, meta.Entry{Key: key, Value: yamlValue(root.Content[i+1])})
	}
	return entries, nil
}

func yamlValue(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.AliasNode:
		if node.Alias != nil {
			return yamlValue(node.Alias)
		}
		return ""
	case yaml.SequenceNode:
		runs := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			runs = append(runs, yamlValue(item))
		}
		return strings.Join(runs, runSeparator)
	case yaml.MappingNode:
		runs := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			runs = append(runs, node.Content[i].Value+": "+yamlValue(node.Content[i+1]))
		}
		return strings.Join(runs, runSeparator)
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return yamlValue(node.Content[0])
		}
		return ""
	default:
		return ""
	}
}
