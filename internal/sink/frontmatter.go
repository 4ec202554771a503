package sink

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// frontmatter is a YAML mapping written with sorted keys so notes are
// deterministic. The "tags" key is always written in flow style.
type frontmatter map[string]any

func (f frontmatter) MarshalYAML() (any, error) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(f[key]); err != nil {
			return nil, err
		}
		if key == "tags" {
			valueNode.Style = yaml.FlowStyle
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, valueNode)
	}
	return node, nil
}

// buildNote renders frontmatter and body into a markdown document.
func buildNote(fm frontmatter, body string) ([]byte, error) {
	var buf bytes.Buffer
	if len(fm) > 0 {
		out, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(out)
		buf.WriteString("---\n\n")
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}
