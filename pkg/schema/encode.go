package schema

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Encode writes a description in the same YAML layout Decode reads.
func Encode(desc Description) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if desc.Name != "" {
		doc.Content = append(doc.Content, scalar("name"), scalar(desc.Name))
	}
	if len(desc.Goals) > 0 {
		goals := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, g := range desc.Goals {
			goals.Content = append(goals.Content, scalar(g.String()))
		}
		doc.Content = append(doc.Content, scalar("goals"), goals)
	}

	states := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range desc.States {
		actions := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		for _, a := range s.Actions {
			value, err := entryNode(a.Entry)
			if err != nil {
				return nil, fmt.Errorf("state %s action %s: %w", s.Label, a.Label, err)
			}
			actions.Content = append(actions.Content, scalar(a.Label), value)
		}
		states.Content = append(states.Content, scalar(s.Label.String()), actions)
	}
	doc.Content = append(doc.Content, scalar("states"), states)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entryNode(e Entry) (*yaml.Node, error) {
	switch v := e.(type) {
	case DeterministicTarget:
		return scalar(v.Target.String()), nil
	case Distribution:
		return measureNode(v.Measure), nil
	case DistributionWithReward:
		return &yaml.Node{
			Kind:    yaml.SequenceNode,
			Style:   yaml.FlowStyle,
			Content: []*yaml.Node{measureNode(v.Measure), number(v.Reward)},
		}, nil
	}
	return nil, fmt.Errorf("unsupported entry %T", e)
}

func measureNode(m domain.Measure) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	for _, l := range m.Labels() {
		node.Content = append(node.Content, scalar(l.String()), number(m[l]))
	}
	return node
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func number(f float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f, 'g', -1, 64)}
}
