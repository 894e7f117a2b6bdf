package schema

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// rewardEntry is the long form of a DistributionWithReward entry.
type rewardEntry struct {
	Measure map[string]float64 `mapstructure:"measure"`
	Reward  float64            `mapstructure:"reward"`
}

// Decode reads a YAML (or JSON) description. State and action order follows
// the document.
func Decode(data []byte) (Description, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Description{}, fmt.Errorf("failed to parse description: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return Description{}, fmt.Errorf("failed to parse description: empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return Description{}, nodeError(doc, "description must be a mapping")
	}

	var desc Description
	var states *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "name":
			desc.Name = value.Value
		case "goals":
			if value.Kind != yaml.SequenceNode {
				return Description{}, nodeError(value, "goals must be a list")
			}
			for _, g := range value.Content {
				label, err := labelFromNode(g)
				if err != nil {
					return Description{}, err
				}
				desc.Goals = append(desc.Goals, label)
			}
		case "states":
			states = value
		default:
			return Description{}, nodeError(key, fmt.Sprintf("unknown key %q", key.Value))
		}
	}
	if states == nil {
		return Description{}, fmt.Errorf("failed to parse description: missing states")
	}
	if states.Kind != yaml.MappingNode {
		return Description{}, nodeError(states, "states must be a mapping")
	}

	for i := 0; i+1 < len(states.Content); i += 2 {
		label, err := labelFromNode(states.Content[i])
		if err != nil {
			return Description{}, err
		}
		sd, err := decodeState(label, states.Content[i+1])
		if err != nil {
			return Description{}, err
		}
		desc.States = append(desc.States, sd)
	}
	return desc, nil
}

// Load decodes and builds in one step.
func Load(data []byte) (*domain.Model, Description, error) {
	desc, err := Decode(data)
	if err != nil {
		return nil, Description{}, err
	}
	m, err := Build(desc)
	if err != nil {
		return nil, desc, err
	}
	return m, desc, nil
}

func decodeState(label domain.Label, node *yaml.Node) (StateDescription, error) {
	sd := StateDescription{Label: label}
	// A state with no actions may be written as `s: {}` or `s:`.
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return sd, nil
	}
	if node.Kind != yaml.MappingNode {
		return sd, nodeError(node, fmt.Sprintf("state %s: actions must be a mapping", label))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		action := node.Content[i].Value
		entry, err := decodeEntry(node.Content[i+1])
		if err != nil {
			return sd, fmt.Errorf("state %s action %s: %w", label, action, err)
		}
		sd.Actions = append(sd.Actions, ActionDescription{Label: action, Entry: entry})
	}
	return sd, nil
}

func decodeEntry(node *yaml.Node) (Entry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		target, err := labelFromNode(node)
		if err != nil {
			return nil, err
		}
		return DeterministicTarget{Target: target}, nil

	case yaml.MappingNode:
		if isRewardEntry(node) {
			return decodeRewardEntry(node)
		}
		measure, err := measureFromNode(node)
		if err != nil {
			return nil, err
		}
		return Distribution{Measure: measure}, nil

	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return nil, nodeError(node, "expected [distribution, reward]")
		}
		measure, err := measureFromNode(node.Content[0])
		if err != nil {
			return nil, err
		}
		var reward float64
		if err := node.Content[1].Decode(&reward); err != nil {
			return nil, nodeError(node.Content[1], "reward must be a number")
		}
		return DistributionWithReward{Measure: measure, Reward: reward}, nil
	}
	return nil, nodeError(node, "unsupported entry")
}

func decodeRewardEntry(node *yaml.Node) (Entry, error) {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, nodeError(node, err.Error())
	}
	var re rewardEntry
	cfg := &mapstructure.DecoderConfig{
		Result:           &re,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, nodeError(node, err.Error())
	}
	measure := make(domain.Measure, len(re.Measure))
	for k, w := range re.Measure {
		measure[parseLabelText(k)] += w
	}
	return DistributionWithReward{Measure: measure, Reward: re.Reward}, nil
}

func measureFromNode(node *yaml.Node) (domain.Measure, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, "distribution must be a mapping")
	}
	measure := make(domain.Measure, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		target, err := labelFromNode(node.Content[i])
		if err != nil {
			return nil, err
		}
		var w float64
		if err := node.Content[i+1].Decode(&w); err != nil {
			return nil, nodeError(node.Content[i+1], "weight must be a number")
		}
		measure[target] += w
	}
	return measure, nil
}

// labelFromNode reads a label from a scalar (text form) or a sequence (tuple).
func labelFromNode(node *yaml.Node) (domain.Label, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return parseLabelText(node.Value), nil
	case yaml.SequenceNode:
		parts := make([]domain.Label, 0, len(node.Content))
		for _, c := range node.Content {
			p, err := labelFromNode(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		return domain.Tuple(parts...), nil
	}
	return "", nodeError(node, "label must be a scalar or a list")
}

// parseLabelText accepts the canonical text form and falls back to a plain atom.
func parseLabelText(s string) domain.Label {
	if l, err := domain.ParseLabel(s); err == nil {
		return l
	}
	return domain.Atom(strings.TrimSpace(s))
}

// isRewardEntry reports whether a mapping is the {measure, reward} form: only
// those keys, and a measure that is itself a mapping. Distribution weights are
// scalars, so a state labeled "measure" never matches.
func isRewardEntry(node *yaml.Node) bool {
	found := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "measure":
			if value.Kind != yaml.MappingNode {
				return false
			}
			found = true
		case "reward":
		default:
			return false
		}
	}
	return found
}

func nodeError(node *yaml.Node, reason string) error {
	return fmt.Errorf("line %d: %s", node.Line, reason)
}
