package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// TransitionDocument is one automaton edge.
type TransitionDocument struct {
	From   string `yaml:"from" mapstructure:"from"`
	Symbol string `yaml:"symbol" mapstructure:"symbol"`
	To     string `yaml:"to" mapstructure:"to"`
}

// AutomatonDocument is the declarative form of a deterministic automaton.
type AutomatonDocument struct {
	States      []string             `yaml:"states" mapstructure:"states"`
	Alphabet    []string             `yaml:"alphabet" mapstructure:"alphabet"`
	Initial     string               `yaml:"initial" mapstructure:"initial"`
	Accepting   []string             `yaml:"accepting" mapstructure:"accepting"`
	Sink        string               `yaml:"sink,omitempty" mapstructure:"sink"`
	Transitions []TransitionDocument `yaml:"transitions" mapstructure:"transitions"`
}

// Build validates the document and returns the automaton.
func (d AutomatonDocument) Build() (*domain.Automaton, error) {
	opts := []domain.AutomatonOption{domain.WithAccepting(d.Accepting...)}
	if d.Sink != "" {
		opts = append(opts, domain.WithSink(d.Sink))
	}
	for _, t := range d.Transitions {
		opts = append(opts, domain.On(t.From, t.Symbol, t.To))
	}
	return domain.NewAutomaton(d.States, d.Alphabet, d.Initial, opts...)
}

// LabelingDocument assigns an automaton symbol to base states.
// States not listed get Default.
type LabelingDocument struct {
	Default string            `yaml:"default" mapstructure:"default"`
	Symbols map[string]string `yaml:"symbols" mapstructure:"symbols"`
}

// Func returns the labeling as a function of state labels.
// Keys are read in label text form, so "(1, 1)" and "(1,1)" are the same state.
func (d LabelingDocument) Func() func(domain.Label) string {
	table := make(map[domain.Label]string, len(d.Symbols))
	for k, sym := range d.Symbols {
		table[parseLabelText(k)] = sym
	}
	def := d.Default
	return func(l domain.Label) string {
		if sym, ok := table[l]; ok {
			return sym
		}
		return def
	}
}

// MapDocument is a tabulated state and action map between two models.
type MapDocument struct {
	States  map[string]string `yaml:"states" mapstructure:"states"`
	Actions map[string]string `yaml:"actions" mapstructure:"actions"`
}

// StateTable returns the state map keyed by parsed labels.
func (d MapDocument) StateTable() map[domain.Label]domain.Label {
	out := make(map[domain.Label]domain.Label, len(d.States))
	for k, v := range d.States {
		out[parseLabelText(k)] = parseLabelText(v)
	}
	return out
}

// DecodeAutomaton reads an AutomatonDocument from YAML or JSON.
func DecodeAutomaton(data []byte) (AutomatonDocument, error) {
	var doc AutomatonDocument
	err := decodeDocument(data, &doc)
	return doc, err
}

// DecodeLabeling reads a LabelingDocument from YAML or JSON.
func DecodeLabeling(data []byte) (LabelingDocument, error) {
	var doc LabelingDocument
	err := decodeDocument(data, &doc)
	return doc, err
}

// DecodeMap reads a MapDocument from YAML or JSON.
func DecodeMap(data []byte) (MapDocument, error) {
	var doc MapDocument
	err := decodeDocument(data, &doc)
	return doc, err
}

// decodeDocument goes through a generic map so that scalar keys and values of
// any YAML type (ints, bools) land in string fields.
func decodeDocument(data []byte, out any) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// EncodeMap writes a MapDocument as YAML; keys come out sorted.
func EncodeMap(doc MapDocument) ([]byte, error) {
	return yaml.Marshal(doc)
}
