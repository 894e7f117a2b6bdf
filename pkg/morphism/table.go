package morphism

import (
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// MapTable is an explicit state and action map. Labels missing from a table
// map to themselves.
type MapTable struct {
	States  map[domain.Label]domain.Label
	Actions map[string]string
}

// FromDocument reads a table from its declarative form.
func FromDocument(doc schema.MapDocument) MapTable {
	t := MapTable{States: doc.StateTable(), Actions: make(map[string]string, len(doc.Actions))}
	for k, v := range doc.Actions {
		t.Actions[k] = v
	}
	return t
}

// Tabulate evaluates f on every state of source and g on every action label
// of source.
func Tabulate(source *domain.Model, f domain.RelabelFunc, g ActionMap) MapTable {
	t := MapTable{
		States:  make(map[domain.Label]domain.Label, source.Len()),
		Actions: make(map[string]string),
	}
	source.Each(func(_ *domain.State, a *domain.Action) {
		t.Actions[a.Label] = g(a.Label)
	})
	for _, l := range source.Labels() {
		t.States[l] = f(l)
	}
	return t
}

// StateMap returns the state table as a function.
func (t MapTable) StateMap() domain.RelabelFunc {
	return func(l domain.Label) domain.Label {
		if to, ok := t.States[l]; ok {
			return to
		}
		return l
	}
}

// ActionMap returns the action table as a function.
func (t MapTable) ActionMap() ActionMap {
	return func(a string) string {
		if to, ok := t.Actions[a]; ok {
			return to
		}
		return a
	}
}

// Document returns the declarative form of the table.
func (t MapTable) Document() schema.MapDocument {
	doc := schema.MapDocument{
		States:  make(map[string]string, len(t.States)),
		Actions: make(map[string]string, len(t.Actions)),
	}
	for k, v := range t.States {
		doc.States[k.String()] = v.String()
	}
	for k, v := range t.Actions {
		doc.Actions[k] = v
	}
	return doc
}

// Morphism returns the morphism from source to target given by the table.
func (t MapTable) Morphism(source, target *domain.Model) Morphism {
	return New(source, target, t.StateMap(), t.ActionMap())
}
