/*
Package dsl provides a fluent Go builder for model descriptions, and the
standard chain constructors.

It is the programmatic counterpart of the YAML form read by package schema:
the builder assembles a schema.Description and Build runs the same eager
validation.

Example usage:

	b := dsl.New("corridor")

	b.State(domain.Int(0)).Go("next", domain.Int(1))
	b.State(domain.Int(1)).
		Go("prev", domain.Int(0)).
		Dist("next", domain.Measure{domain.Int(2): 0.9, domain.Int(1): 0.1}).
		Reward("next", -1)
	b.State(domain.Int(2))
	b.Goal(domain.Int(2))

	model, err := b.Build()

Path and Cycle return the chains used throughout the tests and the CLI
examples.
*/
package dsl
