/*
Package ctmdp is an algebra of finite Markov decision processes.

A model is a finite set of labeled states; each state offers labeled actions,
and each action carries a reward and a weighted measure over next states.
Models are written as YAML or JSON descriptions and combined with a small set
of operators:

  - Box and Cartesian products (package product) build grids and joint moves
    from smaller models, with n-ary folds that flatten tuple labels.
  - The twisted product (package twisted) synchronizes a model with a
    deterministic automaton and keeps only the reachable pairs.
  - Bisimulation (package bisim) refines the coarsest stable partition and
    builds the quotient model.
  - Morphisms (package morphism) check that a state and action map preserves
    rewards and transition measures, score approximate maps under a metric and
    search random maps for the best fit.

# Description format

	name: path3
	goals: [2]
	states:
	  0: {next: 1}
	  1: {prev: 0, next: 2}
	  2: {prev: 1, stay: [{2: 1}, -1]}

An entry is either a target label, a weight map, or a pair of a weight map and
a reward. Tuple labels are written "(0, 1)".

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/ctmdp"
		"github.com/aretw0/ctmdp/pkg/bisim"
		"github.com/aretw0/ctmdp/pkg/product"
	)

	func main() {
		m, _, err := ctmdp.LoadModel("path3.yaml")
		if err != nil {
			log.Fatal(err)
		}

		grid := product.Box(m, m)
		q, err := bisim.BuildQuotient(grid)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(grid.Len(), "states,", q.Model.Len(), "blocks")
	}

The ctmdp command (cmd/ctmdp) exposes the same operators on the command line
and over HTTP.
*/
package ctmdp
