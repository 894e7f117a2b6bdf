package product

import (
	"fmt"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Binary is a two-operand product operator.
type Binary func(left, right *domain.Model) (*domain.Model, error)

// Step combines operand i (left) with the accumulated product of operands
// i+1 .. n-1 (right). On the first step right is operand n-1 itself.
type Step func(i int, left, right *domain.Model) (*domain.Model, error)

// Fold right-folds step over models.
//
// The accumulator starts as the last operand. Each step combines the next
// operand to the left with it; from the second step on, the resulting labels
// (x, (y, ..., z)) are flattened to (x, y, ..., z). Operand labels that are
// themselves tuples are kept as single components. A single operand is
// returned unchanged.
func Fold(step Step, models ...*domain.Model) (*domain.Model, error) {
	n := len(models)
	switch n {
	case 0:
		return nil, domain.ErrNoOperands
	case 1:
		return models[0], nil
	}

	acc := models[n-1]
	for i := n - 2; i >= 0; i-- {
		next, err := step(i, models[i], acc)
		if err != nil {
			return nil, fmt.Errorf("fold step %d: %w", i, err)
		}
		if i < n-2 {
			next.RelabelAllStates(domain.FlattenLast)
		}
		acc = next
	}
	return acc, nil
}

// Lift generalizes a binary operator to n operands with Fold.
func Lift(op Binary, models ...*domain.Model) (*domain.Model, error) {
	return Fold(func(_ int, left, right *domain.Model) (*domain.Model, error) {
		return op(left, right)
	}, models...)
}

// BoxN is the n-ary box product. Actions of operand i (0-based) are
// suffixed "M<i+1>"; suffix options are overridden.
func BoxN(models []*domain.Model, opts ...Option) (*domain.Model, error) {
	n := len(models)
	return Fold(func(i int, left, right *domain.Model) (*domain.Model, error) {
		rightSuffix := ""
		if i == n-2 {
			rightSuffix = operandName(i + 1)
		}
		stepOpts := append(append([]Option(nil), opts...), WithSuffixes(operandName(i), rightSuffix))
		return Box(left, right, stepOpts...), nil
	}, models...)
}

// CartesianN is the n-ary Cartesian product. Action labels join all operand
// actions with the separator, in operand order.
func CartesianN(models []*domain.Model, opts ...Option) (*domain.Model, error) {
	return Lift(func(left, right *domain.Model) (*domain.Model, error) {
		return Cartesian(left, right, opts...), nil
	}, models...)
}

func operandName(i int) string {
	return fmt.Sprintf("M%d", i+1)
}
