package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/dsl"
)

func TestValidateModel(t *testing.T) {
	// Scenario A: a path is fully reachable and its only dead end is the goal.
	if err := ValidateModel(dsl.Path(4), domain.Int(0)); err != nil {
		t.Errorf("Scenario A (Valid) failed: %v", err)
	}

	// Scenario B: an island and a dead end.
	b := dsl.New("broken")
	b.State(domain.Atom("start")).Go("go", domain.Atom("stuck"))
	b.State(domain.Atom("stuck"))
	b.State(domain.Atom("island")).Go("loop", domain.Atom("island"))
	m, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	err = ValidateModel(m, domain.Atom("start"))
	if err == nil {
		t.Fatal("Scenario B (Broken) should have failed, but got nil")
	}
	if !strings.Contains(err.Error(), "found 2 errors") {
		t.Errorf("Expected 2 errors, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Unreachable state: 'island'") {
		t.Errorf("Expected unreachable island, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Non-goal state without actions: 'stuck'") {
		t.Errorf("Expected deadlock at stuck, got: %v", err)
	}

	// Scenario C: unknown start.
	if err := ValidateModel(m, domain.Atom("ghost")); err == nil {
		t.Error("Scenario C (Unknown start) should have failed")
	}
}

func TestCheck_ZeroWeightDoesNotReach(t *testing.T) {
	b := dsl.New("zero")
	b.State(domain.Int(0)).Dist("a", domain.Measure{domain.Int(0): 1, domain.Int(1): 0})
	b.State(domain.Int(1)).Go("a", domain.Int(1))
	m := b.MustBuild()

	report, err := Check(m, domain.Int(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Unreachable) != 1 || report.Unreachable[0] != domain.Int(1) {
		t.Errorf("Unreachable = %v, want [1]", report.Unreachable)
	}
	if report.OK() {
		t.Error("report should not be OK")
	}
}
