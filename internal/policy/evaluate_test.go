package policy

import (
	"testing"

	"passtrength/internal/strength"
)

func checkAll(t *testing.T, c Checks, want map[string]bool) {
	t.Helper()
	if len(c) != len(RequirementKeys) {
		t.Errorf("Checks should have exactly %d keys, has %d", len(RequirementKeys), len(c))
	}
	for key, v := range want {
		if c[key] != v {
			t.Errorf("check %q: %v, want: %v", key, c[key], v)
		}
	}
}

func TestEvaluateZeroPolicyIsVacuous(t *testing.T) {
	for _, password := range []string{"", "a", "Tr0ub4dor&3"} {
		c := Evaluate(password, strength.Estimate(password), Policy{})
		if !c.Passed() {
			t.Errorf("zero policy must pass for %q, failed: %v", password, c.Failed())
		}
	}
}

func TestEvaluateMinLength(t *testing.T) {
	password := "abc123"
	ent := strength.Estimate(password)
	c := Evaluate(password, ent, Policy{MinLength: 8})

	checkAll(t, c, map[string]bool{
		"min_length": false,
		"lower":      true,
		"upper":      true,
		"digit":      true,
		"symbol":     true,
		"entropy":    true,
	})
	if got := c.Failed(); len(got) != 1 || got[0] != "min_length" {
		t.Errorf("Failed: %v, want [min_length]", got)
	}
}

func TestEvaluateCharacterClasses(t *testing.T) {
	password := "abc123"
	ent := strength.Estimate(password)
	p := Policy{
		MinLength:      8,
		RequireLower:   true,
		RequireUpper:   true,
		RequireDigits:  true,
		RequireSymbols: true,
	}

	c := Evaluate(password, ent, p)
	checkAll(t, c, map[string]bool{
		"min_length": false,
		"lower":      true,
		"upper":      false,
		"digit":      true,
		"symbol":     false,
		"entropy":    true,
	})
}

func TestEvaluateEntropyThreshold(t *testing.T) {
	password := "abc123"
	ent := strength.Estimate(password)

	c := Evaluate(password, ent, Policy{MinEntropy: 100})
	if c["entropy"] {
		t.Error("entropy check should fail below the threshold")
	}

	c = Evaluate(password, ent, Policy{MinEntropy: ent.Entropy})
	if !c["entropy"] {
		t.Error("entropy check should pass at the exact threshold")
	}
}

func TestEvaluateFallbackScenario(t *testing.T) {
	password := "Tr0ub4dor&3"
	c := Evaluate(password, strength.Estimate(password), Policy{MinLength: 6, Desc: "Simple: 6+"})
	if !c.Passed() {
		t.Errorf("fallback policy should pass, failed: %v", c.Failed())
	}
}

func TestFailedKeepsReportOrder(t *testing.T) {
	p := Policy{MinLength: 100, RequireUpper: true, RequireSymbols: true, MinEntropy: 1000}
	password := "abc"
	c := Evaluate(password, strength.Estimate(password), p)

	want := []string{"min_length", "upper", "symbol", "entropy"}
	got := c.Failed()
	if len(got) != len(want) {
		t.Fatalf("Failed: %v, want: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Failed[%d]: %q, want: %q", i, got[i], want[i])
		}
	}
}
