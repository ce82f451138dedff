package policy

import (
	"passtrength/internal/strength"
)

// RequirementKeys lists the six check keys in report order.
var RequirementKeys = []string{"min_length", "lower", "upper", "digit", "symbol", "entropy"}

// Checks is the per-requirement pass/fail breakdown for one
// (password, policy) pair. It always holds exactly the six
// RequirementKeys.
type Checks map[string]bool

// Evaluate checks a password and its precomputed strength metrics
// against a policy. Requirements with a zero or false threshold are
// vacuously satisfied, so the zero Policy passes everything.
func Evaluate(password string, ent strength.Result, p Policy) Checks {
	return Checks{
		"min_length": ent.Length >= p.MinLength,
		"lower":      !p.RequireLower || strength.HasLower(password),
		"upper":      !p.RequireUpper || strength.HasUpper(password),
		"digit":      !p.RequireDigits || strength.HasDigit(password),
		"symbol":     !p.RequireSymbols || strength.HasSymbol(password),
		"entropy":    p.MinEntropy == 0 || ent.Entropy >= p.MinEntropy,
	}
}

// Passed reports whether every requirement is satisfied.
func (c Checks) Passed() bool {
	for _, ok := range c {
		if !ok {
			return false
		}
	}
	return true
}

// Failed returns the unsatisfied requirement keys in report order.
func (c Checks) Failed() []string {
	var failed []string
	for _, key := range RequirementKeys {
		if ok, present := c[key]; present && !ok {
			failed = append(failed, key)
		}
	}
	return failed
}
