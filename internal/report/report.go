// Package report renders already-computed evaluation results as a
// human-readable multi-line report. It performs no scoring of its own.
package report

import (
	"fmt"
	"strings"

	"passtrength/internal/policy"
	"passtrength/internal/strength"
)

// Input carries everything the report needs, precomputed by the caller.
type Input struct {
	Metrics    strength.Result
	Checks     policy.Checks
	PolicyName string
	Policy     policy.Policy
	Breached   bool
}

// Build renders the report: length, pool, entropy, rating, breach
// status, the aggregate policy verdict, and the per-requirement
// breakdown.
func Build(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Length: %d\n", in.Metrics.Length)
	fmt.Fprintf(&b, "Character pool: %d\n", in.Metrics.Pool)
	fmt.Fprintf(&b, "Entropy: %.2f bits\n", in.Metrics.Entropy)
	fmt.Fprintf(&b, "Rating: %s\n", in.Metrics.Rating)

	if in.Breached {
		b.WriteString("Breach List: (!) Found in top breaches\n")
	} else {
		b.WriteString("Breach List: Not found\n")
	}

	title := "Policy: "
	if in.PolicyName != "" {
		title = fmt.Sprintf("Policy (%s): ", in.PolicyName)
	}
	if failed := in.Checks.Failed(); len(failed) > 0 {
		fmt.Fprintf(&b, "%sFailed (%s)\n", title, strings.Join(failed, ", "))
	} else {
		fmt.Fprintf(&b, "%sPassed\n", title)
	}

	fmt.Fprintf(&b, "Requirements: %s", breakdown(in.Checks, in.Policy))
	return b.String()
}

// breakdown lists all six requirement keys with pass/fail marks; the
// min_length and entropy labels carry the numeric threshold in use.
func breakdown(checks policy.Checks, p policy.Policy) string {
	labels := map[string]string{
		"min_length": fmt.Sprintf("min_length>=%d", p.MinLength),
		"lower":      "lower",
		"upper":      "upper",
		"digit":      "digit",
		"symbol":     "symbol",
		"entropy":    fmt.Sprintf("entropy>=%d", int(p.MinEntropy)),
	}

	parts := make([]string, 0, len(policy.RequirementKeys))
	for _, key := range policy.RequirementKeys {
		mark := "✓"
		if ok, present := checks[key]; present && !ok {
			mark = "✗"
		}
		parts = append(parts, mark+" "+labels[key])
	}
	return strings.Join(parts, ", ")
}
