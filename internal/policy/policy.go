// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package policy loads named password compliance policies from a loosely
// typed JSON document and evaluates passwords against them.
package policy

import (
	"fmt"
	"strings"
)

// Policy is one named set of minimum password requirements. The zero
// Policy has no requirements: every check against it passes.
type Policy struct {
	MinLength      int
	RequireLower   bool
	RequireUpper   bool
	RequireDigits  bool
	RequireSymbols bool
	MinEntropy     float64
	Desc           string
}

// Catalog is the validated, immutable set of policies plus the current
// selection. A catalog always holds at least one policy: when the source
// yields none, the fallback "Simple" policy is installed.
type Catalog struct {
	policies map[string]Policy
	names    []string
	current  string
	warning  string
}

// FallbackName is the name of the synthetic policy installed when the
// source document yields no valid policies.
const FallbackName = "Simple"

func fallbackPolicy() Policy {
	return Policy{MinLength: 6, Desc: "Simple: 6+"}
}

// Names returns the policy names in source order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of policies in the catalog.
func (c *Catalog) Len() int {
	return len(c.policies)
}

// Get looks up a policy by name.
func (c *Catalog) Get(name string) (Policy, bool) {
	p, ok := c.policies[name]
	return p, ok
}

// Current returns the name and value of the selected policy.
func (c *Catalog) Current() (string, Policy) {
	return c.current, c.policies[c.current]
}

// Select switches the current policy. Unknown names are ignored and the
// previous selection is kept.
func (c *Catalog) Select(name string) {
	if _, ok := c.policies[name]; ok {
		c.current = name
	}
}

// Warning returns the load diagnostic, or "" if the load was clean. At
// most one diagnostic is recorded per load; the first one wins.
func (c *Catalog) Warning() string {
	return c.warning
}

// Describe renders a human-readable summary of a policy: its name,
// description, and the list of active requirements.
func Describe(name string, p Policy, ok bool) string {
	if !ok {
		return "No policy selected."
	}

	reqs := []string{fmt.Sprintf("min_length>=%d", p.MinLength)}
	for _, req := range []struct {
		on    bool
		label string
	}{
		{p.RequireLower, "lower"},
		{p.RequireUpper, "upper"},
		{p.RequireDigits, "digit"},
		{p.RequireSymbols, "symbol"},
	} {
		if req.on {
			reqs = append(reqs, req.label)
		}
	}
	if p.MinEntropy != 0 {
		reqs = append(reqs, fmt.Sprintf("min_entropy>=%d", int(p.MinEntropy)))
	}

	lead := name
	if desc := strings.TrimSpace(p.Desc); desc != "" {
		lead = name + ": " + desc
	}
	return lead + "\n" + strings.Join(reqs, ", ")
}
