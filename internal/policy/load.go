// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Load validates a policy frameworks document of the shape
//
//	{"frameworks": {name: {min_length, min_entropy, require_*, desc}}, "default": name}
//
// Entries that fail validation are dropped silently; only the aggregate
// "nothing survived" case surfaces a diagnostic. Load never fails: a
// document that cannot be parsed degrades to the fallback catalog with
// a diagnostic attached.
func Load(raw []byte) *Catalog {
	top, diag := parseTop(raw, "policy document")
	return build(top, diag)
}

// LoadFile reads and validates a policy frameworks file. A missing or
// unreadable file degrades exactly like an unparseable document.
func LoadFile(path string) *Catalog {
	raw, err := os.ReadFile(path)
	if err != nil {
		return build(nil, fmt.Sprintf("Failed to read %s: %v", path, err))
	}
	top, diag := parseTop(raw, path)
	return build(top, diag)
}

// parseTop returns the top-level object of the document. Valid JSON that
// is not an object is treated as an empty document without a diagnostic;
// invalid JSON records one.
func parseTop(raw []byte, source string) (map[string]json.RawMessage, string) {
	if !json.Valid(raw) {
		return nil, fmt.Sprintf("Failed to read %s: invalid JSON", source)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, ""
	}
	return top, ""
}

func build(top map[string]json.RawMessage, diag string) *Catalog {
	c := &Catalog{policies: map[string]Policy{}}

	entries, _ := objectEntries(top["frameworks"])
	for _, e := range entries {
		p, ok := parsePolicy(e.value)
		if !ok {
			continue
		}
		// Python dict semantics for duplicate keys: the last value wins,
		// the first position wins.
		if _, seen := c.policies[e.name]; !seen {
			c.names = append(c.names, e.name)
		}
		c.policies[e.name] = p
	}

	if len(c.policies) == 0 {
		c.policies[FallbackName] = fallbackPolicy()
		c.names = []string{FallbackName}
		if diag == "" {
			diag = "No valid policies found; using fallback."
		}
	}
	c.warning = diag

	var def string
	if raw, ok := top["default"]; ok {
		_ = json.Unmarshal(raw, &def)
	}
	if _, ok := c.policies[def]; ok {
		c.current = def
	} else {
		c.current = c.names[0]
	}

	return c
}

type rawEntry struct {
	name  string
	value json.RawMessage
}

// objectEntries decodes a JSON object into its entries in source order.
// Catalog iteration order is observable (it drives the default-policy
// fallback), so a plain map decode is not enough.
func objectEntries(raw json.RawMessage) ([]rawEntry, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var value json.RawMessage
		if err = dec.Decode(&value); err != nil {
			return nil, false
		}
		entries = append(entries, rawEntry{name: key, value: value})
	}
	return entries, true
}

// parsePolicy validates one candidate framework entry. A policy either
// validates in full or is rejected; there is no partial acceptance.
func parsePolicy(raw json.RawMessage) (Policy, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Policy{}, false
	}

	var p Policy

	minLength, ok := intField(fields, "min_length")
	if !ok || minLength < 0 {
		return Policy{}, false
	}
	p.MinLength = minLength

	minEntropy, ok := numberField(fields, "min_entropy")
	if !ok || minEntropy < 0 {
		return Policy{}, false
	}
	p.MinEntropy = minEntropy

	for _, req := range []struct {
		key string
		dst *bool
	}{
		{"require_lower", &p.RequireLower},
		{"require_upper", &p.RequireUpper},
		{"require_digits", &p.RequireDigits},
		{"require_symbols", &p.RequireSymbols},
	} {
		v, ok := boolField(fields, req.key)
		if !ok {
			return Policy{}, false
		}
		*req.dst = v
	}

	p.Desc = stringField(fields, "desc")
	return p, true
}

// intField accepts only integer JSON numbers: 8 validates, 8.0 does not.
// A missing field defaults to zero.
func intField(fields map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, true
	}
	n, ok := decodeNumber(raw)
	if !ok || strings.ContainsAny(n.String(), ".eE") {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func numberField(fields map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, true
	}
	n, ok := decodeNumber(raw)
	if !ok {
		return 0, false
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}

func decodeNumber(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

// boolField returns false for a missing field and rejects the entry when
// the field is present with any non-boolean type.
func boolField(fields map[string]json.RawMessage, key string) (bool, bool) {
	raw, ok := fields[key]
	if !ok {
		return false, true
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// stringField coerces any JSON value to a string; non-string values keep
// their compact JSON text.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return buf.String()
}
