// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package breach holds a read-only set of known-compromised passwords
// for case-insensitive membership checks. Every load path degrades to
// an empty set on failure; a breach index never propagates an error.
package breach

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"strings"
)

//go:embed data/breach_top_250.json
var defaultList []byte

// Index is an immutable, lowercased breach password set.
type Index struct {
	set map[string]struct{}
}

// Default loads the embedded top-250 breach list.
func Default() *Index {
	return Load(defaultList)
}

// Load parses a JSON array of passwords, lowercasing every entry.
// Malformed or wrong-shaped input yields an empty index, silently.
func Load(raw []byte) *Index {
	idx := &Index{set: map[string]struct{}{}}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return idx
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			// Non-string entries keep their JSON text, so a bare 123456
			// still matches the password "123456".
			s = string(bytes.TrimSpace(item))
		}
		idx.set[strings.ToLower(s)] = struct{}{}
	}
	return idx
}

// LoadFile reads a breach list file. A missing or unreadable file yields
// an empty index.
func LoadFile(path string) *Index {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Index{set: map[string]struct{}{}}
	}
	return Load(raw)
}

// Contains reports whether the password appears in the breach list,
// ignoring case. The empty password is never a hit.
func (i *Index) Contains(password string) bool {
	if password == "" || i == nil {
		return false
	}
	_, ok := i.set[strings.ToLower(password)]
	return ok
}

// Len returns the number of entries in the index.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.set)
}
