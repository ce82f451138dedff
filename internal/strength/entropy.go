// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package strength estimates password strength with a pool-based entropy
// model: the character pool is the sum of the alphabet sizes of every
// character class present in the password, and entropy is
// length * log2(pool).
package strength

import (
	"math"
	"strings"
	"unicode"
)

// Punctuation is the stock symbol alphabet used for both pool sizing and
// the symbol character class.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Alphabet sizes contributed per class present in the password. The
// non-ASCII bonus is a flat allowance regardless of how many distinct
// non-ASCII runes appear; it is intentionally crude and must stay that
// way for result compatibility with existing deployments.
const (
	poolLower    = 26
	poolUpper    = 26
	poolDigit    = 10
	poolSymbol   = len(Punctuation)
	poolSpace    = 6 // space, \t, \n, \r, \v, \f
	poolNonASCII = 100
)

// Rating thresholds, in bits. Not configurable.
const (
	weakEntropyBits   = 40
	strongEntropyBits = 60
	weakLength        = 8
)

// Rating is the qualitative strength classification of a password.
type Rating int

const (
	Weak Rating = iota
	Moderate
	Strong
)

func (r Rating) String() string {
	switch r {
	case Weak:
		return "Weak"
	case Moderate:
		return "Moderate"
	case Strong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Result holds the computed strength metrics for a single password.
type Result struct {
	Length  int
	Pool    int
	Entropy float64
	Rating  Rating
}

// Estimate computes the strength metrics for a password. The empty
// password yields the zero Result with rating Weak; there is no error
// path.
func Estimate(password string) Result {
	var lower, upper, digit, symbol, space, wide bool
	length := 0
	for _, r := range password {
		length++
		if unicode.IsLower(r) {
			lower = true
		}
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsDigit(r) {
			digit = true
		}
		if strings.ContainsRune(Punctuation, r) {
			symbol = true
		}
		if unicode.IsSpace(r) {
			space = true
		}
		if r > 127 {
			wide = true
		}
	}

	pool := 0
	if lower {
		pool += poolLower
	}
	if upper {
		pool += poolUpper
	}
	if digit {
		pool += poolDigit
	}
	if symbol {
		pool += poolSymbol
	}
	if space {
		pool += poolSpace
	}
	if wide {
		pool += poolNonASCII
	}

	entropy := 0.0
	if pool > 0 && length > 0 {
		entropy = float64(length) * math.Log2(float64(pool))
	}

	return Result{
		Length:  length,
		Pool:    pool,
		Entropy: entropy,
		Rating:  rate(length, entropy),
	}
}

func rate(length int, entropy float64) Rating {
	if length < weakLength || entropy < weakEntropyBits {
		return Weak
	}
	if entropy < strongEntropyBits {
		return Moderate
	}
	return Strong
}

// HasLower reports whether the password contains a lowercase letter.
func HasLower(password string) bool {
	return strings.ContainsFunc(password, unicode.IsLower)
}

// HasUpper reports whether the password contains an uppercase letter.
func HasUpper(password string) bool {
	return strings.ContainsFunc(password, unicode.IsUpper)
}

// HasDigit reports whether the password contains a digit.
func HasDigit(password string) bool {
	return strings.ContainsFunc(password, unicode.IsDigit)
}

// HasSymbol reports whether the password contains a character from the
// stock punctuation alphabet.
func HasSymbol(password string) bool {
	return strings.ContainsAny(password, Punctuation)
}
