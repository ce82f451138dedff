package strength

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	cases := []struct {
		password string
		length   int
		pool     int
		entropy  float64
		rating   Rating
	}{
		{"", 0, 0, 0, Weak},
		{"abc", 3, 26, 3 * math.Log2(26), Weak},
		{"ABC", 3, 26, 3 * math.Log2(26), Weak},
		{"abc123", 6, 36, 6 * math.Log2(36), Weak},
		{"Tr0ub4dor&3", 11, 94, 11 * math.Log2(94), Strong},
		// Exactly 40 bits: pool 32 (lower+whitespace), 8 runes.
		{"passw rd", 8, 32, 40, Moderate},
		{"abcdefghijkl", 12, 26, 12 * math.Log2(26), Moderate},
		// Non-ASCII flat bonus: one é adds 100 once, and counts as lowercase.
		{"héllo", 5, 126, 5 * math.Log2(126), Weak},
		{"hééééllo", 8, 126, 8 * math.Log2(126), Moderate},
		// Control characters belong to no class: empty pool, zero entropy.
		{"\x01", 1, 0, 0, Weak},
	}

	for _, tc := range cases {
		got := Estimate(tc.password)
		if got.Length != tc.length {
			t.Errorf("Estimate(%q).Length: %d, want: %d", tc.password, got.Length, tc.length)
		}
		if got.Pool != tc.pool {
			t.Errorf("Estimate(%q).Pool: %d, want: %d", tc.password, got.Pool, tc.pool)
		}
		if math.Abs(got.Entropy-tc.entropy) > 1e-9 {
			t.Errorf("Estimate(%q).Entropy: %f, want: %f", tc.password, got.Entropy, tc.entropy)
		}
		if got.Rating != tc.rating {
			t.Errorf("Estimate(%q).Rating: %s, want: %s", tc.password, got.Rating, tc.rating)
		}
	}
}

func TestEstimateZeroEntropyOnlyWhenDegenerate(t *testing.T) {
	for _, password := range []string{"a", "0", " ", "!", "é", "password"} {
		if got := Estimate(password); got.Entropy == 0 {
			t.Errorf("Estimate(%q).Entropy should be positive for a recognized class", password)
		}
	}
}

func TestRateBoundaries(t *testing.T) {
	cases := []struct {
		length  int
		entropy float64
		want    Rating
	}{
		{8, 40, Moderate},
		{8, 39.999, Weak},
		{7, 100, Weak},
		{8, 59.999, Moderate},
		{8, 60, Strong},
		{0, 0, Weak},
	}

	for _, tc := range cases {
		if got := rate(tc.length, tc.entropy); got != tc.want {
			t.Errorf("rate(%d, %f): %s, want: %s", tc.length, tc.entropy, got, tc.want)
		}
	}
}

func TestClassHelpers(t *testing.T) {
	cases := []struct {
		password                    string
		lower, upper, digit, symbol bool
	}{
		{"", false, false, false, false},
		{"abc123", true, false, true, false},
		{"Tr0ub4dor&3", true, true, true, true},
		{"PASS", false, true, false, false},
		{"____", false, false, false, true},
	}

	for _, tc := range cases {
		if got := HasLower(tc.password); got != tc.lower {
			t.Errorf("HasLower(%q): %v, want: %v", tc.password, got, tc.lower)
		}
		if got := HasUpper(tc.password); got != tc.upper {
			t.Errorf("HasUpper(%q): %v, want: %v", tc.password, got, tc.upper)
		}
		if got := HasDigit(tc.password); got != tc.digit {
			t.Errorf("HasDigit(%q): %v, want: %v", tc.password, got, tc.digit)
		}
		if got := HasSymbol(tc.password); got != tc.symbol {
			t.Errorf("HasSymbol(%q): %v, want: %v", tc.password, got, tc.symbol)
		}
	}
}
