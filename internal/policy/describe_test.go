package policy

import (
	"testing"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		want   string
	}{
		{
			"Simple",
			Policy{MinLength: 6, Desc: "Simple: 6+"},
			"Simple: Simple: 6+\nmin_length>=6",
		},
		{
			"Strict",
			Policy{MinLength: 12, RequireLower: true, RequireSymbols: true, MinEntropy: 60.5},
			"Strict\nmin_length>=12, lower, symbol, min_entropy>=60",
		},
		{
			"Bare",
			Policy{},
			"Bare\nmin_length>=0",
		},
	}

	for _, tc := range cases {
		if got := Describe(tc.name, tc.policy, true); got != tc.want {
			t.Errorf("Describe(%s): %q, want: %q", tc.name, got, tc.want)
		}
	}
}

func TestDescribeNoPolicy(t *testing.T) {
	if got := Describe("", Policy{}, false); got != "No policy selected." {
		t.Errorf("Describe with no policy: %q", got)
	}
}
