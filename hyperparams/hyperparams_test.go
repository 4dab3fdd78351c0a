package hyperparams

import (
	"testing"
)

func TestStep(t *testing.T) {
	// added out of order on purpose
	s := Step(0.1).Add(1000, 0.01).Add(100, 0.05)

	tests := []struct {
		iter int
		want float64
	}{
		{0, 0.1},
		{99, 0.1},
		{100, 0.05},
		{999, 0.05},
		{1000, 0.01},
		{50000, 0.01},
	}

	for _, tt := range tests {
		if got := s.Value(tt.iter); got != tt.want {
			t.Errorf("Value(%d) = %v, want %v", tt.iter, got, tt.want)
		}
	}

	if s.String() != "step:0.1,100=0.05,1000=0.01" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		str    string
		typ    string
		values map[int]float64
	}{
		{"0.01", "constant", map[int]float64{0: 0.01, 1 << 20: 0.01}},
		{" 0.5 ", "constant", map[int]float64{3: 0.5}},
		{"step:0.1", "step", map[int]float64{0: 0.1, 500: 0.1}},
		{"step:0.1,1000=0.05", "step", map[int]float64{999: 0.1, 1000: 0.05}},
		{"step:1, 10=0.5, 5=0.75", "step", map[int]float64{4: 1, 5: 0.75, 10: 0.5}},
	}

	for _, tt := range tests {
		hp, err := Parse(tt.str)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.str, err)
			continue
		}

		if hp.TypeString() != tt.typ {
			t.Errorf("Parse(%q) has type %q, want %q", tt.str, hp.TypeString(), tt.typ)
		}

		for iter, want := range tt.values {
			if got := hp.Value(iter); got != want {
				t.Errorf("Parse(%q).Value(%d) = %v, want %v", tt.str, iter, got, want)
			}
		}

		again, err := Parse(hp.String())
		if err != nil || again.String() != hp.String() {
			t.Errorf("Parse(%q).String() = %q does not parse back to itself", tt.str, hp.String())
		}
	}

	for _, str := range []string{"", "abc", "NaN", "+Inf", "step:", "step:0.1,1000", "step:0.1,x=0.5", "step:0.1,-1=0.5", "step:0.1,10=y"} {
		if _, err := Parse(str); err == nil {
			t.Errorf("Parse(%q) succeeded, expected an error", str)
		}
	}
}
