package dist

import "testing"

func TestParse(tst *testing.T) {
	settings := []struct {
		s    string
		name string
		off  float64
	}{
		{"exp:1", "exponential(1)", 0},
		{"exponential:2.5", "exponential(2.5)", 0},
		{"lognormal:1,1.25", "log-normal(1, 1.25)", 0},
		{"gamma:2,0.5@0.1", "gamma(2, 0.5)@0.1", 0.1},
		{"normal:0, 1", "normal(0, 1)", 0},
		{"uniform:0,10", "uniform(0, 10)", 0},
		{"beta:2,3@-1", "beta(2, 3)@-1", -1},
	}
	for _, s := range settings {
		d, err := Parse(s.s)
		if err != nil {
			tst.Errorf("Error parsing %q: %v", s.s, err)
			continue
		}
		if d.String() != s.name {
			tst.Errorf("Parsed %q as %q, expected %q", s.s, d.String(), s.name)
		}
		if d.Offset() != s.off {
			tst.Errorf("Incorrect offset for %q: %v", s.s, d.Offset())
		}
	}
}

func TestParseErrors(tst *testing.T) {
	for _, s := range []string{
		"",
		"cauchy:1,2",
		"exp",
		"exp:1,2",
		"exp:x",
		"exp:-1",
		"lognormal:1,0",
		"uniform:3,1",
		"gamma:1,1@y",
	} {
		if d, err := Parse(s); err == nil {
			tst.Errorf("Expected error parsing %q, got %v", s, d)
		}
	}
}
