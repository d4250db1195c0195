package dist

import (
	"math"
	"testing"
)

const smallDiff = 1e-6

/*** Tests if a and b are approximately equal ***/
func appreq(a, b, diff float64) bool {
	return math.Abs(a-b) <= diff
}

func TestQuantileChi2(tst *testing.T) {
	settings := []struct {
		p, df, q float64
	}{
		{0.95, 1, 3.841459},
		{0.9, 1, 2.705543},
		{0.5, 2, 1.386294},
		{0.95, 10, 18.307038},
		{0.05, 4, 0.710723},
	}
	for _, s := range settings {
		q := QuantileChi2(s.p, s.df)
		if !appreq(q, s.q, 1e-4) {
			tst.Errorf("QuantileChi2(%v, %v)=%v, expected %v", s.p, s.df, q, s.q)
		}
	}
	if QuantileChi2(0.5, 0) != -1 {
		tst.Error("Expected -1 for zero degrees of freedom")
	}
}

func TestLogDensity(tst *testing.T) {
	settings := []struct {
		d    Distribution
		x    float64
		logP float64
	}{
		{NewExponential(1), 2, -2},
		{NewExponential(2), 0.5, math.Log(2) - 1},
		{NewLogNormal(1, 1.25), 1, -1.462082084},
		{NewGamma(2, 0.5), 1, -0.613705639},
		{NewGamma(1, 2), 0, -math.Log(2)},
		{NewNormal(0, 1), 0, -0.918938533},
		{NewUniform(0, 4), 3, -math.Log(4)},
		{NewBeta(2, 2), 0.5, 0.405465108},
		{NewBeta(1, 1), 0, 0},
		{NewBeta(1, 1), 1, 0},
		{NewBeta(1, 3), 0, math.Log(3)},
		{NewBeta(2, 1), 1, math.Log(2)},
	}
	for _, s := range settings {
		logP := s.d.LogDensity(s.x)
		if !appreq(logP, s.logP, smallDiff) {
			tst.Errorf("%v: log density at %v is %v, expected %v", s.d, s.x, logP, s.logP)
		}
	}
}

func TestBetaBoundary(tst *testing.T) {
	settings := []struct {
		d    *Beta
		x    float64
		logP float64
	}{
		{NewBeta(2, 3), 0, math.Inf(-1)},
		{NewBeta(3, 2), 1, math.Inf(-1)},
		{NewBeta(0.5, 2), 0, math.Inf(1)},
		{NewBeta(2, 0.5), 1, math.Inf(1)},
	}
	for _, s := range settings {
		if logP := s.d.LogDensity(s.x); logP != s.logP {
			tst.Errorf("%v: log density at %v is %v, expected %v", s.d, s.x, logP, s.logP)
		}
	}
}

func TestOutOfSupport(tst *testing.T) {
	ds := []Distribution{
		NewExponential(1),
		NewLogNormal(1, 1.25),
		NewGamma(2, 1),
		NewUniform(0, 1),
		NewBeta(2, 3),
	}
	for _, d := range ds {
		if !math.IsInf(d.LogDensity(-0.1), -1) {
			tst.Errorf("%v: expected -Inf for negative value, got %v", d, d.LogDensity(-0.1))
		}
	}
}

// Gamma with shape 1 is an exponential distribution.
func TestGammaExponential(tst *testing.T) {
	g := NewGamma(1, 0.5)
	e := NewExponential(2)
	for x := 0.1; x < 10; x += 0.7 {
		if !appreq(g.LogDensity(x), e.LogDensity(x), smallDiff) {
			tst.Errorf("log density mismatch at %v: %v != %v", x, g.LogDensity(x), e.LogDensity(x))
		}
		if !appreq(g.CDF(x), e.CDF(x), smallDiff) {
			tst.Errorf("CDF mismatch at %v: %v != %v", x, g.CDF(x), e.CDF(x))
		}
	}
	if !appreq(g.Quantile(0.5), e.Quantile(0.5), 1e-5) {
		tst.Errorf("median mismatch: %v != %v", g.Quantile(0.5), e.Quantile(0.5))
	}
}

// Quantile should be the inverse of CDF.
func TestQuantileCDF(tst *testing.T) {
	ds := []Distribution{
		NewExponential(1),
		NewLogNormal(1, 1.25),
		NewGamma(2.5, 0.4),
		NewNormal(1, 2),
		NewUniform(-1, 3),
		NewBeta(0.7, 2),
	}
	for _, d := range ds {
		for _, p := range []float64{0.025, 0.25, 0.5, 0.75, 0.975} {
			q := d.Quantile(p)
			if !appreq(d.CDF(q), p, 1e-5) {
				tst.Errorf("%v: CDF(Quantile(%v))=%v", d, p, d.CDF(q))
			}
		}
	}
}

func TestKnownQuantiles(tst *testing.T) {
	if q := NewNormal(0, 1).Quantile(0.975); !appreq(q, 1.959964, 1e-5) {
		tst.Error("Incorrect normal quantile:", q)
	}
	if q := NewLogNormal(1, 1.25).Quantile(0.5); !appreq(q, math.E, smallDiff) {
		tst.Error("Incorrect log-normal median:", q)
	}
	if q := NewExponential(1).Quantile(0.5); !appreq(q, math.Ln2, smallDiff) {
		tst.Error("Incorrect exponential median:", q)
	}
	if p := NewBeta(2, 2).CDF(0.5); !appreq(p, 0.5, smallDiff) {
		tst.Error("Incorrect beta CDF:", p)
	}
}

func TestFunc(tst *testing.T) {
	e := NewExponential(1)
	e.Off = 0.5
	f := Func(e)
	if !appreq(f(1.5), -1, smallDiff) {
		tst.Error("Offset is not subtracted:", f(1.5))
	}
	if !math.IsInf(f(0.2), -1) {
		tst.Error("Expected -Inf below the offset, got", f(0.2))
	}
}
