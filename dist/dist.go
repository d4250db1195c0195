// Package dist implements parametric distributions used as priors on
// substitution rates, together with the numerical helpers they rely
// on.
package dist

import (
	"fmt"
	"math"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("dist")

// Distribution is a univariate parametric distribution.
//
// LogDensity, CDF and Quantile work on the unshifted distribution,
// i.e. the caller subtracts Offset from the value first.
type Distribution interface {
	// LogDensity returns log of the density at x, -Inf outside of
	// the support.
	LogDensity(x float64) float64
	// CDF returns Prob{X<=x}.
	CDF(x float64) float64
	// Quantile returns x such that CDF(x)=p.
	Quantile(p float64) float64
	// Offset returns the distribution shift.
	Offset() float64
	// String returns a short description, e.g. "exponential(1)".
	String() string
}

// lnSqrt2Pi is log(sqrt(2*pi)).
var lnSqrt2Pi = 0.5 * math.Log(2*math.Pi)

// offsetString formats the offset suffix for String methods.
func offsetString(off float64) string {
	if off == 0 {
		return ""
	}
	return fmt.Sprintf("@%g", off)
}

// Exponential is the exponential distribution with rate Rate.
type Exponential struct {
	Rate float64
	Off  float64
}

// NewExponential creates a new exponential distribution.
func NewExponential(rate float64) *Exponential {
	if rate <= 0 {
		panic("exponential rate should be > 0")
	}
	return &Exponential{Rate: rate}
}

// LogDensity returns log density of the exponential distribution.
func (d *Exponential) LogDensity(x float64) float64 {
	if x < 0 {
		return math.Inf(-1)
	}
	return math.Log(d.Rate) - d.Rate*x
}

// CDF returns the exponential distribution function.
func (d *Exponential) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-d.Rate * x)
}

// Quantile returns the exponential quantile function.
func (d *Exponential) Quantile(p float64) float64 {
	return -math.Log1p(-p) / d.Rate
}

// Offset returns the shift.
func (d *Exponential) Offset() float64 {
	return d.Off
}

func (d *Exponential) String() string {
	return fmt.Sprintf("exponential(%g)%s", d.Rate, offsetString(d.Off))
}

// LogNormal is the log-normal distribution, M and S are the mean and
// the standard deviation in the log space.
type LogNormal struct {
	M   float64
	S   float64
	Off float64
}

// NewLogNormal creates a new log-normal distribution.
func NewLogNormal(m, s float64) *LogNormal {
	if s <= 0 {
		panic("log-normal S should be > 0")
	}
	return &LogNormal{M: m, S: s}
}

// LogDensity returns log density of the log-normal distribution.
func (d *LogNormal) LogDensity(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	lx := math.Log(x)
	z := (lx - d.M) / d.S
	return -lx - math.Log(d.S) - lnSqrt2Pi - z*z/2
}

// CDF returns the log-normal distribution function.
func (d *LogNormal) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 0.5 * math.Erfc(-(math.Log(x)-d.M)/(d.S*math.Sqrt2))
}

// Quantile returns the log-normal quantile function.
func (d *LogNormal) Quantile(p float64) float64 {
	return math.Exp(d.M + d.S*QuantileNormal(p))
}

// Offset returns the shift.
func (d *LogNormal) Offset() float64 {
	return d.Off
}

func (d *LogNormal) String() string {
	return fmt.Sprintf("log-normal(%g, %g)%s", d.M, d.S, offsetString(d.Off))
}

// Gamma is the gamma distribution with the shape and the scale
// parametrization.
type Gamma struct {
	Shape float64
	Scale float64
	Off   float64
}

// NewGamma creates a new gamma distribution.
func NewGamma(shape, scale float64) *Gamma {
	if shape <= 0 || scale <= 0 {
		panic("shape and scale of gamma distribution must be > 0")
	}
	return &Gamma{Shape: shape, Scale: scale}
}

// LogDensity returns log density of the gamma distribution.
func (d *Gamma) LogDensity(x float64) float64 {
	switch {
	case x < 0:
		return math.Inf(-1)
	case x == 0 && d.Shape == 1:
		return -math.Log(d.Scale)
	case x == 0 && d.Shape > 1:
		return math.Inf(-1)
	}
	g, _ := math.Lgamma(d.Shape)
	return (d.Shape-1)*math.Log(x) - x/d.Scale - d.Shape*math.Log(d.Scale) - g
}

// CDF returns the gamma distribution function.
func (d *Gamma) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return IncompleteGamma(x/d.Scale, d.Shape)
}

// Quantile returns the gamma quantile function.
func (d *Gamma) Quantile(p float64) float64 {
	return QuantileGamma(p, d.Shape, 1/d.Scale)
}

// Offset returns the shift.
func (d *Gamma) Offset() float64 {
	return d.Off
}

func (d *Gamma) String() string {
	return fmt.Sprintf("gamma(%g, %g)%s", d.Shape, d.Scale, offsetString(d.Off))
}

// Normal is the normal distribution.
type Normal struct {
	Mean float64
	SD   float64
	Off  float64
}

// NewNormal creates a new normal distribution.
func NewNormal(mean, sd float64) *Normal {
	if sd <= 0 {
		panic("normal sd should be > 0")
	}
	return &Normal{Mean: mean, SD: sd}
}

// LogDensity returns log density of the normal distribution.
func (d *Normal) LogDensity(x float64) float64 {
	z := (x - d.Mean) / d.SD
	return -math.Log(d.SD) - lnSqrt2Pi - z*z/2
}

// CDF returns the normal distribution function.
func (d *Normal) CDF(x float64) float64 {
	return 0.5 * math.Erfc(-(x-d.Mean)/(d.SD*math.Sqrt2))
}

// Quantile returns the normal quantile function.
func (d *Normal) Quantile(p float64) float64 {
	return d.Mean + d.SD*QuantileNormal(p)
}

// Offset returns the shift.
func (d *Normal) Offset() float64 {
	return d.Off
}

func (d *Normal) String() string {
	return fmt.Sprintf("normal(%g, %g)%s", d.Mean, d.SD, offsetString(d.Off))
}

// Uniform is the uniform distribution on [Lower, Upper].
type Uniform struct {
	Lower float64
	Upper float64
	Off   float64
}

// NewUniform creates a new uniform distribution.
func NewUniform(lower, upper float64) *Uniform {
	if upper <= lower {
		panic("max <= min")
	}
	return &Uniform{Lower: lower, Upper: upper}
}

// LogDensity returns log density of the uniform distribution.
func (d *Uniform) LogDensity(x float64) float64 {
	if x < d.Lower || x > d.Upper {
		return math.Inf(-1)
	}
	return -math.Log(d.Upper - d.Lower)
}

// CDF returns the uniform distribution function.
func (d *Uniform) CDF(x float64) float64 {
	switch {
	case x <= d.Lower:
		return 0
	case x >= d.Upper:
		return 1
	}
	return (x - d.Lower) / (d.Upper - d.Lower)
}

// Quantile returns the uniform quantile function.
func (d *Uniform) Quantile(p float64) float64 {
	return d.Lower + p*(d.Upper-d.Lower)
}

// Offset returns the shift.
func (d *Uniform) Offset() float64 {
	return d.Off
}

func (d *Uniform) String() string {
	return fmt.Sprintf("uniform(%g, %g)%s", d.Lower, d.Upper, offsetString(d.Off))
}

// Beta is the beta distribution.
type Beta struct {
	Alpha float64
	Beta  float64
	Off   float64
}

// NewBeta creates a new beta distribution.
func NewBeta(alpha, beta float64) *Beta {
	if alpha <= 0 || beta <= 0 {
		panic("beta distribution parameters must be > 0")
	}
	return &Beta{Alpha: alpha, Beta: beta}
}

// LogDensity returns log density of the beta distribution.
func (d *Beta) LogDensity(x float64) float64 {
	switch {
	case x < 0 || x > 1:
		return math.Inf(-1)
	case x == 0:
		return boundary(d.Alpha, d.Alpha, d.Beta)
	case x == 1:
		return boundary(d.Beta, d.Alpha, d.Beta)
	}
	return (d.Alpha-1)*math.Log(x) + (d.Beta-1)*math.Log1p(-x) - LnBeta(d.Alpha, d.Beta)
}

// boundary returns log density of the beta distribution at 0 (p is
// alpha) or at 1 (p is beta).
func boundary(p, alpha, beta float64) float64 {
	switch {
	case p == 1:
		return -LnBeta(alpha, beta)
	case p > 1:
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// CDF returns the beta distribution function.
func (d *Beta) CDF(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return CDFBeta(x, d.Alpha, d.Beta)
}

// Quantile returns the beta quantile function.
func (d *Beta) Quantile(p float64) float64 {
	return QuantileBeta(p, d.Alpha, d.Beta)
}

// Offset returns the shift.
func (d *Beta) Offset() float64 {
	return d.Off
}

func (d *Beta) String() string {
	return fmt.Sprintf("beta(%g, %g)%s", d.Alpha, d.Beta, offsetString(d.Off))
}

// Func converts a distribution into a log-density function of a
// value, which takes the offset into account.
func Func(d Distribution) func(float64) float64 {
	return func(x float64) float64 {
		return d.LogDensity(x - d.Offset())
	}
}
