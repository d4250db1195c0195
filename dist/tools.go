package dist

/*
QuantileChi2 follows PAML, which is licensed under GNU GPL v3.
Incomplete gamma, incomplete beta and normal quantile are taken from
mathext.
*/

import (
	"math"

	"github.com/gonum/mathext"
)

/*

QuantileChi2 returns z so that Prob{x<z}=prob where x is Chi2
distributed with df=v

returns -1 if in error.  0.000002<prob<0.999998

RATNEST FORTRAN by Best DJ & Roberts DE (1975) The percentage points
of the Chi2 distribution.  Applied Statistics 24: 385-388.  (AS91)

*/
func QuantileChi2(prob, v float64) (ch float64) {
	const (
		e     = .5e-6
		aa    = .6931471805
		small = 1e-6
	)
	p := prob

	if p < small {
		return 0
	}
	if p > 1-small {
		return 9999
	}
	if v <= 0 {
		return -1
	}

	g, _ := math.Lgamma(v / 2)
	xx := v / 2
	c := xx - 1

	switch {
	case v < -1.24*math.Log(p):
		// small degrees of freedom
		ch = math.Pow(p*xx*math.Exp(g+xx*aa), 1/xx)
		if ch-e < 0 {
			return ch
		}
	case v <= .32:
		ch = 0.4
		a := math.Log(1 - p)
		for {
			q := ch
			p1 := 1 + ch*(4.67+ch)
			p2 := ch * (6.73 + ch*(6.66+ch))
			t := -0.5 + (4.67+2*ch)/p1 - (6.73+ch*(13.32+3*ch))/p2
			ch -= (1 - math.Exp(a+g+.5*ch+c*aa)*p2/p1) / t
			if math.Abs(q/ch-1)-.01 <= 0 {
				break
			}
		}
	default:
		// Wilson and Hilferty approximation
		x := QuantileNormal(p)
		p1 := 0.222222 / v
		ch = v * math.Pow(x*math.Sqrt(p1)+1-p1, 3.0)
		if ch > 2.2*v+6 {
			ch = -2 * (math.Log(1-p) - c*math.Log(.5*ch) + g)
		}
	}

	// seven term Taylor series refinement
	for {
		q := ch
		p1 := .5 * ch
		t := IncompleteGamma(p1, xx)
		p2 := p - t
		t = p2 * math.Exp(xx*aa+g+p1-c*math.Log(ch))
		b := t / ch
		a := 0.5*t - b*c

		s1 := (210 + a*(140+a*(105+a*(84+a*(70+60*a))))) / 420
		s2 := (420 + a*(735+a*(966+a*(1141+1278*a)))) / 2520
		s3 := (210 + a*(462+a*(707+932*a))) / 2520
		s4 := (252 + a*(672+1182*a) + c*(294+a*(889+1740*a))) / 5040
		s5 := (84 + 264*a + c*(175+606*a)) / 2520
		s6 := (120 + c*(346+127*c)) / 5040
		ch += t * (1 + 0.5*t*s1 - b*c*(s1-b*(s2-b*(s3-b*(s4-b*(s5-b*s6))))))
		if math.Abs(q/ch-1) <= e {
			break
		}
	}

	return
}

// QuantileGamma returns quantile for gamma distribution with shape
// alpha and rate beta.
func QuantileGamma(prob, alpha, beta float64) float64 {
	return QuantileChi2(prob, 2.0*alpha) / (2.0 * beta)
}

// QuantileNormal returns quantile for the standard normal distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}

/*

IncompleteGamma returns the incomplete gamma ratio I(x,alpha) where x
is the upper limit of the integration and alpha is the shape
parameter.

*/
func IncompleteGamma(x, alpha float64) float64 {
	return mathext.GammaInc(alpha, x)
}

// LnBeta returns log of Beta function.
func LnBeta(p, q float64) float64 {
	lgp, _ := math.Lgamma(p)
	lgq, _ := math.Lgamma(q)
	lgpq, _ := math.Lgamma(p + q)
	return lgp + lgq - lgpq
}

// CDFBeta returns the incomplete beta ratio I_x(p,q).
func CDFBeta(x, p, q float64) float64 {
	return mathext.RegIncBeta(p, q, x)
}

// QuantileBeta calculates the quantile of the beta distribution.
func QuantileBeta(prob, p, q float64) float64 {
	return mathext.InvRegIncBeta(p, q, prob)
}
