package dist

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse creates a distribution from a short notation used on the
// command line: "name:p1,p2@offset", e.g. "exp:1", "lognormal:1,1.25"
// or "gamma:2,0.5@0.1". Known names are exp (exponential), lognormal,
// gamma, normal, uniform and beta.
func Parse(s string) (d Distribution, err error) {
	def := strings.TrimSpace(s)
	off := 0.0
	if i := strings.LastIndexByte(def, '@'); i >= 0 {
		off, err = strconv.ParseFloat(def[i+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("incorrect offset in %q: %v", s, err)
		}
		def = def[:i]
	}

	name := def
	var pars []float64
	if i := strings.IndexByte(def, ':'); i >= 0 {
		name = def[:i]
		for _, f := range strings.Split(def[i+1:], ",") {
			x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("incorrect parameter in %q: %v", s, err)
			}
			pars = append(pars, x)
		}
	}

	// constructors panic on invalid values
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("incorrect distribution %q: %v", s, r)
		}
	}()

	switch strings.ToLower(name) {
	case "exp", "exponential":
		if err = nPars(s, pars, 1); err != nil {
			return nil, err
		}
		e := NewExponential(pars[0])
		e.Off = off
		d = e
	case "lognormal", "log-normal":
		if err = nPars(s, pars, 2); err != nil {
			return nil, err
		}
		ln := NewLogNormal(pars[0], pars[1])
		ln.Off = off
		d = ln
	case "gamma":
		if err = nPars(s, pars, 2); err != nil {
			return nil, err
		}
		g := NewGamma(pars[0], pars[1])
		g.Off = off
		d = g
	case "normal":
		if err = nPars(s, pars, 2); err != nil {
			return nil, err
		}
		n := NewNormal(pars[0], pars[1])
		n.Off = off
		d = n
	case "uniform":
		if err = nPars(s, pars, 2); err != nil {
			return nil, err
		}
		u := NewUniform(pars[0], pars[1])
		u.Off = off
		d = u
	case "beta":
		if err = nPars(s, pars, 2); err != nil {
			return nil, err
		}
		b := NewBeta(pars[0], pars[1])
		b.Off = off
		d = b
	default:
		return nil, fmt.Errorf("unknown distribution: %s", name)
	}
	log.Debugf("parsed distribution %v", d)
	return d, nil
}

// nPars checks the number of distribution parameters.
func nPars(s string, pars []float64, n int) error {
	if len(pars) != n {
		return fmt.Errorf("%q: expected %d parameter(s), got %d", s, n, len(pars))
	}
	return nil
}
