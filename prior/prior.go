// Package prior implements the prior on substitution rates of the
// reversible jump nucleotide model. Depending on the prior type it is
// a scaled Dirichlet prior ensuring weighted rates sum to six, a
// parametric distribution on every rate, or two distributions, one
// for transition and one for transversion rates.
package prior

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/bmodel/dist"
	"bitbucket.org/Davydov/bmodel/substmodel"
)

// log is the global logging variable.
var log = logging.MustGetLogger("prior")

var (
	// ErrConsistency is returned when weighted rates do not sum to
	// six.
	ErrConsistency = errors.New("rates do not add to 6")
	// ErrUnsupportedPriorType is returned for an unknown prior type.
	ErrUnsupportedPriorType = errors.New("unsupported prior type")
)

// RateSum is the sum of rates weighted by group multiplicities.
const RateSum = 6.0

// sumTolerance is the maximum allowed deviation from RateSum.
const sumTolerance = 1e-6

// Type is a rate prior type.
type Type int

const (
	// ScaledDirichlet is the Dirichlet prior on rates scaled to sum
	// to six.
	ScaledDirichlet Type = iota
	// OnRates is a parametric distribution applied to every rate.
	OnRates
	// OnTransitionsAndTransversions uses separate distributions for
	// transition and transversion rates.
	OnTransitionsAndTransversions
)

// typeNames are used to convert types to and from strings.
var typeNames = map[Type]string{
	ScaledDirichlet:               "asScaledDirichlet",
	OnRates:                       "onRates",
	OnTransitionsAndTransversions: "onTransitionsAndTransversions",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// TypeNames returns all prior type names.
func TypeNames() []string {
	return []string{
		typeNames[ScaledDirichlet],
		typeNames[OnRates],
		typeNames[OnTransitionsAndTransversions],
	}
}

// ParseType returns a prior type given its' name (case insensitive).
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedPriorType, name)
}

// Models provides the group structure of models.
type Models interface {
	Model(id substmodel.ModelID) (*substmodel.Model, error)
}

// RatePrior computes log prior density of substitution rates. It
// keeps no state between calls and is safe for concurrent use.
type RatePrior struct {
	// Type is the prior type.
	Type Type
	// Dist is the distribution on rates (on transversion rates for
	// OnTransitionsAndTransversions).
	Dist dist.Distribution
	// TransDist is the distribution on transition rates.
	TransDist dist.Distribution
	// Models provides group structure.
	Models Models
	// Check enables the weighted rate sum check.
	Check bool
}

// New creates a new rate prior. Missing distributions are replaced by
// the defaults: exponential(1) on rates (and transversions) and
// log-normal(1, 1.25) on transitions.
func New(t Type, models Models, d, transDist dist.Distribution) (*RatePrior, error) {
	if models == nil {
		return nil, errors.New("models are required")
	}
	p := &RatePrior{
		Type:      t,
		Dist:      d,
		TransDist: transDist,
		Models:    models,
		Check:     true,
	}
	switch t {
	case ScaledDirichlet:
	case OnTransitionsAndTransversions:
		if p.TransDist == nil {
			log.Warning("Setting transition rate prior to log-normal(1, 1.25)")
			p.TransDist = dist.NewLogNormal(1, 1.25)
		}
		if p.Dist == nil {
			log.Warning("Setting transversion rate prior to exponential(1)")
			p.Dist = dist.NewExponential(1)
		}
	case OnRates:
		if p.Dist == nil {
			log.Warning("Setting rate prior to exponential(1)")
			p.Dist = dist.NewExponential(1)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPriorType, t)
	}
	return p, nil
}

// LogDensity returns log prior density of rates under the model id.
// Rates are read but never modified.
func (p *RatePrior) LogDensity(rates []float64, id substmodel.ModelID) (float64, error) {
	m, err := p.Models.Model(id)
	if err != nil {
		return 0, err
	}
	k := m.GroupCount()
	if len(rates) < k {
		return 0, fmt.Errorf("model %v has %d rate groups, got %d rates", m, k, len(rates))
	}

	if p.Check {
		if err := CheckSum(rates, m); err != nil {
			return 0, err
		}
	}

	switch p.Type {
	case ScaledDirichlet:
		return scaledDirichlet(m), nil
	case OnRates:
		if p.Dist == nil {
			return 0, errors.New("rate distribution is not set")
		}
		return onRates(rates, m, p.Dist), nil
	case OnTransitionsAndTransversions:
		if p.Dist == nil || p.TransDist == nil {
			return 0, errors.New("transition or transversion distribution is not set")
		}
		return onTransitions(rates, m, p.TransDist, p.Dist), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnsupportedPriorType, p.Type)
}

// CheckSum verifies that rates weighted by the group multiplicities
// sum to six.
func CheckSum(rates []float64, m *substmodel.Model) error {
	sr := 0.0
	for i := 0; i < m.GroupCount(); i++ {
		sr += float64(m.Multiplicity(i)) * rates[i]
	}
	if math.Abs(sr-RateSum) > sumTolerance {
		log.Debugf("model %v: weighted rate sum %v", m, sr)
		return fmt.Errorf("%w: model %v, sum=%v", ErrConsistency, m, sr)
	}
	return nil
}

// scaledDirichlet computes the density of rates under a Dirichlet
// prior scaled to the weighted sum of six.
func scaledDirichlet(m *substmodel.Model) float64 {
	k := m.GroupCount()
	logP, _ := math.Lgamma(float64(k))
	for i := 0; i < k; i++ {
		logP += math.Log(float64(m.Multiplicity(i)))
	}
	return logP - float64(k)*math.Log(RateSum)
}

// onRates applies a single distribution to every rate.
func onRates(rates []float64, m *substmodel.Model, d dist.Distribution) (logP float64) {
	f := dist.Func(d)
	for i := 0; i < m.GroupCount(); i++ {
		logP += f(rates[i])
	}
	return
}

// onTransitions applies transDist to groups containing transitions
// and d to all other groups.
func onTransitions(rates []float64, m *substmodel.Model, transDist, d dist.Distribution) (logP float64) {
	ft := dist.Func(transDist)
	fv := dist.Func(d)
	for i := 0; i < m.GroupCount(); i++ {
		if m.Transition(i) {
			logP += ft(rates[i])
		} else {
			logP += fv(rates[i])
		}
	}
	return
}
