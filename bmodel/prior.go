package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"

	"bitbucket.org/Davydov/bmodel/dist"
	"bitbucket.org/Davydov/bmodel/prior"
	"bitbucket.org/Davydov/bmodel/substmodel"
)

// priorSettings are the settings of the prior command.
type priorSettings struct {
	model     int
	rates     string
	priorType string
	dist      string
	transDist string
	noCheck   bool
	freqs     string
	// time is the branch length for P(t), negative to skip.
	time float64
}

// parseFloats parses a list of numbers separated by commas or spaces.
func parseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	res := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

// parseFreqs parses four nucleotide frequencies (A, C, G, T).
func parseFreqs(s string) (freqs [substmodel.NNuc]float64, err error) {
	f, err := parseFloats(s)
	if err != nil {
		return
	}
	if len(f) != substmodel.NNuc {
		return freqs, fmt.Errorf("expected %d frequencies, got %d", substmodel.NNuc, len(f))
	}
	copy(freqs[:], f)
	return
}

// parseDist parses a distribution, empty string means default.
func parseDist(s string) (dist.Distribution, error) {
	if s == "" {
		return nil, nil
	}
	return dist.Parse(s)
}

// interval returns the 95% interval of a distribution.
func interval(d dist.Distribution) string {
	return fmt.Sprintf("%s, 95%% interval [%.4g, %.4g]", d,
		d.Quantile(0.025)+d.Offset(), d.Quantile(0.975)+d.Offset())
}

// evalPrior computes the rate prior density and writes the result to w.
func evalPrior(ps priorSettings, w io.Writer) (*PriorSummary, error) {
	id := substmodel.ModelID(ps.model)
	if _, err := substmodel.Unpack(id); err != nil {
		return nil, err
	}
	models, err := substmodel.NewModels(substmodel.AllReversible)
	if err != nil {
		return nil, err
	}
	log.Debugf("Model set %v, %d models", models.Set(), models.Count())
	m, err := models.Model(id)
	if err != nil {
		return nil, err
	}
	rates, err := parseFloats(ps.rates)
	if err != nil {
		return nil, err
	}
	if len(rates) != m.GroupCount() {
		return nil, fmt.Errorf("model %v has %d rate groups, got %d rates", m, m.GroupCount(), len(rates))
	}

	t, err := prior.ParseType(ps.priorType)
	if err != nil {
		return nil, err
	}
	d, err := parseDist(ps.dist)
	if err != nil {
		return nil, err
	}
	td, err := parseDist(ps.transDist)
	if err != nil {
		return nil, err
	}
	p, err := prior.New(t, models, d, td)
	if err != nil {
		return nil, err
	}
	p.Check = !ps.noCheck

	lp, err := p.LogDensity(rates, m.ID())
	if err != nil {
		return nil, err
	}

	summary := &PriorSummary{
		Model:      int(m.ID()),
		Name:       m.Name(),
		Type:       t.String(),
		Rates:      rates,
		LogDensity: lp,
	}

	fmt.Fprintf(w, "model: %v, layout %v, %d rate groups, multiplicities %v\n",
		m, m.Layout(), m.GroupCount(), m.Multiplicities())
	fmt.Fprintf(w, "prior: %v\n", t)
	switch t {
	case prior.OnRates:
		summary.Dist = p.Dist.String()
		fmt.Fprintf(w, "rates: %s\n", interval(p.Dist))
	case prior.OnTransitionsAndTransversions:
		summary.Dist = p.Dist.String()
		summary.TransDist = p.TransDist.String()
		fmt.Fprintf(w, "transitions: %s\n", interval(p.TransDist))
		fmt.Fprintf(w, "transversions: %s\n", interval(p.Dist))
	}
	fmt.Fprintf(w, "log prior density: %v\n", lp)

	if ps.time >= 0 {
		freqs, err := parseFreqs(ps.freqs)
		if err != nil {
			return nil, err
		}
		q, scale, err := substmodel.RateMatrix(m, rates, freqs)
		if err != nil {
			return nil, err
		}
		summary.Scale = scale
		log.Infof("Rate matrix scale: %v", scale)
		e := substmodel.NewEMatrix(q, freqs)
		pt, err := e.Exp(ps.time)
		if err != nil {
			return nil, err
		}
		if pt == nil {
			return nil, errors.New("matrix exponentiation failed")
		}
		fmt.Fprintf(w, "Q=\n%.5f\n", mat64.Formatted(q))
		fmt.Fprintf(w, "P(%v)=\n%.5f\n", ps.time, mat64.Formatted(pt))
	}
	return summary, nil
}
