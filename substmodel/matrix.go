package substmodel

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// NNuc is the number of nucleotides (A, C, G, T).
const NNuc = 4

// smallScale is a small value such that if Q-scale is less than it,
// the matrix is considered to be zero.
const smallScale = 1e-30

// classPairs maps rate classes to nucleotide pairs.
var classPairs = [NClasses][2]int{
	AC: {0, 1},
	AG: {0, 2},
	AT: {0, 3},
	CG: {1, 2},
	CT: {1, 3},
	GT: {2, 3},
}

// ExpandRates returns rates for all six classes given the group
// rates.
func ExpandRates(m *Model, rates []float64) ([]float64, error) {
	if len(rates) != m.GroupCount() {
		return nil, fmt.Errorf("model %v has %d rate groups, got %d rates", m, m.GroupCount(), len(rates))
	}
	res := make([]float64, NClasses)
	for j, g := range m.layout {
		res[j] = rates[g]
	}
	return res, nil
}

// RateMatrix creates the GTR Q-matrix for the model given group rates
// and nucleotide frequencies (A, C, G, T). The matrix is normalized to
// one expected substitution per unit of time; the scale before normalization is
// returned as well.
func RateMatrix(m *Model, rates []float64, freqs [NNuc]float64) (*mat64.Dense, float64, error) {
	r, err := ExpandRates(m, rates)
	if err != nil {
		return nil, 0, err
	}
	fsum := 0.0
	for _, f := range freqs {
		if f <= 0 {
			return nil, 0, errors.New("nucleotide frequencies should be positive")
		}
		fsum += f
	}
	if math.Abs(fsum-1) > 1e-6 {
		return nil, 0, fmt.Errorf("nucleotide frequencies sum to %v", fsum)
	}

	q := mat64.NewDense(NNuc, NNuc, nil)
	for c, p := range classPairs {
		i, j := p[0], p[1]
		q.Set(i, j, r[c]*freqs[j])
		q.Set(j, i, r[c]*freqs[i])
	}
	scale := 0.0
	for i := 0; i < NNuc; i++ {
		rowSum := 0.0
		for j := 0; j < NNuc; j++ {
			if i != j {
				rowSum += q.At(i, j)
			}
		}
		q.Set(i, i, -rowSum)
		scale += freqs[i] * rowSum
	}
	if scale < smallScale {
		return nil, 0, errors.New("rate matrix scale is zero")
	}
	q.Scale(1/scale, q)
	return q, scale, nil
}
