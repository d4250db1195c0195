package substmodel

import (
	"errors"
	"math"

	"github.com/gonum/matrix/mat64"
)

// EMatrix stores a reversible Q-matrix and its' eigendecomposition to
// quickly compute e^Qt.
//
// Since the matrix is reversible, diag(sqrt(pi)) Q diag(1/sqrt(pi))
// is symmetric, so the symmetric decomposition is used.
type EMatrix struct {
	// Q is the Q-matrix.
	Q *mat64.Dense
	// Freqs are the stationary frequencies.
	Freqs [NNuc]float64
	v     *mat64.Dense
	d     []float64
	iv    *mat64.Dense
}

// NewEMatrix creates a new EMatrix.
func NewEMatrix(q *mat64.Dense, freqs [NNuc]float64) *EMatrix {
	return &EMatrix{Q: q, Freqs: freqs}
}

// Eigen performs eigendecomposition.
func (m *EMatrix) Eigen() error {
	if m.v != nil {
		return nil
	}
	rows, cols := m.Q.Dims()
	if rows != cols || rows != NNuc {
		return errors.New("Q isn't a 4x4 matrix")
	}

	sq := make([]float64, NNuc)
	for i, f := range m.Freqs {
		sq[i] = math.Sqrt(f)
	}
	sym := mat64.NewSymDense(NNuc, nil)
	for i := 0; i < NNuc; i++ {
		for j := i; j < NNuc; j++ {
			sym.SetSym(i, j, sq[i]*m.Q.At(i, j)/sq[j])
		}
	}

	var es mat64.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return errors.New("eigendecomposition failed")
	}
	m.d = es.Values(nil)
	u := mat64.NewDense(NNuc, NNuc, nil)
	u.EigenvectorsSym(&es)

	// Q = diag(1/sqrt(pi)) U D U' diag(sqrt(pi))
	m.v = mat64.NewDense(NNuc, NNuc, nil)
	m.iv = mat64.NewDense(NNuc, NNuc, nil)
	for i := 0; i < NNuc; i++ {
		for k := 0; k < NNuc; k++ {
			m.v.Set(i, k, u.At(i, k)/sq[i])
			m.iv.Set(k, i, u.At(i, k)*sq[i])
		}
	}
	return nil
}

// Exp computes P=e^Qt.
func (m *EMatrix) Exp(t float64) (*mat64.Dense, error) {
	if t < 0 {
		return nil, errors.New("negative time")
	}
	if err := m.Eigen(); err != nil {
		return nil, err
	}
	cD := mat64.NewDense(NNuc, NNuc, nil)
	for i := 0; i < NNuc; i++ {
		cD.Set(i, i, math.Exp(m.d[i]*t))
	}
	vd := mat64.NewDense(NNuc, NNuc, nil)
	vd.Mul(m.v, cD)
	res := mat64.NewDense(NNuc, NNuc, nil)
	res.Mul(vd, m.iv)
	// Remove sligtly negative values
	res.Apply(func(r, c int, v float64) float64 {
		return math.Max(0, v)
	}, res)
	return res, nil
}
