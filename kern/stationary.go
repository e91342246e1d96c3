package kern

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

// distJitter keeps sqrt differentiable at r = 0.
const distJitter = 1e-12

// Stationary is the base of kernels that depend only on the distance
// r = ||x - x'|| between points. With ARD there is one lengthscale per
// dimension, otherwise a single lengthscale is shared.
type Stationary struct {
	Kern
	variance     *Param
	lengthscales *Param
	ard          bool
}

func newStationary(op string, inputDim int, cfg *config) (Stationary, error) {
	base, err := newKern(op, inputDim, cfg)
	if err != nil {
		return Stationary{}, err
	}
	if len(cfg.variance) != 1 {
		return Stationary{}, &ShapeError{Op: op, Axis: "variance values", Got: len(cfg.variance), Want: 1}
	}
	v, err := NewParam("variance", true, cfg.variance[0])
	if err != nil {
		return Stationary{}, err
	}
	ls, err := lengthscaleParam(op, inputDim, cfg)
	if err != nil {
		return Stationary{}, err
	}
	return Stationary{Kern: base, variance: v, lengthscales: ls, ard: cfg.ard}, nil
}

func lengthscaleParam(op string, inputDim int, cfg *config) (*Param, error) {
	vals := cfg.lengthscales
	if cfg.ard {
		vals = broadcast(vals, inputDim)
		if vals == nil {
			return nil, &ShapeError{Op: op, Axis: "lengthscales", Got: len(cfg.lengthscales), Want: inputDim}
		}
	} else if len(vals) != 1 {
		return nil, &ShapeError{Op: op, Axis: "lengthscales", Got: len(vals), Want: 1}
	}
	return NewParam("lengthscales", true, vals...)
}

// broadcast expands a scalar to n values, passes n values through, and
// rejects anything else.
func broadcast(vals []float64, n int) []float64 {
	switch len(vals) {
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = vals[0]
		}
		return out
	case n:
		return vals
	}
	return nil
}

func (s *Stationary) Variance() *Param { return s.variance }

func (s *Stationary) Lengthscales() *Param { return s.lengthscales }

func (s *Stationary) ARD() bool { return s.ard }

// scaled divides each column of x by its lengthscale.
func (s *Stationary) scaled(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		l := s.lengthscales.At(j)
		for i := 0; i < r; i++ {
			out.Set(i, j, x.At(i, j)/l)
		}
	}
	return out
}

// SquareDist computes the pairwise squared distances between the rows of
// x and x2 (x2 nil means x against itself) after lengthscale rescaling,
// using ||a-b||^2 = ||a||^2 + ||b||^2 - 2 a.b to avoid materializing the
// difference tensor.
func (s *Stationary) SquareDist(x, x2 *mat.Dense) *mat.Dense {
	xs := s.scaled(x)
	xn := rowNorms(xs)
	x2s, x2n := xs, xn
	if x2 != nil {
		x2s = s.scaled(x2)
		x2n = rowNorms(x2s)
	}
	var g mat.Dense
	g.Mul(xs, x2s.T())
	n, m := g.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			g.Set(i, j, xn[i]+x2n[j]-2*g.At(i, j))
		}
	}
	return &g
}

// EuclidDist is sqrt(SquareDist + jitter).
func (s *Stationary) EuclidDist(x, x2 *mat.Dense) *mat.Dense {
	r2 := s.SquareDist(x, x2)
	r2.Apply(func(_, _ int, v float64) float64 { return math.Sqrt(v + distJitter) }, r2)
	return r2
}

func (s *Stationary) Kdiag(x mat.Matrix, _ bool) (*mat.VecDense, error) {
	n, _ := x.Dims()
	out := mat.NewVecDense(n, nil)
	v := s.variance.Scalar()
	for i := 0; i < n; i++ {
		out.SetVec(i, v)
	}
	return out, nil
}

// r2Point is the scalar, differentiable counterpart of SquareDist for a
// single pair of (already gathered) points.
func (s *Stationary) r2Point(x, z []hyperdual.Number) hyperdual.Number {
	var r2 hyperdual.Number
	for d := range x {
		diff := hyperdual.Scale(1/s.lengthscales.At(d), hyperdual.Sub(x[d], z[d]))
		r2 = hyperdual.Add(r2, hyperdual.Mul(diff, diff))
	}
	return r2
}

func (s *Stationary) rPoint(x, z []hyperdual.Number) hyperdual.Number {
	return hyperdual.Sqrt(hyperdual.Add(s.r2Point(x, z), hyperdual.Number{Real: distJitter}))
}

func rowNorms(x *mat.Dense) []float64 {
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		row := x.RawRowView(i)
		out[i] = floats.Dot(row, row)
	}
	return out
}
