package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	linear *Linear
	_      Kernel      = linear
	_      PointEvaler = linear
)

// Linear is the linear kernel, :math:`K(x, x') = \sigma^2 x \cdot x'`.
// With ARD there is one variance per input dimension.
type Linear struct {
	Kern
	variance *Param
	ard      bool
}

func NewLinear(inputDim int, opts ...Option) (*Linear, error) {
	return newLinear("linear", inputDim, newConfig(opts))
}

func newLinear(op string, inputDim int, cfg *config) (*Linear, error) {
	base, err := newKern(op, inputDim, cfg)
	if err != nil {
		return nil, err
	}
	vals := cfg.variance
	if cfg.ard {
		vals = broadcast(vals, inputDim)
		if vals == nil {
			return nil, &ShapeError{Op: op, Axis: "variance values", Got: len(cfg.variance), Want: inputDim}
		}
	} else if len(vals) != 1 {
		return nil, &ShapeError{Op: op, Axis: "variance values", Got: len(vals), Want: 1}
	}
	v, err := NewParam("variance", true, vals...)
	if err != nil {
		return nil, err
	}
	return &Linear{Kern: base, variance: v, ard: cfg.ard}, nil
}

func (k *Linear) Variance() *Param { return k.variance }

func (k *Linear) ARD() bool { return k.ard }

func (k *Linear) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	if x2d == nil {
		x2d = xd
	}
	r, c := xd.Dims()
	xv := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		v := k.variance.At(j)
		for i := 0; i < r; i++ {
			xv.Set(i, j, xd.At(i, j)*v)
		}
	}
	var out mat.Dense
	out.Mul(xv, x2d.T())
	return &out, nil
}

func (k *Linear) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	xd, _, err := k.SliceInputs(x, nil, presliced)
	if err != nil {
		return nil, err
	}
	r, c := xd.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		var s float64
		for j := 0; j < c; j++ {
			v := xd.At(i, j)
			s += v * v * k.variance.At(j)
		}
		out.SetVec(i, s)
	}
	return out, nil
}

func (k *Linear) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	var s hyperdual.Number
	for d := range x {
		s = hyperdual.Add(s, hyperdual.Scale(k.variance.At(d), hyperdual.Mul(x[d], z[d])))
	}
	return s
}

var (
	polynomial *Polynomial
	_          Kernel      = polynomial
	_          PointEvaler = polynomial
)

// Polynomial raises the linear kernel to a degree:
// :math:`(\sigma^2 x \cdot x' + c)^d`.
type Polynomial struct {
	Linear
	degree float64
	offset *Param
}

func NewPolynomial(inputDim int, opts ...Option) (*Polynomial, error) {
	cfg := newConfig(opts)
	lin, err := newLinear("polynomial", inputDim, cfg)
	if err != nil {
		return nil, err
	}
	off, err := NewParam("offset", true, cfg.offset)
	if err != nil {
		return nil, err
	}
	return &Polynomial{Linear: *lin, degree: cfg.degree, offset: off}, nil
}

func (k *Polynomial) Degree() float64 { return k.degree }

func (k *Polynomial) Offset() *Param { return k.offset }

func (k *Polynomial) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	out, err := k.Linear.K(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	off := k.offset.Scalar()
	out.Apply(func(_, _ int, v float64) float64 { return math.Pow(v+off, k.degree) }, out)
	return out, nil
}

func (k *Polynomial) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	out, err := k.Linear.Kdiag(x, presliced)
	if err != nil {
		return nil, err
	}
	off := k.offset.Scalar()
	for i := 0; i < out.Len(); i++ {
		out.SetVec(i, math.Pow(out.AtVec(i)+off, k.degree))
	}
	return out, nil
}

func (k *Polynomial) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	lin := k.Linear.KPoint(x, z)
	return hyperdual.PowReal(hyperdual.Add(lin, hyperdual.Number{Real: k.offset.Scalar()}), k.degree)
}
