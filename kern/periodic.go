package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	periodic *Periodic
	_        Kernel      = periodic
	_        PointEvaler = periodic
)

// Periodic maps inputs through sin(pi (x - x') / period) before applying
// a squared-exponential form. No ARD on lengthscale or period.
type Periodic struct {
	Kern
	variance     *Param
	lengthscales *Param
	period       *Param
}

func NewPeriodic(inputDim int, opts ...Option) (*Periodic, error) {
	cfg := newConfig(opts)
	base, err := newKern("periodic", inputDim, cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.variance) != 1 {
		return nil, &ShapeError{Op: "periodic", Axis: "variance values", Got: len(cfg.variance), Want: 1}
	}
	if len(cfg.lengthscales) != 1 {
		return nil, &ShapeError{Op: "periodic", Axis: "lengthscales", Got: len(cfg.lengthscales), Want: 1}
	}
	v, err := NewParam("variance", true, cfg.variance[0])
	if err != nil {
		return nil, err
	}
	ls, err := NewParam("lengthscales", true, cfg.lengthscales[0])
	if err != nil {
		return nil, err
	}
	p, err := NewParam("period", true, cfg.period)
	if err != nil {
		return nil, err
	}
	return &Periodic{Kern: base, variance: v, lengthscales: ls, period: p}, nil
}

func (k *Periodic) Variance() *Param { return k.variance }

func (k *Periodic) Lengthscales() *Param { return k.lengthscales }

func (k *Periodic) Period() *Param { return k.period }

func (k *Periodic) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	if x2d == nil {
		x2d = xd
	}
	n, d := xd.Dims()
	m, _ := x2d.Dims()
	v := k.variance.Scalar()
	l := k.lengthscales.Scalar()
	p := k.period.Scalar()
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			var r2 float64
			for e := 0; e < d; e++ {
				s := math.Sin(math.Pi*(xd.At(i, e)-x2d.At(j, e))/p) / l
				r2 += s * s
			}
			out.Set(i, j, v*math.Exp(-r2/2))
		}
	}
	return out, nil
}

func (k *Periodic) Kdiag(x mat.Matrix, _ bool) (*mat.VecDense, error) {
	n, _ := x.Dims()
	out := mat.NewVecDense(n, nil)
	v := k.variance.Scalar()
	for i := 0; i < n; i++ {
		out.SetVec(i, v)
	}
	return out, nil
}

func (k *Periodic) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	l := k.lengthscales.Scalar()
	p := k.period.Scalar()
	var r2 hyperdual.Number
	for d := range x {
		s := hyperdual.Scale(1/l, hyperdual.Sin(hyperdual.Scale(math.Pi/p, hyperdual.Sub(x[d], z[d]))))
		r2 = hyperdual.Add(r2, hyperdual.Mul(s, s))
	}
	return hyperdual.Scale(k.variance.Scalar(), hyperdual.Exp(hyperdual.Scale(-0.5, r2)))
}
