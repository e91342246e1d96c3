package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	matern52 *Matern52
	_        Kernel      = matern52
	_        PointEvaler = matern52
)

// Matern52 is the Matern 5/2 kernel,
// :math:`\sigma^2 (1 + \sqrt{5} r + 5 r^2 / 3) \exp(-\sqrt{5} r)`.
type Matern52 struct {
	Stationary
}

func NewMatern52(inputDim int, opts ...Option) (*Matern52, error) {
	s, err := newStationary("matern52", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Matern52{Stationary: s}, nil
}

func (k *Matern52) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.EuclidDist(xd, x2d)
	v := k.variance.Scalar()
	sqrt5 := math.Sqrt(5)
	out.Apply(func(_, _ int, r float64) float64 {
		return v * (1 + sqrt5*r + 5.0/3.0*r*r) * math.Exp(-sqrt5*r)
	}, out)
	return out, nil
}

func (k *Matern52) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	r := k.rPoint(x, z)
	sr := hyperdual.Scale(math.Sqrt(5), r)
	poly := hyperdual.Add(hyperdual.Number{Real: 1},
		hyperdual.Add(sr, hyperdual.Scale(5.0/3.0, hyperdual.Mul(r, r))))
	return hyperdual.Scale(k.variance.Scalar(),
		hyperdual.Mul(poly, hyperdual.Exp(hyperdual.Scale(-1, sr))))
}
