package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	matern32 *Matern32
	_        Kernel      = matern32
	_        PointEvaler = matern32
)

// Matern32 is the Matern 3/2 kernel,
// :math:`\sigma^2 (1 + \sqrt{3} r) \exp(-\sqrt{3} r)`.
type Matern32 struct {
	Stationary
}

func NewMatern32(inputDim int, opts ...Option) (*Matern32, error) {
	s, err := newStationary("matern32", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Matern32{Stationary: s}, nil
}

func (k *Matern32) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.EuclidDist(xd, x2d)
	v := k.variance.Scalar()
	sqrt3 := math.Sqrt(3)
	out.Apply(func(_, _ int, r float64) float64 {
		return v * (1 + sqrt3*r) * math.Exp(-sqrt3*r)
	}, out)
	return out, nil
}

func (k *Matern32) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	sr := hyperdual.Scale(math.Sqrt(3), k.rPoint(x, z))
	one := hyperdual.Number{Real: 1}
	return hyperdual.Scale(k.variance.Scalar(),
		hyperdual.Mul(hyperdual.Add(one, sr), hyperdual.Exp(hyperdual.Scale(-1, sr))))
}
