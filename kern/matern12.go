package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	matern12 *Matern12
	_        Kernel      = matern12
	_        PointEvaler = matern12
)

// Matern12 is the Matern 1/2 kernel, :math:`\sigma^2 \exp(-r)`.
type Matern12 struct {
	Stationary
}

func NewMatern12(inputDim int, opts ...Option) (*Matern12, error) {
	s, err := newStationary("matern12", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Matern12{Stationary: s}, nil
}

func (k *Matern12) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.EuclidDist(xd, x2d)
	v := k.variance.Scalar()
	out.Apply(func(_, _ int, r float64) float64 { return v * math.Exp(-r) }, out)
	return out, nil
}

func (k *Matern12) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	r := k.rPoint(x, z)
	return hyperdual.Scale(k.variance.Scalar(), hyperdual.Exp(hyperdual.Scale(-1, r)))
}
