package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	exponential *Exponential
	_           Kernel      = exponential
	_           PointEvaler = exponential
)

// Exponential is the exponential kernel, :math:`\sigma^2 \exp(-r/2)`.
type Exponential struct {
	Stationary
}

func NewExponential(inputDim int, opts ...Option) (*Exponential, error) {
	s, err := newStationary("exponential", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Exponential{Stationary: s}, nil
}

func (k *Exponential) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.EuclidDist(xd, x2d)
	v := k.variance.Scalar()
	out.Apply(func(_, _ int, r float64) float64 { return v * math.Exp(-r/2) }, out)
	return out, nil
}

func (k *Exponential) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	r := k.rPoint(x, z)
	return hyperdual.Scale(k.variance.Scalar(), hyperdual.Exp(hyperdual.Scale(-0.5, r)))
}
