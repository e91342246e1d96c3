package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	rbf *RBF
	_   Kernel      = rbf
	_   PointEvaler = rbf
)

// RBF is the radial basis function (squared exponential) kernel,
// :math:`\sigma^2 \exp(-r^2/2)`.
type RBF struct {
	Stationary
}

func NewRBF(inputDim int, opts ...Option) (*RBF, error) {
	s, err := newStationary("rbf", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &RBF{Stationary: s}, nil
}

func (k *RBF) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.SquareDist(xd, x2d)
	v := k.variance.Scalar()
	out.Apply(func(_, _ int, r2 float64) float64 { return v * math.Exp(-r2/2) }, out)
	return out, nil
}

func (k *RBF) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	r2 := k.r2Point(x, z)
	return hyperdual.Scale(k.variance.Scalar(), hyperdual.Exp(hyperdual.Scale(-0.5, r2)))
}
