package kern

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	cosine *Cosine
	_      Kernel      = cosine
	_      PointEvaler = cosine
)

// Cosine is the cosine kernel, :math:`\sigma^2 \cos(r)`.
type Cosine struct {
	Stationary
}

func NewCosine(inputDim int, opts ...Option) (*Cosine, error) {
	s, err := newStationary("cosine", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Cosine{Stationary: s}, nil
}

func (k *Cosine) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	out := k.EuclidDist(xd, x2d)
	v := k.variance.Scalar()
	out.Apply(func(_, _ int, r float64) float64 { return v * math.Cos(r) }, out)
	return out, nil
}

func (k *Cosine) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	return hyperdual.Scale(k.variance.Scalar(), hyperdual.Cos(k.rPoint(x, z)))
}
