package kern

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

// acosJitter keeps the arc-cosine argument strictly inside (-1, 1).
const acosJitter = 1e-15

var (
	arcCosine *ArcCosine
	_         Kernel      = arcCosine
	_         PointEvaler = arcCosine
)

// ArcCosine mimics the computation of a single-layer neural network with
// a rectified-monomial activation of the given order (Cho & Saul, 2009).
// Orders 0, 1 and 2 are implemented.
type ArcCosine struct {
	Kern
	order           int
	variance        *Param
	biasVariance    *Param
	weightVariances *Param
	ard             bool
}

func NewArcCosine(inputDim, order int, opts ...Option) (*ArcCosine, error) {
	cfg := newConfig(opts)
	if order < 0 || order > 2 {
		return nil, &ConfigError{Op: "arccosine", Reason: fmt.Sprintf("order %d is not implemented", order)}
	}
	base, err := newKern("arccosine", inputDim, cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.variance) != 1 {
		return nil, &ShapeError{Op: "arccosine", Axis: "variance values", Got: len(cfg.variance), Want: 1}
	}
	v, err := NewParam("variance", true, cfg.variance[0])
	if err != nil {
		return nil, err
	}
	b, err := NewParam("bias_variance", true, cfg.biasVariance)
	if err != nil {
		return nil, err
	}
	wv := cfg.weightVariances
	if cfg.ard {
		wv = broadcast(wv, inputDim)
		if wv == nil {
			return nil, &ShapeError{Op: "arccosine", Axis: "weight variances", Got: len(cfg.weightVariances), Want: inputDim}
		}
	} else if len(wv) != 1 {
		return nil, &ShapeError{Op: "arccosine", Axis: "weight variances", Got: len(wv), Want: 1}
	}
	w, err := NewParam("weight_variances", true, wv...)
	if err != nil {
		return nil, err
	}
	return &ArcCosine{Kern: base, order: order, variance: v, biasVariance: b, weightVariances: w, ard: cfg.ard}, nil
}

func (k *ArcCosine) Order() int { return k.order }

func (k *ArcCosine) Variance() *Param { return k.variance }

// weightedProduct is <x, x'>_w = sum_d w_d x_d x'_d + bias.
func (k *ArcCosine) weightedProduct(x, x2 []float64) float64 {
	s := k.biasVariance.Scalar()
	for d := range x {
		s += k.weightVariances.At(d) * x[d] * x2[d]
	}
	return s
}

// j is the order-dependent angular function of the kernel family.
func (k *ArcCosine) j(theta float64) float64 {
	switch k.order {
	case 0:
		return math.Pi - theta
	case 1:
		return math.Sin(theta) + (math.Pi-theta)*math.Cos(theta)
	default:
		c := math.Cos(theta)
		return 3*math.Sin(theta)*c + (math.Pi-theta)*(1+2*c*c)
	}
}

func (k *ArcCosine) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	if x2d == nil {
		x2d = xd
	}
	n, _ := xd.Dims()
	m, _ := x2d.Dims()
	xden := make([]float64, n)
	for i := 0; i < n; i++ {
		row := xd.RawRowView(i)
		xden[i] = math.Sqrt(k.weightedProduct(row, row))
	}
	x2den := make([]float64, m)
	for j := 0; j < m; j++ {
		row := x2d.RawRowView(j)
		x2den[j] = math.Sqrt(k.weightedProduct(row, row))
	}
	v := k.variance.Scalar()
	order := float64(k.order)
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			cosTheta := k.weightedProduct(xd.RawRowView(i), x2d.RawRowView(j)) / xden[i] / x2den[j]
			theta := math.Acos(acosJitter + (1-2*acosJitter)*cosTheta)
			out.Set(i, j, v/math.Pi*k.j(theta)*
				math.Pow(xden[i], order)*math.Pow(x2den[j], order))
		}
	}
	return out, nil
}

func (k *ArcCosine) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	xd, _, err := k.SliceInputs(x, nil, presliced)
	if err != nil {
		return nil, err
	}
	n, _ := xd.Dims()
	v := k.variance.Scalar()
	j0 := k.j(0)
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		row := xd.RawRowView(i)
		out.SetVec(i, v/math.Pi*j0*math.Pow(k.weightedProduct(row, row), float64(k.order)))
	}
	return out, nil
}

func (k *ArcCosine) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	x, z = gatherPoint(k.ActiveDims(), x), gatherPoint(k.ActiveDims(), z)
	wp := func(a, b []hyperdual.Number) hyperdual.Number {
		s := hyperdual.Number{Real: k.biasVariance.Scalar()}
		for d := range a {
			s = hyperdual.Add(s, hyperdual.Scale(k.weightVariances.At(d), hyperdual.Mul(a[d], b[d])))
		}
		return s
	}
	nx := hyperdual.Sqrt(wp(x, x))
	nz := hyperdual.Sqrt(wp(z, z))
	cosTheta := hyperdual.Mul(wp(x, z), hyperdual.Inv(hyperdual.Mul(nx, nz)))
	theta := hyperdual.Acos(hyperdual.Add(
		hyperdual.Number{Real: acosJitter}, hyperdual.Scale(1-2*acosJitter, cosTheta)))

	var j hyperdual.Number
	piMinus := hyperdual.Sub(hyperdual.Number{Real: math.Pi}, theta)
	switch k.order {
	case 0:
		j = piMinus
	case 1:
		j = hyperdual.Add(hyperdual.Sin(theta), hyperdual.Mul(piMinus, hyperdual.Cos(theta)))
	default:
		c := hyperdual.Cos(theta)
		j = hyperdual.Add(
			hyperdual.Scale(3, hyperdual.Mul(hyperdual.Sin(theta), c)),
			hyperdual.Mul(piMinus, hyperdual.Add(hyperdual.Number{Real: 1}, hyperdual.Scale(2, hyperdual.Mul(c, c)))))
	}
	order := float64(k.order)
	return hyperdual.Scale(k.variance.Scalar()/math.Pi,
		hyperdual.Mul(j, hyperdual.Mul(hyperdual.PowReal(nx, order), hyperdual.PowReal(nz, order))))
}
