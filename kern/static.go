package kern

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/zcmail/gpkern/utils"
)

// Static is the base of kernels that ignore the input values entirely;
// the only parameter is a variance.
type Static struct {
	Kern
	variance *Param
}

func newStatic(op string, inputDim int, cfg *config) (Static, error) {
	base, err := newKern(op, inputDim, cfg)
	if err != nil {
		return Static{}, err
	}
	if len(cfg.variance) != 1 {
		return Static{}, &ShapeError{Op: op, Axis: "variance values", Got: len(cfg.variance), Want: 1}
	}
	v, err := NewParam("variance", true, cfg.variance[0])
	if err != nil {
		return Static{}, err
	}
	return Static{Kern: base, variance: v}, nil
}

func (s *Static) Variance() *Param { return s.variance }

func (s *Static) Kdiag(x mat.Matrix, _ bool) (*mat.VecDense, error) {
	n, _ := x.Dims()
	out := mat.NewVecDense(n, nil)
	v := s.variance.Scalar()
	for i := 0; i < n; i++ {
		out.SetVec(i, v)
	}
	return out, nil
}

var (
	white *White
	_     Kernel = white
)

// White is uncorrelated noise: variance on the diagonal of K(x, x) and
// zero covariance between any two distinct inputs.
type White struct {
	Static
}

func NewWhite(inputDim int, opts ...Option) (*White, error) {
	s, err := newStatic("white", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &White{Static: s}, nil
}

func (k *White) K(x, x2 mat.Matrix, _ bool) (*mat.Dense, error) {
	n, _ := x.Dims()
	if x2 == nil {
		out := utils.Eye(n)
		out.Scale(k.variance.Scalar(), out)
		return out, nil
	}
	m, _ := x2.Dims()
	return mat.NewDense(n, m, nil), nil
}

var (
	constant *Constant
	_        Kernel      = constant
	_        PointEvaler = constant
)

// Constant fills every entry of K with the variance regardless of the
// inputs.
type Constant struct {
	Static
}

func NewConstant(inputDim int, opts ...Option) (*Constant, error) {
	s, err := newStatic("constant", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &Constant{Static: s}, nil
}

func (k *Constant) K(x, x2 mat.Matrix, _ bool) (*mat.Dense, error) {
	n, _ := x.Dims()
	m := n
	if x2 != nil {
		m, _ = x2.Dims()
	}
	out := mat.NewDense(n, m, nil)
	v := k.variance.Scalar()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func (k *Constant) KPoint(_, _ []hyperdual.Number) hyperdual.Number {
	return hyperdual.Number{Real: k.variance.Scalar()}
}

// Bias is another name for the Constant kernel.
type Bias struct {
	Constant
}

func NewBias(inputDim int, opts ...Option) (*Bias, error) {
	c, err := NewConstant(inputDim, opts...)
	if err != nil {
		return nil, err
	}
	return &Bias{Constant: *c}, nil
}
