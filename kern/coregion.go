package kern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	coregion *Coregion
	_        Kernel = coregion
)

// Coregion models covariance between discrete output channels. Inputs
// are integer category indices (cast from float column 0), and the
// kernel is an indexing of the positive-semidefinite matrix
//
//	B = W W^T + diag(kappa)
//
// where W is output_dim x rank and kappa is a positive vector.
type Coregion struct {
	Kern
	outputDim int
	rank      int
	w         *Param
	kappa     *Param
}

func NewCoregion(inputDim, outputDim, rank int, opts ...Option) (*Coregion, error) {
	if inputDim != 1 {
		return nil, &InvariantError{Op: "coregion", Reason: fmt.Sprintf("input dimension is %d, must be 1", inputDim)}
	}
	if outputDim <= 0 || rank <= 0 {
		return nil, &InvariantError{Op: "coregion", Reason: "output dimension and rank must be positive"}
	}
	base, err := newKern("coregion", inputDim, newConfig(opts))
	if err != nil {
		return nil, err
	}
	w, err := NewParam("w", false, make([]float64, outputDim*rank)...)
	if err != nil {
		return nil, err
	}
	ones := make([]float64, outputDim)
	for i := range ones {
		ones[i] = 1
	}
	kappa, err := NewParam("kappa", true, ones...)
	if err != nil {
		return nil, err
	}
	return &Coregion{Kern: base, outputDim: outputDim, rank: rank, w: w, kappa: kappa}, nil
}

func (k *Coregion) OutputDim() int { return k.outputDim }

func (k *Coregion) Rank() int { return k.rank }

// W is the low-rank factor, stored row-major as output_dim x rank.
func (k *Coregion) W() *Param { return k.w }

func (k *Coregion) Kappa() *Param { return k.kappa }

// B materializes W W^T + diag(kappa).
func (k *Coregion) B() *mat.Dense {
	w := mat.NewDense(k.outputDim, k.rank, k.w.Values())
	out := mat.NewDense(k.outputDim, k.outputDim, nil)
	out.Mul(w, w.T())
	for i := 0; i < k.outputDim; i++ {
		out.Set(i, i, out.At(i, i)+k.kappa.At(i))
	}
	return out
}

func (k *Coregion) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	if x2d == nil {
		x2d = xd
	}
	ix, err := k.categories(xd)
	if err != nil {
		return nil, err
	}
	ix2, err := k.categories(x2d)
	if err != nil {
		return nil, err
	}
	b := k.B()
	out := mat.NewDense(len(ix), len(ix2), nil)
	for i, a := range ix {
		for j, c := range ix2 {
			out.Set(i, j, b.At(a, c))
		}
	}
	return out, nil
}

func (k *Coregion) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	xd, _, err := k.SliceInputs(x, nil, presliced)
	if err != nil {
		return nil, err
	}
	ix, err := k.categories(xd)
	if err != nil {
		return nil, err
	}
	w := k.w.Values()
	out := mat.NewVecDense(len(ix), nil)
	for i, a := range ix {
		var s float64
		for r := 0; r < k.rank; r++ {
			v := w[a*k.rank+r]
			s += v * v
		}
		out.SetVec(i, s+k.kappa.At(a))
	}
	return out, nil
}

func (k *Coregion) categories(x *mat.Dense) ([]int, error) {
	n, _ := x.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		c := int(x.At(i, 0))
		if c < 0 || c >= k.outputDim {
			return nil, &ShapeError{Op: "coregion", Axis: "category index", Got: c, Want: k.outputDim}
		}
		out[i] = c
	}
	return out, nil
}
