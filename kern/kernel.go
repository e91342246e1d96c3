// Package kern implements covariance functions for Gaussian-process
// models: a family of base kernels, dimension-subset selection, and
// algebraic combination of kernels by sum and product.
package kern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const defaultGaussHermitePoints = 20

// Kernel is a covariance function between sets of input points. K
// produces the full N x M covariance matrix between the rows of x and
// x2 (x2 nil means K(x, x)); Kdiag is the fast diagonal-only path.
// Inputs are sliced through the kernel's active dimensions unless the
// caller passes presliced, which internal composition uses to avoid
// slicing twice.
type Kernel interface {
	InputDim() int
	ActiveDims() Dims
	GaussHermitePoints() int
	K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error)
	Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error)
}

// Kern is the embeddable base of every kernel: it owns the input
// dimension, the active-dimension selector and the quadrature point
// count.
type Kern struct {
	inputDim int
	dims     Dims
	gh       int
}

// NewKern builds a kernel base for external Kernel implementations.
func NewKern(inputDim int, opts ...Option) (Kern, error) {
	return newKern("kernel", inputDim, newConfig(opts))
}

func newKern(op string, inputDim int, cfg *config) (Kern, error) {
	if inputDim <= 0 {
		return Kern{}, &InvariantError{Op: op, Reason: "input dimension must be positive"}
	}
	if cfg.ghPoints < 0 {
		return Kern{}, &InvariantError{Op: op, Reason: "negative Gauss-Hermite point count"}
	}
	dims := RangeDims(inputDim)
	if cfg.activeDims != nil {
		if len(cfg.activeDims) != inputDim {
			return Kern{}, &InvariantError{
				Op:     op,
				Reason: fmt.Sprintf("%d active dimensions for input dimension %d", len(cfg.activeDims), inputDim),
			}
		}
		for _, ix := range cfg.activeDims {
			if ix < 0 {
				return Kern{}, &InvariantError{Op: op, Reason: "negative active dimension index"}
			}
		}
		dims = ExplicitDims(cfg.activeDims...)
	}
	return Kern{inputDim: inputDim, dims: dims, gh: cfg.ghPoints}, nil
}

func (k *Kern) InputDim() int { return k.inputDim }

func (k *Kern) ActiveDims() Dims { return k.dims }

func (k *Kern) GaussHermitePoints() int { return k.gh }

// SliceInputs narrows x and x2 to the kernel's active dimensions, or
// only validates their width when the caller already sliced them.
func (k *Kern) SliceInputs(x, x2 mat.Matrix, presliced bool) (*mat.Dense, *mat.Dense, error) {
	if !presliced {
		return k.dims.Slice(x, x2)
	}
	xd := denseOf(x)
	x2d := denseOf(x2)
	if _, c := xd.Dims(); c != k.inputDim {
		return nil, nil, &ShapeError{Op: "presliced input", Axis: "columns", Got: c, Want: k.inputDim}
	}
	if x2d != nil {
		if _, c := x2d.Dims(); c != k.inputDim {
			return nil, nil, &ShapeError{Op: "presliced input", Axis: "columns", Got: c, Want: k.inputDim}
		}
	}
	return xd, x2d, nil
}

func denseOf(x mat.Matrix) *mat.Dense {
	if x == nil {
		return nil
	}
	if d, ok := x.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(x)
}
