package quad

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

// Integrand evaluates the wrapped expression at a batch of points (one
// per row) and returns one fixed-width output row per point.
type Integrand func(x *mat.Dense) (*mat.Dense, error)

// gaussianQuad approximates E[f(x)] for x ~ N(mu_i, cov_i), row by row:
// the Gauss-Hermite grid is mapped through x = mu + sqrt(2) L xi with
// L the Cholesky factor of cov, and the integrand values are reduced
// with the normalized tensor weights. Rows are independent and are
// evaluated concurrently.
func gaussianQuad(f Integrand, mu *mat.Dense, cov *kern.CovSeq, h, din, dout int) (*mat.Dense, error) {
	n, d := mu.Dims()
	if d != din {
		return nil, &kern.ShapeError{Op: "quadrature", Axis: "mean columns", Got: d, Want: din}
	}
	if cov.Len() != n {
		return nil, &kern.ShapeError{Op: "quadrature", Axis: "covariance rows", Got: cov.Len(), Want: n}
	}
	if cov.Dim() != din {
		return nil, &kern.ShapeError{Op: "quadrature", Axis: "covariance dimensions", Got: cov.Dim(), Want: din}
	}
	nodes, weights := hermiteGrid(h, din)
	p := len(weights)
	sqrt2 := math.Sqrt2

	out := mat.NewDense(n, dout, nil)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			l, err := cholFactor(cov.At(i), i)
			if err != nil {
				return err
			}
			xs := mat.NewDense(p, din, nil)
			xs.Mul(nodes, l.T())
			for r := 0; r < p; r++ {
				for j := 0; j < din; j++ {
					xs.Set(r, j, sqrt2*xs.At(r, j)+mu.At(i, j))
				}
			}
			fv, err := f(xs)
			if err != nil {
				return err
			}
			fr, fc := fv.Dims()
			if fr != p || fc != dout {
				return &kern.ShapeError{Op: "quadrature", Axis: "integrand columns", Got: fc, Want: dout}
			}
			col := make([]float64, p)
			for j := 0; j < dout; j++ {
				mat.Col(col, j, fv)
				out.Set(i, j, floats.Dot(weights, col))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// cholFactor returns the lower Cholesky factor of s, retrying once with
// a small diagonal jitter since input covariances are often only
// semidefinite.
func cholFactor(s *mat.SymDense, row int) (*mat.TriDense, error) {
	var ch mat.Cholesky
	if !ch.Factorize(s) {
		d := s.SymmetricDim()
		jittered := mat.NewSymDense(d, nil)
		jittered.CopySym(s)
		for i := 0; i < d; i++ {
			jittered.SetSym(i, i, jittered.At(i, i)+1e-10)
		}
		if !ch.Factorize(jittered) {
			return nil, &kern.InvariantError{
				Op:     "quadrature",
				Reason: fmt.Sprintf("covariance for row %d is not positive definite", row),
			}
		}
	}
	var l mat.TriDense
	ch.LTo(&l)
	return &l, nil
}
