package quad

import (
	"gonum.org/v1/gonum/mat"

	"go.uber.org/zap"

	"github.com/zcmail/gpkern/kern"
	"github.com/zcmail/gpkern/settings"
	"github.com/zcmail/gpkern/utils"
)

// Expectation computes Gaussian expectations of a kernel's output,
// <.>_q(x) with x ~ N(mu, cov), by Gauss-Hermite quadrature. Kernels
// with closed-form expectations can provide their own specializations
// sharing these contracts; this engine is the generic fallback and is
// gated by the global numerics policy.
type Expectation struct {
	Kernel kern.Kernel
}

func NewExpectation(k kern.Kernel) *Expectation {
	return &Expectation{Kernel: k}
}

func (e *Expectation) check() error {
	switch settings.Quadrature() {
	case settings.QuadratureWarn:
		settings.Logger().Warn("using numerical quadrature for kernel expectation",
			zap.String("kernel", kern.TypeName(e.Kernel)),
			zap.Int("points", e.Kernel.GaussHermitePoints()))
	case settings.QuadratureRefuse:
		return &kern.ConfigError{Op: "quadrature", Reason: "disabled by numerics policy"}
	}
	if e.Kernel.GaussHermitePoints() == 0 {
		return &kern.ConfigError{Op: "quadrature", Reason: "kernel allows zero Gauss-Hermite points"}
	}
	return nil
}

// EKdiag computes E[Kdiag(x)] per row of xmu, returning an N-vector.
func (e *Expectation) EKdiag(xmu mat.Matrix, xcov *kern.CovSeq) (*mat.VecDense, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	dims := e.Kernel.ActiveDims()
	xd, _, err := dims.Slice(xmu, nil)
	if err != nil {
		return nil, err
	}
	cd, err := dims.SliceCov(xcov)
	if err != nil {
		return nil, err
	}
	f := func(x *mat.Dense) (*mat.Dense, error) {
		kd, err := e.Kernel.Kdiag(x, true)
		if err != nil {
			return nil, err
		}
		p := kd.Len()
		out := mat.NewDense(p, 1, nil)
		for i := 0; i < p; i++ {
			out.Set(i, 0, kd.AtVec(i))
		}
		return out, nil
	}
	res, err := gaussianQuad(f, xd, cd, e.Kernel.GaussHermitePoints(), e.Kernel.InputDim(), 1)
	if err != nil {
		return nil, err
	}
	n, _ := res.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, res.At(i, 0))
	}
	return out, nil
}

// EKxz computes E[K(x, Z)] per row of xmu, returning N x M.
func (e *Expectation) EKxz(z, xmu mat.Matrix, xcov *kern.CovSeq) (*mat.Dense, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	dims := e.Kernel.ActiveDims()
	xd, zd, err := dims.Slice(xmu, z)
	if err != nil {
		return nil, err
	}
	cd, err := dims.SliceCov(xcov)
	if err != nil {
		return nil, err
	}
	m, _ := zd.Dims()
	f := func(x *mat.Dense) (*mat.Dense, error) {
		return e.Kernel.K(x, zd, true)
	}
	return gaussianQuad(f, xd, cd, e.Kernel.GaussHermitePoints(), e.Kernel.InputDim(), m)
}

// EKzxKxz computes E[K(Z, x) K(x, Z)] per row of xmu, returning one
// M x M matrix per row.
func (e *Expectation) EKzxKxz(z, xmu mat.Matrix, xcov *kern.CovSeq) ([]*mat.Dense, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	dims := e.Kernel.ActiveDims()
	xd, zd, err := dims.Slice(xmu, z)
	if err != nil {
		return nil, err
	}
	cd, err := dims.SliceCov(xcov)
	if err != nil {
		return nil, err
	}
	m, _ := zd.Dims()
	f := func(x *mat.Dense) (*mat.Dense, error) {
		kxz, err := e.Kernel.K(x, zd, true)
		if err != nil {
			return nil, err
		}
		p, _ := kxz.Dims()
		out := mat.NewDense(p, m*m, nil)
		for r := 0; r < p; r++ {
			row := kxz.RawRowView(r)
			for a := 0; a < m; a++ {
				for b := 0; b < m; b++ {
					out.Set(r, a*m+b, row[a]*row[b])
				}
			}
		}
		return out, nil
	}
	res, err := gaussianQuad(f, xd, cd, e.Kernel.GaussHermitePoints(), e.Kernel.InputDim(), m*m)
	if err != nil {
		return nil, err
	}
	n, _ := res.Dims()
	out := make([]*mat.Dense, n)
	for i := 0; i < n; i++ {
		out[i] = mat.NewDense(m, m, append([]float64(nil), res.RawRowView(i)...))
	}
	return out, nil
}

// ExKxz computes E[x_t (x) K(x_{t+1}, Z)] over pairs of consecutive rows
// of xmu: row t of the result is the M x D expectation under the joint
// distribution of (x_t, x_{t+1}), with marginal covariances in xcov and
// the cross-covariance between consecutive rows in xcross. No dimension
// slicing happens here: the outer product must retain the full input
// dimensionality even when the kernel consumes a subset of columns.
func (e *Expectation) ExKxz(z, xmu mat.Matrix, xcov *kern.CovSeq, xcross []*mat.Dense) ([]*mat.Dense, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	xd := mat.DenseCopyOf(xmu)
	n, d := xd.Dims()
	if n < 2 {
		return nil, &kern.ShapeError{Op: "quadrature pairs", Axis: "mean rows", Got: n, Want: 2}
	}
	t := n - 1
	if xcov.Len() < n {
		return nil, &kern.ShapeError{Op: "quadrature pairs", Axis: "covariance rows", Got: xcov.Len(), Want: n}
	}
	if xcov.Dim() != d {
		return nil, &kern.ShapeError{Op: "quadrature pairs", Axis: "covariance dimensions", Got: xcov.Dim(), Want: d}
	}
	if len(xcross) < t {
		return nil, &kern.ShapeError{Op: "quadrature pairs", Axis: "cross-covariance rows", Got: len(xcross), Want: t}
	}
	zd := denseMatrix(z)
	m, _ := zd.Dims()

	// Joint mean and covariance of each consecutive pair.
	joint := mat.NewDense(t, 2*d, nil)
	covs := make([]*mat.SymDense, t)
	for i := 0; i < t; i++ {
		joint.SetRow(i, utils.ConcatVecs(2*d,
			mat.NewVecDense(d, append([]float64(nil), xd.RawRowView(i)...)),
			mat.NewVecDense(d, append([]float64(nil), xd.RawRowView(i+1)...))).RawVector().Data)
		covs[i] = utils.JoinSym(xcov.At(i), xcov.At(i+1), xcross[i])
	}

	f := func(x *mat.Dense) (*mat.Dense, error) {
		p, _ := x.Dims()
		second := mat.DenseCopyOf(x.Slice(0, p, d, 2*d))
		kxz, err := e.Kernel.K(second, zd, false)
		if err != nil {
			return nil, err
		}
		out := mat.NewDense(p, m*d, nil)
		for r := 0; r < p; r++ {
			for a := 0; a < m; a++ {
				for b := 0; b < d; b++ {
					out.Set(r, a*d+b, kxz.At(r, a)*x.At(r, b))
				}
			}
		}
		return out, nil
	}
	res, err := gaussianQuad(f, joint, kern.FullCov(covs...), e.Kernel.GaussHermitePoints(), 2*d, m*d)
	if err != nil {
		return nil, err
	}
	out := make([]*mat.Dense, t)
	for i := 0; i < t; i++ {
		out[i] = mat.NewDense(m, d, append([]float64(nil), res.RawRowView(i)...))
	}
	return out, nil
}

func denseMatrix(x mat.Matrix) *mat.Dense {
	if d, ok := x.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(x)
}
