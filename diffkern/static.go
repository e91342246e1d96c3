package diffkern

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

var (
	static *Static
	_      kern.Kernel = static
)

// Static wraps a base kernel with derivative structure that is fixed at
// construction: one Descriptor per row of the left and right inputs.
// K evaluates the base kernel once on the raw coordinates and then, per
// entry, chains the left descriptor's partial derivatives followed by
// the right descriptor's, differentiating the scalar kernel expression
// automatically.
type Static struct {
	kern.Kern
	base        kern.Kernel
	eval        kern.PointEvaler
	left, right []Descriptor
}

func NewStatic(inputDim int, base kern.Kernel, left, right []Descriptor, opts ...kern.Option) (*Static, error) {
	ev, err := pointEvaler("static derivative kernel", base)
	if err != nil {
		return nil, err
	}
	k, err := kern.NewKern(inputDim, opts...)
	if err != nil {
		return nil, err
	}
	for _, d := range append(append([]Descriptor(nil), left...), right...) {
		if err := d.validate("static derivative kernel", inputDim); err != nil {
			return nil, err
		}
	}
	return &Static{Kern: k, base: base, eval: ev, left: left, right: right}, nil
}

func (s *Static) Base() kern.Kernel { return s.base }

func (s *Static) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := s.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	right := s.right
	if x2d == nil {
		x2d = xd
		right = s.left
	}
	return derivedK(s.base, s.eval, xd, x2d, s.left, right)
}

// Kdiag computes the full K(X, X) and extracts its diagonal. This is
// deliberate: base-kernel Kdiag shortcuts often drop the dependence on X
// (a stationary Kdiag is just the variance), which would zero out every
// derivative term.
func (s *Static) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	return diagOfK(s, x, presliced)
}

func pointEvaler(op string, base kern.Kernel) (kern.PointEvaler, error) {
	if base == nil {
		return nil, &kern.InvariantError{Op: op, Reason: "nil base kernel"}
	}
	if !kern.CanEvalPoint(base) {
		return nil, &kern.ConfigError{
			Op:     op,
			Reason: "base kernel " + kern.TypeName(base) + " is not pointwise differentiable",
		}
	}
	return base.(kern.PointEvaler), nil
}

// derivedK runs the per-pair derivative chains over pre-sliced
// coordinate matrices. Entries without derivatives on either side come
// straight from the base kernel's matrix evaluation.
func derivedK(base kern.Kernel, eval kern.PointEvaler, xd, x2d *mat.Dense, left, right []Descriptor) (*mat.Dense, error) {
	n, _ := xd.Dims()
	m, _ := x2d.Dims()
	if n != len(left) {
		return nil, &kern.ShapeError{Op: "derivative kernel", Axis: "left rows", Got: n, Want: len(left)}
	}
	if m != len(right) {
		return nil, &kern.ShapeError{Op: "derivative kernel", Axis: "right rows", Got: m, Want: len(right)}
	}
	raw, err := base.K(xd, x2d, false)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if left[i].Count == 0 && right[j].Count == 0 {
				out.Set(i, j, raw.At(i, j))
				continue
			}
			v, err := deriveAt(eval, xd.RawRowView(i), x2d.RawRowView(j), left[i], right[j])
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func diagOfK(k kern.Kernel, x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	full, err := k.K(x, nil, presliced)
	if err != nil {
		return nil, err
	}
	n, _ := full.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, full.At(i, i))
	}
	return out, nil
}
