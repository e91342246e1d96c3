package diffkern

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

var (
	dynamic *Dynamic
	_       kern.Kernel = dynamic
)

// Dynamic wraps a base kernel with derivative structure encoded per call
// in the input matrix itself: each row carries obsDims coordinate
// columns followed by obsDims mask columns, where mask column d counts
// how many derivatives were taken in spatial dimension d. Only orders
// 0 to 2 per side are supported; higher totals are rejected.
type Dynamic struct {
	kern.Kern
	base    kern.Kernel
	eval    kern.PointEvaler
	obsDims int
}

func NewDynamic(inputDim int, base kern.Kernel, obsDims int, opts ...kern.Option) (*Dynamic, error) {
	ev, err := pointEvaler("dynamic derivative kernel", base)
	if err != nil {
		return nil, err
	}
	if obsDims <= 0 {
		return nil, &kern.InvariantError{Op: "dynamic derivative kernel", Reason: "observation dimensions must be positive"}
	}
	k, err := kern.NewKern(inputDim, opts...)
	if err != nil {
		return nil, err
	}
	if inputDim < 2*obsDims {
		return nil, &kern.ShapeError{Op: "dynamic derivative kernel", Axis: "input dimensions", Got: inputDim, Want: 2 * obsDims}
	}
	return &Dynamic{Kern: k, base: base, eval: ev, obsDims: obsDims}, nil
}

func (k *Dynamic) Base() kern.Kernel { return k.base }

func (k *Dynamic) ObsDims() int { return k.obsDims }

func (k *Dynamic) K(x, x2 mat.Matrix, presliced bool) (*mat.Dense, error) {
	xd, x2d, err := k.SliceInputs(x, x2, presliced)
	if err != nil {
		return nil, err
	}
	locs1, left, err := k.split(xd)
	if err != nil {
		return nil, err
	}
	locs2, right := locs1, left
	if x2d != nil {
		locs2, right, err = k.split(x2d)
		if err != nil {
			return nil, err
		}
	}
	return derivedK(k.base, k.eval, locs1, locs2, left, right)
}

// Kdiag computes the full K(X, X) and extracts its diagonal; see the
// Static engine for why a shortcut would be wrong.
func (k *Dynamic) Kdiag(x mat.Matrix, presliced bool) (*mat.VecDense, error) {
	return diagOfK(k, x, presliced)
}

// split separates each row into its leading obsDims coordinates and its
// trailing obsDims derivative flags, decoding the flags into
// descriptors.
func (k *Dynamic) split(x *mat.Dense) (*mat.Dense, []Descriptor, error) {
	rows, cols := x.Dims()
	if cols < 2*k.obsDims {
		return nil, nil, &kern.ShapeError{Op: "dynamic derivative kernel", Axis: "columns", Got: cols, Want: 2 * k.obsDims}
	}
	locs := mat.DenseCopyOf(x.Slice(0, rows, 0, k.obsDims))
	descs := make([]Descriptor, rows)
	for i := 0; i < rows; i++ {
		d, err := maskToDescriptor(x.RawRowView(i)[cols-k.obsDims:])
		if err != nil {
			return nil, nil, err
		}
		descs[i] = d
	}
	return locs, descs, nil
}
