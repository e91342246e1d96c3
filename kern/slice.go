package kern

import (
	"gonum.org/v1/gonum/mat"
)

// Dims selects which columns of the caller's data matrix a kernel
// consumes: either the contiguous range [0, n) or an explicit ordered
// list of column indices.
type Dims struct {
	n        int
	explicit []int
}

// RangeDims selects the first n columns.
func RangeDims(n int) Dims { return Dims{n: n} }

// ExplicitDims selects the given columns in order.
func ExplicitDims(idx ...int) Dims {
	return Dims{n: len(idx), explicit: append([]int(nil), idx...)}
}

// IsRange reports whether the selector is a contiguous range.
func (d Dims) IsRange() bool { return d.explicit == nil }

// Len is the number of selected columns.
func (d Dims) Len() int { return d.n }

// Max is the largest column index touched by the selector.
func (d Dims) Max() int {
	if d.explicit == nil {
		return d.n - 1
	}
	max := d.explicit[0]
	for _, ix := range d.explicit[1:] {
		if ix > max {
			max = ix
		}
	}
	return max
}

// Indices returns the selected column indices in order.
func (d Dims) Indices() []int {
	if d.explicit != nil {
		return d.explicit
	}
	idx := make([]int, d.n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Overlaps reports whether two explicit selectors share a column. Range
// selectors are treated as always overlapping; callers that need a
// conservative answer check IsRange first.
func (d Dims) Overlaps(o Dims) bool {
	if d.explicit == nil || o.explicit == nil {
		return true
	}
	for _, a := range d.explicit {
		for _, b := range o.explicit {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Slice restricts x (and x2, unless nil) to the selected columns. The
// result has exactly Len columns; a narrower input is a ShapeError.
func (d Dims) Slice(x, x2 mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	xs, err := d.sliceOne(x)
	if err != nil {
		return nil, nil, err
	}
	if x2 == nil {
		return xs, nil, nil
	}
	x2s, err := d.sliceOne(x2)
	if err != nil {
		return nil, nil, err
	}
	return xs, x2s, nil
}

func (d Dims) sliceOne(x mat.Matrix) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols < d.n || (d.explicit != nil && cols <= d.Max()) {
		want := d.n
		if d.explicit != nil && d.Max()+1 > want {
			want = d.Max() + 1
		}
		return nil, &ShapeError{Op: "slice", Axis: "columns", Got: cols, Want: want}
	}
	out := mat.NewDense(rows, d.n, nil)
	for j, ix := range d.Indices() {
		for i := 0; i < rows; i++ {
			out.Set(i, j, x.At(i, ix))
		}
	}
	return out, nil
}

// SliceCov restricts a sequence of per-row covariance matrices to the
// selected rows and columns simultaneously.
func (d Dims) SliceCov(c *CovSeq) (*CovSeq, error) {
	dim := c.Dim()
	if dim < d.n || (d.explicit != nil && dim <= d.Max()) {
		want := d.n
		if d.explicit != nil && d.Max()+1 > want {
			want = d.Max() + 1
		}
		return nil, &ShapeError{Op: "slice covariance", Axis: "dimensions", Got: dim, Want: want}
	}
	idx := d.Indices()
	if c.diag != nil {
		rows, _ := c.diag.Dims()
		out := mat.NewDense(rows, d.n, nil)
		for j, ix := range idx {
			for i := 0; i < rows; i++ {
				out.Set(i, j, c.diag.At(i, ix))
			}
		}
		return DiagCov(out), nil
	}
	full := make([]*mat.SymDense, len(c.full))
	for i, s := range c.full {
		sub := mat.NewSymDense(d.n, nil)
		for a, ia := range idx {
			for b := a; b < len(idx); b++ {
				sub.SetSym(a, b, s.At(ia, idx[b]))
			}
		}
		full[i] = sub
	}
	return FullCov(full...), nil
}

// CovSeq is a sequence of per-row covariance matrices over the input
// distribution, stored either in full form or as diagonals.
type CovSeq struct {
	full []*mat.SymDense
	diag *mat.Dense
}

// FullCov wraps one full covariance matrix per row.
func FullCov(ms ...*mat.SymDense) *CovSeq { return &CovSeq{full: ms} }

// DiagCov wraps an N x D matrix of per-row covariance diagonals.
func DiagCov(d *mat.Dense) *CovSeq { return &CovSeq{diag: d} }

// Len is the number of rows covered.
func (c *CovSeq) Len() int {
	if c.diag != nil {
		n, _ := c.diag.Dims()
		return n
	}
	return len(c.full)
}

// Dim is the dimensionality of each covariance matrix.
func (c *CovSeq) Dim() int {
	if c.diag != nil {
		_, d := c.diag.Dims()
		return d
	}
	if len(c.full) == 0 {
		return 0
	}
	return c.full[0].SymmetricDim()
}

// At returns the i-th covariance matrix, expanding a stored diagonal
// into a full diagonal matrix.
func (c *CovSeq) At(i int) *mat.SymDense {
	if c.diag == nil {
		return c.full[i]
	}
	_, d := c.diag.Dims()
	out := mat.NewSymDense(d, nil)
	for j := 0; j < d; j++ {
		out.SetSym(j, j, c.diag.At(i, j))
	}
	return out
}
