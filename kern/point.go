package kern

import (
	"gonum.org/v1/gonum/num/hyperdual"
)

// PointEvaler is implemented by kernels whose covariance is a smooth
// expression of a single pair of points. Evaluation is carried out in
// hyperdual arithmetic, so the expression can be differentiated with
// respect to any input coordinate. Both points carry the caller's full
// column width; the kernel gathers its active dimensions itself, exactly
// as K does.
type PointEvaler interface {
	KPoint(x, z []hyperdual.Number) hyperdual.Number
}

// CanEvalPoint reports whether k supports pointwise differentiable
// evaluation. A combination qualifies only when every child does.
func CanEvalPoint(k Kernel) bool {
	switch k := k.(type) {
	case *Add:
		return childrenEvalPoint(k.children)
	case *Prod:
		return childrenEvalPoint(k.children)
	case PointEvaler:
		return true
	}
	return false
}

func childrenEvalPoint(children []Kernel) bool {
	for _, c := range children {
		if !CanEvalPoint(c) {
			return false
		}
	}
	return true
}

func gatherPoint(d Dims, x []hyperdual.Number) []hyperdual.Number {
	if d.IsRange() {
		return x[:d.Len()]
	}
	out := make([]hyperdual.Number, d.Len())
	for i, ix := range d.Indices() {
		out[i] = x[ix]
	}
	return out
}
