package diffkern

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/zcmail/gpkern/kern"
)

const (
	sideLeft int = iota
	sideRight
)

// Finite-difference steps for the branches beyond second total order.
// The differentiated function is itself exact (hyperdual), so a single
// central step stays accurate; the nested fourth-order steps are larger
// to keep roundoff below truncation.
var (
	fdFirst  = &fd.Settings{Formula: fd.Central, Step: 1e-5}
	fdSecond = &fd.Settings{Formula: fd.Central2nd, Step: 1e-4}
	fdOuter  = &fd.Settings{Formula: fd.Central, Step: 1e-4}
)

// pairEval evaluates chained partial derivatives of a scalar kernel
// expression at one pair of points. The first- and second-order
// operators are exact (hyperdual seeding); they are built once per pair
// and shared by the higher-order branches, which wrap them in central
// finite differences.
type pairEval struct {
	eval    kern.PointEvaler
	xl, xr  []float64
	d2Left  func(xl, xr []float64, i, j int) float64
	d2Right func(xl, xr []float64, k, m int) float64
}

func newPairEval(eval kern.PointEvaler, xl, xr []float64) *pairEval {
	p := &pairEval{eval: eval, xl: xl, xr: xr}
	p.d2Left = func(xl, xr []float64, i, j int) float64 {
		return p.d2(xl, xr, sideLeft, i, sideLeft, j)
	}
	p.d2Right = func(xl, xr []float64, k, m int) float64 {
		return p.d2(xl, xr, sideRight, k, sideRight, m)
	}
	return p
}

// seed builds the hyperdual views of both points. Seeding a coordinate's
// E1 (or E2) part selects it for the first (second) differentiation; a
// coordinate seeded twice yields the pure second derivative.
func (p *pairEval) seed(xl, xr []float64, s1, d1, s2, d2 int) ([]hyperdual.Number, []hyperdual.Number) {
	hl := make([]hyperdual.Number, len(xl))
	for i, v := range xl {
		hl[i] = hyperdual.Number{Real: v}
	}
	hr := make([]hyperdual.Number, len(xr))
	for i, v := range xr {
		hr[i] = hyperdual.Number{Real: v}
	}
	if d1 >= 0 {
		if s1 == sideLeft {
			hl[d1].E1mag = 1
		} else {
			hr[d1].E1mag = 1
		}
	}
	if d2 >= 0 {
		if s2 == sideLeft {
			hl[d2].E2mag = 1
		} else {
			hr[d2].E2mag = 1
		}
	}
	return hl, hr
}

func (p *pairEval) value(xl, xr []float64) float64 {
	hl, hr := p.seed(xl, xr, 0, Unused, 0, Unused)
	return p.eval.KPoint(hl, hr).Real
}

func (p *pairEval) d1(xl, xr []float64, side, i int) float64 {
	hl, hr := p.seed(xl, xr, side, i, 0, Unused)
	return p.eval.KPoint(hl, hr).E1mag
}

func (p *pairEval) d2(xl, xr []float64, sa, a, sb, b int) float64 {
	hl, hr := p.seed(xl, xr, sa, a, sb, b)
	return p.eval.KPoint(hl, hr).E1E2mag
}

func withDim(x []float64, i int, v float64) []float64 {
	out := append([]float64(nil), x...)
	out[i] = v
	return out
}

// branches is the dispatch table keyed by (left derivative count, right
// derivative count). The (0, 0) entry returns the raw kernel value;
// parsing rejects counts above two before dispatch.
var branches = map[[2]int]func(p *pairEval, l, r Descriptor) float64{
	{0, 0}: func(p *pairEval, _, _ Descriptor) float64 {
		return p.value(p.xl, p.xr)
	},
	{1, 0}: func(p *pairEval, l, _ Descriptor) float64 {
		return p.d1(p.xl, p.xr, sideLeft, l.First)
	},
	{0, 1}: func(p *pairEval, _, r Descriptor) float64 {
		return p.d1(p.xl, p.xr, sideRight, r.First)
	},
	{2, 0}: func(p *pairEval, l, _ Descriptor) float64 {
		return p.d2Left(p.xl, p.xr, l.First, l.Second)
	},
	{1, 1}: func(p *pairEval, l, r Descriptor) float64 {
		return p.d2(p.xl, p.xr, sideLeft, l.First, sideRight, r.First)
	},
	{0, 2}: func(p *pairEval, _, r Descriptor) float64 {
		return p.d2Right(p.xl, p.xr, r.First, r.Second)
	},
	{2, 1}: func(p *pairEval, l, r Descriptor) float64 {
		g := func(t float64) float64 {
			return p.d2Left(p.xl, withDim(p.xr, r.First, t), l.First, l.Second)
		}
		return fd.Derivative(g, p.xr[r.First], fdFirst)
	},
	{1, 2}: func(p *pairEval, l, r Descriptor) float64 {
		g := func(t float64) float64 {
			return p.d2Right(withDim(p.xl, l.First, t), p.xr, r.First, r.Second)
		}
		return fd.Derivative(g, p.xl[l.First], fdFirst)
	},
	{2, 2}: func(p *pairEval, l, r Descriptor) float64 {
		if l.First == l.Second {
			g := func(t float64) float64 {
				return p.d2Right(withDim(p.xl, l.First, t), p.xr, r.First, r.Second)
			}
			return fd.Derivative(g, p.xl[l.First], fdSecond)
		}
		outer := func(u float64) float64 {
			xl := withDim(p.xl, l.Second, u)
			inner := func(t float64) float64 {
				return p.d2Right(withDim(xl, l.First, t), p.xr, r.First, r.Second)
			}
			return fd.Derivative(inner, p.xl[l.First], fdOuter)
		}
		return fd.Derivative(outer, p.xl[l.Second], fdOuter)
	},
}

// deriveAt applies the left then right derivative chains described by
// the descriptors to the kernel value at (xl, xr).
func deriveAt(eval kern.PointEvaler, xl, xr []float64, l, r Descriptor) (float64, error) {
	b, ok := branches[[2]int{l.Count, r.Count}]
	if !ok {
		return 0, &kern.ConfigError{Op: "derivative kernel", Reason: "only orders 0 to 2 are supported per side"}
	}
	return b(newPairEval(eval, xl, xr), l, r), nil
}
