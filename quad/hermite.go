// Package quad computes Gaussian expectations of kernel outputs by
// multivariate Gauss-Hermite quadrature. It is the standard fallback for
// kernels without closed-form expectations.
package quad

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// gaussHermite returns the 1-D Gauss-Hermite nodes and weights for the
// weight function exp(-x^2) on the real line.
func gaussHermite(h int) (x, w []float64) {
	x = make([]float64, h)
	w = make([]float64, h)
	quad.Hermite{}.FixedLocations(x, w, math.Inf(-1), math.Inf(1))
	return x, w
}

// hermiteGrid forms the h^d tensor product of the 1-D rule. The returned
// nodes are h^d x d and the fused weights are pre-normalized by
// pi^(-d/2), so they sum to one.
func hermiteGrid(h, d int) (*mat.Dense, []float64) {
	x1, w1 := gaussHermite(h)
	p := 1
	for i := 0; i < d; i++ {
		p *= h
	}
	nodes := mat.NewDense(p, d, nil)
	weights := make([]float64, p)
	norm := math.Pow(math.Pi, -0.5*float64(d))
	idx := make([]int, d)
	for r := 0; r < p; r++ {
		w := norm
		for j := 0; j < d; j++ {
			nodes.Set(r, j, x1[idx[j]])
			w *= w1[idx[j]]
		}
		weights[r] = w
		for j := d - 1; j >= 0; j-- {
			idx[j]++
			if idx[j] < h {
				break
			}
			idx[j] = 0
		}
	}
	return nodes, weights
}
